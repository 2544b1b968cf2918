package storage

// DailyStats represents activity for a single day
type DailyStats struct {
	Date          string
	MacroRuns     int
	CancelledRuns int
	QuickCasts    int
	AutoCastTicks int
}

// OverallStats represents totals across the whole run history
type OverallStats struct {
	MacroRuns     int
	CancelledRuns int
	QuickCasts    int
	AutoCastTicks int
	AvgMacroMs    float64
	TotalMacroMs  int64
}

// GetDailyStats retrieves activity grouped by date for the last N days
func (db *DB) GetDailyStats(days int) ([]DailyStats, error) {
	query := `
		SELECT
			DATE(timestamp) as date,
			SUM(CASE WHEN kind = 'macro' THEN count ELSE 0 END) as macro_runs,
			SUM(CASE WHEN kind = 'macro' AND cancelled = 1 THEN count ELSE 0 END) as cancelled_runs,
			SUM(CASE WHEN kind = 'quick_cast' THEN count ELSE 0 END) as quick_casts,
			SUM(CASE WHEN kind = 'auto_cast' THEN count ELSE 0 END) as auto_cast_ticks
		FROM runs
		WHERE timestamp >= datetime('now', '-' || ? || ' days')
		GROUP BY DATE(timestamp)
		ORDER BY date DESC
	`

	rows, err := db.conn.Query(query, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []DailyStats
	for rows.Next() {
		var s DailyStats
		if err := rows.Scan(&s.Date, &s.MacroRuns, &s.CancelledRuns, &s.QuickCasts, &s.AutoCastTicks); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

// GetOverallStats retrieves totals across the whole run history
func (db *DB) GetOverallStats() (*OverallStats, error) {
	query := `
		SELECT
			SUM(CASE WHEN kind = 'macro' THEN count ELSE 0 END),
			SUM(CASE WHEN kind = 'macro' AND cancelled = 1 THEN count ELSE 0 END),
			SUM(CASE WHEN kind = 'quick_cast' THEN count ELSE 0 END),
			SUM(CASE WHEN kind = 'auto_cast' THEN count ELSE 0 END),
			COALESCE(AVG(CASE WHEN kind = 'macro' THEN duration_ms END), 0),
			COALESCE(SUM(CASE WHEN kind = 'macro' THEN duration_ms ELSE 0 END), 0)
		FROM runs
	`

	var s OverallStats
	var macroRuns, cancelled, quickCasts, autoCasts *int
	err := db.conn.QueryRow(query).Scan(&macroRuns, &cancelled, &quickCasts, &autoCasts, &s.AvgMacroMs, &s.TotalMacroMs)
	if err != nil {
		return nil, err
	}

	// SUM over an empty table is NULL
	if macroRuns != nil {
		s.MacroRuns = *macroRuns
	}
	if cancelled != nil {
		s.CancelledRuns = *cancelled
	}
	if quickCasts != nil {
		s.QuickCasts = *quickCasts
	}
	if autoCasts != nil {
		s.AutoCastTicks = *autoCasts
	}

	return &s, nil
}
