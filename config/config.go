package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	QuickCast     QuickCastConfig `toml:"quick_cast"`
	AutoCast      AutoCastConfig  `toml:"auto_cast"`
	Macros        []Macro         `toml:"macros"`
	GlobalHotkey  string          `toml:"global_hotkey"`
	ToggleEnabled bool            `toml:"toggle_enabled"`
	Input         InputConfig     `toml:"input"`
}

type QuickCastConfig struct {
	Enabled bool `toml:"enabled"`
	// SuppressKey asks the capture layer to swallow the physical key press
	// instead of letting it pass through alongside the click. Not every
	// capture backend can honor it.
	SuppressKey bool              `toml:"suppress_key"`
	Hotkeys     map[string]string `toml:"hotkeys"`
}

type AutoCastConfig struct {
	Enabled    bool            `toml:"enabled"`
	IntervalMS int             `toml:"interval_ms"`
	Skills     []AutoCastSkill `toml:"skills"`
}

// AutoCastSkill is one periodically re-cast hotkey. IntervalMS of 0 falls
// back to the auto_cast default interval.
type AutoCastSkill struct {
	Hotkey     string `toml:"hotkey"`
	IntervalMS int    `toml:"interval_ms,omitempty"`
}

type Macro struct {
	Name    string   `toml:"name"`
	Hotkey  string   `toml:"hotkey"`
	Actions []Action `toml:"actions"`
}

// Action kinds understood by the engine.
const (
	ActionKeyPress   = "key_press"
	ActionKeyHold    = "key_hold"
	ActionMouseClick = "mouse_click"
	ActionDelay      = "delay"
	ActionCombo      = "combo"
)

// Action is one macro step. Which fields matter depends on Type:
// key_press and key_hold use Key (plus DurationMS for holds), mouse_click
// uses Button, delay uses DelayMS, combo uses Keys.
type Action struct {
	Type       string   `toml:"type"`
	Key        string   `toml:"key,omitempty"`
	Button     string   `toml:"button,omitempty"`
	DurationMS int      `toml:"duration_ms,omitempty"`
	DelayMS    int      `toml:"delay_ms,omitempty"`
	Keys       []string `toml:"keys,omitempty"`
}

type InputConfig struct {
	// Backend selects the injection backend: "robotgo" or, on Windows,
	// "sendinput" for scancode-level injection that DirectX games accept.
	Backend string `toml:"backend"`
}

// Default configuration, mirroring the classic Dota skill row.
func defaultConfig() *Config {
	return &Config{
		QuickCast: QuickCastConfig{
			Enabled: true,
			Hotkeys: map[string]string{
				"skill_1": "q",
				"skill_2": "w",
				"skill_3": "e",
				"skill_4": "r",
				"skill_5": "d",
				"skill_6": "f",
			},
		},
		AutoCast: AutoCastConfig{
			Enabled:    false,
			IntervalMS: 100,
			Skills:     []AutoCastSkill{},
		},
		Macros:        []Macro{},
		GlobalHotkey:  "f9",
		ToggleEnabled: true,
		Input: InputConfig{
			Backend: "robotgo",
		},
	}
}

// ConfigDir returns the per-user directory holding the config file and the
// run-history database, creating it if needed.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}

	dir := filepath.Join(base, "macro-imba")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return dir, nil
}

// ConfigPath returns the path to the configuration file
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads the configuration from the TOML file.
// If the file doesn't exist, it creates it with default values.
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := defaultConfig()
		if err := save(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	return LoadFile(configPath)
}

// LoadFile loads the configuration from an explicit path. Missing fields
// take their default values. Only TOML syntax is checked here; semantic
// validation (hotkey uniqueness, interval positivity) happens when the
// config is handed to the engine.
func LoadFile(path string) (*Config, error) {
	cfg := defaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Normalize()
	return cfg, nil
}

// Save writes the configuration to the default config file.
func (c *Config) Save() error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}
	return save(configPath, c)
}

func save(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Normalize lower-cases every hotkey and action key in place so lookups can
// compare exactly.
func (c *Config) Normalize() {
	for slot, key := range c.QuickCast.Hotkeys {
		c.QuickCast.Hotkeys[slot] = NormalizeKey(key)
	}
	for i := range c.AutoCast.Skills {
		c.AutoCast.Skills[i].Hotkey = NormalizeKey(c.AutoCast.Skills[i].Hotkey)
	}
	for i := range c.Macros {
		m := &c.Macros[i]
		m.Hotkey = NormalizeKey(m.Hotkey)
		for j := range m.Actions {
			a := &m.Actions[j]
			a.Key = NormalizeKey(a.Key)
			a.Button = NormalizeKey(a.Button)
			for k := range a.Keys {
				a.Keys[k] = NormalizeKey(a.Keys[k])
			}
		}
	}
	c.GlobalHotkey = NormalizeKey(c.GlobalHotkey)
}

// NormalizeKey canonicalizes a key name as used in hotkey lookups.
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// Interval returns the effective re-cast interval for a skill, falling back
// to the auto_cast default when the skill does not set its own.
func (a AutoCastConfig) Interval(s AutoCastSkill) int {
	if s.IntervalMS > 0 {
		return s.IntervalMS
	}
	return a.IntervalMS
}
