package engine

import (
	"fmt"

	"github.com/nguongthienTieu/macro-imba/config"
)

// validate performs the semantic checks the configuration boundary leaves
// to the engine: hotkey assignment must be a partial function (each key maps
// to at most one behavior, across all categories), intervals positive,
// macro names present and unique, actions well formed. Enabled flags are
// ignored here; a configuration is either coherent or it is not.
func validate(cfg *config.Config) error {
	owners := make(map[string]string)
	claim := func(key, owner string) *ConfigError {
		if key == "" {
			return configErrorf(owner, "hotkey must not be empty")
		}
		if prev, taken := owners[key]; taken {
			return configErrorf(owner, "hotkey %q already assigned to %s", key, prev)
		}
		owners[key] = owner
		return nil
	}

	if cfg.ToggleEnabled {
		if err := claim(cfg.GlobalHotkey, "global_hotkey"); err != nil {
			return err
		}
	}

	for slot, key := range cfg.QuickCast.Hotkeys {
		if err := claim(key, "quick_cast."+slot); err != nil {
			return err
		}
	}

	for i, skill := range cfg.AutoCast.Skills {
		owner := fmt.Sprintf("auto_cast.skills[%d]", i)
		if err := claim(skill.Hotkey, owner); err != nil {
			return err
		}
		if cfg.AutoCast.Interval(skill) <= 0 {
			return configErrorf(owner, "interval must be positive, got %dms", cfg.AutoCast.Interval(skill))
		}
	}

	names := make(map[string]bool)
	for i, m := range cfg.Macros {
		owner := fmt.Sprintf("macros[%d]", i)
		if m.Name == "" {
			return configErrorf(owner, "macro name must not be empty")
		}
		if names[m.Name] {
			return configErrorf(owner, "duplicate macro name %q", m.Name)
		}
		names[m.Name] = true

		if err := claim(m.Hotkey, fmt.Sprintf("macro %q", m.Name)); err != nil {
			return err
		}

		for j, a := range m.Actions {
			if err := validateAction(a); err != nil {
				return configErrorf(fmt.Sprintf("macro %q action %d", m.Name, j), "%v", err)
			}
		}
	}

	return nil
}

func validateAction(a config.Action) error {
	switch a.Type {
	case config.ActionKeyPress:
		if a.Key == "" {
			return fmt.Errorf("key_press requires a key")
		}
	case config.ActionKeyHold:
		if a.Key == "" {
			return fmt.Errorf("key_hold requires a key")
		}
		if a.DurationMS < 0 {
			return fmt.Errorf("duration must not be negative, got %dms", a.DurationMS)
		}
	case config.ActionMouseClick:
		switch a.Button {
		case "", "left", "right", "middle":
		default:
			return fmt.Errorf("unknown mouse button %q", a.Button)
		}
	case config.ActionDelay:
		if a.DelayMS < 0 {
			return fmt.Errorf("delay must not be negative, got %dms", a.DelayMS)
		}
	case config.ActionCombo:
		if len(a.Keys) == 0 {
			return fmt.Errorf("combo requires at least one key")
		}
		for _, k := range a.Keys {
			if k == "" {
				return fmt.Errorf("combo keys must not be empty")
			}
		}
	default:
		return fmt.Errorf("unknown action type %q", a.Type)
	}
	return nil
}
