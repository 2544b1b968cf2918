package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadFileFillsDefaults(t *testing.T) {
	path := writeConfig(t, `global_hotkey = "f8"`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.GlobalHotkey != "f8" {
		t.Errorf("GlobalHotkey = %q, want f8", cfg.GlobalHotkey)
	}
	if !cfg.ToggleEnabled {
		t.Error("ToggleEnabled = false, want the default true")
	}
	if !cfg.QuickCast.Enabled {
		t.Error("QuickCast.Enabled = false, want the default true")
	}
	if got := len(cfg.QuickCast.Hotkeys); got != 6 {
		t.Errorf("len(QuickCast.Hotkeys) = %d, want the 6 default slots", got)
	}
	if cfg.AutoCast.IntervalMS != 100 {
		t.Errorf("AutoCast.IntervalMS = %d, want 100", cfg.AutoCast.IntervalMS)
	}
	if cfg.Input.Backend != "robotgo" {
		t.Errorf("Input.Backend = %q, want robotgo", cfg.Input.Backend)
	}
}

func TestLoadFileFullDocument(t *testing.T) {
	path := writeConfig(t, `
global_hotkey = "F9"
toggle_enabled = true

[quick_cast]
enabled = true
suppress_key = true
[quick_cast.hotkeys]
skill_1 = "Q"

[auto_cast]
enabled = true
interval_ms = 250
[[auto_cast.skills]]
hotkey = "E"
interval_ms = 500

[[macros]]
name = "burst"
hotkey = "Z"
[[macros.actions]]
type = "key_press"
key = "Q"
[[macros.actions]]
type = "delay"
delay_ms = 50
[[macros.actions]]
type = "combo"
keys = ["A", "B"]
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	// Everything is normalized to lower case on load.
	if cfg.GlobalHotkey != "f9" {
		t.Errorf("GlobalHotkey = %q, want f9", cfg.GlobalHotkey)
	}
	if got := cfg.QuickCast.Hotkeys["skill_1"]; got != "q" {
		t.Errorf("quick_cast skill_1 = %q, want q", got)
	}
	if !cfg.QuickCast.SuppressKey {
		t.Error("SuppressKey = false, want true")
	}
	if got := cfg.AutoCast.Skills[0].Hotkey; got != "e" {
		t.Errorf("auto_cast hotkey = %q, want e", got)
	}

	if len(cfg.Macros) != 1 {
		t.Fatalf("len(Macros) = %d, want 1", len(cfg.Macros))
	}
	m := cfg.Macros[0]
	if m.Name != "burst" || m.Hotkey != "z" {
		t.Errorf("macro = %q/%q, want burst/z", m.Name, m.Hotkey)
	}
	if len(m.Actions) != 3 {
		t.Fatalf("len(Actions) = %d, want 3", len(m.Actions))
	}
	if m.Actions[0].Type != ActionKeyPress || m.Actions[0].Key != "q" {
		t.Errorf("action 0 = %+v, want key_press q", m.Actions[0])
	}
	if m.Actions[1].DelayMS != 50 {
		t.Errorf("action 1 delay = %d, want 50", m.Actions[1].DelayMS)
	}
	if got := m.Actions[2].Keys; len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("action 2 keys = %v, want [a b]", got)
	}
}

func TestLoadFileSyntaxError(t *testing.T) {
	path := writeConfig(t, `global_hotkey = [broken`)

	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() accepted malformed TOML")
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Q", "q"},
		{"  F9 ", "f9"},
		{"space", "space"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeKey(tt.in); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAutoCastInterval(t *testing.T) {
	ac := AutoCastConfig{IntervalMS: 100}

	if got := ac.Interval(AutoCastSkill{Hotkey: "q"}); got != 100 {
		t.Errorf("Interval() = %d, want the 100 default", got)
	}
	if got := ac.Interval(AutoCastSkill{Hotkey: "q", IntervalMS: 250}); got != 250 {
		t.Errorf("Interval() = %d, want the per-skill 250", got)
	}
}
