package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nguongthienTieu/macro-imba/config"
	"github.com/nguongthienTieu/macro-imba/engine"
	"github.com/nguongthienTieu/macro-imba/input"
	"github.com/nguongthienTieu/macro-imba/storage"
	"github.com/nguongthienTieu/macro-imba/systray"
)

// Agent wires the trigger source, the injection backend, the run-history
// store and the engine together, and runs the tray front end.
type Agent struct {
	cfg      *config.Config
	engine   *engine.Engine
	store    *storage.DB
	recorder *storage.Recorder
	tray     *systray.Manager
}

// NewAgent creates a new agent instance
func NewAgent(cfg *config.Config) (*Agent, error) {
	injector, err := newInjector(cfg.Input.Backend)
	if err != nil {
		return nil, err
	}

	a := &Agent{cfg: cfg}

	configDir, err := config.ConfigDir()
	if err != nil {
		return nil, err
	}
	store, err := storage.Open(configDir)
	if err != nil {
		// Run history is a convenience; the engine works without it.
		slog.Warn("Run-history storage unavailable", "error", err)
	} else {
		a.store = store
		a.recorder = storage.NewRecorder(store)
	}

	source := input.NewGohookSource()
	eng, err := engine.New(cfg, injector, source, recorderOrNil(a.recorder))
	if err != nil {
		if a.store != nil {
			a.recorder.Close()
			a.store.Close()
		}
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	a.engine = eng
	a.tray = systray.NewManager(eng, a.reloadConfig, nil)

	return a, nil
}

// newInjector selects the injection backend. "sendinput" exists only on
// Windows; elsewhere the constructor reports that and we refuse rather than
// silently downgrade.
func newInjector(backend string) (input.Injector, error) {
	switch backend {
	case "", "robotgo":
		return input.NewRobotgoInjector(), nil
	case "sendinput":
		return input.NewSendInputInjector()
	default:
		return nil, fmt.Errorf("unknown input backend %q", backend)
	}
}

func recorderOrNil(r *storage.Recorder) engine.Recorder {
	if r == nil {
		return nil
	}
	return r
}

// Run starts the engine and blocks until the context is cancelled or the
// user quits from the tray.
func (a *Agent) Run(ctx context.Context) error {
	if err := a.engine.Start(); err != nil {
		return err
	}
	a.engine.SetEnabled(true)

	slog.Info("Macro Imba started",
		"global_hotkey", a.cfg.GlobalHotkey,
		"quick_cast", a.cfg.QuickCast.Enabled,
		"macros", len(a.cfg.Macros))

	go a.tray.Run()

	select {
	case <-ctx.Done():
	case <-a.tray.WaitForQuit():
	}

	a.tray.Stop()
	a.engine.Shutdown()
	if a.store != nil {
		a.recorder.Close()
		if err := a.store.Close(); err != nil {
			slog.Warn("Failed to close run-history storage", "error", err)
		}
	}
	return nil
}

// reloadConfig re-reads the config file and applies it to the engine. A
// rejected configuration leaves the previous one fully in effect.
func (a *Agent) reloadConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := a.engine.LoadConfig(cfg); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}
