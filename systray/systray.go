package systray

import (
	"log/slog"

	"github.com/getlantern/systray"

	"github.com/nguongthienTieu/macro-imba/engine"
)

// Manager manages the system tray icon and menu. The menu is the whole
// control surface: an enabled checkbox, a config reload entry and quit.
type Manager struct {
	engine   *engine.Engine
	reload   func() error
	iconData []byte
	quit     chan struct{}
}

// NewManager creates a new systray manager. reload is invoked when the user
// picks "Reload config".
func NewManager(eng *engine.Engine, reload func() error, iconData []byte) *Manager {
	return &Manager{
		engine:   eng,
		reload:   reload,
		iconData: iconData,
		quit:     make(chan struct{}),
	}
}

// Run starts the system tray (blocking call)
func (m *Manager) Run() {
	systray.Run(m.onReady, m.onExit)
}

// Stop stops the system tray
func (m *Manager) Stop() {
	systray.Quit()
}

// WaitForQuit returns a channel that will be closed when user clicks Quit
func (m *Manager) WaitForQuit() <-chan struct{} {
	return m.quit
}

// onReady is called when the systray is ready
func (m *Manager) onReady() {
	if len(m.iconData) > 0 {
		systray.SetIcon(m.iconData)
	}

	systray.SetTitle("Macro Imba")
	systray.SetTooltip("Macro Imba - Game Input Macros")

	mEnabled := systray.AddMenuItemCheckbox("Enabled", "Enable or disable all macros", m.engine.Enabled())
	mReload := systray.AddMenuItem("Reload config", "Re-read the configuration file")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Exit Macro Imba")

	go func() {
		for {
			select {
			case <-mEnabled.ClickedCh:
				m.engine.SetEnabled(!m.engine.Enabled())
				if m.engine.Enabled() {
					mEnabled.Check()
				} else {
					mEnabled.Uncheck()
				}
			case <-mReload.ClickedCh:
				if err := m.reload(); err != nil {
					slog.Error("Config reload failed", "error", err)
				} else {
					slog.Info("Configuration reloaded from file")
				}
			case <-mQuit.ClickedCh:
				slog.Info("User requested quit from system tray")
				close(m.quit)
				systray.Quit()
				return
			}
		}
	}()
}

// onExit is called when the systray is exiting
func (m *Manager) onExit() {
	slog.Info("System tray exited")
}
