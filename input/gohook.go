package input

import (
	"fmt"
	"log/slog"
	"sync"
	"unicode"

	hook "github.com/robotn/gohook"
)

// GohookSource reports global key transitions via the gohook event tap.
// It is listen-only: the Handler's consumed result cannot be honored, the
// physical event always passes through to the foreground application.
type GohookSource struct {
	mu       sync.Mutex
	running  bool
	done     chan struct{}
	keyNames map[uint16]string
}

// NewGohookSource creates an unsubscribed capture source.
func NewGohookSource() *GohookSource {
	names := make(map[uint16]string, len(hook.Keycode))
	for name, code := range hook.Keycode {
		if _, ok := names[code]; !ok {
			names[code] = name
		}
	}
	return &GohookSource{keyNames: names}
}

// Subscribe installs the global hook and starts delivering events to h from
// a dedicated goroutine. Only one subscription is supported.
func (s *GohookSource) Subscribe(h Handler) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("gohook source already subscribed")
	}

	events := hook.Start()
	s.running = true
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		for ev := range events {
			var edge Edge
			switch ev.Kind {
			case hook.KeyDown:
				edge = Down
			case hook.KeyUp:
				edge = Up
			default:
				continue
			}

			key := s.keyName(ev)
			if key == "" {
				continue
			}
			h(key, edge)
		}
	}()

	slog.Info("Global keyboard hook installed")
	return nil
}

// Close uninstalls the hook and waits for the delivery goroutine to drain.
func (s *GohookSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false

	hook.End()
	<-s.done
	return nil
}

// keyName maps an event to the lower-case key name used in configuration.
// Printable characters come from Keychar, everything else (function keys,
// space, enter) from the keycode table.
func (s *GohookSource) keyName(ev hook.Event) string {
	if ev.Keychar != 0 && ev.Keychar != 0xFFFF && unicode.IsPrint(ev.Keychar) && ev.Keychar != ' ' {
		return string(unicode.ToLower(ev.Keychar))
	}
	return s.keyNames[ev.Keycode]
}
