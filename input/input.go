package input

// Edge is the direction of a key transition.
type Edge int

const (
	Down Edge = iota
	Up
)

func (e Edge) String() string {
	if e == Down {
		return "down"
	}
	return "up"
}

// Button identifies a mouse button.
type Button string

const (
	ButtonLeft   Button = "left"
	ButtonRight  Button = "right"
	ButtonMiddle Button = "middle"
)

// Handler receives one trigger event per physical key transition, already
// debounced by the capture layer. The return value reports whether the
// engine consumed the event; sources that are able to swallow events may
// honor it, listen-only sources ignore it.
type Handler func(key string, edge Edge) (consumed bool)

// Injector simulates keyboard and mouse input. Implementations hold no
// state about what is pressed; that bookkeeping belongs to the caller.
type Injector interface {
	Press(key string) error
	Release(key string) error
	Click(button Button, x, y int) error
	CursorPos() (x, y int)
}

// Source reports global key transitions to a single subscribed handler.
type Source interface {
	Subscribe(h Handler) error
	Close() error
}
