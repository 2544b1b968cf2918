package input

import (
	"github.com/go-vgo/robotgo"
)

// RobotgoInjector drives the OS input APIs through robotgo. It works on
// Windows, macOS and X11 Linux, but injects at the virtual-key level, which
// some DirectX games ignore; those want the scancode backend instead.
type RobotgoInjector struct{}

// NewRobotgoInjector creates the default cross-platform injector.
func NewRobotgoInjector() *RobotgoInjector {
	return &RobotgoInjector{}
}

func (*RobotgoInjector) Press(key string) error {
	return robotgo.KeyToggle(key)
}

func (*RobotgoInjector) Release(key string) error {
	return robotgo.KeyToggle(key, "up")
}

func (*RobotgoInjector) Click(button Button, x, y int) error {
	robotgo.Move(x, y)
	robotgo.Click(string(button), false)
	return nil
}

func (*RobotgoInjector) CursorPos() (int, int) {
	return robotgo.Location()
}
