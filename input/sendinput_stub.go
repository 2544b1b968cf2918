//go:build !windows

package input

import "fmt"

// NewSendInputInjector is Windows-only; other platforms use robotgo.
func NewSendInputInjector() (Injector, error) {
	return nil, fmt.Errorf("sendinput backend is only available on windows")
}
