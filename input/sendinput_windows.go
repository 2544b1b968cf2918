//go:build windows

package input

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32         = windows.NewLazySystemDLL("user32.dll")
	sendInput      = user32.NewProc("SendInput")
	mapVirtualKeyW = user32.NewProc("MapVirtualKeyW")
	setCursorPos   = user32.NewProc("SetCursorPos")
	getCursorPos   = user32.NewProc("GetCursorPos")
)

const (
	inputMouse    = 0
	inputKeyboard = 1

	keyeventfKeyup    = 0x0002
	keyeventfScancode = 0x0008

	mouseeventfLeftdown   = 0x0002
	mouseeventfLeftup     = 0x0004
	mouseeventfRightdown  = 0x0008
	mouseeventfRightup    = 0x0010
	mouseeventfMiddledown = 0x0020
	mouseeventfMiddleup   = 0x0040

	mapvkVkToVsc = 0
)

type keyboardInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type keyInput struct {
	inputType uint32
	ki        keyboardInput
	padding   [8]byte // Padding to match C struct size
}

type mouseInput struct {
	dx          int32
	dy          int32
	mouseData   uint32
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type mousePacket struct {
	inputType uint32
	mi        mouseInput
}

type point struct {
	x int32
	y int32
}

// SendInputInjector injects input with scan codes rather than virtual keys.
// DirectX titles (Warcraft 3 among them) read keyboard state at the scancode
// level and ignore plain virtual-key injection.
type SendInputInjector struct{}

// NewSendInputInjector creates the scancode injector.
func NewSendInputInjector() (Injector, error) {
	return &SendInputInjector{}, nil
}

func (*SendInputInjector) Press(key string) error {
	return sendKey(key, 0)
}

func (*SendInputInjector) Release(key string) error {
	return sendKey(key, keyeventfKeyup)
}

func sendKey(key string, upFlag uint32) error {
	vk, scan, err := lookupKey(key)
	if err != nil {
		return err
	}

	in := keyInput{
		inputType: inputKeyboard,
		ki: keyboardInput{
			wVk:     vk,
			wScan:   scan,
			dwFlags: keyeventfScancode | upFlag,
		},
	}

	ret, _, callErr := sendInput.Call(1, uintptr(unsafe.Pointer(&in)), unsafe.Sizeof(in))
	if ret == 0 {
		return fmt.Errorf("SendInput failed for key %q: %w", key, callErr)
	}
	return nil
}

func (*SendInputInjector) Click(button Button, x, y int) error {
	down, up, err := buttonFlags(button)
	if err != nil {
		return err
	}

	setCursorPos.Call(uintptr(int32(x)), uintptr(int32(y)))

	inputs := []mousePacket{
		{inputType: inputMouse, mi: mouseInput{dwFlags: down}},
		{inputType: inputMouse, mi: mouseInput{dwFlags: up}},
	}
	ret, _, callErr := sendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if ret == 0 {
		return fmt.Errorf("SendInput failed for %s click: %w", button, callErr)
	}
	return nil
}

func (*SendInputInjector) CursorPos() (int, int) {
	var p point
	getCursorPos.Call(uintptr(unsafe.Pointer(&p)))
	return int(p.x), int(p.y)
}

func buttonFlags(button Button) (down, up uint32, err error) {
	switch button {
	case ButtonLeft, "":
		return mouseeventfLeftdown, mouseeventfLeftup, nil
	case ButtonRight:
		return mouseeventfRightdown, mouseeventfRightup, nil
	case ButtonMiddle:
		return mouseeventfMiddledown, mouseeventfMiddleup, nil
	default:
		return 0, 0, fmt.Errorf("unknown mouse button: %s", button)
	}
}

// lookupKey resolves a key name to its virtual key and scan code. Single
// characters outside the table fall back to MapVirtualKey.
func lookupKey(key string) (vk, scan uint16, err error) {
	scan, scanOK := scanCodes[key]
	vk = vkCodes[key]

	if !scanOK {
		if len(key) != 1 {
			return 0, 0, fmt.Errorf("unknown key: %s", key)
		}
		vk = uint16(key[0]) &^ 0x20 // upper-case ASCII is the VK code
		mapped, _, _ := mapVirtualKeyW.Call(uintptr(vk), mapvkVkToVsc)
		scan = uint16(mapped)
	}

	return vk, scan, nil
}
