//go:build windows

package hook

import (
	"errors"
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	whKeyboardLL = 13

	wmKeyDown    = 0x0100
	wmKeyUp      = 0x0101
	wmSysKeyDown = 0x0104
	wmSysKeyUp   = 0x0105
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHookEx    = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
)

// KBDLLHOOKSTRUCT
type kbdLLHookStruct struct {
	VKCode    uint32
	ScanCode  uint32
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

// The hook procedure is one fixed entry point for the whole process, so
// the active delivery callback lives in package state. The ownership slot
// guarantees a single live Hook, which keeps this well-defined.
var (
	tapMu      sync.Mutex
	activeEmit func(vk uint32, keyDown bool)
	hookHandle uintptr
	hookProc   uintptr // NewCallback slots are never released; create once
)

type windowsTap struct{}

// NewTap returns the WH_KEYBOARD_LL tap. Install must be called from a
// thread that pumps a message loop for events to be delivered.
func NewTap() Tap { return &windowsTap{} }

func (t *windowsTap) Install(emit func(vk uint32, keyDown bool)) error {
	tapMu.Lock()
	defer tapMu.Unlock()
	if hookHandle != 0 {
		return errors.New("low-level keyboard hook already installed")
	}
	if hookProc == 0 {
		hookProc = syscall.NewCallback(lowLevelKeyboardProc)
	}
	activeEmit = emit
	handle, _, err := procSetWindowsHookEx.Call(whKeyboardLL, hookProc, 0, 0)
	if handle == 0 {
		activeEmit = nil
		return fmt.Errorf("SetWindowsHookEx: %w", err)
	}
	hookHandle = handle
	return nil
}

func (t *windowsTap) Uninstall() error {
	tapMu.Lock()
	defer tapMu.Unlock()
	if hookHandle == 0 {
		return nil
	}
	ret, _, err := procUnhookWindowsHookEx.Call(hookHandle)
	hookHandle = 0
	activeEmit = nil
	if ret == 0 {
		return fmt.Errorf("UnhookWindowsHookEx: %w", err)
	}
	return nil
}

// DiagnoseTap checks that a low-level keyboard hook can be installed by
// installing and immediately removing one.
func DiagnoseTap() (string, error) {
	t := &windowsTap{}
	if err := t.Install(func(uint32, bool) {}); err != nil {
		return "", err
	}
	if err := t.Uninstall(); err != nil {
		return "", err
	}
	return "low-level keyboard hook installed and removed", nil
}

func lowLevelKeyboardProc(nCode int, wParam uintptr, lParam uintptr) uintptr {
	// nCode < 0 must be forwarded without processing.
	if nCode >= 0 {
		kb := (*kbdLLHookStruct)(unsafe.Pointer(lParam))
		keyDown := wParam == wmKeyDown || wParam == wmSysKeyDown
		keyUp := wParam == wmKeyUp || wParam == wmSysKeyUp
		if keyDown || keyUp {
			tapMu.Lock()
			emit := activeEmit
			tapMu.Unlock()
			if emit != nil {
				emit(kb.VKCode, keyDown)
			}
		}
	}
	// Always forward so every other listener still sees the event; this
	// hook only observes.
	ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
	return ret
}
