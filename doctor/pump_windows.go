//go:build windows

package doctor

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32          = windows.NewLazySystemDLL("user32.dll")
	procPeekMessage = user32.NewProc("PeekMessageW")
)

const pmRemove = 1

type winMsg struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

// pumpOnce drains the calling thread's message queue. Low-level keyboard
// hooks are only invoked while their installing thread pumps messages.
func pumpOnce() {
	var m winMsg
	for {
		ret, _, _ := procPeekMessage.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0, pmRemove)
		if ret == 0 {
			return
		}
	}
}
