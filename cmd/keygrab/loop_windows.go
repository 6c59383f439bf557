//go:build windows

package main

import (
	"os"
	"time"
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

// runLoop pumps this thread's message queue until a shutdown signal
// arrives. The low-level keyboard hook is only invoked while the thread
// that installed it processes messages.
func runLoop(sig <-chan os.Signal) {
	var m winMsg
	for {
		for {
			ret, _, _ := procPeekMessage.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0, pmRemove)
			if ret == 0 {
				break
			}
		}
		select {
		case <-sig:
			return
		case <-time.After(10 * time.Millisecond):
		}
	}
}
