// Package doctor runs environment diagnostics for keygrab: can the
// keyboard tap be installed, does a keystroke round-trip through dispatch,
// and does the clipboard work for the demo's copy action.
package doctor

import (
	"fmt"
	"runtime"
	"time"

	"github.com/atotto/clipboard"
	"github.com/micmonay/keybd_event"

	"keygrab"
	"keygrab/hook"
	"keygrab/keys"
)

// Run executes the diagnostic checks and returns an exit code
// (0=all pass, 1=any fail).
func Run() int {
	fmt.Println("keygrab doctor - system diagnostics")
	fmt.Println("===================================")

	allPass := true

	if !checkTap() {
		allPass = false
	}
	if allPass && !checkDispatch() {
		allPass = false
	}
	if !checkClipboard() {
		allPass = false
	}

	fmt.Println()
	if allPass {
		fmt.Println("All checks passed!")
		return 0
	}
	fmt.Println("Some checks failed. See details above.")
	return 1
}

func checkTap() bool {
	fmt.Println()
	fmt.Println("[1/3] Keyboard interception")

	msg, err := hook.DiagnoseTap()
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return false
	}
	fmt.Printf("  PASS: %s\n", msg)
	return true
}

func checkDispatch() bool {
	fmt.Println()
	fmt.Println("[2/3] End-to-end dispatch (Ctrl+Shift+F9)")

	// The hook must be installed and pumped from one locked thread.
	result := make(chan bool, 1)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		result <- runDispatchCheck()
	}()
	return <-result
}

func runDispatchCheck() bool {
	mgr := keygrab.New()
	if err := mgr.Start(); err != nil {
		fmt.Printf("  FAIL: could not start manager: %v\n", err)
		return false
	}
	defer mgr.Stop()

	fired := make(chan struct{}, 1)
	err := mgr.RegisterHotkey(keys.VKF9, keys.Ctrl|keys.Shift, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	}, "doctor check")
	if err != nil {
		fmt.Printf("  FAIL: could not register hotkey: %v\n", err)
		return false
	}

	timeout := 3 * time.Second
	if err := synthesizeCtrlShiftF9(); err != nil {
		// Fall back to asking the user.
		fmt.Printf("  note: cannot synthesize keystroke (%v)\n", err)
		fmt.Println("  Press Ctrl+Shift+F9 within 10 seconds...")
		timeout = 10 * time.Second
	}

	if waitFired(fired, timeout) {
		fmt.Println("  PASS: hotkey dispatched")
		return true
	}
	fmt.Println("  FAIL: hotkey was not dispatched")
	return false
}

// waitFired polls for the dispatch while keeping the thread's message
// queue pumped.
func waitFired(fired <-chan struct{}, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		pumpOnce()
		select {
		case <-fired:
			return true
		case <-time.After(10 * time.Millisecond):
		}
	}
	return false
}

func synthesizeCtrlShiftF9() error {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return err
	}
	// Linux uinput devices need a moment before accepting events.
	if runtime.GOOS == "linux" {
		time.Sleep(2 * time.Second)
	}
	kb.SetKeys(keybd_event.VK_F9)
	kb.HasCTRL(true)
	kb.HasSHIFT(true)
	return kb.Launching()
}

func checkClipboard() bool {
	fmt.Println()
	fmt.Println("[3/3] Clipboard")

	const probe = "keygrab-doctor-probe"
	if err := clipboard.WriteAll(probe); err != nil {
		fmt.Printf("  FAIL: cannot write clipboard: %v\n", err)
		return false
	}
	got, err := clipboard.ReadAll()
	if err != nil {
		fmt.Printf("  FAIL: cannot read clipboard: %v\n", err)
		return false
	}
	if got != probe {
		fmt.Printf("  FAIL: clipboard round trip mismatch: %q\n", got)
		return false
	}
	fmt.Println("  PASS: clipboard round trip")
	return true
}
