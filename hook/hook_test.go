package hook

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"keygrab/keys"
)

func newTestHook(t *testing.T) (*Hook, *FakeTap) {
	t.Helper()
	tap := NewFakeTap()
	h, err := New(WithTap(tap))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { h.Close() })
	return h, tap
}

func TestSingleInstance(t *testing.T) {
	h, _ := newTestHook(t)

	if _, err := New(WithTap(NewFakeTap())); !errors.Is(err, ErrHookExists) {
		t.Fatalf("second New = %v, want ErrHookExists", err)
	}

	if err := h.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Slot released; a new Hook may be created.
	h2, err := New(WithTap(NewFakeTap()))
	if err != nil {
		t.Fatalf("New after Close: %v", err)
	}
	h2.Close()
}

func TestInstallUninstall(t *testing.T) {
	h, tap := newTestHook(t)

	if h.IsInstalled() {
		t.Fatal("new hook should not be installed")
	}
	if err := h.Install(); err != nil {
		t.Fatalf("Install: %v", err)
	}
	if !h.IsInstalled() || !tap.Installed() {
		t.Fatal("hook and tap should be installed")
	}
	if err := h.Install(); err != nil {
		t.Fatalf("repeat Install should be a no-op: %v", err)
	}

	if err := h.Uninstall(); err != nil {
		t.Fatalf("Uninstall: %v", err)
	}
	if h.IsInstalled() || tap.Installed() {
		t.Fatal("hook and tap should be released")
	}
	if err := h.Uninstall(); err != nil {
		t.Fatalf("repeat Uninstall should be a no-op: %v", err)
	}
}

func TestInstallFailure(t *testing.T) {
	h, tap := newTestHook(t)
	tap.FailNext(errors.New("permission denied"))

	if err := h.Install(); err == nil {
		t.Fatal("Install should propagate tap failure")
	}
	if h.IsInstalled() {
		t.Fatal("failed Install must leave the hook uninstalled")
	}
	// Retry succeeds once the environment allows it.
	if err := h.Install(); err != nil {
		t.Fatalf("retry Install: %v", err)
	}
}

func TestDispatchMatch(t *testing.T) {
	h, tap := newTestHook(t)
	if err := h.Install(); err != nil {
		t.Fatalf("Install: %v", err)
	}

	var fired int
	var gotVK uint32
	var gotMods keys.Mask
	id := keys.Combine(keys.VKF1, keys.Win)
	err := h.RegisterHandler(id, func(vk uint32, mods keys.Mask) {
		fired++
		gotVK, gotMods = vk, mods
	})
	if err != nil {
		t.Fatalf("RegisterHandler: %v", err)
	}

	tap.Press(keys.VKLWin)
	tap.Press(keys.VKF1)
	if fired != 1 {
		t.Fatalf("handler fired %d times, want 1", fired)
	}
	if gotVK != keys.VKF1 || gotMods != keys.Win {
		t.Errorf("handler got (%#x, %v)", gotVK, gotMods)
	}

	tap.Release(keys.VKF1)
	tap.Release(keys.VKLWin)

	// Same key without the modifier held must not match.
	tap.Press(keys.VKF1)
	tap.Release(keys.VKF1)
	if fired != 1 {
		t.Errorf("handler fired %d times after bare F1, want 1", fired)
	}
}

func TestDispatchIgnoresModifierKeyDown(t *testing.T) {
	h, tap := newTestHook(t)
	if err := h.Install(); err != nil {
		t.Fatalf("Install: %v", err)
	}

	var fired int
	// A handler keyed on a modifier vk can never fire: modifier key-downs
	// update the tracker and stop there.
	h.RegisterHandler(keys.Combine(keys.VKLControl, keys.None), func(uint32, keys.Mask) { fired++ })

	tap.Press(keys.VKLControl)
	tap.Release(keys.VKLControl)
	if fired != 0 {
		t.Errorf("modifier key-down dispatched %d times", fired)
	}
}

func TestDispatchPanicIsolation(t *testing.T) {
	h, tap := newTestHook(t)
	if err := h.Install(); err != nil {
		t.Fatalf("Install: %v", err)
	}

	var after int
	h.RegisterHandler(keys.Combine('A', keys.None), func(uint32, keys.Mask) {
		panic("action blew up")
	})
	h.RegisterHandler(keys.Combine('B', keys.None), func(uint32, keys.Mask) { after++ })

	// Must not panic out of the delivery path.
	tap.Press('A')
	tap.Release('A')

	// Dispatch keeps working afterwards.
	tap.Press('B')
	if after != 1 {
		t.Errorf("dispatch broken after handler panic: fired %d", after)
	}
}

func TestUninstallResetsModifiers(t *testing.T) {
	h, tap := newTestHook(t)
	if err := h.Install(); err != nil {
		t.Fatalf("Install: %v", err)
	}

	var fired int
	h.RegisterHandler(keys.Combine(keys.VKF2, keys.Ctrl), func(uint32, keys.Mask) { fired++ })

	tap.Press(keys.VKLControl)
	if err := h.Uninstall(); err != nil {
		t.Fatalf("Uninstall: %v", err)
	}
	if err := h.Install(); err != nil {
		t.Fatalf("reinstall: %v", err)
	}

	// Ctrl state from before the reinstall must not leak.
	tap.Press(keys.VKF2)
	if fired != 0 {
		t.Errorf("stale modifier state survived reinstall: fired %d", fired)
	}
}

func TestDispatchFromMultipleGoroutines(t *testing.T) {
	h, tap := newTestHook(t)
	if err := h.Install(); err != nil {
		t.Fatalf("Install: %v", err)
	}

	// Two keyboards delivering at once: one churns Ctrl, the other types.
	// Every press of 'A' must land on exactly one of the two handlers.
	var fired atomic.Int64
	count := func(uint32, keys.Mask) { fired.Add(1) }
	h.RegisterHandler(keys.Combine('A', keys.None), count)
	h.RegisterHandler(keys.Combine('A', keys.Ctrl), count)

	const presses = 500
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < presses; i++ {
			tap.Press(keys.VKLControl)
			tap.Release(keys.VKLControl)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < presses; i++ {
			tap.Press('A')
			tap.Release('A')
		}
	}()
	wg.Wait()

	if got := fired.Load(); got != presses {
		t.Errorf("handlers fired %d times, want %d", got, presses)
	}
}

func TestHandlerTable(t *testing.T) {
	h, _ := newTestHook(t)

	if err := h.RegisterHandler(keys.Combine('A', keys.Ctrl), nil); !errors.Is(err, ErrNilHandler) {
		t.Errorf("nil handler = %v, want ErrNilHandler", err)
	}

	id := keys.Combine('A', keys.Ctrl)
	if err := h.RegisterHandler(id, func(uint32, keys.Mask) {}); err != nil {
		t.Fatalf("RegisterHandler: %v", err)
	}
	if !h.UnregisterHandler(id) {
		t.Error("UnregisterHandler should find the handler")
	}
	if h.UnregisterHandler(id) {
		t.Error("second UnregisterHandler should report not found")
	}

	h.RegisterHandler(id, func(uint32, keys.Mask) {})
	h.ClearHandlers()
	if h.UnregisterHandler(id) {
		t.Error("ClearHandlers should have emptied the table")
	}
}

func TestClosedHookRejectsInstall(t *testing.T) {
	h, _ := newTestHook(t)
	if err := h.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := h.Install(); !errors.Is(err, ErrClosed) {
		t.Errorf("Install after Close = %v, want ErrClosed", err)
	}
	if err := h.Close(); err != nil {
		t.Errorf("repeat Close: %v", err)
	}
}
