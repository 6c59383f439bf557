package hook

import "sync"

// FakeTap is an in-process Tap for tests and headless embedders. Press and
// Release run the delivery path synchronously on the calling goroutine.
type FakeTap struct {
	mu        sync.Mutex
	emit      func(vk uint32, keyDown bool)
	installed bool
	failNext  error
}

func NewFakeTap() *FakeTap {
	return &FakeTap{}
}

// FailNext makes the next Install return err.
func (f *FakeTap) FailNext(err error) {
	f.mu.Lock()
	f.failNext = err
	f.mu.Unlock()
}

func (f *FakeTap) Install(emit func(vk uint32, keyDown bool)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	f.emit = emit
	f.installed = true
	return nil
}

func (f *FakeTap) Uninstall() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emit = nil
	f.installed = false
	return nil
}

// Installed reports whether the tap currently holds a delivery callback.
func (f *FakeTap) Installed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.installed
}

// Press simulates a raw key-down event.
func (f *FakeTap) Press(vk uint32) { f.deliver(vk, true) }

// Release simulates a raw key-up event.
func (f *FakeTap) Release(vk uint32) { f.deliver(vk, false) }

func (f *FakeTap) deliver(vk uint32, keyDown bool) {
	f.mu.Lock()
	emit := f.emit
	f.mu.Unlock()
	if emit != nil {
		emit(vk, keyDown)
	}
}
