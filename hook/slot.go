package hook

import "sync/atomic"

// ownerSlot is the process-wide cell that holds the single live Hook.
// The OS delivers low-level keyboard events through one fixed dispatch
// entry point per process, so at most one Hook may own the interception
// resource at a time; the slot enforces that with an acquire/release
// contract instead of a bare global pointer.
type ownerSlot struct {
	p atomic.Pointer[Hook]
}

// acquire claims the slot for h, reporting whether it was free.
func (s *ownerSlot) acquire(h *Hook) bool {
	return s.p.CompareAndSwap(nil, h)
}

// release frees the slot if h currently owns it.
func (s *ownerSlot) release(h *Hook) {
	s.p.CompareAndSwap(h, nil)
}

var slot ownerSlot
