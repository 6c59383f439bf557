// Package hook owns the system-wide keyboard interception resource and the
// raw-event dispatch pipeline: every raw key event updates the modifier
// tracker, and qualifying key-down events are matched against a handler
// table keyed by combination identity. Events are only observed, never
// consumed; other listeners on the system always still see them.
package hook

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/rs/zerolog"

	"keygrab/keys"
)

// ErrHookExists is returned by New while another live Hook holds the
// process-wide interception slot. This is a usage error: release the
// existing Hook before creating another.
var ErrHookExists = errors.New("a keyboard hook already exists in this process")

// ErrNilHandler is returned by RegisterHandler for a nil handler.
var ErrNilHandler = errors.New("hotkey handler is required")

// ErrClosed is returned by Install after Close.
var ErrClosed = errors.New("keyboard hook is closed")

// Handler receives the virtual key code and modifier mask of a matched
// combination. It runs on the tap's delivery thread and must be fast.
type Handler func(vk uint32, mods keys.Mask)

// Tap is the platform interception primitive. Install starts delivering
// raw key events to emit, one at a time from the tap's delivery
// goroutine; Uninstall stops delivery and is idempotent. The hook
// serializes dispatch itself, so a tap that delivers from more than one
// goroutine degrades ordering but stays safe.
type Tap interface {
	Install(emit func(vk uint32, keyDown bool)) error
	Uninstall() error
}

// Hook composes a Tap with the modifier tracker and the handler table.
// At most one Hook may be live per process; New enforces this.
type Hook struct {
	logger zerolog.Logger
	tap    Tap

	// mu guards installed, handlers and tracker. dispatch takes the write
	// side for the tracker update and table lookup, so delivery stays
	// serialized even when events arrive from more than one goroutine.
	mu        sync.RWMutex
	installed bool
	closed    bool
	handlers  map[keys.ID]Handler
	tracker   ModifierTracker
}

// Option configures a Hook.
type Option func(*Hook)

// WithLogger sets the logger used to report failures of bound handlers.
// The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(h *Hook) { h.logger = l }
}

// WithTap overrides the platform tap. Used by tests and embedders that
// supply their own event source.
func WithTap(t Tap) Option {
	return func(h *Hook) { h.tap = t }
}

// New creates the process's Hook, claiming the interception slot.
// It fails with ErrHookExists while another live Hook holds the slot.
// The returned Hook releases the slot on Close; a finalizer backstops the
// release if the owner leaks the Hook without closing it.
func New(opts ...Option) (*Hook, error) {
	h := &Hook{
		logger:   zerolog.Nop(),
		handlers: make(map[keys.ID]Handler),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.tap == nil {
		h.tap = NewTap()
	}
	if !slot.acquire(h) {
		return nil, ErrHookExists
	}
	runtime.SetFinalizer(h, (*Hook).finalize)
	return h, nil
}

// Install acquires the OS interception resource. It is a no-op when
// already installed, and fails when the platform declines the hook.
// The modifier tracker is reset first; state from before the install
// cannot be trusted.
func (h *Hook) Install() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	if h.installed {
		return nil
	}
	h.tracker.Reset()
	if err := h.tap.Install(h.dispatch); err != nil {
		return fmt.Errorf("installing keyboard tap: %w", err)
	}
	h.installed = true
	return nil
}

// Uninstall releases the interception resource. Idempotent; the modifier
// tracker is reset regardless.
func (h *Hook) Uninstall() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.uninstallLocked()
}

func (h *Hook) uninstallLocked() error {
	defer h.tracker.Reset()
	if !h.installed {
		return nil
	}
	h.installed = false
	if err := h.tap.Uninstall(); err != nil {
		return fmt.Errorf("uninstalling keyboard tap: %w", err)
	}
	return nil
}

// IsInstalled reports whether the interception resource is held.
func (h *Hook) IsInstalled() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.installed
}

// Close uninstalls the tap, clears the handler table and releases the
// process-wide slot. The Hook cannot be reinstalled afterwards.
func (h *Hook) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	err := h.uninstallLocked()
	clear(h.handlers)
	h.mu.Unlock()

	runtime.SetFinalizer(h, nil)
	slot.release(h)
	return err
}

func (h *Hook) finalize() {
	h.logger.Warn().Msg("keyboard hook leaked without Close; releasing")
	h.Close()
}

// RegisterHandler binds a handler to a combination identity, replacing any
// previous handler for the same identity.
func (h *Hook) RegisterHandler(id keys.ID, fn Handler) error {
	if fn == nil {
		return ErrNilHandler
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers[id] = fn
	return nil
}

// UnregisterHandler removes the handler for id, reporting whether one was
// present.
func (h *Hook) UnregisterHandler(id keys.ID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.handlers[id]; !ok {
		return false
	}
	delete(h.handlers, id)
	return true
}

// ClearHandlers empties the handler table.
func (h *Hook) ClearHandlers() {
	h.mu.Lock()
	defer h.mu.Unlock()
	clear(h.handlers)
}

// dispatch is the tap's delivery entry point. It must stay fast and must
// never panic: the same pipeline feeds every other listener on the system.
func (h *Hook) dispatch(vk uint32, keyDown bool) {
	h.mu.Lock()
	if !h.installed {
		h.mu.Unlock()
		return
	}
	h.tracker.Update(vk, keyDown)
	if !keyDown || keys.IsModifier(vk) {
		h.mu.Unlock()
		return
	}
	mods := h.tracker.Mask()
	fn := h.handlers[keys.Combine(vk, mods)]
	h.mu.Unlock()

	if fn != nil {
		h.invoke(fn, vk, mods)
	}
}

// invoke runs a handler inside a recover boundary so a failing action
// cannot escape into the OS event pipeline.
func (h *Hook) invoke(fn Handler, vk uint32, mods keys.Mask) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error().
				Str("combo", keys.Format(mods, vk)).
				Interface("panic", r).
				Msg("hotkey action panicked")
		}
	}()
	fn(vk, mods)
}
