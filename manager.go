// Package keygrab binds actions to system-wide key combinations that fire
// regardless of which window has focus.
//
// A Manager owns the lifecycle: Start installs the process's keyboard hook,
// RegisterHotkey binds an action to a combination with conflict detection,
// Stop releases everything. The host must run a live message loop on the
// thread that calls Start for events to be delivered (on Windows); the
// manager neither creates nor drives that loop.
package keygrab

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"keygrab/hook"
	"keygrab/keys"
	"keygrab/registry"
)

// ErrNotRunning is returned by mutating calls while the manager is stopped.
var ErrNotRunning = errors.New("hotkey manager is not running")

// ErrConflict is returned by RegisterHotkey for an already-bound combination.
var ErrConflict = registry.ErrConflict

// ErrNilAction is returned by RegisterHotkey for a nil action.
var ErrNilAction = registry.ErrNilAction

// Manager composes the keyboard hook with the hotkey registry behind a
// single exclusive lock. All methods are safe for concurrent use from any
// goroutine. Hotkey dispatch happens on the hook's delivery thread and is
// only eventually consistent with concurrent registration: a combination
// registered while an event is in flight may or may not match that event.
type Manager struct {
	logger zerolog.Logger
	tap    hook.Tap

	mu       sync.Mutex
	hk       *hook.Hook
	bindings *registry.Registry
	running  bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger for lifecycle and dispatch diagnostics.
// The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithTap overrides the platform event source. Used by tests and by hosts
// that deliver raw key events themselves.
func WithTap(t hook.Tap) Option {
	return func(m *Manager) { m.tap = t }
}

func New(opts ...Option) *Manager {
	m := &Manager{
		logger:   zerolog.Nop(),
		bindings: registry.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start installs the keyboard hook. No-op when already running. On
// installation failure the manager stays stopped and the error reports
// why; the caller may retry later. Start fails with hook.ErrHookExists
// when another live hook already owns the process's interception slot.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil
	}

	hookOpts := []hook.Option{hook.WithLogger(m.logger)}
	if m.tap != nil {
		hookOpts = append(hookOpts, hook.WithTap(m.tap))
	}
	hk, err := hook.New(hookOpts...)
	if err != nil {
		return fmt.Errorf("creating keyboard hook: %w", err)
	}
	if err := hk.Install(); err != nil {
		hk.Close()
		return fmt.Errorf("starting hotkey manager: %w", err)
	}

	m.hk = hk
	m.running = true
	m.logger.Info().Msg("hotkey manager started")
	return nil
}

// Stop clears every binding and releases the keyboard hook. No-op when
// already stopped.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	m.bindings.Clear()
	if err := m.hk.Close(); err != nil {
		m.logger.Error().Err(err).Msg("releasing keyboard hook")
	}
	m.hk = nil
	m.running = false
	m.logger.Info().Msg("hotkey manager stopped")
}

// IsRunning reports whether the hook is installed and bindings are active.
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// RegisterHotkey binds action to the (vk, mods) combination. It fails with
// ErrNotRunning while stopped, ErrNilAction for a nil action and
// ErrConflict when the combination is already bound; nothing is mutated on
// failure.
func (m *Manager) RegisterHotkey(vk uint32, mods keys.Mask, action func(), description string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return ErrNotRunning
	}
	if action == nil {
		return ErrNilAction
	}

	b := registry.Binding{
		VK:          vk,
		Mods:        mods,
		Action:      action,
		Description: description,
		Enabled:     true,
	}
	if err := m.bindings.Register(b); err != nil {
		return err
	}

	// The hook handler drops the raw (vk, mods) arguments; the bound
	// action takes none.
	if err := m.hk.RegisterHandler(b.ID(), func(uint32, keys.Mask) {
		action()
	}); err != nil {
		m.bindings.Unregister(b.ID())
		return err
	}

	m.logger.Debug().Str("combo", keys.Format(mods, vk)).Str("desc", description).Msg("hotkey registered")
	return nil
}

// UnregisterHotkey removes the binding for (vk, mods) from both the hook
// and the registry, reporting whether it existed. Always false while
// stopped.
func (m *Manager) UnregisterHotkey(vk uint32, mods keys.Mask) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return false
	}
	id := keys.Combine(vk, mods)
	if !m.bindings.Unregister(id) {
		return false
	}
	m.hk.UnregisterHandler(id)
	m.logger.Debug().Str("combo", keys.Format(mods, vk)).Msg("hotkey unregistered")
	return true
}

// ClearAllHotkeys removes every binding. Safe in any state.
func (m *Manager) ClearAllHotkeys() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.bindings.Clear()
	if m.hk != nil {
		m.hk.ClearHandlers()
	}
}

// IsConflict reports whether (vk, mods) is already bound.
func (m *Manager) IsConflict(vk uint32, mods keys.Mask) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bindings.Conflict(keys.Combine(vk, mods))
}

// RegisteredHotkeys returns a point-in-time copy of the current bindings,
// safe to iterate without holding any lock.
func (m *Manager) RegisteredHotkeys() []registry.Binding {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bindings.Snapshot()
}

// Count returns the number of registered hotkeys.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bindings.Len()
}
