//go:build !windows && !linux

package hook

import "fmt"

type stubTap struct{}

// NewTap returns a tap whose Install always fails: system-wide key
// interception is not supported on this platform. Embedders can still use
// WithTap to supply their own event source.
func NewTap() Tap { return &stubTap{} }

func (*stubTap) Install(func(vk uint32, keyDown bool)) error {
	return fmt.Errorf("system-wide keyboard interception is not supported on this platform")
}

func (*stubTap) Uninstall() error { return nil }

// DiagnoseTap reports the lack of platform support.
func DiagnoseTap() (string, error) {
	return "", fmt.Errorf("keyboard interception not supported on this platform")
}
