//go:build !windows

package doctor

// pumpOnce is a no-op: non-Windows taps deliver events from their own
// reader goroutines and need no message loop.
func pumpOnce() {}
