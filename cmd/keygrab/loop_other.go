//go:build !windows

package main

import "os"

// runLoop parks until a shutdown signal arrives. Non-Windows taps deliver
// events from their own reader goroutines and need no message loop.
func runLoop(sig <-chan os.Signal) {
	<-sig
}
