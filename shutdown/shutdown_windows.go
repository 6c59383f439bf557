//go:build windows

package shutdown

import (
	"os"
	"os/signal"
)

// Notify registers ch for the signals that should end the host cleanly.
func Notify(ch chan os.Signal) {
	signal.Notify(ch, os.Interrupt)
}
