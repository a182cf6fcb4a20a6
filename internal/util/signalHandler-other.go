//go:build !unix

package util

import (
	"os"
	"os/signal"
)

// SetupSignalHandlers only knows interrupts outside unix; Sighup and
// Sigterm are never called.
func SetupSignalHandlers(h SignalHandlers) {
	if h.Sigint == nil {
		return
	}
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt)

	go func() {
		for range sigch {
			go tryCall(h.Sigint, h.OnHandlerPanic)
		}
	}()
}
