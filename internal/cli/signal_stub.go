//go:build windows

package cli

import "os"

var abortSignals = []os.Signal{os.Interrupt}

func signalName(sig os.Signal) string {
	return sig.String()
}
