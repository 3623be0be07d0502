package cli

import (
	"errors"
	"os/exec"
)

const (
	exitSuccess = 0
	exitFailure = 1
)

// exitStatus maps an error to the process exit status. Failures of
// external commands propagate the child's own exit code; everything
// else (usage errors, aborts, internal failures) exits 1.
func exitStatus(err error) int {
	if err == nil {
		return exitSuccess
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code > 0 {
			return code
		}
	}
	return exitFailure
}
