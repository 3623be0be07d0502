package cli

import (
	"os"

	"github.com/charmbracelet/log"
)

var verboseLogging bool

// workflowLogger returns the step logger for the publish workflow.
// Quiet runs only surface errors; --verbose lowers the level to debug
// so every workflow step is reported on stderr.
func workflowLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "shipit",
		ReportTimestamp: false,
	})
	if verboseLogging {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.ErrorLevel)
	}
	return logger
}
