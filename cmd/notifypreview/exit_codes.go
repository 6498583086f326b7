package main

import (
	"errors"
	"os"

	notifyutils "github.com/govnotify/notifyutils"
)

// Exit codes for notifypreview.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful render
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags or template input
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, notifyutils.ErrBrowserConnect) ||
		errors.Is(err, notifyutils.ErrPageCreate) ||
		errors.Is(err, notifyutils.ErrPageLoad) ||
		errors.Is(err, notifyutils.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadTemplate) ||
		errors.Is(err, ErrReadPersonalisation) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage errors (exit 2)
	if errors.Is(err, ErrUnknownFormat) ||
		errors.Is(err, ErrNoTemplate) ||
		errors.Is(err, notifyutils.ErrMissingPersonalisation) ||
		errors.Is(err, notifyutils.ErrMessageTooLong) {
		return ExitUsage
	}

	return ExitGeneral
}
