package main

import (
	"errors"
	"os"

	s2r "github.com/pstaylor-patrick/substack2remarkable"
	"github.com/pstaylor-patrick/substack2remarkable/internal/config"
)

// Exit codes for the substack2remarkable CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run (per-file failures included)
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
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
	if errors.Is(err, s2r.ErrBrowserConnect) ||
		errors.Is(err, s2r.ErrPageCreate) ||
		errors.Is(err, s2r.ErrPageLoad) ||
		errors.Is(err, s2r.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadHTML) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteMarkdown) ||
		errors.Is(err, ErrWritePDF) ||
		errors.Is(err, s2r.ErrToolNotFound) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, s2r.ErrEmptyHTML) ||
		errors.Is(err, s2r.ErrNoSourceSegment) ||
		errors.Is(err, ErrInvalidWorkers) {
		return ExitUsage
	}

	return ExitGeneral
}
