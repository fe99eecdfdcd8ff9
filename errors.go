package substack2remarkable

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyHTML          = errors.New("HTML content cannot be empty")
	ErrExtraction         = errors.New("readability extraction failed")
	ErrMarkdownConversion = errors.New("markdown conversion failed")
	ErrPDFGeneration      = errors.New("PDF generation failed")
	ErrBrowserConnect     = errors.New("failed to connect to browser")
	ErrPageCreate         = errors.New("failed to create browser page")
	ErrPageLoad           = errors.New("failed to load page")

	// Path mapping errors.
	ErrNoSourceSegment = errors.New("path does not contain a src/html segment")

	// External tool errors.
	ErrToolNotFound = errors.New("external tool not found")
	ErrToolFailed   = errors.New("external tool failed")
)
