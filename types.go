package substack2remarkable

import "time"

// Input contains conversion parameters for a single article.
type Input struct {
	HTML         string // Raw HTML content (required)
	Path         string // Source file path, used for title fallback and CLI extractors (optional)
	MarkdownOnly bool   // Skip PDF generation
}

// Article holds the readability extraction result: the document title and
// an HTML fragment containing only the main content.
type Article struct {
	Title       string
	ContentHTML string
}

// Result holds the outputs of a conversion.
//
// PDF generation is best-effort: when the renderer fails, PDF is nil and
// PDFErr records the cause. Markdown is always populated on success.
type Result struct {
	Title       string
	Markdown    []byte
	ContentHTML []byte
	PDF         []byte
	PDFErr      error
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout    time.Duration
	stylesheet string
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("substack2remarkable: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStylesheet overrides the embedded article stylesheet used in the
// PDF document shell.
func WithStylesheet(css string) Option {
	return func(c *Converter) {
		c.cfg.stylesheet = css
	}
}

// WithExtractor replaces the readability engine (e.g., the readable CLI,
// or a fake in tests).
func WithExtractor(e ContentExtractor) Option {
	return func(c *Converter) {
		c.extractor = e
	}
}

// WithMarkdownConverter replaces the HTML to Markdown engine (e.g., the
// pandoc CLI, or a fake in tests).
func WithMarkdownConverter(m MarkdownConverter) Option {
	return func(c *Converter) {
		c.mdConverter = m
	}
}

// WithPDFRenderer replaces the PDF engine (e.g., a fake in tests).
func WithPDFRenderer(r PDFRenderer) Option {
	return func(c *Converter) {
		c.pdfRenderer = r
	}
}
