package substack2remarkable

import (
	"context"
	"fmt"

	"github.com/pstaylor-patrick/substack2remarkable/internal/assets"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ ContentExtractor  = (*ReadabilityExtractor)(nil)
	_ ContentExtractor  = (*ReadableCLIExtractor)(nil)
	_ MarkdownConverter = (*NativeMarkdownConverter)(nil)
	_ MarkdownConverter = (*PandocConverter)(nil)
	_ CommandRunner     = (*ExecRunner)(nil)
)

// Converter orchestrates the article conversion pipeline:
// readability extraction, Markdown rendering, and PDF rendering.
// Create with NewConverter(), use Convert(), and Close() when done.
type Converter struct {
	cfg         converterConfig
	extractor   ContentExtractor
	mdConverter MarkdownConverter
	pdfRenderer PDFRenderer
}

// NewConverter creates a Converter with default configuration: in-process
// readability extraction, in-process Markdown conversion, and headless
// Chrome PDF rendering with the embedded article stylesheet.
// Use options to customize behavior (e.g., WithTimeout, WithExtractor).
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:         converterConfig{timeout: defaultTimeout},
		extractor:   NewReadabilityExtractor(),
		mdConverter: NewNativeMarkdownConverter(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.stylesheet == "" {
		css, err := assets.LoadStyle(assets.DefaultStyleName)
		if err != nil {
			return nil, fmt.Errorf("loading article stylesheet: %w", err)
		}
		c.cfg.stylesheet = css
	}

	// Create PDF renderer if not injected (e.g., by tests)
	if c.pdfRenderer == nil {
		c.pdfRenderer = newRodRenderer(c.cfg.timeout)
	}

	return c, nil
}

// Convert runs the full pipeline for one article.
// The context is used for cancellation and timeout.
//
// Extraction and Markdown failures abort the conversion. PDF rendering is
// best-effort: a render failure is recorded on Result.PDFErr and the
// Markdown output is still returned. Recovers from internal panics to
// prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if input.HTML == "" {
		return nil, ErrEmptyHTML
	}

	// Extract title and main content. Title must come first: the Markdown
	// output is prefixed with an H1 built from it.
	article, err := c.extractor.Extract(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("extracting content: %w", err)
	}

	md, err := c.mdConverter.ToMarkdown(ctx, article.ContentHTML)
	if err != nil {
		return nil, fmt.Errorf("converting to markdown: %w", err)
	}

	md = NormalizeMarkdown(md)
	md = "# " + article.Title + "\n\n" + md

	res := &Result{
		Title:       article.Title,
		Markdown:    []byte(md),
		ContentHTML: []byte(article.ContentHTML),
	}

	if input.MarkdownOnly {
		return res, nil
	}

	doc := buildArticleDocument(article.Title, article.ContentHTML, c.cfg.stylesheet)

	pdfBytes, err := c.pdfRenderer.RenderPDF(ctx, doc)
	if err != nil {
		// Best-effort policy: a failed render produces no PDF but never
		// discards the Markdown output.
		res.PDFErr = err
		return res, nil
	}

	res.PDF = pdfBytes
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfRenderer != nil {
		return c.pdfRenderer.Close()
	}
	return nil
}
