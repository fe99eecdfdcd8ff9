package substack2remarkable

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// ContentExtractor abstracts readability extraction: isolating the document
// title and the main article body from a full HTML page.
type ContentExtractor interface {
	Extract(ctx context.Context, input Input) (*Article, error)
}

// ReadabilityExtractor implements ContentExtractor in-process using
// go-shiori/go-readability (a port of Mozilla's Readability heuristics).
type ReadabilityExtractor struct{}

// NewReadabilityExtractor creates a ReadabilityExtractor.
func NewReadabilityExtractor() *ReadabilityExtractor {
	return &ReadabilityExtractor{}
}

// Extract parses the HTML and returns the title and main content fragment.
// Supports context cancellation via goroutine + select pattern since
// go-readability doesn't natively support context.
func (e *ReadabilityExtractor) Extract(ctx context.Context, input Input) (*Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		article *Article
		err     error
	}

	done := make(chan result, 1)

	go func() {
		parsed, err := readability.FromReader(strings.NewReader(input.HTML), nil)
		if err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrExtraction, err)}
			return
		}
		done <- result{article: &Article{
			Title:       titleOrFallback(parsed.Title, input.Path),
			ContentHTML: parsed.Content,
		}}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.article, r.err
	}
}

// titleOrFallback returns the extracted title, falling back to the source
// file stem when the readability engine found none.
func titleOrFallback(title, path string) string {
	title = strings.TrimSpace(title)
	if title != "" {
		return title
	}
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
