package substack2remarkable

import (
	"context"
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// MarkdownConverter abstracts HTML to GitHub-flavored Markdown conversion.
type MarkdownConverter interface {
	ToMarkdown(ctx context.Context, htmlContent string) (string, error)
}

// NativeMarkdownConverter converts HTML to Markdown in-process using
// JohannesKaufmann/html-to-markdown with GFM plugins (tables, strikethrough).
// Output paragraphs stay on single lines; no hard wrapping is applied.
type NativeMarkdownConverter struct {
	conv *converter.Converter
}

// NewNativeMarkdownConverter creates a NativeMarkdownConverter.
func NewNativeMarkdownConverter() *NativeMarkdownConverter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			strikethrough.NewStrikethroughPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &NativeMarkdownConverter{conv: conv}
}

// ToMarkdown converts an HTML fragment to Markdown.
// Supports context cancellation via goroutine + select pattern since the
// converter doesn't natively support context.
func (c *NativeMarkdownConverter) ToMarkdown(ctx context.Context, htmlContent string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		md  string
		err error
	}

	done := make(chan result, 1)

	go func() {
		md, err := c.conv.ConvertString(htmlContent)
		if err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrMarkdownConversion, err)}
			return
		}
		done <- result{md: md}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.md, r.err
	}
}

// PandocConverter converts HTML to Markdown by piping it through the
// pandoc CLI: `pandoc -f html -t gfm --wrap=none`.
type PandocConverter struct {
	Runner CommandRunner
}

// NewPandocConverter creates a PandocConverter with a real command runner.
func NewPandocConverter() *PandocConverter {
	return &PandocConverter{Runner: &ExecRunner{}}
}

// ToMarkdown converts HTML content to GitHub-flavored Markdown using pandoc.
// --wrap=none keeps paragraphs on single lines instead of hard-wrapping.
func (c *PandocConverter) ToMarkdown(ctx context.Context, htmlContent string) (string, error) {
	if htmlContent == "" {
		return "", ErrEmptyHTML
	}

	stdout, stderr, err := c.Runner.Run(ctx, htmlContent, "pandoc", "-f", "html", "-t", "gfm", "--wrap=none")
	if err != nil {
		return "", fmt.Errorf("%w: pandoc: %s: %v", ErrMarkdownConversion, strings.TrimSpace(stderr), err)
	}

	return stdout, nil
}
