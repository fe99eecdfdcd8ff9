package substack2remarkable

import (
	"context"
	"fmt"
	"strings"

	"github.com/pstaylor-patrick/substack2remarkable/internal/fileutil"
)

// readableBinary is the readability CLI (npm package readability-cli).
const readableBinary = "readable"

// ReadableCLIExtractor implements ContentExtractor by invoking the readable
// CLI: `readable -q -p title <file>` for the title and
// `readable -q -p html-content <file>` for the cleaned body fragment.
type ReadableCLIExtractor struct {
	Runner CommandRunner
}

// NewReadableCLIExtractor creates a ReadableCLIExtractor with a real
// command runner.
func NewReadableCLIExtractor() *ReadableCLIExtractor {
	return &ReadableCLIExtractor{Runner: &ExecRunner{}}
}

// Extract invokes the readable CLI twice against the source file.
// When the input carries no on-disk path, the HTML is written to a temp
// file first since readable operates on files, not stdin.
func (e *ReadableCLIExtractor) Extract(ctx context.Context, input Input) (*Article, error) {
	path := input.Path
	if path == "" || !fileutil.FileExists(path) {
		tmpPath, cleanup, err := fileutil.WriteTempFile(input.HTML, "html")
		if err != nil {
			return nil, err
		}
		defer cleanup()
		path = tmpPath
	}

	title, err := e.property(ctx, "title", path)
	if err != nil {
		return nil, err
	}

	content, err := e.property(ctx, "html-content", path)
	if err != nil {
		return nil, err
	}

	return &Article{
		Title:       titleOrFallback(title, input.Path),
		ContentHTML: content,
	}, nil
}

// property runs `readable -q -p <name> <file>` and returns its stdout.
func (e *ReadableCLIExtractor) property(ctx context.Context, name, path string) (string, error) {
	stdout, stderr, err := e.Runner.Run(ctx, "", readableBinary, "-q", "-p", name, path)
	if err != nil {
		return "", fmt.Errorf("%w: readable -p %s: %s: %v", ErrExtraction, name, strings.TrimSpace(stderr), err)
	}
	return strings.TrimRight(stdout, "\n"), nil
}
