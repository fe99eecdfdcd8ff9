package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	s2r "github.com/pstaylor-patrick/substack2remarkable"
	"github.com/pstaylor-patrick/substack2remarkable/internal/config"
)

// fakeArticleConverter converts by rule: inputs whose path contains failOn
// return err, everything else succeeds with canned output.
type fakeArticleConverter struct {
	failOn string
	err    error
	pdfErr error
	noPDF  bool
}

func (f *fakeArticleConverter) Convert(_ context.Context, input s2r.Input) (*s2r.Result, error) {
	if f.failOn != "" && strings.Contains(input.Path, f.failOn) {
		return nil, f.err
	}

	res := &s2r.Result{
		Title:    "T",
		Markdown: []byte("# T\n\nbody\n"),
	}
	if f.pdfErr != nil {
		res.PDFErr = f.pdfErr
		return res, nil
	}
	if !f.noPDF && !input.MarkdownOnly {
		res.PDF = []byte("%PDF-1.4")
	}
	return res, nil
}

// fakePool hands out a single shared converter.
type fakePool struct {
	conv ArticleConverter
	size int
}

func (p *fakePool) Acquire() (ArticleConverter, error) { return p.conv, nil }
func (p *fakePool) Release(ArticleConverter)           {}
func (p *fakePool) Size() int                          { return p.size }

func sourceFixture(t *testing.T, stem string) SourceFile {
	t.Helper()

	root := t.TempDir()
	src := filepath.Join(root, "blog", "src", "html", stem+".html")
	if err := os.MkdirAll(filepath.Dir(src), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(src, []byte("<html>doc</html>"), 0o644); err != nil {
		t.Fatal(err)
	}

	mdPath, pdfPath, err := s2r.MapPaths(src)
	if err != nil {
		t.Fatal(err)
	}
	return SourceFile{Source: src, MarkdownPath: mdPath, PDFPath: pdfPath}
}

func TestConvertArticle(t *testing.T) {
	t.Parallel()

	f := sourceFixture(t, "post")
	res := convertArticle(context.Background(), &fakeArticleConverter{}, f, false)

	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if !res.PDFWritten {
		t.Error("PDF not written")
	}

	md, err := os.ReadFile(f.MarkdownPath)
	if err != nil {
		t.Fatalf("markdown output missing: %v", err)
	}
	if !strings.HasPrefix(string(md), "# T\n") {
		t.Errorf("markdown content = %q", md)
	}

	pdf, err := os.ReadFile(f.PDFPath)
	if err != nil {
		t.Fatalf("pdf output missing: %v", err)
	}
	if string(pdf) != "%PDF-1.4" {
		t.Errorf("pdf content = %q", pdf)
	}
}

func TestConvertArticleMarkdownOnly(t *testing.T) {
	t.Parallel()

	f := sourceFixture(t, "post")
	res := convertArticle(context.Background(), &fakeArticleConverter{}, f, true)

	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.PDFWritten {
		t.Error("PDF written in markdown-only mode")
	}
	if _, err := os.Stat(f.PDFPath); !os.IsNotExist(err) {
		t.Error("pdf file created in markdown-only mode")
	}
	if _, err := os.Stat(f.MarkdownPath); err != nil {
		t.Errorf("markdown output missing: %v", err)
	}
}

func TestConvertArticleReadFailure(t *testing.T) {
	t.Parallel()

	f := SourceFile{
		Source:       filepath.Join(t.TempDir(), "missing.html"),
		MarkdownPath: filepath.Join(t.TempDir(), "out.md"),
		PDFPath:      filepath.Join(t.TempDir(), "out.pdf"),
	}

	res := convertArticle(context.Background(), &fakeArticleConverter{}, f, false)
	if !errors.Is(res.Err, ErrReadHTML) {
		t.Errorf("expected ErrReadHTML, got %v", res.Err)
	}
}

func TestConvertArticlePDFFailureKeepsMarkdown(t *testing.T) {
	t.Parallel()

	renderErr := errors.New("browser crashed")
	f := sourceFixture(t, "post")

	res := convertArticle(context.Background(), &fakeArticleConverter{pdfErr: renderErr}, f, false)

	if res.Err != nil {
		t.Fatalf("PDF failure must not fail the file: %v", res.Err)
	}
	if !errors.Is(res.PDFErr, renderErr) {
		t.Errorf("PDFErr = %v, want %v", res.PDFErr, renderErr)
	}
	if _, err := os.Stat(f.MarkdownPath); err != nil {
		t.Errorf("markdown output missing after PDF failure: %v", err)
	}
}

func TestConvertBatchIsolatesFailures(t *testing.T) {
	t.Parallel()

	good := sourceFixture(t, "good")
	bad := sourceFixture(t, "bad")
	files := []SourceFile{bad, good}

	convErr := errors.New("extraction blew up")
	pool := &fakePool{conv: &fakeArticleConverter{failOn: "bad", err: convErr}, size: 1}

	results := convertBatch(context.Background(), pool, files, false)

	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if !errors.Is(results[0].Err, convErr) {
		t.Errorf("bad file error = %v, want %v", results[0].Err, convErr)
	}
	if results[1].Err != nil {
		t.Errorf("good file failed: %v", results[1].Err)
	}
	if _, err := os.Stat(good.MarkdownPath); err != nil {
		t.Errorf("good file output missing: %v", err)
	}
}

func TestConvertBatchParallel(t *testing.T) {
	t.Parallel()

	var files []SourceFile
	for _, stem := range []string{"a", "b", "c", "d"} {
		files = append(files, sourceFixture(t, stem))
	}

	pool := &fakePool{conv: &fakeArticleConverter{}, size: 4}
	results := convertBatch(context.Background(), pool, files, false)

	for i, r := range results {
		if r.Err != nil {
			t.Errorf("file %d failed: %v", i, r.Err)
		}
	}
}

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		flags  convertFlags
		cfg    config.Config
		verify func(t *testing.T, cfg *config.Config)
	}{
		{
			name:  "explicit workers override config",
			flags: convertFlags{workers: 4},
			cfg:   config.Config{Workers: 2},
			verify: func(t *testing.T, cfg *config.Config) {
				if cfg.Workers != 4 {
					t.Errorf("workers = %d, want 4", cfg.Workers)
				}
			},
		},
		{
			name:  "default flag keeps config workers",
			flags: convertFlags{workers: 1},
			cfg:   config.Config{Workers: 6},
			verify: func(t *testing.T, cfg *config.Config) {
				if cfg.Workers != 6 {
					t.Errorf("workers = %d, want 6", cfg.Workers)
				}
			},
		},
		{
			name:  "default flag fills unset config",
			flags: convertFlags{workers: 1},
			cfg:   config.Config{},
			verify: func(t *testing.T, cfg *config.Config) {
				if cfg.Workers != 1 {
					t.Errorf("workers = %d, want 1", cfg.Workers)
				}
			},
		},
		{
			name:  "timeout and style override",
			flags: convertFlags{workers: 1, timeout: "45s", style: "custom.css"},
			cfg:   config.Config{PDF: config.PDFConfig{Timeout: "30s", Style: "old.css"}},
			verify: func(t *testing.T, cfg *config.Config) {
				if cfg.PDF.Timeout != "45s" || cfg.PDF.Style != "custom.css" {
					t.Errorf("pdf config = %+v", cfg.PDF)
				}
			},
		},
		{
			name:  "md-only disables pdf",
			flags: convertFlags{workers: 1, mdOnly: true},
			cfg:   config.Config{},
			verify: func(t *testing.T, cfg *config.Config) {
				if !cfg.PDF.Disabled {
					t.Error("pdf not disabled")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := tt.cfg
			mergeFlags(&tt.flags, &cfg)
			tt.verify(t, &cfg)
		})
	}
}

func TestResolveRoot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		cfgRoot  string
		expected string
	}{
		{name: "positional wins", args: []string{"./articles"}, cfgRoot: "./other", expected: "./articles"},
		{name: "config root", args: nil, cfgRoot: "./other", expected: "./other"},
		{name: "working directory fallback", args: nil, cfgRoot: "", expected: "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			cfg.Input.Root = tt.cfgRoot

			got := resolveRoot(tt.args, cfg)
			if got != tt.expected {
				t.Errorf("resolveRoot() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestConverterOptionsInvalidTimeout(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.PDF.Timeout = "not-a-duration"

	if _, err := converterOptions(cfg); err == nil {
		t.Error("expected error for invalid timeout")
	}
}

func TestConverterOptionsMissingStyle(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.PDF.Style = filepath.Join(t.TempDir(), "missing.css")

	_, err := converterOptions(cfg)
	if !errors.Is(err, ErrReadCSS) {
		t.Errorf("expected ErrReadCSS, got %v", err)
	}
}

func TestLoadConfigFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Engines.Extractor != config.ExtractorReadability {
		t.Errorf("extractor = %q", cfg.Engines.Extractor)
	}
}

func TestPrintResults(t *testing.T) {
	t.Parallel()

	results := []ConversionResult{
		{
			File:       SourceFile{Source: "a/src/html/ok.html", MarkdownPath: "a/dist/md/ok.md", PDFPath: "a/dist/pdf/ok.pdf"},
			PDFWritten: true,
		},
		{
			File: SourceFile{Source: "a/src/html/warned.html", MarkdownPath: "a/dist/md/warned.md"},
			PDFErr: errors.New("no browser"),
		},
		{
			File: SourceFile{Source: "a/src/html/broken.html"},
			Err:  errors.New("unreadable"),
		},
	}

	var stdout, stderr bytes.Buffer
	env := &Environment{Stdout: &stdout, Stderr: &stderr}

	printResults(results, false, false, env)

	out := stdout.String()
	if !strings.Contains(out, "Converted: a/src/html/ok.html") {
		t.Errorf("stdout missing success line: %q", out)
	}
	if !strings.Contains(out, "-> a/dist/md/ok.md") || !strings.Contains(out, "-> a/dist/pdf/ok.pdf") {
		t.Errorf("stdout missing output paths: %q", out)
	}
	if !strings.Contains(out, "2 succeeded, 1 failed") {
		t.Errorf("stdout missing summary: %q", out)
	}

	errOut := stderr.String()
	if !strings.Contains(errOut, "FAILED a/src/html/broken.html") {
		t.Errorf("stderr missing failure line: %q", errOut)
	}
	if !strings.Contains(errOut, "WARN a/src/html/warned.html") {
		t.Errorf("stderr missing PDF warning: %q", errOut)
	}
}

func TestPrintResultsQuiet(t *testing.T) {
	t.Parallel()

	results := []ConversionResult{
		{File: SourceFile{Source: "a.html"}, PDFWritten: true},
		{File: SourceFile{Source: "b.html"}, Err: errors.New("boom")},
	}

	var stdout, stderr bytes.Buffer
	env := &Environment{Stdout: &stdout, Stderr: &stderr}

	printResults(results, true, false, env)

	if stdout.Len() != 0 {
		t.Errorf("quiet mode wrote to stdout: %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "FAILED b.html") {
		t.Errorf("quiet mode suppressed errors: %q", stderr.String())
	}
}
