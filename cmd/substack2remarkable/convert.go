package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	s2r "github.com/pstaylor-patrick/substack2remarkable"
	"github.com/pstaylor-patrick/substack2remarkable/internal/config"
	"github.com/pstaylor-patrick/substack2remarkable/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for CLI operations.
var (
	ErrReadHTML       = errors.New("failed to read HTML file")
	ErrWriteMarkdown  = errors.New("failed to write Markdown file")
	ErrWritePDF       = errors.New("failed to write PDF file")
	ErrReadCSS        = errors.New("failed to read CSS file")
	ErrInvalidWorkers = errors.New("invalid worker count")
)

// ArticleConverter is the interface for the conversion service.
type ArticleConverter interface {
	Convert(ctx context.Context, input s2r.Input) (*s2r.Result, error)
}

// Compile-time interface implementation check.
var _ ArticleConverter = (*s2r.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (ArticleConverter, error)
	Release(ArticleConverter)
	Size() int
}

// converterPool adapts s2r.ConverterPool to the Pool interface.
type converterPool struct {
	inner *s2r.ConverterPool
}

func (p *converterPool) Acquire() (ArticleConverter, error) {
	conv, err := p.inner.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

func (p *converterPool) Release(c ArticleConverter) {
	if conv, ok := c.(*s2r.Converter); ok {
		p.inner.Release(conv)
	}
}

func (p *converterPool) Size() int {
	return p.inner.Size()
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	File       SourceFile
	PDFWritten bool
	PDFErr     error
	Err        error
	Duration   time.Duration
}

// runConvertCmd executes the convert command and returns an exit code.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		return ExitUsage
	}

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	mergeFlags(flags, cfg)

	root := resolveRoot(positional, cfg)

	files, err := discoverSources(root, func(format string, a ...any) {
		fmt.Fprintf(env.Stderr, format+"\n", a...)
	})
	if err != nil {
		fmt.Fprintf(env.Stderr, "discovering files: %v\n", err)
		return exitCodeFor(err)
	}

	if len(files) == 0 {
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "No HTML files found under %s (looked for src/html directories)\n", root)
		}
		return ExitSuccess
	}

	opts, err := converterOptions(cfg)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	if cfg.Workers < 0 {
		fmt.Fprintf(env.Stderr, "%v: %d\n", ErrInvalidWorkers, cfg.Workers)
		return ExitUsage
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = s2r.ResolvePoolSize(0)
	}

	pool := &converterPool{inner: s2r.NewConverterPool(workers, opts...)}
	defer pool.inner.Close()

	results := convertBatch(context.Background(), pool, files, cfg.PDF.Disabled)

	printResults(results, flags.common.quiet, flags.common.verbose, env)

	// Per-file failures are isolated and do not change the exit code;
	// the batch is best-effort by design.
	return ExitSuccess
}

// loadConfig loads the config from an explicit path, the default file in
// the working directory, or falls back to defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadConfig(path)
	}
	if fileutil.FileExists(config.DefaultConfigName) {
		return config.LoadConfig(config.DefaultConfigName)
	}
	return config.DefaultConfig(), nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	// --workers default is 1 (sequential); only a non-default value or an
	// unset config wins.
	if flags.workers != 1 || cfg.Workers == 0 {
		cfg.Workers = flags.workers
	}
	if flags.timeout != "" {
		cfg.PDF.Timeout = flags.timeout
	}
	if flags.style != "" {
		cfg.PDF.Style = flags.style
	}
	if flags.mdOnly {
		cfg.PDF.Disabled = true
	}
}

// resolveRoot determines the scan root from args or config.
func resolveRoot(args []string, cfg *config.Config) string {
	if len(args) > 0 {
		return args[0]
	}
	if cfg.Input.Root != "" {
		return cfg.Input.Root
	}
	return "."
}

// converterOptions builds library options from config: timeout, stylesheet
// override, and the configured extraction/markdown engines.
func converterOptions(cfg *config.Config) ([]s2r.Option, error) {
	var opts []s2r.Option

	if cfg.PDF.Timeout != "" {
		d, err := time.ParseDuration(cfg.PDF.Timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid timeout %q", cfg.PDF.Timeout)
		}
		opts = append(opts, s2r.WithTimeout(d))
	}

	if cfg.PDF.Style != "" {
		css, err := os.ReadFile(cfg.PDF.Style) // #nosec G304 -- user-provided path
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadCSS, err)
		}
		opts = append(opts, s2r.WithStylesheet(string(css)))
	}

	if cfg.Engines.Extractor == config.ExtractorReadable {
		opts = append(opts, s2r.WithExtractor(s2r.NewReadableCLIExtractor()))
	}

	if cfg.Engines.Markdown == config.MarkdownPandoc {
		opts = append(opts, s2r.WithMarkdownConverter(s2r.NewPandocConverter()))
	}

	return opts, nil
}

// convertBatch processes files using the converter pool. With a pool size
// of one this degrades to strictly sequential processing.
func convertBatch(ctx context.Context, pool Pool, files []SourceFile, mdOnly bool) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				for idx := range jobs {
					results[idx] = ConversionResult{File: files[idx], Err: err}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{File: files[idx], Err: ctx.Err()}
					continue
				}
				results[idx] = convertArticle(ctx, conv, files[idx], mdOnly)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertArticle processes a single file and returns the result.
// The Markdown write always happens on conversion success; the PDF write is
// best-effort and its failure is reported separately.
func convertArticle(ctx context.Context, conv ArticleConverter, f SourceFile, mdOnly bool) ConversionResult {
	start := time.Now()
	result := ConversionResult{File: f}

	raw, err := os.ReadFile(f.Source) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadHTML, err)
		result.Duration = time.Since(start)
		return result
	}

	// Both output directories exist before any write.
	for _, dir := range []string{filepath.Dir(f.MarkdownPath), filepath.Dir(f.PDFPath)} {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			result.Err = fmt.Errorf("creating output directory: %w", err)
			result.Duration = time.Since(start)
			return result
		}
	}

	res, err := conv.Convert(ctx, s2r.Input{
		HTML:         string(raw),
		Path:         f.Source,
		MarkdownOnly: mdOnly,
	})
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	// #nosec G306 -- generated documents are meant to be readable
	if err := os.WriteFile(f.MarkdownPath, res.Markdown, filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteMarkdown, err)
		result.Duration = time.Since(start)
		return result
	}

	if res.PDF != nil {
		// #nosec G306 -- generated documents are meant to be readable
		if err := os.WriteFile(f.PDFPath, res.PDF, filePermissions); err != nil {
			result.PDFErr = fmt.Errorf("%w: %v", ErrWritePDF, err)
		} else {
			result.PDFWritten = true
		}
	} else if res.PDFErr != nil {
		result.PDFErr = res.PDFErr
	}

	result.Duration = time.Since(start)
	return result
}

// printResults outputs per-file progress and an end-of-run summary.
// Successful files print three lines: the source and the two outputs.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) {
	var succeeded, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.File.Source, r.Err)
			continue
		}

		succeeded++
		if r.PDFErr != nil {
			fmt.Fprintf(env.Stderr, "WARN %s: PDF not generated: %v\n", r.File.Source, r.PDFErr)
		}
		if quiet {
			continue
		}

		fmt.Fprintf(env.Stdout, "Converted: %s\n", r.File.Source)
		fmt.Fprintf(env.Stdout, "  -> %s\n", r.File.MarkdownPath)
		if r.PDFWritten {
			fmt.Fprintf(env.Stdout, "  -> %s\n", r.File.PDFPath)
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "  (%v)\n", r.Duration.Round(time.Millisecond))
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}
}
