// Package config loads tool configuration from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pstaylor-patrick/substack2remarkable/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrInvalidEngine  = errors.New("invalid engine name")
)

// DefaultConfigName is looked up in the working directory when no --config
// flag is given.
const DefaultConfigName = "substack2remarkable.yaml"

// Extractor engine names.
const (
	ExtractorReadability = "readability" // in-process go-readability
	ExtractorReadable    = "readable"    // external readable CLI
)

// Markdown engine names.
const (
	MarkdownNative = "native" // in-process html-to-markdown
	MarkdownPandoc = "pandoc" // external pandoc CLI
)

// Config holds all configuration for batch conversion.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Engines EnginesConfig `yaml:"engines"`
	PDF     PDFConfig     `yaml:"pdf"`
	Serve   ServeConfig   `yaml:"serve"`
	Workers int           `yaml:"workers"` // Parallel converters (0 = sequential default)
}

// InputConfig defines input source options.
type InputConfig struct {
	Root string `yaml:"root"` // Root directory to scan (empty = working directory)
}

// EnginesConfig selects the extraction and Markdown conversion engines.
type EnginesConfig struct {
	Extractor string `yaml:"extractor"` // "readability" (default) or "readable"
	Markdown  string `yaml:"markdown"`  // "native" (default) or "pandoc"
}

// PDFConfig defines PDF rendering options.
type PDFConfig struct {
	Timeout  string `yaml:"timeout"`  // Go duration string, e.g. "30s"
	Style    string `yaml:"style"`    // Path to a CSS file overriding the embedded stylesheet
	Disabled bool   `yaml:"disabled"` // Skip PDF generation entirely
}

// ServeConfig defines preview server options.
type ServeConfig struct {
	Port int `yaml:"port"` // Listen port (default 8000)
}

// DefaultServePort is used when no port is configured.
const DefaultServePort = 8000

// DefaultConfig returns a config with default values.
func DefaultConfig() *Config {
	return &Config{
		Engines: EnginesConfig{
			Extractor: ExtractorReadability,
			Markdown:  MarkdownNative,
		},
		Serve: ServeConfig{Port: DefaultServePort},
	}
}

// LoadConfig reads and parses a YAML config file.
// Unknown fields are rejected to catch typos early.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks engine names and numeric ranges.
func (c *Config) Validate() error {
	switch c.Engines.Extractor {
	case "", ExtractorReadability, ExtractorReadable:
	default:
		return fmt.Errorf("%w: extractor %q (must be %s or %s)",
			ErrInvalidEngine, c.Engines.Extractor, ExtractorReadability, ExtractorReadable)
	}

	switch c.Engines.Markdown {
	case "", MarkdownNative, MarkdownPandoc:
	default:
		return fmt.Errorf("%w: markdown %q (must be %s or %s)",
			ErrInvalidEngine, c.Engines.Markdown, MarkdownNative, MarkdownPandoc)
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return fmt.Errorf("serve port out of range: %d", c.Serve.Port)
	}

	return nil
}
