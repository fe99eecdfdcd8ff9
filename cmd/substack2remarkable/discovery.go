package main

import (
	"io/fs"
	"path/filepath"

	s2r "github.com/pstaylor-patrick/substack2remarkable"
)

// SourceFile represents one discovered HTML article and its derived
// output paths.
type SourceFile struct {
	Source       string
	MarkdownPath string
	PDFPath      string
}

// discoverSources walks root for files matching */src/html/*.html.
// Per-entry errors (permission denied, dangling symlinks) are reported via
// warn and skipped; they never abort the scan.
func discoverSources(root string, warn func(format string, args ...any)) ([]SourceFile, error) {
	var files []SourceFile

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			warn("skipping %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !s2r.IsSourceHTML(path) {
			return nil
		}

		mdPath, pdfPath, err := s2r.MapPaths(path)
		if err != nil {
			warn("skipping %s: %v", path, err)
			return nil
		}
		files = append(files, SourceFile{
			Source:       path,
			MarkdownPath: mdPath,
			PDFPath:      pdfPath,
		})
		return nil
	})

	return files, err
}
