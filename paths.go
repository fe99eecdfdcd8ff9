package substack2remarkable

import (
	"path"
	"path/filepath"
	"strings"
)

// Directory convention: source HTML lives under src/html, outputs mirror
// into a sibling dist tree.
const (
	sourceSegment = "src/html"
	distSegment   = "dist"
)

// Stem returns the filename without its extension.
func Stem(p string) string {
	base := filepath.Base(p)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// MapPaths derives the Markdown and PDF output paths for a source HTML file.
// The first src/html segment in the path is replaced with dist, and outputs
// land under md/ and pdf/ subdirectories:
//
//	proj/src/html/post.html -> proj/dist/md/post.md, proj/dist/pdf/post.pdf
//
// Only the first occurrence is replaced; later src/html segments survive.
// Returns ErrNoSourceSegment when the path carries no src/html segment to
// anchor the mapping on.
func MapPaths(sourcePath string) (mdPath, pdfPath string, err error) {
	dir := path.Dir(filepath.ToSlash(sourcePath))
	if !strings.Contains(dir, sourceSegment) {
		return "", "", ErrNoSourceSegment
	}
	base := strings.Replace(dir, sourceSegment, distSegment, 1)
	stem := Stem(sourcePath)

	mdPath = filepath.FromSlash(path.Join(base, "md", stem+".md"))
	pdfPath = filepath.FromSlash(path.Join(base, "pdf", stem+".pdf"))
	return mdPath, pdfPath, nil
}

// IsSourceHTML reports whether the path matches the */src/html/*.html
// discovery pattern: an .html file whose parent directory is src/html.
func IsSourceHTML(p string) bool {
	slashed := filepath.ToSlash(p)
	if path.Ext(slashed) != ".html" {
		return false
	}
	dir := path.Dir(slashed)
	return dir == sourceSegment || strings.HasSuffix(dir, "/"+sourceSegment)
}
