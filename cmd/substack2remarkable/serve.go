package main

import (
	"bytes"
	"fmt"
	"html"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/pstaylor-patrick/substack2remarkable/internal/assets"
	"github.com/pstaylor-patrick/substack2remarkable/internal/config"
)

const chromaStyleName = "github"

// previewShellTemplate wraps rendered Markdown in a browsable HTML page.
const previewShellTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<link rel="stylesheet" href="/assets/chroma.css">
<style>
%s
nav.preview { font-family: sans-serif; font-size: 0.9em; margin-bottom: 2em; }
nav.preview a { margin-right: 1em; }
</style>
</head>
<body>
<nav class="preview">%s</nav>
%s
</body>
</html>`

// previewServer serves converted Markdown articles as rendered HTML.
type previewServer struct {
	root string
	md   goldmark.Markdown
	css  string
}

// newPreviewServer creates a server rooted at the given directory.
// Rendering uses the same GFM dialect the converter emits, plus syntax
// highlighting through chroma CSS classes.
func newPreviewServer(root string) (*previewServer, error) {
	css, err := assets.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithXHTML(),
		),
	)

	return &previewServer{root: root, md: md, css: css}, nil
}

// runServeCmd executes the serve command and returns an exit code.
func runServeCmd(args []string, env *Environment) int {
	flags, positional, err := parseServeFlags(args)
	if err != nil {
		return ExitUsage
	}

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	port := cfg.Serve.Port
	if flags.port != 0 {
		port = flags.port
	}
	if port == 0 {
		port = config.DefaultServePort
	}
	if port < 1 || port > 65535 {
		fmt.Fprintf(env.Stderr, "invalid port: %d\n", port)
		return ExitUsage
	}

	root := resolveRoot(positional, cfg)

	srv, err := newPreviewServer(root)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           srv.handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Serving %s on http://localhost:%d\n", root, port)
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fmt.Fprintln(env.Stderr, err)
		return ExitGeneral
	}
	return ExitSuccess
}

// handler builds the route table.
func (s *previewServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/view/", s.handleView)
	mux.HandleFunc("/files/", s.handleFile)
	mux.HandleFunc("/assets/chroma.css", s.handleChromaCSS)
	return mux
}

// handleIndex lists all converted articles grouped by publication directory.
func (s *previewServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	articles, err := s.listMarkdown()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var body bytes.Buffer
	body.WriteString("<h1>Converted articles</h1>\n")
	if len(articles) == 0 {
		body.WriteString("<p>No Markdown files found. Run the converter first.</p>\n")
	} else {
		body.WriteString("<ul>\n")
		for _, rel := range articles {
			stem := strings.TrimSuffix(path.Base(rel), ".md")
			fmt.Fprintf(&body, `<li><a href="/view/%s">%s</a>`,
				html.EscapeString(rel), html.EscapeString(stem))

			pdfRel := pdfSibling(rel)
			if s.exists(pdfRel) {
				fmt.Fprintf(&body, ` &mdash; <a href="/files/%s">PDF</a>`,
					html.EscapeString(pdfRel))
			}
			body.WriteString("</li>\n")
		}
		body.WriteString("</ul>\n")
	}

	s.writePage(w, "Converted articles", "", body.String())
}

// handleView renders one Markdown file as HTML.
func (s *previewServer) handleView(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(r.URL.Path, "/view/")
	full, ok := s.safeJoin(rel)
	if !ok || !strings.HasSuffix(full, ".md") {
		http.NotFound(w, r)
		return
	}

	raw, err := os.ReadFile(full) // #nosec G304 -- path validated by safeJoin
	if err != nil {
		http.NotFound(w, r)
		return
	}

	var rendered bytes.Buffer
	if err := s.md.Convert(raw, &rendered); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	nav := `<a href="/">&larr; Index</a>`
	pdfRel := pdfSibling(rel)
	if s.exists(pdfRel) {
		nav += fmt.Sprintf(`<a href="/files/%s">PDF</a>`, html.EscapeString(pdfRel))
	}

	title := strings.TrimSuffix(path.Base(rel), ".md")
	s.writePage(w, title, nav, rendered.String())
}

// handleFile serves raw output files, primarily the generated PDFs.
func (s *previewServer) handleFile(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(r.URL.Path, "/files/")
	full, ok := s.safeJoin(rel)
	if !ok {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, full)
}

// handleChromaCSS serves the syntax highlighting stylesheet.
func (s *previewServer) handleChromaCSS(w http.ResponseWriter, _ *http.Request) {
	style := chromastyles.Get(chromaStyleName)
	if style == nil {
		style = chromastyles.Fallback
	}
	formatter := chromahtml.New(chromahtml.WithClasses(true))

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	if err := formatter.WriteCSS(w, style); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// writePage writes the full preview shell around a rendered body.
func (s *previewServer) writePage(w http.ResponseWriter, title, nav, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, previewShellTemplate, html.EscapeString(title), s.css, nav, body)
}

// listMarkdown returns root-relative slash paths of all */dist/md/*.md files.
func (s *previewServer) listMarkdown() ([]string, error) {
	var out []string

	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || filepath.Ext(p) != ".md" {
			return nil
		}
		dir := filepath.ToSlash(filepath.Dir(p))
		if !strings.HasSuffix(dir, "dist/md") {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return nil
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(out)
	return out, nil
}

// safeJoin resolves a request-relative path under the server root,
// rejecting traversal outside it.
func (s *previewServer) safeJoin(rel string) (string, bool) {
	cleaned := path.Clean("/" + rel)
	if cleaned == "/" {
		return "", false
	}
	return filepath.Join(s.root, filepath.FromSlash(cleaned)), true
}

// exists reports whether a root-relative path exists.
func (s *previewServer) exists(rel string) bool {
	full, ok := s.safeJoin(rel)
	if !ok {
		return false
	}
	_, err := os.Stat(full)
	return err == nil
}

// pdfSibling maps a dist/md Markdown path to its dist/pdf counterpart.
func pdfSibling(mdRel string) string {
	dir := path.Dir(mdRel)
	if !strings.HasSuffix(dir, "/md") && dir != "md" {
		return ""
	}
	stem := strings.TrimSuffix(path.Base(mdRel), ".md")
	return path.Join(path.Dir(dir), "pdf", stem+".pdf")
}
