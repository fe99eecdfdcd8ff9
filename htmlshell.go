package substack2remarkable

import (
	"fmt"
	"html"
	"strings"
)

// articleShellTemplate wraps an extracted content fragment in a complete
// HTML5 document for PDF rendering: UTF-8 head, embedded stylesheet, an
// <h1> of the title, then the raw content as body.
const articleShellTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
%s
</style>
</head>
<body>
<h1>%s</h1>
%s
</body>
</html>`

// buildArticleDocument assembles the standalone HTML document rendered to
// PDF. The title is escaped; the content fragment is embedded as-is since
// it comes from the readability engine, not from user Markdown.
func buildArticleDocument(title, contentHTML, css string) string {
	escaped := html.EscapeString(title)
	return fmt.Sprintf(articleShellTemplate, escaped, sanitizeCSS(css), escaped, contentHTML)
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
