package substack2remarkable

import "regexp"

// substitution is one text-level cleanup rule applied to converted Markdown.
// Rules are data, not control flow: they run in declaration order and each
// one is independently testable.
type substitution struct {
	name    string
	pattern *regexp.Regexp
	replace string
}

// cleanupRules catch raw tag fragments the HTML-to-Markdown conversion left
// behind. They are deliberately global text substitutions, not tree-aware:
// well-formed Markdown already produced is untouched, and malformed HTML
// that matches nothing survives verbatim.
var cleanupRules = []substitution{
	// Leftover image tags become Markdown images with a generic alt text.
	{
		name:    "leftover-img",
		pattern: regexp.MustCompile(`<img[^>]*\bsrc="([^"]*)"[^>]*/?>`),
		replace: `![image]($1)`,
	},
	// Leftover anchors with plain text content become Markdown links.
	// Only matches when the text contains no nested tags.
	{
		name:    "leftover-link",
		pattern: regexp.MustCompile(`<a[^>]*\bhref="([^"]*)"[^>]*>([^<]+)</a>`),
		replace: `[$2]($1)`,
	},
	// Empty anchors carry no content worth keeping.
	{
		name:    "empty-anchor",
		pattern: regexp.MustCompile(`<a\b[^>]*></a>`),
		replace: ``,
	},
	// Wrapper tags are stripped; their content stays.
	{
		name:    "div-tags",
		pattern: regexp.MustCompile(`</?div(\s[^>]*)?>`),
		replace: ``,
	},
	{
		name:    "figure-tags",
		pattern: regexp.MustCompile(`</?figure(\s[^>]*)?>`),
		replace: ``,
	},
	// Figure captions become emphasized text.
	{
		name:    "figcaption",
		pattern: regexp.MustCompile(`(?s)<figcaption(?:\s[^>]*)?>(.*?)</figcaption>`),
		replace: `*$1*`,
	},
	// Runs of 4+ newlines collapse to a single blank line.
	{
		name:    "blank-lines",
		pattern: regexp.MustCompile(`\n{4,}`),
		replace: "\n\n",
	},
}

// NormalizeMarkdown applies the cleanup rules, in order, to converted
// Markdown output.
func NormalizeMarkdown(markdown string) string {
	for _, rule := range cleanupRules {
		markdown = rule.pattern.ReplaceAllString(markdown, rule.replace)
	}
	return markdown
}
