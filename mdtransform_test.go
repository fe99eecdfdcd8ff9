package substack2remarkable

import (
	"strings"
	"testing"
)

func TestNormalizeMarkdownImages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "self-closing img",
			input:    `<img src="http://x/a.png"/>`,
			expected: `![image](http://x/a.png)`,
		},
		{
			name:     "img with attributes",
			input:    `<img class="pic" src="http://x/a.png" width="600">`,
			expected: `![image](http://x/a.png)`,
		},
		{
			name:     "img without src untouched",
			input:    `<img class="spacer">`,
			expected: `<img class="spacer">`,
		},
		{
			name:     "surrounding text preserved",
			input:    `before <img src="http://x/a.png"/> after`,
			expected: `before ![image](http://x/a.png) after`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NormalizeMarkdown(tt.input)
			if got != tt.expected {
				t.Errorf("NormalizeMarkdown() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNormalizeMarkdownLinks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain anchor",
			input:    `<a href="http://x">Click</a>`,
			expected: `[Click](http://x)`,
		},
		{
			name:     "anchor with extra attributes",
			input:    `<a class="link" href="http://x" target="_blank">Click</a>`,
			expected: `[Click](http://x)`,
		},
		{
			name:     "empty anchor removed",
			input:    `before <a href="http://x"></a> after`,
			expected: `before  after`,
		},
		{
			name:     "anchor wrapping image becomes linked image",
			input:    `<a href="http://x"><img src="y"></a>`,
			expected: `[![image](y)](http://x)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NormalizeMarkdown(tt.input)
			if got != tt.expected {
				t.Errorf("NormalizeMarkdown() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNormalizeMarkdownWrappers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "div tags stripped content kept",
			input:    `<div class="wrap">text</div>`,
			expected: `text`,
		},
		{
			name:     "figure tags stripped",
			input:    `<figure>content</figure>`,
			expected: `content`,
		},
		{
			name:     "figcaption becomes emphasis",
			input:    `<figcaption>Caption text</figcaption>`,
			expected: `*Caption text*`,
		},
		{
			name:     "figcaption with attributes",
			input:    `<figcaption class="cap">Caption text</figcaption>`,
			expected: `*Caption text*`,
		},
		{
			name:     "multiline figcaption",
			input:    "<figcaption>line one\nline two</figcaption>",
			expected: "*line one\nline two*",
		},
		{
			name:     "full figure block",
			input:    `<figure><img src="http://x/a.png"/><figcaption>A photo</figcaption></figure>`,
			expected: `![image](http://x/a.png)*A photo*`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NormalizeMarkdown(tt.input)
			if got != tt.expected {
				t.Errorf("NormalizeMarkdown() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNormalizeMarkdownBlankLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single blank line unchanged",
			input:    "a\n\nb",
			expected: "a\n\nb",
		},
		{
			name:     "two blank lines unchanged",
			input:    "a\n\n\nb",
			expected: "a\n\n\nb",
		},
		{
			name:     "three blank lines collapse",
			input:    "a\n\n\n\nb",
			expected: "a\n\nb",
		},
		{
			name:     "long run collapses",
			input:    "a\n\n\n\n\n\n\nb",
			expected: "a\n\nb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NormalizeMarkdown(tt.input)
			if got != tt.expected {
				t.Errorf("NormalizeMarkdown() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNormalizeMarkdownLeavesCleanInputAlone(t *testing.T) {
	t.Parallel()

	input := "# Title\n\nA paragraph with [a link](http://x) and ![an image](http://y).\n\n- item one\n- item two\n"
	got := NormalizeMarkdown(input)
	if got != input {
		t.Errorf("clean Markdown was modified:\ngot  %q\nwant %q", got, input)
	}
}

func TestCleanupRuleOrder(t *testing.T) {
	t.Parallel()

	// Images convert before the empty-anchor rule runs, so an anchor
	// wrapping only an image keeps its link syntax source intact rather
	// than being deleted outright.
	input := `<a href="http://x"><img src="http://x/a.png"/></a>`
	got := NormalizeMarkdown(input)
	if !strings.Contains(got, "![image](http://x/a.png)") {
		t.Errorf("image inside anchor lost: %q", got)
	}
}
