package substack2remarkable

import (
	"strings"
	"testing"
)

func TestBuildArticleDocument(t *testing.T) {
	t.Parallel()

	doc := buildArticleDocument("My Post", "<p>Hello</p>", "body { color: red; }")

	checks := []struct {
		name string
		want string
	}{
		{name: "doctype", want: "<!DOCTYPE html>"},
		{name: "charset", want: `<meta charset="utf-8">`},
		{name: "title element", want: "<title>My Post</title>"},
		{name: "stylesheet embedded", want: "body { color: red; }"},
		{name: "title heading", want: "<h1>My Post</h1>"},
		{name: "content verbatim", want: "<p>Hello</p>"},
	}

	for _, c := range checks {
		if !strings.Contains(doc, c.want) {
			t.Errorf("%s: document missing %q", c.name, c.want)
		}
	}
}

func TestBuildArticleDocumentEscapesTitle(t *testing.T) {
	t.Parallel()

	doc := buildArticleDocument(`<script>alert("x")</script>`, "<p>ok</p>", "")

	if strings.Contains(doc, `<script>alert`) {
		t.Error("title was not escaped")
	}
	if !strings.Contains(doc, "&lt;script&gt;") {
		t.Error("expected escaped title in document")
	}
}

func TestSanitizeCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain css unchanged",
			input:    "body { margin: 0; }",
			expected: "body { margin: 0; }",
		},
		{
			name:     "style close sequence escaped",
			input:    "/* </style><script> */",
			expected: `/* <\/style><script> */`,
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := sanitizeCSS(tt.input)
			if got != tt.expected {
				t.Errorf("sanitizeCSS(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
