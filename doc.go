// Package substack2remarkable converts saved HTML articles into cleaned
// Markdown and styled PDF renditions suitable for e-readers.
//
// # Quick Start
//
// Create a converter, convert a saved article, and close when done:
//
//	conv, err := substack2remarkable.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	raw, _ := os.ReadFile("post.html")
//	result, err := conv.Convert(ctx, substack2remarkable.Input{
//	    HTML: string(raw),
//	    Path: "post.html",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("post.md", result.Markdown, 0644)
//	if result.PDF != nil {
//	    os.WriteFile("post.pdf", result.PDF, 0644)
//	}
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Readability extraction (title + main article body, boilerplate removed)
//  2. HTML to GitHub-flavored Markdown conversion
//  3. Markdown cleanup (leftover tag fragments, blank line compression)
//  4. PDF rendering of the extracted body via headless Chrome (go-rod)
//
// PDF rendering is best-effort: a render failure is reported on
// Result.PDFErr and never discards the Markdown output.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := substack2remarkable.NewConverter(
//	    substack2remarkable.WithTimeout(2 * time.Minute),
//	    substack2remarkable.WithStylesheet(customCSS),
//	)
//
// # Parallel Processing
//
// For batch conversion, use ConverterPool to manage multiple browser
// instances:
//
//	pool := substack2remarkable.NewConverterPool(4)
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, input)
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package substack2remarkable
