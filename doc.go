// Package md2wechat converts Markdown (or raw HTML) documents into the
// constrained HTML dialect accepted by the WeChat Official Account
// rich-text editor, and extracts the publishing metadata (title, summary,
// cover image, image list) needed by the draft-creation step.
//
// # Quick Start
//
// Create a service and convert a document:
//
//	svc := md2wechat.New()
//	result, err := svc.Convert(ctx, md2wechat.Input{
//	    Content: "# Hello\n\nWorld",
//	    Theme:   "tech",
//	    Mode:    md2wechat.ModeNews,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.HTML, result.Title)
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Front matter extraction (title, date, tags, permalink)
//  2. Markdown preprocessing (line normalization, backslash unescaping)
//  3. Block parsing (headings, lists, code fences, tables, quotes)
//  4. Theme-aware rendering with H2/H3 section cards
//  5. Anchor-link sanitization and metadata extraction
//
// The WeChat editor does not reliably preserve CSS classes, native list
// markup, or positioned elements, so the renderer emits table-based
// layout with inline styles throughout.
//
// # Themes
//
// Styling is driven by a closed set of named themes (academic_gray,
// festival, tech, announcement). Looking up any other name fails with
// ErrUnknownTheme before any output is produced.
//
// # Modes
//
// ModeNews places no caps on output. ModeNewspic (image-focused
// articles) caps the image list at 20 entries and summary text at 1000
// characters; both caps are enforced inside the conversion.
//
// # Input Formats
//
// Alternate input formats are handled by ContentParser implementations
// held in an ordered, caller-owned list. The built-in parsers cover
// Markdown and raw HTML; HTML input bypasses the block pipeline but
// still produces a RenderResult of the same shape.
//
// # Concurrency
//
// A Service holds no mutable state across calls. Converting different
// documents from different goroutines requires no coordination.
package md2wechat
