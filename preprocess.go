package md2wechat

import (
	"regexp"
	"strings"
)

// Precompiled patterns for preprocessing.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// backslashUnescaper removes the escapes Markdown exporters emit for
// punctuation the dialect treats literally anyway.
var backslashUnescaper = strings.NewReplacer(
	`\\`, `\`,
	`\_`, `_`,
	`\*`, `*`,
	`\[`, `[`,
	`\]`, `]`,
	`\(`, `(`,
	`\)`, `)`,
	"\\`", "`",
)

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// preprocessBody applies the body transformations in order: escapes
// first, then spacing. Line endings are normalized earlier, before
// front-matter extraction.
func preprocessBody(content string) string {
	content = backslashUnescaper.Replace(content)
	content = compressBlankLines(content)
	return content
}
