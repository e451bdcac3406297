package md2wechat

import "strings"

// ContentParser turns one input format into a Document. Implementations
// are held in an ordered, caller-owned list on the Service; the first
// parser whose Supports returns true handles the input. There is no
// global registry.
type ContentParser interface {
	// Supports reports whether this parser handles the identifier,
	// which is either a format name ("markdown", "html") or a file name
	// with a recognizable extension.
	Supports(identifier string) bool

	// Parse converts content into a Document.
	Parse(content string) (*Document, error)
}

// markdownParser feeds the block pipeline: front matter, preprocessing,
// block parsing with inline spans.
type markdownParser struct {
	blocks *blockParser
}

func newMarkdownParser(indentUnit int) *markdownParser {
	return &markdownParser{blocks: newBlockParser(indentUnit)}
}

func (p *markdownParser) Supports(identifier string) bool {
	switch strings.ToLower(identifier) {
	case "", "markdown", "md":
		return true
	}
	lower := strings.ToLower(identifier)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown")
}

// Parse never fails: malformed constructs degrade block by block instead
// of aborting the document.
func (p *markdownParser) Parse(content string) (*Document, error) {
	content = normalizeLineEndings(content)
	meta, body := extractFrontMatter(content)
	body = preprocessBody(body)
	return &Document{Meta: meta, Blocks: p.blocks.parse(body)}, nil
}
