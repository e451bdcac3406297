package md2wechat

// Document is the parsed form of one input document. A Document and its
// RenderResult are created fresh per conversion and discarded afterwards.
type Document struct {
	Meta   FrontMatter
	Blocks []Block
}

// Block is one typed element of the document body. The set of variants
// is closed; renderers dispatch over it exhaustively.
type Block interface {
	isBlock()
}

// Heading is a single-line ATX heading, level 1..6.
type Heading struct {
	Level int
	Text  string
	Spans []Span
}

// Paragraph is a run of adjacent non-blank text lines.
type Paragraph struct {
	Text  string
	Spans []Span
}

// List is a flat or nested bullet/numbered list.
type List struct {
	Ordered bool
	Items   []ListItem
}

// ListItem holds the item's own text and an optional nested sub-list.
// Spans is nil for synthetic items that only carry a nested list.
type ListItem struct {
	Spans  []Span
	Nested *List
}

// CodeBlock holds fenced code verbatim; its lines are never inline-parsed.
type CodeBlock struct {
	Language string
	Lines    []string
}

// Alignment of one table column, taken from the separator row.
type Alignment int

// Column alignments.
const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// cssValue returns the text-align value, or "" for AlignNone.
func (a Alignment) cssValue() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return ""
}

// TableCell is one cell with its raw text and parsed inline spans.
type TableCell struct {
	Text  string
	Spans []Span
}

// TableBlock is a pipe table with per-column alignment.
type TableBlock struct {
	Aligns []Alignment
	Header []TableCell
	Rows   [][]TableCell
}

// Blockquote is a run of adjacent > lines merged into one quote.
type Blockquote struct {
	Text  string
	Spans []Span
}

// HorizontalRule is a thematic break.
type HorizontalRule struct{}

// ImageBlock is a line consisting solely of an image reference.
type ImageBlock struct {
	Alt string
	URL string
}

// RawHTML is a passthrough block produced by the HTML input parser. The
// block pipeline never generates it; Images and Summary carry the
// metadata lifted from the source so extraction stays uniform.
type RawHTML struct {
	HTML    string
	Images  []string
	Summary string
}

func (Heading) isBlock()        {}
func (Paragraph) isBlock()      {}
func (List) isBlock()           {}
func (CodeBlock) isBlock()      {}
func (TableBlock) isBlock()     {}
func (Blockquote) isBlock()     {}
func (HorizontalRule) isBlock() {}
func (ImageBlock) isBlock()     {}
func (RawHTML) isBlock()        {}
