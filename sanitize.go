package md2wechat

import "strings"

// sanitizeDocument rewrites same-document anchor links to plain text
// across every block. The platform's content-safety check rejects
// fragment links; absolute and relative non-anchor hrefs pass through
// unchanged.
func sanitizeDocument(doc *Document) {
	for i, b := range doc.Blocks {
		switch blk := b.(type) {
		case Heading:
			blk.Spans = sanitizeSpans(blk.Spans)
			doc.Blocks[i] = blk
		case Paragraph:
			blk.Spans = sanitizeSpans(blk.Spans)
			doc.Blocks[i] = blk
		case Blockquote:
			blk.Spans = sanitizeSpans(blk.Spans)
			doc.Blocks[i] = blk
		case List:
			sanitizeList(&blk)
			doc.Blocks[i] = blk
		case TableBlock:
			sanitizeCells(blk.Header)
			for _, row := range blk.Rows {
				sanitizeCells(row)
			}
			doc.Blocks[i] = blk
		}
	}
}

func sanitizeList(lst *List) {
	for i := range lst.Items {
		lst.Items[i].Spans = sanitizeSpans(lst.Items[i].Spans)
		if lst.Items[i].Nested != nil {
			sanitizeList(lst.Items[i].Nested)
		}
	}
}

func sanitizeCells(cells []TableCell) {
	for i := range cells {
		cells[i].Spans = sanitizeSpans(cells[i].Spans)
	}
}

// sanitizeSpans replaces anchor links with their visible text and
// recurses through emphasis wrappers.
func sanitizeSpans(spans []Span) []Span {
	if spans == nil {
		return nil
	}
	out := make([]Span, 0, len(spans))
	for _, sp := range spans {
		switch s := sp.(type) {
		case LinkSpan:
			if strings.HasPrefix(s.Href, "#") {
				out = append(out, TextSpan{Text: s.Text})
				continue
			}
			out = append(out, s)
		case BoldSpan:
			out = append(out, BoldSpan{Inner: sanitizeSpans(s.Inner)})
		case ItalicSpan:
			out = append(out, ItalicSpan{Inner: sanitizeSpans(s.Inner)})
		default:
			out = append(out, sp)
		}
	}
	return out
}
