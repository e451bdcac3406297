package md2wechat

import "strings"

// Span is one typed run of inline content. Spans never overlap; a span
// sequence fully covers its source text.
type Span interface {
	isSpan()
}

// TextSpan is literal text, including unmatched delimiter characters.
type TextSpan struct {
	Text string
}

// BoldSpan wraps inner spans in strong emphasis.
type BoldSpan struct {
	Inner []Span
}

// ItalicSpan wraps inner spans in emphasis.
type ItalicSpan struct {
	Inner []Span
}

// CodeSpan is inline code; its content is never parsed further.
type CodeSpan struct {
	Code string
}

// LinkSpan is an inline link.
type LinkSpan struct {
	Text string
	Href string
}

// ImageSpan is an inline image reference.
type ImageSpan struct {
	Alt string
	URL string
}

func (TextSpan) isSpan()   {}
func (BoldSpan) isSpan()   {}
func (ItalicSpan) isSpan() {}
func (CodeSpan) isSpan()   {}
func (LinkSpan) isSpan()   {}
func (ImageSpan) isSpan()  {}

// parseInline scans a text run left to right and produces its span
// sequence. Delimiter matching is leftmost-first and non-overlapping;
// unmatched delimiters fall through as literal text. All delimiters are
// ASCII, so byte-wise scanning is safe on UTF-8 input.
func parseInline(s string) []Span {
	var spans []Span
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			spans = append(spans, TextSpan{Text: lit.String()})
			lit.Reset()
		}
	}

	i := 0
	for i < len(s) {
		c := s[i]

		if c == '!' && i+1 < len(s) && s[i+1] == '[' {
			if alt, url, n, ok := scanImage(s[i:]); ok {
				flush()
				spans = append(spans, ImageSpan{Alt: alt, URL: url})
				i += n
				continue
			}
		}

		if c == '[' {
			if text, href, n, ok := scanLink(s[i:]); ok {
				flush()
				spans = append(spans, LinkSpan{Text: text, Href: href})
				i += n
				continue
			}
		}

		if c == '`' {
			if end := strings.IndexByte(s[i+1:], '`'); end > 0 {
				flush()
				spans = append(spans, CodeSpan{Code: s[i+1 : i+1+end]})
				i += end + 2
				continue
			}
		}

		if c == '*' || c == '_' {
			if sp, n, ok := scanEmphasis(s[i:], c); ok {
				flush()
				spans = append(spans, sp)
				i += n
				continue
			}
		}

		lit.WriteByte(c)
		i++
	}
	flush()

	return spans
}

// scanEmphasis matches a bold or italic run starting at s[0] == d.
// Bold takes priority over italic when delimiters are ambiguous:
// ***x*** resolves to Bold wrapping Italic.
func scanEmphasis(s string, d byte) (Span, int, bool) {
	run := 0
	for run < len(s) && s[run] == d && run < 3 {
		run++
	}

	if run >= 3 {
		closer := strings.Repeat(string(d), 3)
		if idx := strings.Index(s[3:], closer); idx > 0 {
			inner := parseInline(s[3 : 3+idx])
			return BoldSpan{Inner: []Span{ItalicSpan{Inner: inner}}}, 3 + idx + 3, true
		}
		// No triple closer; retry the leading pair as plain bold.
		run = 2
	}

	if run == 2 {
		closer := strings.Repeat(string(d), 2)
		if idx := strings.Index(s[2:], closer); idx > 0 {
			return BoldSpan{Inner: parseInline(s[2 : 2+idx])}, 2 + idx + 2, true
		}
		run = 1
	}

	if idx := strings.IndexByte(s[1:], d); idx > 0 {
		return ItalicSpan{Inner: parseInline(s[1 : 1+idx])}, 1 + idx + 1, true
	}

	return nil, 0, false
}

// scanLink matches [text](href) at the start of s. Text and href must be
// non-empty; nested brackets are not supported.
func scanLink(s string) (text, href string, n int, ok bool) {
	close1 := strings.IndexByte(s, ']')
	if close1 <= 1 {
		return "", "", 0, false
	}
	if close1+1 >= len(s) || s[close1+1] != '(' {
		return "", "", 0, false
	}
	close2 := strings.IndexByte(s[close1+2:], ')')
	if close2 <= 0 {
		return "", "", 0, false
	}
	text = s[1:close1]
	href = s[close1+2 : close1+2+close2]
	return text, href, close1 + 2 + close2 + 1, true
}

// scanImage matches ![alt](url) or ![alt](url "title") at the start of
// s. Alt may be empty; the optional title is discarded.
func scanImage(s string) (alt, url string, n int, ok bool) {
	close1 := strings.IndexByte(s, ']')
	if close1 < 2 { // "![" is two bytes
		return "", "", 0, false
	}
	if close1+1 >= len(s) || s[close1+1] != '(' {
		return "", "", 0, false
	}
	close2 := strings.IndexByte(s[close1+2:], ')')
	if close2 <= 0 {
		return "", "", 0, false
	}
	alt = s[2:close1]
	target := strings.TrimSpace(s[close1+2 : close1+2+close2])
	// Split off an optional quoted title.
	if sp := strings.IndexAny(target, " \t"); sp > 0 {
		target = target[:sp]
	}
	if target == "" {
		return "", "", 0, false
	}
	return alt, target, close1 + 2 + close2 + 1, true
}

// spanText flattens a span sequence to its plain text content.
func spanText(spans []Span) string {
	var b strings.Builder
	for _, sp := range spans {
		switch s := sp.(type) {
		case TextSpan:
			b.WriteString(s.Text)
		case BoldSpan:
			b.WriteString(spanText(s.Inner))
		case ItalicSpan:
			b.WriteString(spanText(s.Inner))
		case CodeSpan:
			b.WriteString(s.Code)
		case LinkSpan:
			b.WriteString(s.Text)
		case ImageSpan:
			// Images contribute no text.
		}
	}
	return b.String()
}
