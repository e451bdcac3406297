package md2wechat

import (
	"regexp"
	"strings"
)

// Precompiled patterns for block-level parsing.
var (
	// ATX heading: 1-6 # characters followed by a space, optional
	// trailing # run.
	atxHeading = regexp.MustCompile(`^\s{0,3}(#{1,6})\s+(.+?)\s*#*\s*$`)

	// List item: optional indent, a marker (-, *, + or digits followed
	// by a dot), a space, then content.
	listItemLine = regexp.MustCompile(`^(\s*)([-*+]|\d+\.)\s+(.+)$`)

	// Table separator cell: optional colons around a dash run.
	tableSeparatorCell = regexp.MustCompile(`^:?-+:?$`)
)

// blockParser is a line-oriented state machine over the document body.
// It never fails: every malformed construct degrades to the closest safe
// block rather than aborting the document.
type blockParser struct {
	indentUnit int
}

func newBlockParser(indentUnit int) *blockParser {
	if indentUnit <= 0 {
		indentUnit = defaultIndentUnit
	}
	return &blockParser{indentUnit: indentUnit}
}

// listEntry is one raw list line before nesting is resolved.
type listEntry struct {
	level   int
	ordered bool
	text    string
}

// parse turns body text into the ordered block sequence.
func (p *blockParser) parse(body string) []Block {
	lines := strings.Split(body, "\n")

	var blocks []Block
	var para []string
	var quote []string

	flushPara := func() {
		if len(para) == 0 {
			return
		}
		text := strings.Join(para, "\n")
		para = nil
		if strings.TrimSpace(text) == "" {
			return
		}
		blocks = append(blocks, Paragraph{Text: text, Spans: parseInline(text)})
	}
	flushQuote := func() {
		if len(quote) == 0 {
			return
		}
		text := strings.Join(quote, " ")
		quote = nil
		blocks = append(blocks, Blockquote{Text: text, Spans: parseInline(text)})
	}
	flushAll := func() {
		flushPara()
		flushQuote()
	}

	i := 0
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		// Code fence: everything until the matching fence is literal.
		if marker, lang, ok := fenceOpen(line); ok {
			flushAll()
			var code []string
			i++
			for i < len(lines) && !fenceClose(lines[i], marker) {
				code = append(code, lines[i])
				i++
			}
			if i < len(lines) {
				i++ // consume closing fence
			}
			blocks = append(blocks, CodeBlock{Language: lang, Lines: code})
			continue
		}

		// Blank line closes paragraphs and blockquotes. Lists handle
		// their own blank-line continuation below.
		if trimmed == "" {
			flushAll()
			i++
			continue
		}

		if m := atxHeading.FindStringSubmatch(line); m != nil {
			flushAll()
			level := len(m[1])
			text := strings.TrimSpace(m[2])
			blocks = append(blocks, Heading{Level: level, Text: text, Spans: parseInline(text)})
			i++
			continue
		}

		if isRuleLine(trimmed) {
			flushAll()
			blocks = append(blocks, HorizontalRule{})
			i++
			continue
		}

		// A line that is solely an image reference becomes an image block.
		if strings.HasPrefix(trimmed, "![") {
			if alt, url, n, ok := scanImage(trimmed); ok && strings.TrimSpace(trimmed[n:]) == "" {
				flushAll()
				blocks = append(blocks, ImageBlock{Alt: alt, URL: url})
				i++
				continue
			}
		}

		if listItemLine.MatchString(line) {
			flushAll()
			entries, n := p.collectList(lines[i:])
			blocks = append(blocks, p.buildLists(entries)...)
			i += n
			continue
		}

		// A line containing | followed by a separator row opens a table.
		if strings.Contains(line, "|") && i+1 < len(lines) {
			if aligns, ok := parseTableSeparator(lines[i+1]); ok {
				flushAll()
				header := splitTableRow(line)
				i += 2
				var rows [][]TableCell
				for i < len(lines) && strings.Contains(lines[i], "|") && strings.TrimSpace(lines[i]) != "" {
					rows = append(rows, splitTableRow(lines[i]))
					i++
				}
				blocks = append(blocks, TableBlock{Aligns: aligns, Header: header, Rows: rows})
				continue
			}
		}

		if strings.HasPrefix(trimmed, ">") {
			flushPara()
			quote = append(quote, strings.TrimSpace(strings.TrimPrefix(trimmed, ">")))
			i++
			continue
		}

		// Anything else accumulates into the current paragraph.
		flushQuote()
		para = append(para, line)
		i++
	}
	flushAll()

	return blocks
}

// collectList consumes the run of list lines starting at lines[0] and
// returns the raw entries plus the number of lines consumed. A blank
// line ends the list only when the next non-blank line is not itself a
// list item at equal-or-deeper indent.
func (p *blockParser) collectList(lines []string) ([]listEntry, int) {
	var entries []listEntry
	i := 0
	for i < len(lines) {
		line := lines[i]

		if strings.TrimSpace(line) == "" {
			j := i
			for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
				j++
			}
			if j >= len(lines) {
				break
			}
			next := listItemLine.FindStringSubmatch(lines[j])
			if next == nil {
				break
			}
			lastLevel := 0
			if len(entries) > 0 {
				lastLevel = entries[len(entries)-1].level
			}
			if p.indentLevel(next[1]) < lastLevel {
				break
			}
			i = j
			continue
		}

		m := listItemLine.FindStringSubmatch(line)
		if m == nil {
			break
		}
		entries = append(entries, listEntry{
			level:   p.indentLevel(m[1]),
			ordered: isOrderedMarker(m[2]),
			text:    m[3],
		})
		i++
	}
	return entries, i
}

// indentLevel maps leading whitespace to a nesting level. Tabs count as
// one unit; ambiguous indentation rounds down to the nearest level.
func (p *blockParser) indentLevel(indent string) int {
	width := 0
	for _, r := range indent {
		if r == '\t' {
			width += p.indentUnit
		} else {
			width++
		}
	}
	return width / p.indentUnit
}

func isOrderedMarker(marker string) bool {
	return marker != "-" && marker != "*" && marker != "+"
}

// buildLists resolves raw entries into one or more List blocks. A change
// of list kind (ordered vs unordered) at the base level starts a new
// block, so ordered lists restart numbering at 1.
func (p *blockParser) buildLists(entries []listEntry) []Block {
	var blocks []Block
	rest := entries
	for len(rest) > 0 {
		lst, n := buildList(rest, rest[0].level)
		blocks = append(blocks, lst)
		rest = rest[n:]
	}
	return blocks
}

// buildList builds the list rooted at the given nesting level and
// reports how many entries it consumed. Deeper entries nest under the
// most recent item at this level.
func buildList(entries []listEntry, level int) (List, int) {
	lst := List{Ordered: entries[0].ordered}
	i := 0
	for i < len(entries) {
		e := entries[i]
		if e.level < level {
			break
		}
		if e.level == level {
			if e.ordered != lst.Ordered && len(lst.Items) > 0 {
				break
			}
			lst.Items = append(lst.Items, ListItem{Spans: parseInline(e.text)})
			i++
			continue
		}

		nested, n := buildList(entries[i:], e.level)
		if len(lst.Items) == 0 {
			// Over-indented opener with no parent item to hang off.
			lst.Items = append(lst.Items, ListItem{Nested: &nested})
		} else {
			last := &lst.Items[len(lst.Items)-1]
			if last.Nested == nil {
				last.Nested = &nested
			} else {
				last.Nested.Items = append(last.Nested.Items, nested.Items...)
			}
		}
		i += n
	}
	return lst, i
}

// fenceOpen reports whether the line opens a code fence (three or more
// identical backticks or tildes) and returns the fence marker and the
// language tag that follows it.
func fenceOpen(line string) (marker, lang string, ok bool) {
	t := strings.TrimLeft(line, " ")
	if len(t) < 3 {
		return "", "", false
	}
	c := t[0]
	if c != '`' && c != '~' {
		return "", "", false
	}
	n := 0
	for n < len(t) && t[n] == c {
		n++
	}
	if n < 3 {
		return "", "", false
	}
	return t[:n], strings.TrimSpace(t[n:]), true
}

// fenceClose reports whether the line closes a fence opened with marker:
// at least as many of the same fence character, and nothing else.
func fenceClose(line, marker string) bool {
	t := strings.TrimSpace(line)
	if len(t) < len(marker) {
		return false
	}
	c := marker[0]
	for i := 0; i < len(t); i++ {
		if t[i] != c {
			return false
		}
	}
	return true
}

// isRuleLine reports whether the trimmed line is a horizontal rule:
// three or more of the same -, * or _ character, spaces allowed.
func isRuleLine(trimmed string) bool {
	compact := strings.ReplaceAll(trimmed, " ", "")
	if len(compact) < 3 {
		return false
	}
	c := compact[0]
	if c != '-' && c != '*' && c != '_' {
		return false
	}
	for i := 1; i < len(compact); i++ {
		if compact[i] != c {
			return false
		}
	}
	return true
}

// parseTableSeparator parses the alignment row of a pipe table. Every
// cell must match :?-+:? for the row to count as a separator.
func parseTableSeparator(line string) ([]Alignment, bool) {
	if !strings.Contains(line, "|") {
		return nil, false
	}
	cells := splitCells(line)
	if len(cells) == 0 {
		return nil, false
	}
	aligns := make([]Alignment, 0, len(cells))
	for _, cell := range cells {
		if !tableSeparatorCell.MatchString(cell) {
			return nil, false
		}
		left := strings.HasPrefix(cell, ":")
		right := strings.HasSuffix(cell, ":")
		switch {
		case left && right:
			aligns = append(aligns, AlignCenter)
		case right:
			aligns = append(aligns, AlignRight)
		case left:
			aligns = append(aligns, AlignLeft)
		default:
			aligns = append(aligns, AlignNone)
		}
	}
	return aligns, true
}

// splitCells splits a table line on pipes, dropping the optional outer
// pair and trimming each cell.
func splitCells(line string) []string {
	t := strings.TrimSpace(line)
	t = strings.TrimPrefix(t, "|")
	t = strings.TrimSuffix(t, "|")
	parts := strings.Split(t, "|")
	cells := make([]string, len(parts))
	for i, part := range parts {
		cells[i] = strings.TrimSpace(part)
	}
	return cells
}

// splitTableRow turns a table line into cells with parsed inline spans.
func splitTableRow(line string) []TableCell {
	raw := splitCells(line)
	cells := make([]TableCell, len(raw))
	for i, text := range raw {
		cells[i] = TableCell{Text: text, Spans: parseInline(text)}
	}
	return cells
}
