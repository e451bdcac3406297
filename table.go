package md2wechat

import (
	"fmt"
	"strings"
)

// plainCellSeparator joins cells in the degraded plain-text rendering.
const plainCellSeparator = " | "

// renderTable renders a pipe table honoring per-column alignment. When
// any body row's column count differs from the header's, the whole table
// degrades to plain text instead of emitting malformed markup.
func renderTable(ctx RenderContext, tb TableBlock) string {
	if len(tb.Header) == 0 {
		return ""
	}
	for _, row := range tb.Rows {
		if len(row) != len(tb.Header) {
			return renderTablePlain(tb)
		}
	}

	var b strings.Builder
	b.WriteString(`<table style="width:100%;border-collapse:collapse;margin:16px 0;font-size:14px;">`)

	b.WriteString("<thead><tr>")
	for i, cell := range tb.Header {
		fmt.Fprintf(&b,
			`<th style="padding:10px 12px;border:1px solid #DDDDDD;%sbackground:%s;font-weight:bold;">%s</th>`,
			alignStyle(tb.Aligns, i), ctx.Theme.H3Background, renderSpans(ctx, cell.Spans))
	}
	b.WriteString("</tr></thead>")

	if len(tb.Rows) > 0 {
		b.WriteString("<tbody>")
		for _, row := range tb.Rows {
			b.WriteString("<tr>")
			for i, cell := range row {
				fmt.Fprintf(&b,
					`<td style="padding:10px 12px;border:1px solid #DDDDDD;%s">%s</td>`,
					alignStyle(tb.Aligns, i), renderSpans(ctx, cell.Spans))
			}
			b.WriteString("</tr>")
		}
		b.WriteString("</tbody>")
	}

	b.WriteString("</table>")
	return b.String()
}

// alignStyle returns the text-align declaration for column i, or "" when
// the separator row declared no alignment.
func alignStyle(aligns []Alignment, i int) string {
	if i >= len(aligns) {
		return ""
	}
	v := aligns[i].cssValue()
	if v == "" {
		return ""
	}
	return fmt.Sprintf("text-align:%s;", v)
}

// renderTablePlain is the soft degradation for ragged tables: one line
// of separator-joined cell text per row, never an error.
func renderTablePlain(tb TableBlock) string {
	var b strings.Builder
	b.WriteString(`<section style="margin:16px 0;font-size:14px;">`)
	writeRow := func(cells []TableCell) {
		texts := make([]string, len(cells))
		for i, c := range cells {
			texts[i] = c.Text
		}
		fmt.Fprintf(&b, `<p style="margin:4px 0;line-height:1.7;">%s</p>`,
			escapeHTML(strings.Join(texts, plainCellSeparator)))
	}
	writeRow(tb.Header)
	for _, row := range tb.Rows {
		writeRow(row)
	}
	b.WriteString(`</section>`)
	return b.String()
}
