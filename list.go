package md2wechat

import (
	"fmt"
	"strings"
)

// renderList renders a list recursively. The editor does not reliably
// preserve native ul/ol semantics, so markers become themed glyphs on
// plain paragraphs, indented by one theme step per nesting depth.
// Ordered lists restart numbering at 1 for every list, nested or not.
func renderList(ctx RenderContext, lst List, depth int) string {
	var b strings.Builder
	if depth == 0 {
		b.WriteString(`<section style="margin:12px 0;">`)
	}

	pad := ctx.Theme.ListIndentStep * depth
	counter := 0
	for _, item := range lst.Items {
		if item.Spans != nil {
			counter++
			glyph := "•"
			if lst.Ordered {
				glyph = fmt.Sprintf("%d.", counter)
			}
			fmt.Fprintf(&b,
				`<p style="margin:6px 0;line-height:1.7;padding-left:%dpx;"><span style="color:%s;font-weight:bold;">%s</span> %s</p>`,
				pad, ctx.Theme.AccentColor, glyph, renderSpans(ctx, item.Spans))
		}
		if item.Nested != nil {
			b.WriteString(renderList(ctx, *item.Nested, depth+1))
		}
	}

	if depth == 0 {
		b.WriteString(`</section>`)
	}
	return b.String()
}
