package md2wechat

import (
	"fmt"
	"html"
	"strings"
)

// monoFontFamily is the font stack for code output. SF Mono renders on
// iOS WeChat; Monaco and the generic fallback cover the rest.
const monoFontFamily = "SF Mono,Monaco,monospace"

// linkColor is the WeChat in-article link blue.
const linkColor = "#576B95"

// escapeHTML escapes HTML-significant characters for text content and
// attribute values.
func escapeHTML(s string) string {
	return html.EscapeString(s)
}

// renderSpans emits the HTML for a span sequence.
func renderSpans(ctx RenderContext, spans []Span) string {
	var b strings.Builder
	for _, sp := range spans {
		switch s := sp.(type) {
		case TextSpan:
			b.WriteString(escapeHTML(s.Text))
		case BoldSpan:
			b.WriteString("<strong>")
			b.WriteString(renderSpans(ctx, s.Inner))
			b.WriteString("</strong>")
		case ItalicSpan:
			b.WriteString("<em>")
			b.WriteString(renderSpans(ctx, s.Inner))
			b.WriteString("</em>")
		case CodeSpan:
			fmt.Fprintf(&b,
				`<code style="background:%s;padding:2px 6px;font-family:%s;font-size:0.9em;color:#C7254E;">%s</code>`,
				ctx.Theme.CodeBackground, monoFontFamily, escapeHTML(s.Code))
		case LinkSpan:
			fmt.Fprintf(&b,
				`<a href="%s" style="color:%s;text-decoration:none;">%s</a>`,
				escapeHTML(s.Href), linkColor, escapeHTML(s.Text))
		case ImageSpan:
			fmt.Fprintf(&b,
				`<img src="%s" alt="%s" style="max-width:100%%;vertical-align:middle;" />`,
				escapeHTML(s.URL), escapeHTML(s.Alt))
		}
	}
	return b.String()
}

// renderBlock dispatches over the block variants. The WeChat editor
// strips most structural CSS, so block layout uses nested tables with
// bgcolor attributes and inline styles only.
func renderBlock(ctx RenderContext, b Block) string {
	switch blk := b.(type) {
	case Heading:
		return renderHeading(ctx, blk)
	case Paragraph:
		return renderParagraph(ctx, blk)
	case List:
		return renderList(ctx, blk, 0)
	case CodeBlock:
		return renderCodeBlock(ctx, blk)
	case TableBlock:
		return renderTable(ctx, blk)
	case Blockquote:
		return renderBlockquote(ctx, blk)
	case HorizontalRule:
		return renderHorizontalRule()
	case ImageBlock:
		return renderImageBlock(blk)
	case RawHTML:
		return blk.HTML
	}
	return ""
}

// renderHeading renders any heading level 1-6. Every level produces
// visible output; none is dropped.
func renderHeading(ctx RenderContext, h Heading) string {
	text := renderSpans(ctx, h.Spans)
	t := ctx.Theme

	switch h.Level {
	case 1:
		// Full-width banner, same treatment as the front-matter title.
		return fmt.Sprintf(
			`<table width="100%%" cellpadding="20" cellspacing="0" border="0" bgcolor="%s" style="margin-bottom:16px;">`+
				`<tr><td style="color:%s;font-size:%s;font-weight:bold;">%s</td></tr></table>`,
			bgcolor(t.HeaderBackground), t.HeaderTextColor, t.HeaderFontSize, text)
	case 2:
		// Centered label over an accent underline. position:absolute and
		// border-radius do not survive the editor.
		return fmt.Sprintf(
			`<table width="100%%" cellpadding="0" cellspacing="0" border="0" style="margin:24px 0 16px;">`+
				`<tr><td align="center" style="border-bottom:2px solid %s;padding-bottom:8px;">`+
				`<span style="background:%s;color:#FFFFFF;padding:6px 20px;font-size:%s;font-weight:bold;">%s</span>`+
				`</td></tr></table>`,
			t.AccentColor, t.AccentColor, t.H2FontSize, text)
	case 3:
		return fmt.Sprintf(
			`<table width="100%%" cellpadding="8" cellspacing="0" border="0" bgcolor="%s" style="margin:18px 0 12px;">`+
				`<tr><td style="border-left:4px solid %s;font-size:%s;font-weight:bold;color:%s;">%s</td></tr></table>`,
			bgcolor(t.H3Background), t.H3Border, t.H3FontSize, t.HeadingColor, text)
	}

	size := 18 - (h.Level-4)*2
	if size < 14 {
		size = 14
	}
	return fmt.Sprintf(
		`<h%d style="font-size:%dpx;font-weight:bold;margin:14px 0 8px;color:%s;">%s</h%d>`,
		h.Level, size, t.HeadingColor, text, h.Level)
}

func renderParagraph(ctx RenderContext, p Paragraph) string {
	return fmt.Sprintf(`<p style="margin:12px 0;line-height:1.8;">%s</p>`, renderSpans(ctx, p.Spans))
}

func renderBlockquote(ctx RenderContext, q Blockquote) string {
	return fmt.Sprintf(
		`<table width="100%%" cellpadding="8" cellspacing="0" border="0" bgcolor="F9F9F9" style="margin:12px 0;">`+
			`<tr><td style="border-left:4px solid #DDDDDD;color:#666666;font-style:italic;">%s</td></tr></table>`,
		renderSpans(ctx, q.Spans))
}

func renderHorizontalRule() string {
	return `<table width="100%" cellpadding="0" cellspacing="0" border="0" style="margin:20px 0;">` +
		`<tr><td height="1" bgcolor="#DDDDDD"></td></tr></table>`
}

// renderImageBlock centers the image with a table wrapper; the platform
// substitutes the src for an uploaded media URL before submission.
func renderImageBlock(img ImageBlock) string {
	alt := ""
	if img.Alt != "" {
		alt = fmt.Sprintf(` alt="%s"`, escapeHTML(img.Alt))
	}
	return fmt.Sprintf(
		`<table width="100%%" cellpadding="0" cellspacing="0" border="0" style="margin:16px 0;">`+
			`<tr><td align="center"><img src="%s"%s width="100%%" style="display:block;" /></td></tr></table>`,
		escapeHTML(img.URL), alt)
}
