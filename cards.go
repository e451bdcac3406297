package md2wechat

import (
	"fmt"
	"strings"
)

// referenceKeywords mark bibliography sections, which render with
// lighter, smaller text.
var referenceKeywords = []string{"参考文献", "references", "参考", "bibliography"}

func isReferenceTitle(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range referenceKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// assembleBody renders the block sequence with section-card grouping:
// every H2/H3 heading opens a card that wraps itself and the following
// blocks until the next H2/H3 or end of document. H1, H4-H6, and blocks
// before the first H2/H3 render as plain theme-styled elements outside
// any card, and still produce visible output.
func assembleBody(ctx RenderContext, blocks []Block) string {
	var out strings.Builder
	var card []string
	inCard := false
	reference := false

	closeCard := func() {
		if !inCard {
			return
		}
		out.WriteString(wrapCard(ctx, strings.Join(card, ""), reference))
		card = nil
		inCard = false
		reference = false
	}

	for _, b := range blocks {
		if h, ok := b.(Heading); ok && (h.Level == 2 || h.Level == 3) {
			closeCard()
			inCard = true
			reference = isReferenceTitle(h.Text)
			card = append(card, renderBlock(ctx, b))
			continue
		}

		piece := renderBlock(ctx, b)
		if inCard {
			card = append(card, piece)
		} else {
			out.WriteString(piece)
		}
	}
	closeCard()

	return out.String()
}

// wrapCard draws the themed border and background around one section.
func wrapCard(ctx RenderContext, inner string, reference bool) string {
	extra := ""
	if reference {
		extra = "font-size:0.85em;color:#888888;"
	}
	return fmt.Sprintf(
		`<table width="100%%" cellpadding="12" cellspacing="0" border="0" bgcolor="%s">`+
			`<tr><td style="border:1px solid %s;line-height:1.9;%s">%s</td></tr></table>`,
		bgcolor(ctx.Theme.CardBackground), ctx.Theme.CardBorderColor, extra, inner)
}

// assemble produces the final output string: optional title banner and
// meta line from front matter, the rendered body, and an optional source
// footer, all wrapped in one outer table.
func assemble(ctx RenderContext, doc *Document, body, source string) string {
	var parts strings.Builder
	t := ctx.Theme

	if doc.Meta.Title != "" {
		fmt.Fprintf(&parts,
			`<table width="100%%" cellpadding="20" cellspacing="0" border="0" bgcolor="%s" style="margin-bottom:16px;">`+
				`<tr><td style="color:%s;font-size:%s;font-weight:bold;">%s</td></tr></table>`,
			bgcolor(t.HeaderBackground), t.HeaderTextColor, t.HeaderFontSize, escapeHTML(doc.Meta.Title))
	}

	if meta := metaLine(doc.Meta); meta != "" {
		fmt.Fprintf(&parts,
			`<table width="100%%" cellpadding="0" cellspacing="0" border="0" style="margin-bottom:16px;">`+
				`<tr><td style="color:%s;font-size:%s;padding:0 4px;">%s</td></tr></table>`,
			t.MetaTextColor, t.MetaFontSize, meta)
	}

	parts.WriteString(body)

	if source == "" {
		source = doc.Meta.Permalink
	}
	if source != "" {
		fmt.Fprintf(&parts,
			`<table width="100%%" cellpadding="16" cellspacing="0" border="0" style="margin-top:24px;">`+
				`<tr><td align="center" style="border-top:1px solid #EEEEEE;color:%s;font-size:%s;">`+
				`来源: <a href="%s" style="color:%s;">%s</a></td></tr></table>`,
			t.SourceTextColor, t.SourceFontSize, escapeHTML(source), t.SourceTextColor, escapeHTML(source))
	}

	return `<table width="100%" cellpadding="0" cellspacing="0" border="0"><tr><td>` +
		parts.String() + `</td></tr></table>`
}

// metaLine joins the front-matter date and #tags with a separator.
func metaLine(fm FrontMatter) string {
	var pieces []string
	if fm.Date != "" {
		pieces = append(pieces, escapeHTML(fm.Date))
	}
	if len(fm.Tags) > 0 {
		tags := make([]string, len(fm.Tags))
		for i, tag := range fm.Tags {
			tags[i] = "#" + escapeHTML(tag)
		}
		pieces = append(pieces, strings.Join(tags, " "))
	}
	return strings.Join(pieces, " | ")
}
