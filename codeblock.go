package md2wechat

import (
	"fmt"
	"strings"
)

// renderCodeBlock renders fenced code as a bordered monospace block with
// one right-aligned line-number marker per line, numbering from 1. All
// HTML-significant characters are escaped; nothing else is transformed.
// The language tag rides along as a data attribute for information only.
func renderCodeBlock(ctx RenderContext, cb CodeBlock) string {
	lines := trimTrailingBlank(cb.Lines)
	if len(lines) == 0 {
		return ""
	}

	indent := commonIndent(lines)

	var rows strings.Builder
	for i, line := range lines {
		content := line
		if len(content) >= indent {
			content = content[indent:]
		}
		content = escapeHTML(content)
		// The editor collapses leading whitespace inside table cells.
		content = strings.ReplaceAll(content, " ", "&nbsp;")

		fmt.Fprintf(&rows,
			`<tr><td style="color:#999999;width:2em;text-align:right;padding-right:1em;">%d</td><td>%s</td></tr>`,
			i+1, content)
	}

	codeTable := fmt.Sprintf(
		`<table width="100%%" cellpadding="0" cellspacing="0" border="0" style="font-family:%s;font-size:13px;line-height:1.6;">%s</table>`,
		monoFontFamily, rows.String())

	lang := ""
	if cb.Language != "" {
		lang = fmt.Sprintf(` data-language="%s"`, escapeHTML(cb.Language))
	}

	return fmt.Sprintf(
		`<table width="100%%" cellpadding="12" cellspacing="0" border="0" bgcolor="%s"%s>`+
			`<tr><td style="border:1px solid %s;">%s</td></tr></table>`,
		bgcolor(ctx.Theme.CodeBackground), lang, ctx.Theme.CodeBorderColor, codeTable)
}

// trimTrailingBlank drops trailing all-whitespace lines.
func trimTrailingBlank(lines []string) []string {
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[:end]
}

// commonIndent returns the shortest leading-space run across non-blank
// lines, so uniformly indented snippets render flush left.
func commonIndent(lines []string) int {
	min := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " "))
		if min == -1 || n < min {
			min = n
		}
	}
	if min == -1 {
		return 0
	}
	return min
}
