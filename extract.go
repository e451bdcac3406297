package md2wechat

// fallbackTitle is used when neither front matter nor a body H1 names
// the document.
const fallbackTitle = "Untitled"

// extractMetadata derives the publishing metadata from the parsed tree.
// The reads are non-destructive: an H1 used for the title still renders
// as a visible heading in the body.
func extractMetadata(doc *Document, ctx RenderContext) (title, summary, cover string, images []string) {
	title = doc.Meta.Title
	images = []string{}
	seen := make(map[string]bool)

	addImage := func(url string) {
		if url == "" || seen[url] {
			return
		}
		seen[url] = true
		if cover == "" {
			cover = url
		}
		images = append(images, url)
	}

	for _, b := range doc.Blocks {
		switch blk := b.(type) {
		case Heading:
			if blk.Level == 1 && title == "" {
				title = blk.Text
			}
			collectSpanImages(blk.Spans, addImage)
		case Paragraph:
			if summary == "" {
				summary = spanText(blk.Spans)
			}
			collectSpanImages(blk.Spans, addImage)
		case Blockquote:
			collectSpanImages(blk.Spans, addImage)
		case ImageBlock:
			addImage(blk.URL)
		case List:
			collectListImages(blk, addImage)
		case TableBlock:
			collectCellImages(blk.Header, addImage)
			for _, row := range blk.Rows {
				collectCellImages(row, addImage)
			}
		case RawHTML:
			if summary == "" {
				summary = blk.Summary
			}
			for _, url := range blk.Images {
				addImage(url)
			}
		}
	}

	if title == "" {
		title = fallbackTitle
	}
	summary = truncateRunes(summary, ctx.TextLengthCap)
	if ctx.ImageCountCap > 0 && len(images) > ctx.ImageCountCap {
		images = images[:ctx.ImageCountCap]
	}
	return title, summary, cover, images
}

func collectSpanImages(spans []Span, add func(string)) {
	for _, sp := range spans {
		switch s := sp.(type) {
		case ImageSpan:
			add(s.URL)
		case BoldSpan:
			collectSpanImages(s.Inner, add)
		case ItalicSpan:
			collectSpanImages(s.Inner, add)
		}
	}
}

func collectListImages(lst List, add func(string)) {
	for _, item := range lst.Items {
		collectSpanImages(item.Spans, add)
		if item.Nested != nil {
			collectListImages(*item.Nested, add)
		}
	}
}

func collectCellImages(cells []TableCell, add func(string)) {
	for _, c := range cells {
		collectSpanImages(c.Spans, add)
	}
}

// truncateRunes caps s at n runes; n <= 0 means unlimited.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
