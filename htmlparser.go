package md2wechat

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// summaryCap mirrors the platform digest length for HTML input, where no
// paragraph tree exists to re-derive a summary from.
const htmlSummaryCap = 120

// htmlParser is the simplified raw-HTML input path. It bypasses the
// block pipeline: the body content passes through as a RawHTML block
// while <title> (or the first <h1>) and <img> URLs are lifted into the
// document metadata, so the conversion still produces a RenderResult of
// the usual shape.
type htmlParser struct{}

func newHTMLParser() *htmlParser {
	return &htmlParser{}
}

func (p *htmlParser) Supports(identifier string) bool {
	switch strings.ToLower(identifier) {
	case "html", "htm":
		return true
	}
	lower := strings.ToLower(identifier)
	return strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm")
}

func (p *htmlParser) Parse(content string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLParse, err)
	}

	var title, h1, summary string
	var images []string
	var body *html.Node

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Title:
				if title == "" {
					title = strings.TrimSpace(nodeText(n))
				}
			case atom.H1:
				if h1 == "" {
					h1 = strings.TrimSpace(nodeText(n))
				}
			case atom.P:
				if summary == "" {
					summary = strings.TrimSpace(nodeText(n))
				}
			case atom.Img:
				if src := attrValue(n, "src"); src != "" {
					images = append(images, src)
				}
			case atom.Body:
				body = n
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	if title == "" {
		title = h1
	}

	inner, err := renderChildren(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLParse, err)
	}

	return &Document{
		Meta: FrontMatter{Title: title},
		Blocks: []Block{RawHTML{
			HTML:    strings.TrimSpace(inner),
			Images:  images,
			Summary: truncateRunes(summary, htmlSummaryCap),
		}},
	}, nil
}

// nodeText concatenates all text nodes under n.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// renderChildren serializes the children of n (typically <body>) back to
// HTML. html.Parse always synthesizes a body node, so n is only nil for
// a nil parse tree.
func renderChildren(n *html.Node) (string, error) {
	if n == nil {
		return "", nil
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}
