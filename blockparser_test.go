package md2wechat

import (
	"testing"
)

func parseBlocks(t *testing.T, body string) []Block {
	t.Helper()
	return newBlockParser(defaultIndentUnit).parse(body)
}

func TestBlockParser_Headings(t *testing.T) {
	t.Parallel()

	blocks := parseBlocks(t, "# One\n## Two\n### Three\n#### Four\n##### Five\n###### Six")
	if len(blocks) != 6 {
		t.Fatalf("got %d blocks, want 6", len(blocks))
	}
	for i, b := range blocks {
		h, ok := b.(Heading)
		if !ok {
			t.Fatalf("block %d is %T, want Heading", i, b)
		}
		if h.Level != i+1 {
			t.Errorf("block %d level = %d, want %d", i, h.Level, i+1)
		}
	}
}

func TestBlockParser_HeadingTrailingHashes(t *testing.T) {
	t.Parallel()

	blocks := parseBlocks(t, "## Closed ##")
	h, ok := blocks[0].(Heading)
	if !ok || h.Text != "Closed" {
		t.Errorf("got %#v, want Heading{Text: Closed}", blocks[0])
	}
}

func TestBlockParser_Paragraphs(t *testing.T) {
	t.Parallel()

	blocks := parseBlocks(t, "line one\nline two\n\nsecond para")
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	p := blocks[0].(Paragraph)
	if p.Text != "line one\nline two" {
		t.Errorf("first paragraph text = %q", p.Text)
	}
}

func TestBlockParser_HorizontalRule(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"---", "***", "___", "- - -", "-----"} {
		blocks := parseBlocks(t, input)
		if len(blocks) != 1 {
			t.Fatalf("%q: got %d blocks, want 1", input, len(blocks))
		}
		if _, ok := blocks[0].(HorizontalRule); !ok {
			t.Errorf("%q parsed as %T, want HorizontalRule", input, blocks[0])
		}
	}
}

func TestBlockParser_ImageBlock(t *testing.T) {
	t.Parallel()

	t.Run("standalone image line", func(t *testing.T) {
		t.Parallel()

		blocks := parseBlocks(t, "![cover](https://example.com/c.png)")
		img, ok := blocks[0].(ImageBlock)
		if !ok {
			t.Fatalf("got %T, want ImageBlock", blocks[0])
		}
		if img.URL != "https://example.com/c.png" || img.Alt != "cover" {
			t.Errorf("ImageBlock = %#v", img)
		}
	})

	t.Run("image with trailing text stays a paragraph", func(t *testing.T) {
		t.Parallel()

		blocks := parseBlocks(t, "![a](https://e.com/a.png) trailing")
		if _, ok := blocks[0].(Paragraph); !ok {
			t.Errorf("got %T, want Paragraph", blocks[0])
		}
	})
}

func TestBlockParser_Lists(t *testing.T) {
	t.Parallel()

	t.Run("flat unordered", func(t *testing.T) {
		t.Parallel()

		blocks := parseBlocks(t, "- a\n- b\n- c")
		lst := blocks[0].(List)
		if lst.Ordered || len(lst.Items) != 3 {
			t.Errorf("List = %#v", lst)
		}
	})

	t.Run("nested by two spaces", func(t *testing.T) {
		t.Parallel()

		blocks := parseBlocks(t, "- a\n  - b\n  - c\n- d")
		lst := blocks[0].(List)
		if len(lst.Items) != 2 {
			t.Fatalf("top-level items = %d, want 2", len(lst.Items))
		}
		nested := lst.Items[0].Nested
		if nested == nil || len(nested.Items) != 2 {
			t.Fatalf("nested = %#v", nested)
		}
	})

	t.Run("tab indents one level", func(t *testing.T) {
		t.Parallel()

		blocks := parseBlocks(t, "- a\n\t- b")
		lst := blocks[0].(List)
		if lst.Items[0].Nested == nil {
			t.Error("tab-indented item did not nest")
		}
	})

	t.Run("kind change splits blocks so numbering restarts", func(t *testing.T) {
		t.Parallel()

		blocks := parseBlocks(t, "1. a\n2. b\n- c\n1. d")
		if len(blocks) != 3 {
			t.Fatalf("got %d blocks, want 3: %#v", len(blocks), blocks)
		}
		if !blocks[0].(List).Ordered || blocks[1].(List).Ordered || !blocks[2].(List).Ordered {
			t.Errorf("kinds wrong: %#v", blocks)
		}
	})

	t.Run("blank line inside deeper continuation", func(t *testing.T) {
		t.Parallel()

		blocks := parseBlocks(t, "- a\n\n  - b")
		lst := blocks[0].(List)
		if len(blocks) != 1 || lst.Items[0].Nested == nil {
			t.Errorf("blank-line continuation broken: %#v", blocks)
		}
	})

	t.Run("blank line before shallower content ends the list", func(t *testing.T) {
		t.Parallel()

		blocks := parseBlocks(t, "  - a\n\n- b")
		if len(blocks) != 2 {
			t.Errorf("got %d blocks, want 2: %#v", len(blocks), blocks)
		}
	})

	t.Run("ordered markers", func(t *testing.T) {
		t.Parallel()

		blocks := parseBlocks(t, "1. x\n10. y")
		lst := blocks[0].(List)
		if !lst.Ordered || len(lst.Items) != 2 {
			t.Errorf("List = %#v", lst)
		}
	})
}

func TestBlockParser_CodeFences(t *testing.T) {
	t.Parallel()

	t.Run("backtick fence with language", func(t *testing.T) {
		t.Parallel()

		blocks := parseBlocks(t, "```go\nfunc main() {}\n```")
		cb := blocks[0].(CodeBlock)
		if cb.Language != "go" || len(cb.Lines) != 1 {
			t.Errorf("CodeBlock = %#v", cb)
		}
	})

	t.Run("tilde fence", func(t *testing.T) {
		t.Parallel()

		blocks := parseBlocks(t, "~~~\ncode\n~~~")
		if _, ok := blocks[0].(CodeBlock); !ok {
			t.Errorf("got %T, want CodeBlock", blocks[0])
		}
	})

	t.Run("unclosed fence runs to end of input", func(t *testing.T) {
		t.Parallel()

		blocks := parseBlocks(t, "```\nline 1\nline 2")
		cb := blocks[0].(CodeBlock)
		if len(cb.Lines) != 2 {
			t.Errorf("Lines = %#v", cb.Lines)
		}
	})

	t.Run("markdown inside fence stays literal", func(t *testing.T) {
		t.Parallel()

		blocks := parseBlocks(t, "```\n# not a heading\n- not a list\n```")
		cb := blocks[0].(CodeBlock)
		if len(blocks) != 1 || len(cb.Lines) != 2 {
			t.Errorf("fence content was parsed: %#v", blocks)
		}
	})
}

func TestBlockParser_Tables(t *testing.T) {
	t.Parallel()

	t.Run("header separator rows", func(t *testing.T) {
		t.Parallel()

		blocks := parseBlocks(t, "| A | B |\n|---|---|\n| 1 | 2 |\n| 3 | 4 |")
		tb := blocks[0].(TableBlock)
		if len(tb.Header) != 2 || len(tb.Rows) != 2 {
			t.Errorf("TableBlock = %#v", tb)
		}
	})

	t.Run("alignment markers", func(t *testing.T) {
		t.Parallel()

		blocks := parseBlocks(t, "| A | B | C | D |\n|:--|:-:|--:|---|\n| 1 | 2 | 3 | 4 |")
		tb := blocks[0].(TableBlock)
		want := []Alignment{AlignLeft, AlignCenter, AlignRight, AlignNone}
		for i, a := range want {
			if tb.Aligns[i] != a {
				t.Errorf("Aligns[%d] = %v, want %v", i, tb.Aligns[i], a)
			}
		}
	})

	t.Run("pipe line without separator is a paragraph", func(t *testing.T) {
		t.Parallel()

		blocks := parseBlocks(t, "a | b\nplain text")
		if _, ok := blocks[0].(Paragraph); !ok {
			t.Errorf("got %T, want Paragraph", blocks[0])
		}
	})
}

func TestBlockParser_Blockquote(t *testing.T) {
	t.Parallel()

	blocks := parseBlocks(t, "> line one\n> line two")
	q, ok := blocks[0].(Blockquote)
	if !ok {
		t.Fatalf("got %T, want Blockquote", blocks[0])
	}
	if q.Text != "line one line two" {
		t.Errorf("Text = %q", q.Text)
	}
}

func TestBlockParser_EmptyInput(t *testing.T) {
	t.Parallel()

	if blocks := parseBlocks(t, ""); len(blocks) != 0 {
		t.Errorf("empty input produced %#v", blocks)
	}
	if blocks := parseBlocks(t, "\n\n\n"); len(blocks) != 0 {
		t.Errorf("blank input produced %#v", blocks)
	}
}
