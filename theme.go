package md2wechat

import (
	"fmt"
	"sort"
	"strings"
)

// Theme is an immutable set of visual styling rules applied during
// rendering. Only hex colors are used; the WeChat editor drops rgba()
// values and many CSS shorthands.
type Theme struct {
	Name        string // registry key
	DisplayName string

	// H1 / title banner
	HeaderBackground string
	HeaderTextColor  string
	HeaderFontSize   string

	// H2/H3 section cards
	CardBackground  string
	CardBorderColor string
	CardTextColor   string

	// Headings inside the body
	AccentColor  string // H2 underline, list glyphs
	HeadingColor string
	H2FontSize   string
	H3Background string
	H3Border     string
	H3FontSize   string

	// Code blocks
	CodeBackground  string
	CodeBorderColor string

	// Meta line (date, tags) and source footer
	MetaTextColor   string
	MetaFontSize    string
	SourceTextColor string
	SourceFontSize  string

	// Pixels of extra left padding per list nesting level.
	ListIndentStep int
}

// DefaultTheme is used when Input.Theme is empty.
const DefaultTheme = "academic_gray"

// themes is the closed theme catalogue. It is never mutated after
// initialization; there is no dynamic registration.
var themes = map[string]Theme{
	"academic_gray": {
		Name:             "academic_gray",
		DisplayName:      "学术灰风格",
		HeaderBackground: "#3C3C3C",
		HeaderTextColor:  "#FFFFFF",
		HeaderFontSize:   "20px",
		CardBackground:   "#FAFAFA",
		CardBorderColor:  "#E8E8E8",
		CardTextColor:    "#333333",
		AccentColor:      "#333333",
		HeadingColor:     "#333333",
		H2FontSize:       "18px",
		H3Background:     "#F5F5F5",
		H3Border:         "#3C3C3C",
		H3FontSize:       "16px",
		CodeBackground:   "#F4F4F4",
		CodeBorderColor:  "#E0E0E0",
		MetaTextColor:    "#888888",
		MetaFontSize:     "12px",
		SourceTextColor:  "#999999",
		SourceFontSize:   "12px",
		ListIndentStep:   24,
	},
	"festival": {
		Name:             "festival",
		DisplayName:      "节日快乐色彩系",
		HeaderBackground: "#FF6B6B",
		HeaderTextColor:  "#FFFFFF",
		HeaderFontSize:   "20px",
		CardBackground:   "#FFFDE7",
		CardBorderColor:  "#FFB74D",
		CardTextColor:    "#5D4037",
		AccentColor:      "#FF6B6B",
		HeadingColor:     "#D32F2F",
		H2FontSize:       "18px",
		H3Background:     "#FFE082",
		H3Border:         "#FF6B6B",
		H3FontSize:       "16px",
		CodeBackground:   "#FFF3E0",
		CodeBorderColor:  "#FFB74D",
		MetaTextColor:    "#8D6E63",
		MetaFontSize:     "12px",
		SourceTextColor:  "#A1887F",
		SourceFontSize:   "12px",
		ListIndentStep:   24,
	},
	"tech": {
		Name:             "tech",
		DisplayName:      "科技产品介绍色彩系",
		HeaderBackground: "#1565C0",
		HeaderTextColor:  "#FFFFFF",
		HeaderFontSize:   "20px",
		CardBackground:   "#E8F4FD",
		CardBorderColor:  "#42A5F5",
		CardTextColor:    "#0D47A1",
		AccentColor:      "#1565C0",
		HeadingColor:     "#0D47A1",
		H2FontSize:       "18px",
		H3Background:     "#BBDEFB",
		H3Border:         "#1565C0",
		H3FontSize:       "16px",
		CodeBackground:   "#E1F5FE",
		CodeBorderColor:  "#26C6DA",
		MetaTextColor:    "#546E7A",
		MetaFontSize:     "12px",
		SourceTextColor:  "#78909C",
		SourceFontSize:   "12px",
		ListIndentStep:   24,
	},
	"announcement": {
		Name:             "announcement",
		DisplayName:      "重大事情告知色彩系",
		HeaderBackground: "#D32F2F",
		HeaderTextColor:  "#FFFFFF",
		HeaderFontSize:   "22px",
		CardBackground:   "#FFF8E1",
		CardBorderColor:  "#FF5722",
		CardTextColor:    "#BF360C",
		AccentColor:      "#D32F2F",
		HeadingColor:     "#BF360C",
		H2FontSize:       "20px",
		H3Background:     "#FFE0B2",
		H3Border:         "#D32F2F",
		H3FontSize:       "17px",
		CodeBackground:   "#FFEBEE",
		CodeBorderColor:  "#EF5350",
		MetaTextColor:    "#8D6E63",
		MetaFontSize:     "12px",
		SourceTextColor:  "#A1887F",
		SourceFontSize:   "12px",
		ListIndentStep:   24,
	},
}

// LookupTheme returns the theme for a name. An empty name resolves to
// DefaultTheme. Unknown names fail with ErrUnknownTheme.
func LookupTheme(name string) (Theme, error) {
	if name == "" {
		name = DefaultTheme
	}
	t, ok := themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownTheme, name, strings.Join(ThemeNames(), ", "))
	}
	return t, nil
}

// ThemeNames returns the catalogue keys in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// bgcolor strips the leading # for use in HTML bgcolor attributes, which
// the WeChat editor preserves more reliably than background CSS.
func bgcolor(hex string) string {
	return strings.TrimPrefix(hex, "#")
}
