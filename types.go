package md2wechat

import "fmt"

// Mode selects the article type the output is prepared for.
type Mode string

// Article modes.
const (
	// ModeNews is the standard article mode with no core-enforced caps.
	ModeNews Mode = "news"

	// ModeNewspic is the image-focused mode (小绿书): at most 20 images
	// and 1000 characters of summary text, enforced during conversion.
	ModeNewspic Mode = "newspic"
)

// Caps applied in newspic mode.
const (
	newspicImageCap = 20
	newspicTextCap  = 1000
)

// ParseMode validates a mode string. An empty string resolves to ModeNews.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeNews, nil
	case ModeNews, ModeNewspic:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Input contains conversion parameters.
type Input struct {
	Content string // document text, Markdown or raw HTML (may be empty)
	Format  string // "markdown" (default), "html", or a file name with a known extension
	Theme   string // theme name; empty selects DefaultTheme
	Mode    Mode   // article mode; empty selects ModeNews
	Source  string // optional attribution; falls back to front-matter permalink
}

// RenderContext carries the immutable per-conversion rendering state.
// It is passed by value into every renderer and never mutated in place.
type RenderContext struct {
	Theme         Theme
	Mode          Mode
	ImageCountCap int // 0 means unlimited
	TextLengthCap int // in runes; 0 means unlimited
}

// newRenderContext derives the caps for a mode.
func newRenderContext(theme Theme, mode Mode) RenderContext {
	rc := RenderContext{Theme: theme, Mode: mode}
	if mode == ModeNewspic {
		rc.ImageCountCap = newspicImageCap
		rc.TextLengthCap = newspicTextCap
	}
	return rc
}

// RenderResult is the output of a single conversion.
type RenderResult struct {
	HTML     string   `json:"html"`      // editor-ready HTML
	Title    string   `json:"title"`     // front-matter title, first H1, or "Untitled"
	Summary  string   `json:"summary"`   // first paragraph text, capped by mode
	CoverURL string   `json:"cover_url"` // first image URL, empty when the document has none
	Images   []string `json:"images"`    // all image URLs, source order, deduplicated, capped by mode
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	indentUnit int
}

// defaultIndentUnit is the number of spaces per list nesting level.
const defaultIndentUnit = 2

// WithIndentUnit sets the number of spaces that make up one list nesting
// level. Panics if n <= 0 (programmer error).
func WithIndentUnit(n int) Option {
	if n <= 0 {
		panic("md2wechat: WithIndentUnit requires a positive unit")
	}
	return func(s *Service) {
		s.cfg.indentUnit = n
	}
}

// WithParsers prepends custom content parsers to the built-in ones.
// Parsers are consulted in order; the first whose Supports returns true
// handles the input.
func WithParsers(parsers ...ContentParser) Option {
	return func(s *Service) {
		s.extraParsers = append(s.extraParsers, parsers...)
	}
}
