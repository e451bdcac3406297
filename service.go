package md2wechat

import (
	"context"
	"fmt"
)

// Service orchestrates the conversion pipeline. It holds no mutable
// state across calls; one Service may serve many goroutines.
type Service struct {
	cfg          serviceConfig
	extraParsers []ContentParser
	parsers      []ContentParser
}

// New creates a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{indentUnit: defaultIndentUnit},
	}
	for _, opt := range opts {
		opt(s)
	}

	// Caller-supplied parsers take precedence over the built-ins.
	s.parsers = append(s.parsers, s.extraParsers...)
	s.parsers = append(s.parsers,
		newMarkdownParser(s.cfg.indentUnit),
		newHTMLParser(),
	)
	return s
}

// Convert runs the full pipeline: parse, sanitize, render, extract.
// Configuration errors (unknown theme or mode, unsupported format) are
// fatal and reported before any output is produced; body content never
// fails outright, malformed constructs degrade to the closest safe
// rendering. An empty document is not an error: title and summary fall
// back to their defaults.
func (s *Service) Convert(ctx context.Context, input Input) (*RenderResult, error) {
	theme, err := LookupTheme(input.Theme)
	if err != nil {
		return nil, err
	}
	mode := input.Mode
	if mode == "" {
		mode = ModeNews
	}
	if mode != ModeNews && mode != ModeNewspic {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	parser, err := s.parserFor(input.Format)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := parser.Parse(input.Content)
	if err != nil {
		return nil, fmt.Errorf("parsing input: %w", err)
	}

	sanitizeDocument(doc)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rctx := newRenderContext(theme, mode)
	body := assembleBody(rctx, doc.Blocks)
	title, summary, cover, images := extractMetadata(doc, rctx)

	return &RenderResult{
		HTML:     assemble(rctx, doc, body, input.Source),
		Title:    title,
		Summary:  summary,
		CoverURL: cover,
		Images:   images,
	}, nil
}

// parserFor finds the first parser supporting the identifier. An empty
// identifier selects Markdown.
func (s *Service) parserFor(identifier string) (ContentParser, error) {
	for _, p := range s.parsers {
		if p.Supports(identifier) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNoParser, identifier)
}
