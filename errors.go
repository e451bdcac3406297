package md2wechat

import "errors"

// Sentinel errors for library operations.
var (
	ErrUnknownTheme = errors.New("unknown theme")
	ErrUnknownMode  = errors.New("unknown article mode")
	ErrNoParser     = errors.New("no parser available for input format")
	ErrHTMLParse    = errors.New("HTML input parsing failed")
)
