package main

import (
	"errors"
	"os"

	md2wechat "github.com/zkkython/md2wechat-skills"
	"github.com/zkkython/md2wechat-skills/internal/config"
	"github.com/zkkython/md2wechat-skills/internal/wechat"
)

// Exit codes for the md2wechat CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitAPI     = 4 // WeChat API errors
)

// errUsage marks flag and argument mistakes.
var errUsage = errors.New("usage error")

// errPublishFailed marks a publish run where at least one file failed.
var errPublishFailed = errors.New("one or more files failed to publish")

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var apiErr *wechat.APIError
	if errors.As(err, &apiErr) || errors.Is(err, errPublishFailed) {
		return ExitAPI
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, errNoInput) {
		return ExitIO
	}

	if errors.Is(err, errUsage) ||
		errors.Is(err, md2wechat.ErrUnknownTheme) ||
		errors.Is(err, md2wechat.ErrUnknownMode) ||
		errors.Is(err, md2wechat.ErrNoParser) ||
		errors.Is(err, config.ErrMissingAppID) ||
		errors.Is(err, config.ErrMissingAppSecret) {
		return ExitUsage
	}

	return ExitGeneral
}
