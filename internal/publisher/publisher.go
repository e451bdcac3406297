// Package publisher turns a source document into a WeChat draft:
// convert to editor HTML, rehost the images, pick a cover, and create
// the draft through the API.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	md2wechat "github.com/zkkython/md2wechat-skills"
	"github.com/zkkython/md2wechat-skills/internal/imageproc"
	"github.com/zkkython/md2wechat-skills/internal/wechat"
)

// Platform limits on draft fields, in runes.
const (
	titleCap  = 64
	digestCap = 120
)

// Stable machine-readable failure codes.
const (
	CodeInvalidFileType   = "INVALID_FILE_TYPE"
	CodeConversionFailed  = "CONVERSION_FAILED"
	CodeMissingCoverImage = "MISSING_COVER_IMAGE"
	CodeDraftFailed       = "DRAFT_CREATION_FAILED"
)

// Client is the API surface the publisher needs.
type Client interface {
	imageproc.Uploader
	CreateDraft(ctx context.Context, article wechat.Article) (string, error)
}

// Options customize one publish run.
type Options struct {
	Theme string
	Mode  md2wechat.Mode

	// Title overrides the extracted title when non-empty.
	Title  string
	Author string
	// CoverURL is an explicit cover image; when empty the first
	// content image serves as the cover.
	CoverURL  string
	SourceURL string

	OpenComment        bool
	OnlyFansCanComment bool
}

// Data describes a successfully created draft.
type Data struct {
	MediaID      string `json:"media_id"`
	Title        string `json:"title"`
	Digest       string `json:"digest"`
	CoverMediaID string `json:"cover_media_id"`
	ImageCount   int    `json:"image_count"`
}

// Result is the JSON-shaped outcome of one publish attempt.
type Result struct {
	Success bool   `json:"success"`
	Data    *Data  `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

// Publisher converts documents and pushes them to the draft box.
type Publisher struct {
	svc    *md2wechat.Service
	client Client
}

// New creates a Publisher around a conversion service and API client.
func New(svc *md2wechat.Service, client Client) *Publisher {
	return &Publisher{svc: svc, client: client}
}

// SupportedFile reports whether the filename has a publishable
// extension.
func SupportedFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown", ".html", ".htm":
		return true
	}
	return false
}

// Publish converts content and creates a draft. Failures are reported
// in the Result rather than as errors; the returned error is reserved
// for context cancellation.
func (p *Publisher) Publish(ctx context.Context, filename, content string, opts Options) (*Result, error) {
	if !SupportedFile(filename) {
		return failure(CodeInvalidFileType,
			fmt.Sprintf("unsupported file type %q: expected .md, .markdown, .html or .htm", filepath.Ext(filename))), nil
	}

	conv, err := p.svc.Convert(ctx, md2wechat.Input{
		Content: content,
		Format:  filename,
		Theme:   opts.Theme,
		Mode:    opts.Mode,
		Source:  opts.SourceURL,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return failure(CodeConversionFailed, err.Error()), nil
	}

	imgRes, err := imageproc.Process(ctx, p.client, conv.HTML, conv.Images)
	if err != nil {
		return nil, err
	}

	coverID, err := p.coverMediaID(ctx, opts.CoverURL, conv.CoverURL, imgRes)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return failure(CodeMissingCoverImage,
			"no usable cover image: pass one explicitly or add an image to the document ("+err.Error()+")"), nil
	}

	title := opts.Title
	if title == "" {
		title = conv.Title
	}
	article := wechat.Article{
		Title:            truncateRunes(title, titleCap),
		Content:          imgRes.HTML,
		Author:           opts.Author,
		Digest:           truncateRunes(conv.Summary, digestCap),
		ThumbMediaID:     coverID,
		ShowCoverPic:     1,
		ContentSourceURL: opts.SourceURL,
	}
	if opts.OpenComment {
		article.NeedOpenComment = 1
	}
	if opts.OnlyFansCanComment {
		article.OnlyFansCanComment = 1
	}

	mediaID, err := p.client.CreateDraft(ctx, article)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return failure(CodeDraftFailed, err.Error()), nil
	}

	slog.Info("draft created", "file", filename, "media_id", mediaID,
		"images", len(imgRes.MediaIDs))

	return &Result{
		Success: true,
		Data: &Data{
			MediaID:      mediaID,
			Title:        article.Title,
			Digest:       article.Digest,
			CoverMediaID: coverID,
			ImageCount:   len(imgRes.MediaIDs),
		},
	}, nil
}

// coverMediaID resolves the draft thumbnail: an explicit cover URL
// wins, then the document's first image if it was uploaded during
// content processing, then any uploaded content image.
func (p *Publisher) coverMediaID(ctx context.Context, explicit, firstImage string, imgRes *imageproc.Result) (string, error) {
	if explicit != "" {
		mat, err := p.client.UploadImageFromURL(ctx, explicit)
		if err != nil {
			return "", fmt.Errorf("cover upload: %w", err)
		}
		return mat.MediaID, nil
	}
	if len(imgRes.MediaIDs) > 0 {
		return imgRes.MediaIDs[0], nil
	}
	if firstImage != "" {
		mat, err := p.client.UploadImageFromURL(ctx, firstImage)
		if err != nil {
			return "", fmt.Errorf("cover upload: %w", err)
		}
		return mat.MediaID, nil
	}
	return "", errors.New("document contains no images")
}

func failure(code, msg string) *Result {
	return &Result{Success: false, Error: msg, Code: code}
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
