// Package imageproc uploads article images to the WeChat material
// library and rewrites the rendered HTML to reference the returned
// platform URLs. External image URLs are blocked inside published
// articles, so every image must be rehosted before draft creation.
package imageproc

import (
	"context"
	"log/slog"
	"strings"

	"github.com/zkkython/md2wechat-skills/internal/wechat"
)

// Uploader is the slice of the API client this package needs.
type Uploader interface {
	UploadImageFromURL(ctx context.Context, imageURL string) (*wechat.Material, error)
}

// Result reports one processing pass.
type Result struct {
	// HTML is the input HTML with every uploaded image src rewritten.
	HTML string
	// MediaIDs holds the media ID of each successful upload, in
	// document order.
	MediaIDs []string
	// Replaced maps original URL to platform URL.
	Replaced map[string]string
	// Failed lists URLs that could not be uploaded.
	Failed []string
}

// skipUpload reports whether a URL already lives on WeChat servers or
// cannot be fetched at all. Data URIs and relative paths are left as-is;
// the editor strips what it cannot resolve.
func skipUpload(u string) bool {
	if strings.HasPrefix(u, "data:") {
		return true
	}
	if strings.Contains(u, "mmbiz.qpic.cn") || strings.Contains(u, "mmbiz.qlogo.cn") {
		return true
	}
	return !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://")
}

// Process uploads each image URL and rewrites html to use the platform
// copies. A failed upload is logged and skipped; the article still
// publishes with the remaining images.
func Process(ctx context.Context, up Uploader, html string, images []string) (*Result, error) {
	res := &Result{
		HTML:     html,
		Replaced: make(map[string]string),
	}

	for _, src := range images {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if skipUpload(src) {
			continue
		}
		if _, done := res.Replaced[src]; done {
			continue
		}

		mat, err := up.UploadImageFromURL(ctx, src)
		if err != nil {
			slog.Warn("image upload failed, keeping original URL", "url", src, "error", err)
			res.Failed = append(res.Failed, src)
			continue
		}

		res.MediaIDs = append(res.MediaIDs, mat.MediaID)
		if mat.URL != "" {
			res.Replaced[src] = mat.URL
			res.HTML = rewriteSrc(res.HTML, src, mat.URL)
		}
	}
	return res, nil
}

// rewriteSrc swaps the src attribute value wherever the original URL
// appears quoted. The renderer always emits double quotes; single
// quotes are handled for raw HTML passthrough input.
func rewriteSrc(html, from, to string) string {
	html = strings.ReplaceAll(html, `src="`+from+`"`, `src="`+to+`"`)
	html = strings.ReplaceAll(html, `src='`+from+`'`, `src="`+to+`"`)
	return html
}
