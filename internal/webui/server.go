// Package webui serves the browser front end: an upload form plus a
// small JSON API that runs the publish pipeline on posted documents.
package webui

import (
	"context"
	"encoding/json"
	"html/template"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	md2wechat "github.com/zkkython/md2wechat-skills"
	"github.com/zkkython/md2wechat-skills/internal/publisher"
)

// maxUploadBytes caps one multipart request (all files together).
const maxUploadBytes = 32 << 20

// TokenChecker verifies API credentials; *wechat.Client satisfies it.
type TokenChecker interface {
	AccessToken(ctx context.Context) (string, error)
}

// Server holds the handlers' shared dependencies.
type Server struct {
	pub    *publisher.Publisher
	tokens TokenChecker
}

// NewServer creates a Server around a publisher and a credential
// checker.
func NewServer(pub *publisher.Publisher, tokens TokenChecker) *Server {
	return &Server{pub: pub, tokens: tokens}
}

// Router builds the chi router with the middleware stack.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(recoverer)
	r.Use(requestLogger)

	r.Get("/", s.Index)
	r.Get("/api/health", s.Health)
	r.Post("/api/upload", s.Upload)

	return r
}

// Health verifies the configured credentials against the live API.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	if _, err := s.tokens.AccessToken(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "error",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// fileResult pairs one uploaded file with its publish outcome.
type fileResult struct {
	Filename string            `json:"filename"`
	Result   *publisher.Result `json:"result"`
}

// uploadResponse is the /api/upload reply.
type uploadResponse struct {
	JobID   string       `json:"job_id"`
	Results []fileResult `json:"results"`
}

// Upload accepts one or more documents under the "files" field and
// publishes each as a separate draft. One failing file does not stop
// the others.
func (s *Server) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid multipart form: " + err.Error(),
		})
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "no files uploaded: use the \"files\" form field",
		})
		return
	}

	opts := publisher.Options{
		Theme:              r.FormValue("style"),
		Mode:               md2wechat.Mode(r.FormValue("article_type")),
		Title:              r.FormValue("title"),
		Author:             r.FormValue("author"),
		CoverURL:           r.FormValue("cover_url"),
		SourceURL:          r.FormValue("source_url"),
		OpenComment:        formBool(r, "comment"),
		OnlyFansCanComment: formBool(r, "fans_only_comment"),
	}

	jobID := uuid.NewString()
	resp := uploadResponse{JobID: jobID}

	for _, fh := range files {
		res := s.publishFile(r.Context(), fh.Filename, fh, opts)
		resp.Results = append(resp.Results, fileResult{
			Filename: fh.Filename,
			Result:   res,
		})
		slog.Info("upload processed",
			"job_id", jobID,
			"file", fh.Filename,
			"success", res.Success,
			"code", res.Code,
		)
	}

	writeJSON(w, http.StatusOK, resp)
}

// publishFile reads one multipart file and runs the publish pipeline,
// converting read errors into the Result shape.
func (s *Server) publishFile(ctx context.Context, name string, fh *multipart.FileHeader, opts publisher.Options) *publisher.Result {
	f, err := fh.Open()
	if err != nil {
		return &publisher.Result{
			Success: false,
			Error:   "opening upload: " + err.Error(),
			Code:    publisher.CodeConversionFailed,
		}
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return &publisher.Result{
			Success: false,
			Error:   "reading upload: " + err.Error(),
			Code:    publisher.CodeConversionFailed,
		}
	}

	res, err := s.pub.Publish(ctx, name, string(content), opts)
	if err != nil {
		// Only context cancellation reaches here.
		return &publisher.Result{
			Success: false,
			Error:   err.Error(),
			Code:    publisher.CodeConversionFailed,
		}
	}
	return res
}

// Index serves the upload form.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, struct {
		Themes []string
	}{Themes: md2wechat.ThemeNames()}); err != nil {
		slog.Error("rendering index", "error", err)
	}
}

func formBool(r *http.Request, key string) bool {
	switch strings.ToLower(r.FormValue(key)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="utf-8">
<title>md2wechat</title>
<style>
body { font-family: sans-serif; max-width: 640px; margin: 40px auto; padding: 0 16px; }
label { display: block; margin: 12px 0 4px; }
button { margin-top: 16px; padding: 8px 24px; }
pre { background: #f6f6f6; padding: 12px; overflow-x: auto; }
</style>
</head>
<body>
<h1>Markdown → 公众号草稿</h1>
<form id="f" method="post" action="/api/upload" enctype="multipart/form-data">
<label>文件 (.md / .markdown / .html)</label>
<input type="file" name="files" accept=".md,.markdown,.html,.htm" multiple required>
<label>主题</label>
<select name="style">{{range .Themes}}<option value="{{.}}">{{.}}</option>{{end}}</select>
<label>类型</label>
<select name="article_type"><option value="news">图文</option><option value="newspic">小图文</option></select>
<label>作者</label><input type="text" name="author">
<label>标题（留空则自动提取）</label><input type="text" name="title">
<label><input type="checkbox" name="comment" value="1"> 开启留言</label>
<label><input type="checkbox" name="fans_only_comment" value="1"> 仅粉丝可留言</label>
<button type="submit">发布到草稿箱</button>
</form>
<pre id="out"></pre>
<script>
document.getElementById("f").addEventListener("submit", async function (e) {
  e.preventDefault();
  const resp = await fetch("/api/upload", { method: "POST", body: new FormData(this) });
  document.getElementById("out").textContent = JSON.stringify(await resp.json(), null, 2);
});
</script>
</body>
</html>
`))
