package wechat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(Credentials{AppID: "wx123", AppSecret: "secret"}, WithBaseURL(srv.URL))
	return c, srv
}

func tokenHandler(token string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"access_token":%q,"expires_in":7200}`, token)
	}
}

func TestClient_AccessToken(t *testing.T) {
	t.Parallel()

	t.Run("fetch and cache", func(t *testing.T) {
		t.Parallel()

		calls := 0
		mux := http.NewServeMux()
		mux.HandleFunc("/cgi-bin/token", func(w http.ResponseWriter, r *http.Request) {
			calls++
			if got := r.URL.Query().Get("appid"); got != "wx123" {
				t.Errorf("appid = %q", got)
			}
			if got := r.URL.Query().Get("grant_type"); got != "client_credential" {
				t.Errorf("grant_type = %q", got)
			}
			tokenHandler("TOKEN")(w, r)
		})
		c, _ := newTestClient(t, mux)

		ctx := context.Background()
		for i := 0; i < 3; i++ {
			tok, err := c.AccessToken(ctx)
			if err != nil {
				t.Fatalf("AccessToken: %v", err)
			}
			if tok != "TOKEN" {
				t.Errorf("token = %q", tok)
			}
		}
		if calls != 1 {
			t.Errorf("token endpoint called %d times, want 1 (cached)", calls)
		}
	})

	t.Run("invalid appid error carries hint", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/cgi-bin/token", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"errcode":40013,"errmsg":"invalid appid"}`)
		})
		c, _ := newTestClient(t, mux)

		_, err := c.AccessToken(context.Background())
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("error = %v, want *APIError", err)
		}
		if apiErr.Code != 40013 {
			t.Errorf("Code = %d", apiErr.Code)
		}
		if !strings.Contains(apiErr.Error(), "wx") {
			t.Errorf("missing remediation hint: %v", apiErr)
		}
	})
}

func TestClient_UploadImage(t *testing.T) {
	t.Parallel()

	t.Run("multipart upload", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/cgi-bin/token", tokenHandler("T"))
		mux.HandleFunc("/cgi-bin/material/add_material", func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("type"); got != "image" {
				t.Errorf("type = %q", got)
			}
			if got := r.URL.Query().Get("access_token"); got != "T" {
				t.Errorf("access_token = %q", got)
			}
			file, header, err := r.FormFile("media")
			if err != nil {
				t.Errorf("FormFile(media): %v", err)
			} else {
				file.Close()
				if header.Filename != "pic.png" {
					t.Errorf("filename = %q", header.Filename)
				}
			}
			fmt.Fprint(w, `{"media_id":"MID","url":"https://mmbiz.qpic.cn/x"}`)
		})
		c, _ := newTestClient(t, mux)

		mat, err := c.UploadImage(context.Background(), "pic.png", strings.NewReader("png-bytes"))
		if err != nil {
			t.Fatalf("UploadImage: %v", err)
		}
		if mat.MediaID != "MID" || mat.URL != "https://mmbiz.qpic.cn/x" {
			t.Errorf("Material = %#v", mat)
		}
	})

	t.Run("missing media id", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/cgi-bin/token", tokenHandler("T"))
		mux.HandleFunc("/cgi-bin/material/add_material", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{}`)
		})
		c, _ := newTestClient(t, mux)

		_, err := c.UploadImage(context.Background(), "a.png", strings.NewReader("x"))
		if !errors.Is(err, ErrNoMediaID) {
			t.Errorf("error = %v, want ErrNoMediaID", err)
		}
	})
}

func TestClient_UploadImageFromURL(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/cgi-bin/token", tokenHandler("T"))
	mux.HandleFunc("/image.bin", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-data"))
	})
	mux.HandleFunc("/cgi-bin/material/add_material", func(w http.ResponseWriter, r *http.Request) {
		_, header, err := r.FormFile("media")
		if err != nil {
			t.Errorf("FormFile: %v", err)
		} else if !strings.HasSuffix(header.Filename, ".png") {
			t.Errorf("filename %q missing extension from content type", header.Filename)
		}
		fmt.Fprint(w, `{"media_id":"MID","url":"https://mmbiz.qpic.cn/y"}`)
	})
	c, srv := newTestClient(t, mux)

	mat, err := c.UploadImageFromURL(context.Background(), srv.URL+"/image.bin")
	if err != nil {
		t.Fatalf("UploadImageFromURL: %v", err)
	}
	if mat.MediaID != "MID" {
		t.Errorf("MediaID = %q", mat.MediaID)
	}

	t.Run("fetch failure", func(t *testing.T) {
		_, err := c.UploadImageFromURL(context.Background(), srv.URL+"/missing.png")
		if err == nil {
			t.Error("expected error for 404 image")
		}
	})
}

func TestClient_CreateDraft(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/cgi-bin/token", tokenHandler("T"))
		mux.HandleFunc("/cgi-bin/draft/add", func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			for _, want := range []string{`"title":"Hi"`, `"thumb_media_id":"THUMB"`, `"need_open_comment":1`} {
				if !strings.Contains(string(body), want) {
					t.Errorf("payload missing %s: %s", want, body)
				}
			}
			fmt.Fprint(w, `{"media_id":"DRAFT1"}`)
		})
		c, _ := newTestClient(t, mux)

		id, err := c.CreateDraft(context.Background(), Article{
			Title:           "Hi",
			Content:         "<p>x</p>",
			ThumbMediaID:    "THUMB",
			NeedOpenComment: 1,
		})
		if err != nil {
			t.Fatalf("CreateDraft: %v", err)
		}
		if id != "DRAFT1" {
			t.Errorf("media id = %q", id)
		}
	})

	t.Run("draft api 404 for unverified accounts", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/cgi-bin/token", tokenHandler("T"))
		c, _ := newTestClient(t, mux)

		_, err := c.CreateDraft(context.Background(), Article{Title: "x"})
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("error = %v, want *APIError", err)
		}
		if apiErr.Code != 404 || !strings.Contains(apiErr.Message, "unverified") {
			t.Errorf("APIError = %#v", apiErr)
		}
	})

	t.Run("platform errcode", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/cgi-bin/token", tokenHandler("T"))
		mux.HandleFunc("/cgi-bin/draft/add", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"errcode":40164,"errmsg":"ip not in whitelist"}`)
		})
		c, _ := newTestClient(t, mux)

		_, err := c.CreateDraft(context.Background(), Article{Title: "x"})
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("error = %v, want *APIError", err)
		}
		if !strings.Contains(apiErr.Error(), "allowlist") {
			t.Errorf("missing IP allowlist hint: %v", apiErr)
		}
	})
}

func TestFilenameFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url         string
		contentType string
		want        string
	}{
		{"https://e.com/photo.jpg", "image/jpeg", "photo.jpg"},
		{"https://e.com/images/a", "image/png", "a.png"},
		{"https://e.com/", "image/gif", "image.gif"},
		{"https://e.com/x?v=1", "", "x.jpg"},
	}
	for _, tt := range tests {
		if got := filenameFor(tt.url, tt.contentType); got != tt.want {
			t.Errorf("filenameFor(%q, %q) = %q, want %q", tt.url, tt.contentType, got, tt.want)
		}
	}
}
