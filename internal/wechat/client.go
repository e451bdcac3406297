// Package wechat is a minimal WeChat Official Account API client
// covering the operations the publisher needs: access tokens, permanent
// image material upload, and draft creation.
package wechat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// DefaultBaseURL is the production API host.
const DefaultBaseURL = "https://api.weixin.qq.com"

// tokenSafetyMargin renews the access token this long before the server
// expiry to avoid racing the deadline.
const tokenSafetyMargin = 5 * time.Minute

// ErrNoMediaID is returned when an upload succeeds at the HTTP level but
// the response carries no media_id.
var ErrNoMediaID = errors.New("wechat: upload response contained no media_id")

// Credentials identifies the Official Account.
type Credentials struct {
	AppID     string
	AppSecret string
}

// Client calls the WeChat API. It is safe for concurrent use; the
// access token is cached and renewed under a mutex.
type Client struct {
	creds   Credentials
	baseURL string
	http    *http.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API host, typically for tests.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		c.http = h
	}
}

// NewClient creates a Client for the given credentials.
func NewClient(creds Credentials, opts ...ClientOption) *Client {
	c := &Client{
		creds:   creds,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Material is the result of an image upload.
type Material struct {
	MediaID string `json:"media_id"`
	URL     string `json:"url"`
}

// Article is one draft article payload.
type Article struct {
	Title              string `json:"title"`
	Content            string `json:"content"`
	Author             string `json:"author"`
	Digest             string `json:"digest"`
	ThumbMediaID       string `json:"thumb_media_id"`
	ShowCoverPic       int    `json:"show_cover_pic"`
	ContentSourceURL   string `json:"content_source_url"`
	NeedOpenComment    int    `json:"need_open_comment"`
	OnlyFansCanComment int    `json:"only_fans_can_comment"`
}

// apiError is the error envelope every endpoint may return.
type apiError struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

// APIError carries the platform error code plus a remediation hint for
// the codes operators hit most.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	hint := e.Hint()
	if hint == "" {
		return fmt.Sprintf("wechat: errcode %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("wechat: errcode %d: %s (%s)", e.Code, e.Message, hint)
}

// Hint explains the common error codes in actionable terms.
func (e *APIError) Hint() string {
	switch e.Code {
	case 40001:
		return "invalid AppSecret: it may have been reset, or the AppID was used in its place; regenerate it at mp.weixin.qq.com and update .env"
	case 40013:
		return "invalid AppID: it should start with wx, e.g. wx1234567890abcdef"
	case 40164:
		return "this server's IP is not in the account allowlist; add it under Settings > Development > IP allowlist"
	}
	return ""
}

// AccessToken returns a valid cached token, fetching a fresh one when
// the cache is empty or near expiry.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	q := url.Values{
		"grant_type": {"client_credential"},
		"appid":      {c.creds.AppID},
		"secret":     {c.creds.AppSecret},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/cgi-bin/token?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("wechat token request: %w", err)
	}

	var result struct {
		apiError
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := c.do(req, &result); err != nil {
		return "", err
	}
	if result.AccessToken == "" {
		return "", &APIError{Code: result.ErrCode, Message: result.ErrMsg}
	}

	c.token = result.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn)*time.Second - tokenSafetyMargin)
	return c.token, nil
}

// UploadImage uploads image bytes as permanent material and returns the
// platform media ID and URL.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (*Material, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("media", filename)
	if err != nil {
		return nil, fmt.Errorf("wechat multipart: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("wechat multipart copy: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("wechat multipart close: %w", err)
	}

	endpoint := fmt.Sprintf("%s/cgi-bin/material/add_material?access_token=%s&type=image",
		c.baseURL, url.QueryEscape(token))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("wechat upload request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	var result struct {
		apiError
		Material
	}
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	if result.ErrCode != 0 {
		return nil, &APIError{Code: result.ErrCode, Message: result.ErrMsg}
	}
	if result.MediaID == "" {
		return nil, ErrNoMediaID
	}
	return &Material{MediaID: result.MediaID, URL: result.URL}, nil
}

// UploadImageFromURL downloads a remote image and uploads it as
// permanent material.
func (c *Client) UploadImageFromURL(ctx context.Context, imageURL string) (*Material, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("wechat image fetch request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wechat image fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wechat image fetch: status %d for %s", resp.StatusCode, imageURL)
	}

	return c.UploadImage(ctx, filenameFor(imageURL, resp.Header.Get("Content-Type")), resp.Body)
}

// CreateDraft submits one article to the draft box and returns its media
// ID.
func (c *Client) CreateDraft(ctx context.Context, article Article) (string, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(struct {
		Articles []Article `json:"articles"`
	}{Articles: []Article{article}})
	if err != nil {
		return "", fmt.Errorf("wechat draft marshal: %w", err)
	}

	endpoint := fmt.Sprintf("%s/cgi-bin/draft/add?access_token=%s", c.baseURL, url.QueryEscape(token))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("wechat draft request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var result struct {
		apiError
		MediaID string `json:"media_id"`
	}
	if err := c.do(req, &result); err != nil {
		return "", err
	}
	if result.ErrCode != 0 {
		return "", &APIError{Code: result.ErrCode, Message: result.ErrMsg}
	}
	return result.MediaID, nil
}

// do executes the request and decodes the JSON response into out.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("wechat http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("wechat read body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		// The draft API 404s for unverified accounts.
		return &APIError{Code: 404, Message: "draft API unavailable; the account may be unverified"}
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("wechat API status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("wechat unmarshal: %w", err)
	}
	return nil
}

// filenameFor derives an upload filename from the source URL and the
// response content type; the API rejects uploads without an extension.
func filenameFor(imageURL, contentType string) string {
	ext := ".jpg"
	switch {
	case strings.Contains(contentType, "png"):
		ext = ".png"
	case strings.Contains(contentType, "gif"):
		ext = ".gif"
	case strings.Contains(contentType, "jpeg"), strings.Contains(contentType, "jpg"):
		ext = ".jpg"
	}

	name := "image"
	if u, err := url.Parse(imageURL); err == nil {
		if base := strings.TrimSuffix(u.Path, "/"); base != "" {
			if idx := strings.LastIndexByte(base, '/'); idx >= 0 && idx+1 < len(base) {
				name = base[idx+1:]
			}
		}
	}
	if !strings.ContainsRune(name, '.') {
		name += ext
	}
	return name
}
