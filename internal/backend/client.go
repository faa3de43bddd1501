package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"docqa/internal/apperr"
	"docqa/internal/models"
)

const (
	uploadPath  = "/api/upload"
	loadPath    = "/api/load-pdf"
	queryPath   = "/api/query"
	pdfInfoPath = "/api/pdf-info"

	// UploadField is the multipart field the backend reads the document from.
	UploadField = "file"
)

// API is the document Q&A backend as seen by the client.
type API interface {
	Upload(ctx context.Context, filename string, content io.Reader) (*models.ActiveDocument, error)
	LoadDocument(ctx context.Context, filename string) (*models.ActiveDocument, error)
	Query(ctx context.Context, question string) (*models.AnswerPayload, error)
	CurrentDocument(ctx context.Context) (*models.ActiveDocument, error)
	ResolveURL(ref string) string
}

// TokenSource returns the bearer token to send, or "" for none.
type TokenSource func() string

type Client struct {
	baseURL *url.URL
	http    *http.Client
	token   TokenSource
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func WithTokenSource(src TokenSource) Option {
	return func(c *Client) {
		c.token = src
	}
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := ParseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: 5 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ParseBaseURL accepts absolute http(s) URLs only.
func ParseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("backend url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend url must use http or https")
	}
	if u.Host == "" {
		return nil, fmt.Errorf("backend url must include a host")
	}
	u.Path = strings.TrimRight(u.Path, "/")
	return u, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ResolveURL turns a backend-relative reference such as "/static/page_images/p1.png"
// into an absolute URL. Absolute references are returned unchanged.
func (c *Client) ResolveURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if r.IsAbs() {
		return ref
	}
	return c.baseURL.ResolveReference(r).String()
}

func (c *Client) endpoint(path string) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	return u.String()
}

type documentResponse struct {
	Message     string `json:"message,omitempty"`
	Filename    string `json:"filename"`
	TotalPages  int    `json:"total_pages"`
	TotalChunks int    `json:"total_chunks"`
}

func (r documentResponse) document() *models.ActiveDocument {
	return &models.ActiveDocument{
		Filename:    r.Filename,
		TotalPages:  r.TotalPages,
		TotalChunks: r.TotalChunks,
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Upload sends the document as multipart form data. The form is buffered so the
// request carries a Content-Length; uploads are capped well below memory concerns.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (*models.ActiveDocument, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(UploadField, filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(uploadPath), &buf)
	if err != nil {
		return nil, apperr.Transport("build upload request", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out documentResponse
	if err := c.do(req, "post "+uploadPath, &out); err != nil {
		return nil, err
	}
	return out.document(), nil
}

func (c *Client) LoadDocument(ctx context.Context, filename string) (*models.ActiveDocument, error) {
	var out documentResponse
	if err := c.postJSON(ctx, loadPath, map[string]string{"filename": filename}, &out); err != nil {
		return nil, err
	}
	return out.document(), nil
}

// Query carries only the question; the backend answers against the document it last loaded.
func (c *Client) Query(ctx context.Context, question string) (*models.AnswerPayload, error) {
	var out models.AnswerPayload
	if err := c.postJSON(ctx, queryPath, map[string]string{"question": question}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentDocument asks the backend which document it has loaded. The endpoint does
// not report a chunk count, so TotalChunks is zero.
func (c *Client) CurrentDocument(ctx context.Context) (*models.ActiveDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(pdfInfoPath), nil)
	if err != nil {
		return nil, apperr.Transport("build pdf-info request", err)
	}
	var out documentResponse
	if err := c.do(req, "get "+pdfInfoPath, &out); err != nil {
		return nil, err
	}
	return out.document(), nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), bytes.NewReader(data))
	if err != nil {
		return apperr.Transport("build "+path+" request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, "post "+path, out)
}

func (c *Client) do(req *http.Request, op string, out any) error {
	req.Header.Set("Accept", "application/json")
	if c.token != nil {
		if tok := strings.TrimSpace(c.token()); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperr.Transport(op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperr.Transport(op, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e errorResponse
		// A non-JSON error body still counts as a server-reported failure.
		_ = json.Unmarshal(raw, &e)
		return &apperr.ApplicationError{Status: resp.StatusCode, Message: e.Error}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return apperr.Transport(op, fmt.Errorf("malformed response: %w", err))
	}
	return nil
}
