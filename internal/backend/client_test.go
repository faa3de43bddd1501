package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"docqa/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL, opts...)
	require.NoError(t, err)
	return c
}

func TestUpload_SendsMultipartAndDecodesDocument(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/upload", r.URL.Path)

		file, header, err := r.FormFile(UploadField)
		require.NoError(t, err)
		defer file.Close()
		body, _ := io.ReadAll(file)
		assert.Equal(t, "a.pdf", header.Filename)
		assert.Equal(t, "%PDF-1.7", string(body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"ok","filename":"a.pdf","total_pages":5,"total_chunks":12}`))
	})

	doc, err := c.Upload(context.Background(), "a.pdf", strings.NewReader("%PDF-1.7"))
	require.NoError(t, err)
	assert.Equal(t, "a.pdf", doc.Filename)
	assert.Equal(t, 5, doc.TotalPages)
	assert.Equal(t, 12, doc.TotalChunks)
}

func TestLoadDocument_NotFoundIsApplicationError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/load-pdf", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a.pdf", body["filename"])

		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
	})

	doc, err := c.LoadDocument(context.Background(), "a.pdf")
	assert.Nil(t, doc)
	require.Error(t, err)
	assert.True(t, apperr.IsApplication(err))
	assert.Equal(t, "not found", apperr.ServerMessage(err))
}

func TestQuery_CarriesOnlyTheQuestion(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/query", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"question": "What is X?"}, body)

		_, _ = w.Write([]byte(`{
			"answer":"It is Y.",
			"categories":{"overview":"Y","steps":null,"notes":null},
			"references":{"pages":[1],"page_images":[{"image_url":"/img/1.png","page_number":1}],
				"source_chunks":[{"page_number":1,"similarity_score":0.2,"text":"..."}]},
			"metadata":{"model":"gpt-4o-mini","total_tokens":321}
		}`))
	})

	ans, err := c.Query(context.Background(), "What is X?")
	require.NoError(t, err)
	assert.Equal(t, "It is Y.", ans.Answer)
	require.NotNil(t, ans.Categories)
	assert.Equal(t, "Y", ans.Categories.Overview)
	assert.Equal(t, "", ans.Categories.Steps)
	require.NotNil(t, ans.References)
	require.Len(t, ans.References.PageImages, 1)
	assert.Equal(t, "/img/1.png", ans.References.PageImages[0].ImageURL)
	require.Len(t, ans.References.SourceChunks, 1)
	assert.InDelta(t, 0.2, ans.References.SourceChunks[0].SimilarityScore, 1e-9)
	assert.Equal(t, 321, ans.Metadata.TotalTokens)
}

func TestMalformedSuccessBodyIsTransportError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	})

	_, err := c.Query(context.Background(), "q")
	require.Error(t, err)
	assert.True(t, apperr.IsTransport(err))
}

func TestErrorBodyWithoutMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		_, _ = w.Write([]byte(`Request Entity Too Large`))
	})

	_, err := c.Upload(context.Background(), "big.pdf", strings.NewReader("x"))
	require.Error(t, err)
	assert.True(t, apperr.IsApplication(err))
	assert.Equal(t, "", apperr.ServerMessage(err))
}

func TestUnreachableBackendIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(url)
	require.NoError(t, err)

	_, err = c.LoadDocument(context.Background(), "a.pdf")
	require.Error(t, err)
	assert.True(t, apperr.IsTransport(err))
}

func TestBearerTokenIsSentWhenPresent(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"filename":"a.pdf","total_pages":1}`))
	}, WithTokenSource(func() string { return "secret" }))

	doc, err := c.CurrentDocument(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", got)
	assert.Equal(t, 0, doc.TotalChunks)
}

func TestParseBaseURL(t *testing.T) {
	u, err := ParseBaseURL(" http://localhost:5000/ ")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", u.String())

	_, err = ParseBaseURL("")
	assert.EqualError(t, err, "backend url is required")
	_, err = ParseBaseURL("ftp://host")
	assert.EqualError(t, err, "backend url must use http or https")
	_, err = ParseBaseURL("http://")
	assert.EqualError(t, err, "backend url must include a host")
}

func TestResolveURL(t *testing.T) {
	c, err := NewClient("http://localhost:5000/qa")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000/static/page_images/p1.png", c.ResolveURL("/static/page_images/p1.png"))
	assert.Equal(t, "https://cdn.example.com/p.png", c.ResolveURL("https://cdn.example.com/p.png"))
	assert.Equal(t, "", c.ResolveURL("  "))
	assert.Equal(t, "http://localhost:5000/qa/api/query", c.endpoint("/api/query"))
}
