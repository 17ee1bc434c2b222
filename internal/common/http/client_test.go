package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_PostForm(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		got = r
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<div class=\"alert alert-danger\">error</div>"))
	}))
	defer srv.Close()

	c := NewClient(5*time.Second, Headers{
		Referer:   "https://example.test/form",
		Origin:    "https://example.test",
		UserAgent: "test-agent",
		Cookie:    "session=1",
	})

	resp, err := c.PostForm(context.Background(), srv.URL, url.Values{"Medidor": {"999999"}})
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, resp.Body, "alert-danger")

	require.NotNil(t, got)
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "999999", got.PostForm.Get("Medidor"))
	assert.Equal(t, "https://example.test/form", got.Header.Get("Referer"))
	assert.Equal(t, "https://example.test", got.Header.Get("Origin"))
	assert.Equal(t, "test-agent", got.Header.Get("User-Agent"))
	assert.Equal(t, "session=1", got.Header.Get("Cookie"))
	assert.Equal(t, "application/x-www-form-urlencoded", got.Header.Get("Content-Type"))
}

func TestClient_PostForm_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	target := srv.URL
	srv.Close()

	c := NewClient(time.Second, Headers{})
	resp, err := c.PostForm(context.Background(), target, url.Values{})
	require.Error(t, err)
	assert.Nil(t, resp)
}

func TestClient_PostForm_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(20*time.Millisecond, Headers{})
	_, err := c.PostForm(context.Background(), srv.URL, url.Values{})
	require.Error(t, err)
}

func TestClient_PostForm_DecodesCharset(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{
			name:        "latin-1 declared in header",
			contentType: "text/html; charset=ISO-8859-1",
			body:        "<div class=\"alert alert-danger\">el n\xfamero es: W123456</div>",
		},
		{
			name:        "latin-1 declared in meta tag",
			contentType: "text/html",
			body:        "<html><head><meta charset=\"iso-8859-1\"></head><body><div class=\"alert alert-danger\">el n\xfamero es: W123456</div></body></html>",
		},
		{
			name:        "utf-8",
			contentType: "text/html; charset=UTF-8",
			body:        "<div class=\"alert alert-danger\">el número es: W123456</div>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClientWithHTTP(srv.Client(), Headers{})
			resp, err := c.PostForm(context.Background(), srv.URL, url.Values{})
			require.NoError(t, err)

			assert.Contains(t, resp.Body, "el número es: W123456")
			assert.True(t, utf8.ValidString(resp.Body))
		})
	}
}
