package cloudinary

import (
	"context"
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	c := New("demo", "key", "secret", "daycare/child-profiles")
	c.BaseURL = url
	c.now = func() time.Time { return time.Unix(1700000000, 0) }
	return c
}

func TestSign(t *testing.T) {
	c := newTestClient("")
	got := c.sign(map[string]string{
		"timestamp": "1700000000",
		"folder":    "daycare/child-profiles",
		"api_key":   "key",
	})
	want := fmt.Sprintf("%x", sha1.Sum([]byte("folder=daycare/child-profiles&timestamp=1700000000secret")))
	assert.Equal(t, want, got)
}

func TestUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/demo/image/upload", r.URL.Path)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "key", r.FormValue("api_key"))
		assert.Equal(t, "daycare/child-profiles", r.FormValue("folder"))
		assert.NotEmpty(t, r.FormValue("signature"))

		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		body, _ := io.ReadAll(f)
		assert.Equal(t, "kofi.png", hdr.Filename)
		assert.Equal(t, "png-bytes", string(body))

		fmt.Fprint(w, `{"public_id":"daycare/child-profiles/abc","secure_url":"https://res.cloudinary.com/demo/abc.png"}`)
	}))
	defer srv.Close()

	img, err := newTestClient(srv.URL).Upload(context.Background(), []byte("png-bytes"), "kofi.png")
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/abc.png", img.URL)
	assert.Equal(t, "daycare/child-profiles/abc", img.ID)
}

func TestUploadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"Invalid Signature"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Upload(context.Background(), []byte("x"), "x.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/demo/image/destroy", r.URL.Path)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "daycare/child-profiles/abc", r.FormValue("public_id"))
		assert.Empty(t, r.FormValue("folder"))
		fmt.Fprint(w, `{"result":"ok"}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	require.NoError(t, c.Delete(context.Background(), "daycare/child-profiles/abc"))
	require.NoError(t, c.Delete(context.Background(), ""))
}
