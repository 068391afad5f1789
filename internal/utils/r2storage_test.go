package utils

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemainingLength(t *testing.T) {
	r := strings.NewReader("0123456789")
	_, err := r.Seek(4, io.SeekStart)
	require.NoError(t, err)

	n, ok := remainingLength(r)
	require.True(t, ok)
	assert.Equal(t, int64(6), n)

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "456789", string(rest))

	_, ok = remainingLength(io.MultiReader(strings.NewReader("x")))
	assert.False(t, ok)
}

func TestR2SaveFileSendsContentLength(t *testing.T) {
	var (
		gotLength int64
		gotPath   string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLength = r.ContentLength
		gotPath = r.URL.Path
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	rs := NewR2Storage("key", "secret", srv.URL, "uploads")
	body := "%PDF-1.4 resume body"
	key, err := rs.SaveFile(context.Background(), "", "cv.pdf", strings.NewReader(body))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".pdf"))
	assert.Equal(t, "/uploads/"+key, gotPath)
	assert.Equal(t, int64(len(body)), gotLength)
}

func TestR2ServeRedirectsToPresignedURL(t *testing.T) {
	rs := NewR2Storage("key", "secret", "https://account.r2.cloudflarestorage.com", "uploads")

	rec := httptest.NewRecorder()
	rs.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/abc.pdf", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	loc := rec.Header().Get("Location")
	assert.True(t, strings.HasPrefix(loc, "https://account.r2.cloudflarestorage.com/uploads/abc.pdf?"), loc)
	assert.Contains(t, loc, "X-Amz-Signature=")

	rec = httptest.NewRecorder()
	rs.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
