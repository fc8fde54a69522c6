package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInput(t *testing.T) {
	valid := []string{
		"foo.deb",
		"/tmp/Foo-1.0-x86_64.AppImage",
		"Foo.appimage",
		"https://example.com/pool/foo_1.0_amd64.deb",
		"https://example.com/Foo.AppImage?download=1",
	}
	for _, input := range valid {
		assert.NoError(t, ValidateInput(input), input)
	}

	invalid := []string{"", "foo.rpm", "https://example.com/", "foo.deb.sig"}
	for _, input := range invalid {
		assert.Error(t, ValidateInput(input), input)
	}
}

func TestFetchLocal(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "foo.deb")
	require.NoError(t, os.WriteFile(archive, []byte("!<arch>\n"), 0644))

	src, err := NewFetcher(nil, true).Fetch(context.Background(), archive, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, archive, src.Path)
	assert.Equal(t, "file://"+archive, src.URL)

	src, err = NewFetcher(nil, true).Fetch(context.Background(), "file://"+archive, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, archive, src.Path)

	_, err = NewFetcher(nil, true).Fetch(context.Background(), filepath.Join(dir, "missing.deb"), t.TempDir())
	assert.Error(t, err)

	_, err = NewFetcher(nil, true).Fetch(context.Background(), dir, t.TempDir())
	assert.ErrorContains(t, err, "not a regular file")
}

func TestFetchRemote(t *testing.T) {
	var agent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		if r.URL.Path != "/pool/foo_1.0_amd64.deb" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("payload"))
	}))
	defer server.Close()

	dir := t.TempDir()
	fetcher := NewFetcher(server.Client(), true)

	src, err := fetcher.Fetch(context.Background(), server.URL+"/pool/foo_1.0_amd64.deb", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "foo_1.0_amd64.deb"), src.Path)
	assert.Equal(t, server.URL+"/pool/foo_1.0_amd64.deb", src.URL)
	assert.Equal(t, "Mozilla/5.0", agent)

	data, err := os.ReadFile(src.Path)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	_, err = fetcher.Fetch(context.Background(), server.URL+"/missing.deb", dir)
	assert.ErrorContains(t, err, "404")
}
