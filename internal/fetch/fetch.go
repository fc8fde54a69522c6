// Package fetch resolves the input argument to a local archive.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

const userAgent = "Mozilla/5.0"

// Extensions accepted for the input argument, compared case-insensitively
var Extensions = []string{".deb", ".appimage"}

// Source is a fetched archive
type Source struct {
	// Path is the archive on the local filesystem
	Path string

	// URL is what the recipe fetches the archive from
	URL string
}

// Fetcher downloads remote archives
type Fetcher struct {
	client *http.Client
	silent bool
}

// NewFetcher creates a fetcher. Silent disables the progress bar.
func NewFetcher(client *http.Client, silent bool) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client, silent: silent}
}

// ValidateInput checks that input names a supported archive
func ValidateInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("input is empty")
	}

	name := input
	if u, err := url.Parse(input); err == nil && u.Scheme != "" {
		name = u.Path
	}

	lower := strings.ToLower(name)
	for _, ext := range Extensions {
		if strings.HasSuffix(lower, ext) {
			return nil
		}
	}
	return fmt.Errorf("%s does not end in one of %s", input, strings.Join(Extensions, ", "))
}

// IsRemote reports whether input must be downloaded
func IsRemote(input string) bool {
	lower := strings.ToLower(input)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Fetch makes input available locally. Remote archives are downloaded into
// dir under their original file name; local files are used in place.
func (f *Fetcher) Fetch(ctx context.Context, input, dir string) (*Source, error) {
	if IsRemote(input) {
		return f.download(ctx, input, dir)
	}

	local := input
	if strings.HasPrefix(input, "file://") {
		u, err := url.Parse(input)
		if err != nil {
			return nil, fmt.Errorf("invalid file URL %s: %w", input, err)
		}
		local = u.Path
	}

	abs, err := filepath.Abs(local)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", input, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", input)
	}

	return &Source{
		Path: abs,
		URL:  (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(),
	}, nil
}

func (f *Fetcher) download(ctx context.Context, rawURL, dir string) (*Source, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %s: %w", rawURL, err)
	}

	name := path.Base(u.Path)
	if name == "/" || name == "." || name == "" {
		name = "package"
	}
	dest := filepath.Join(dir, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	logrus.Infof("Downloading %s", rawURL)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download %s: %s", rawURL, resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	bar := NewProgressBar(resp.ContentLength, "downloading "+name, f.silent)
	if _, err := io.Copy(io.MultiWriter(out, bar), resp.Body); err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", rawURL, err)
	}
	_ = bar.Finish()

	return &Source{Path: dest, URL: rawURL}, nil
}
