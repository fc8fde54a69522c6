package utils

import (
	"crypto/sha256"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNixBase32(t *testing.T) {
	tests := []struct {
		name   string
		digest []byte
		want   string
	}{
		{name: "empty", digest: nil, want: ""},
		{name: "single low byte", digest: []byte{0x01}, want: "01"},
		{name: "single high byte", digest: []byte{0xff}, want: "7z"},
		{name: "zero sha256", digest: make([]byte, 32), want: strings.Repeat("0", 52)},
		{name: "sha256 of empty input", digest: emptySHA256(), want: "0mdqa9w1p6cmli6976v4wi0sw9r4p5prkj7lzfd1877wk11c9c73"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NixBase32(tt.digest); got != tt.want {
				t.Errorf("NixBase32() = %q, want %q", got, tt.want)
			}
		})
	}
}

func emptySHA256() []byte {
	sum := sha256.Sum256(nil)
	return sum[:]
}

func TestCalculateChecksums(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.txt")
	if err := os.WriteFile(path, []byte("hello world"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	sum, err := CalculateChecksums(path)
	if err != nil {
		t.Fatalf("CalculateChecksums failed: %v", err)
	}

	if sum.SHA256 != "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9" {
		t.Errorf("unexpected SHA256 %s", sum.SHA256)
	}
	if sum.SRI != "sha256-uU0nuZNNPgilLlLX2n2r+sSE7+N6U4DukIj3rOLvzek=" {
		t.Errorf("unexpected SRI %s", sum.SRI)
	}
	if len(sum.Nix32) != 52 {
		t.Errorf("expected 52 character nix32 hash, got %d", len(sum.Nix32))
	}
	for _, c := range sum.Nix32 {
		if !strings.ContainsRune("0123456789abcdfghijklmnpqrsvwxyz", c) {
			t.Errorf("nix32 hash contains %q outside the alphabet", c)
		}
	}
	if sum.Size != 11 {
		t.Errorf("Size = %d, want 11", sum.Size)
	}
}

func TestCalculateChecksumsMissingFile(t *testing.T) {
	if _, err := CalculateChecksums("/path/to/non/existent/file"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWithinDir(t *testing.T) {
	cases := map[string]bool{
		"/tmp/root":            true,
		"/tmp/root/usr/lib":    true,
		"/tmp/root/../etc":     false,
		"/tmp/rooted/file":     false,
		"/tmp/root/..hidden/x": true,
	}
	for path, want := range cases {
		if got := WithinDir("/tmp/root", path); got != want {
			t.Errorf("WithinDir(%q) = %v, want %v", path, got, want)
		}
	}
}
