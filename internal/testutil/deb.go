// Package testutil builds package fixtures for tests.
package testutil

import (
	"archive/tar"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

// Entry is a single member of a data.tar payload
type Entry struct {
	Body     string
	Mode     int64
	Linkname string
	Type     byte
}

// Deb describes a .deb fixture
type Deb struct {
	Control string
	Files   map[string]Entry

	// Compression applies to both tarballs: "gz", "xz", "zst" or "" for none
	Compression string
}

// WriteDeb assembles the fixture as an ar archive at path
func WriteDeb(t testing.TB, path string, d Deb) {
	t.Helper()

	control := tarball(t, map[string]Entry{"./control": {Body: d.Control}})
	data := tarball(t, d.Files)

	suffix := ""
	if d.Compression != "" {
		suffix = "." + d.Compression
	}

	var buf bytes.Buffer
	buf.WriteString("!<arch>\n")
	writeMember(&buf, "debian-binary", []byte("2.0\n"))
	writeMember(&buf, "control.tar"+suffix, compress(t, d.Compression, control))
	writeMember(&buf, "data.tar"+suffix, compress(t, d.Compression, data))

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

func writeMember(buf *bytes.Buffer, name string, data []byte) {
	fmt.Fprintf(buf, "%-16s%-12d%-6d%-6d%-8o%-10d`\n", name+"/", 0, 0, 0, 0644, len(data))
	buf.Write(data)
	if len(data)%2 == 1 {
		buf.WriteByte('\n')
	}
}

func tarball(t testing.TB, files map[string]Entry) []byte {
	t.Helper()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, name := range names {
		e := files[name]
		hdr := &tar.Header{
			Name:     name,
			Mode:     e.Mode,
			Typeflag: e.Type,
			Linkname: e.Linkname,
		}
		if hdr.Typeflag == 0 {
			hdr.Typeflag = tar.TypeReg
		}
		if hdr.Mode == 0 {
			hdr.Mode = 0644
			if hdr.Typeflag == tar.TypeDir {
				hdr.Mode = 0755
			}
		}
		if hdr.Typeflag == tar.TypeReg {
			hdr.Size = int64(len(e.Body))
		}
		require.NoError(t, tw.WriteHeader(hdr))
		if hdr.Typeflag == tar.TypeReg {
			_, err := io.WriteString(tw, e.Body)
			require.NoError(t, err)
		}
	}
	require.NoError(t, tw.Close())
	return buf.Bytes()
}

func compress(t testing.TB, kind string, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	var w io.WriteCloser
	var err error

	switch kind {
	case "":
		return data
	case "gz":
		w = gzip.NewWriter(&buf)
	case "xz":
		w, err = xz.NewWriter(&buf)
	case "zst":
		w, err = zstd.NewWriter(&buf)
	default:
		t.Fatalf("unknown compression %q", kind)
	}
	require.NoError(t, err)

	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}
