package deb

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const arMagic = "!<arch>\n"

// memberFunc is called for each ar member. Returning stop=true ends the walk.
type memberFunc func(name string, r io.Reader) (stop bool, err error)

// walkMembers iterates over the members of an ar archive (.deb files are ar archives)
func walkMembers(path string, fn memberFunc) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	magic := make([]byte, len(arMagic))
	if _, err := io.ReadFull(f, magic); err != nil {
		return fmt.Errorf("failed to read ar magic: %w", err)
	}
	if string(magic) != arMagic {
		return fmt.Errorf("not an ar archive")
	}

	offset := int64(len(arMagic))
	for {
		// Read ar header (60 bytes)
		arHeader := make([]byte, 60)
		if _, err := f.ReadAt(arHeader, offset); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("failed to read ar header: %w", err)
		}
		offset += 60

		// Parse filename (first 16 bytes, space-padded)
		// Also trim trailing slash that ar format may include
		filename := strings.TrimRight(strings.TrimSpace(string(arHeader[0:16])), "/")

		// Parse file size (bytes 48-58, decimal)
		size, err := strconv.ParseInt(strings.TrimSpace(string(arHeader[48:58])), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid size for ar member %q: %w", filename, err)
		}

		stop, err := fn(filename, io.NewSectionReader(f, offset, size))
		if err != nil || stop {
			return err
		}

		// Align to 2-byte boundary
		offset += size + size%2
	}
}
