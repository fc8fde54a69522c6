package deb

import (
	"archive/tar"
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ralt/pkg2nix/internal/models"
	"github.com/ralt/pkg2nix/internal/utils"
)

const (
	fallbackName    = "generated-package"
	fallbackVersion = "1.0.0"
)

// readControl extracts the control file from a control.tar* member
func readControl(name string, r io.Reader) ([]byte, error) {
	dr, err := utils.DecompressReader(name, r)
	if err != nil {
		return nil, err
	}
	defer dr.Close()

	tarReader := tar.NewReader(dr)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if header.Name == "./control" || header.Name == "control" {
			return io.ReadAll(tarReader)
		}
	}

	return nil, fmt.Errorf("control file not found in %s", name)
}

// foldedFields may wrap across lines and are read in full
var foldedFields = map[string]bool{
	"Depends": true,
}

// parseControl parses the Debian control file format
func parseControl(data []byte) (*models.PackageMetadata, error) {
	meta := &models.PackageMetadata{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	var currentKey string
	var currentValue strings.Builder

	for scanner.Scan() {
		line := scanner.Text()

		// Folded fields continue on indented lines; the extended
		// description body is not needed
		if len(line) > 0 && (line[0] == ' ' || line[0] == '\t') {
			if foldedFields[currentKey] {
				currentValue.WriteString(" ")
				currentValue.WriteString(strings.TrimSpace(line))
			}
			continue
		}

		// Save previous key-value pair
		if currentKey != "" {
			setValue(meta, currentKey, currentValue.String())
		}

		currentKey = ""
		if key, value, ok := strings.Cut(line, ":"); ok {
			currentKey = strings.TrimSpace(key)
			currentValue.Reset()
			currentValue.WriteString(strings.TrimSpace(value))
		}
	}

	// Save last key-value pair
	if currentKey != "" {
		setValue(meta, currentKey, currentValue.String())
	}

	return meta, scanner.Err()
}

// setValue sets a field in the metadata based on the control file key
func setValue(meta *models.PackageMetadata, key, value string) {
	switch key {
	case "Package":
		meta.Name = value
	case "Version":
		meta.Version = value
	case "Architecture":
		meta.Architecture = value
	case "Description":
		meta.Description = value
	case "Maintainer":
		meta.Maintainer = value
	case "Homepage":
		meta.Homepage = value
	case "Depends":
		for _, dep := range strings.Split(value, ",") {
			if dep = strings.TrimSpace(dep); dep != "" {
				meta.Depends = append(meta.Depends, dep)
			}
		}
	}
}

// normalize applies naming conventions and fallbacks to parsed metadata
func normalize(meta *models.PackageMetadata) {
	meta.Name = strings.ToLower(meta.Name)
	if meta.Name == "" || meta.Version == "" {
		meta.Name = fallbackName
		meta.Version = fallbackVersion
	}
	meta.Architecture = models.NormalizeArchitecture(meta.Architecture)
}
