package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"catalog/pkg/catalog"
)

// Format selects the document decoder.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned by Decode for formats other than JSON and YAML.
var ErrUnknownFormat = errors.New("unknown catalog document format")

// FormatFor picks the decoder from the file extension; anything that is not YAML is read as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads the catalog document at path. An empty file yields no records.
func Load(path string) ([]catalog.CategoryRecord, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open catalog document: %w", err)
	}
	defer f.Close()

	records, err := Decode(f, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return records, nil
}

// Decode parses a catalog document: a list of categories, each with its products.
func Decode(r io.Reader, format Format) ([]catalog.CategoryRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []catalog.CategoryRecord{}, nil
	}

	var records []catalog.CategoryRecord
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &records)
	case FormatYAML:
		err = yaml.Unmarshal(data, &records)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []catalog.CategoryRecord{}
	}
	return records, nil
}
