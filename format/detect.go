// Package format provides input format detection for the gravy library.
package format

import (
	"bytes"
	"io"
	"path/filepath"
	"regexp"
	"strings"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// YAML indicates a YAML page dump.
	YAML
	// JSON indicates a JSON page dump.
	JSON
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case YAML:
		return "YAML"
	case JSON:
		return "JSON"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case YAML:
		return ".yaml"
	case JSON:
		return ".json"
	default:
		return ""
	}
}

// IsDump reports whether the format is a page dump rather than a document.
func (f Format) IsDump() bool {
	return f == YAML || f == JSON
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF
	case ".yaml", ".yml":
		return YAML
	case ".json":
		return JSON
	default:
		return Unknown
	}
}

// yamlKey matches a top-level mapping key or the first key of a sequence
// item, e.g. "number: 1" or "- number: 1".
var yamlKey = regexp.MustCompile(`^(- )?[A-Za-z_][A-Za-z0-9_]*:(\s|$)`)

// DetectFromMagic checks the leading bytes to determine format. PDF has a
// real signature; JSON and YAML are recognised by their first token.
func DetectFromMagic(data []byte) Format {
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return PDF
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return Unknown
	}

	switch trimmed[0] {
	case '{', '[':
		return JSON
	}

	if bytes.HasPrefix(trimmed, []byte("---")) || bytes.HasPrefix(trimmed, []byte("%YAML")) {
		return YAML
	}
	line := trimmed
	if i := bytes.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if yamlKey.Match(bytes.TrimRight(line, "\r")) {
		return YAML
	}
	return Unknown
}

// DetectFromReader inspects the first bytes of the content to determine
// format.
func DetectFromReader(r io.ReaderAt) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}

// Resolve detects the format from the extension first and falls back to
// the content.
func Resolve(filename string, r io.ReaderAt) (Format, error) {
	if f := Detect(filename); f != Unknown {
		return f, nil
	}
	return DetectFromReader(r)
}
