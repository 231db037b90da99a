package extractor

import (
	"errors"
	"path/filepath"
	"strings"
)

// Format is the declared type of an uploaded document, derived from the
// filename suffix at upload time.
type Format string

const (
	FormatPDF       Format = "pdf"
	FormatDOCX      Format = "docx"
	FormatPlainText Format = "plain-text"
)

var (
	// ErrDecode is returned when raw bytes cannot be decoded as text.
	ErrDecode = errors.New("document bytes could not be decoded as text")

	// ErrUnsupportedFormat is reserved for a closed format enumeration.
	// Under the current fallback policy every unrecognized format is
	// treated as plain text, so Extract never returns it.
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// FormatFromFilename derives the format tag from the filename suffix.
// Anything that is not .pdf or .docx is treated as plain text.
func FormatFromFilename(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	default:
		return FormatPlainText
	}
}

// Extract converts raw document bytes into plain text according to the
// declared format.
func Extract(data []byte, format Format) (string, error) {
	switch format {
	case FormatPDF:
		return ExtractPDF(data)
	case FormatDOCX:
		return ExtractDOCX(data)
	default:
		return ExtractTXT(data)
	}
}
