package loader

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is the closed set of file formats the loader knows how to extract.
// Keeping this a tagged variant instead of an extension→func map means a new
// format cannot be added without the compiler pointing at every switch that
// must learn about it.
type Format int

const (
	FormatUnknown Format = iota
	FormatPDF
	FormatText
	FormatMarkdown
	FormatDocx
)

func (f Format) String() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatText:
		return "txt"
	case FormatMarkdown:
		return "markdown"
	case FormatDocx:
		return "docx"
	default:
		return "unknown"
	}
}

// FormatForExt maps a bare lowercase extension (no dot) to its Format.
// Both "md" and "markdown" resolve to FormatMarkdown.
func FormatForExt(ext string) Format {
	switch strings.ToLower(ext) {
	case "pdf":
		return FormatPDF
	case "txt":
		return FormatText
	case "md", "markdown":
		return FormatMarkdown
	case "docx", "odt", "rtf":
		return FormatDocx
	default:
		return FormatUnknown
	}
}

func formatForPath(path string) Format {
	return FormatForExt(extOf(path))
}

func extOf(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// extract runs the matching extraction strategy. It returns the raw text and
// the page count when the format has a native page concept (0 otherwise).
func extract(path string, format Format) (string, int, error) {
	switch format {
	case FormatPDF:
		return extractPDF(path)
	case FormatText, FormatMarkdown:
		//markdown is treated as plain text at this layer
		return extractTextFile(path)
	case FormatDocx:
		return extractDocx(path)
	case FormatUnknown:
		return "", 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, extOf(path))
	default:
		return "", 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
