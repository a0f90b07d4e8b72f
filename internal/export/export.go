// Package export packages a finished document string as a downloadable
// artifact. It does not know how the content was produced; re-invoking an
// export is always safe because the in-memory document is never touched.
package export

import (
	"errors"
	"strings"
)

// Format represents the export output format.
type Format string

// Supported export formats.
const (
	FormatText Format = "txt"
	FormatDOCX Format = "docx"
)

// Result contains the export output ready for download.
type Result struct {
	Data     []byte
	Filename string
	MimeType string
}

// ErrDOCXDependencyMissing indicates DOCX export runtime dependencies are unavailable.
var ErrDOCXDependencyMissing = errors.New("export docx dependency missing")

// ErrUnknownFormat indicates a format this adapter cannot produce.
var ErrUnknownFormat = errors.New("unknown export format")

// Export packages content under the given title in the requested format.
func Export(content, title string, format Format) (*Result, error) {
	switch format {
	case FormatText, "":
		return AsText(content, title), nil
	case FormatDOCX:
		return AsDOCX(content, title)
	default:
		return nil, ErrUnknownFormat
	}
}

// AsText packages content as a plain-text artifact.
func AsText(content, title string) *Result {
	return &Result{
		Data:     []byte(content),
		Filename: sanitizeFilename(title) + ".txt",
		MimeType: "text/plain; charset=utf-8",
	}
}

// sanitizeFilename strips characters that are unsafe in download filenames.
func sanitizeFilename(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "document"
	}

	var sb strings.Builder
	for _, r := range title {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			sb.WriteRune('_')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
