// Package extract turns uploaded files into plain text for analysis prompts.
// Format and size are checked before any decoding is attempted; rejected
// uploads leave no partial state behind.
package extract

import (
	"path/filepath"
	"strings"
)

// FileFormat enumerates supported upload formats.
type FileFormat string

const (
	// FormatUnknown represents an unsupported or undetected format.
	FormatUnknown FileFormat = ""
	// FormatText represents plain text documents.
	FormatText FileFormat = "text"
	// FormatMarkdown represents Markdown documents.
	FormatMarkdown FileFormat = "markdown"
	// FormatPDF represents PDF documents.
	FormatPDF FileFormat = "pdf"
)

// DefaultMaxUploadBytes caps upload size before extraction is attempted.
const DefaultMaxUploadBytes = 10 << 20 // 10 MiB

// DetectFormat infers a file format from the provided name's extension.
func DetectFormat(name string) FileFormat {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".txt":
		return FormatText
	case ".md", ".markdown":
		return FormatMarkdown
	case ".pdf":
		return FormatPDF
	default:
		return FormatUnknown
	}
}
