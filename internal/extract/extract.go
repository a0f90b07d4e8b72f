package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText returns the plain text of an uploaded file. The format is
// detected from the filename and the size checked against maxBytes before any
// decoding. A maxBytes of zero applies DefaultMaxUploadBytes.
func ExtractText(name string, data []byte, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	if int64(len(data)) > maxBytes {
		return "", &FileTooLargeError{Name: name, Size: int64(len(data)), Limit: maxBytes}
	}

	format := DetectFormat(name)
	switch format {
	case FormatText, FormatMarkdown:
		return normalizePlainText(string(data)), nil
	case FormatPDF:
		return extractPDF(name, data)
	default:
		return "", &UnsupportedFormatError{Name: name}
	}
}

func extractPDF(name string, data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Name: name, Cause: fmt.Errorf("open pdf: %w", err)}
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", &ExtractionError{Name: name, Cause: fmt.Errorf("extract pdf text: %w", err)}
	}

	buf := &bytes.Buffer{}
	if _, err := io.Copy(buf, plain); err != nil {
		return "", &ExtractionError{Name: name, Cause: fmt.Errorf("read pdf text: %w", err)}
	}

	return normalizePlainText(buf.String()), nil
}

// normalizePlainText unifies line endings and trims trailing whitespace from
// each line so downstream prompts see consistent text.
func normalizePlainText(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
