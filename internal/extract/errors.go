package extract

import "fmt"

// UnsupportedFormatError indicates a file whose format cannot be extracted.
type UnsupportedFormatError struct {
	Name string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %s", e.Name)
}

// FileTooLargeError indicates an upload over the configured size cap.
type FileTooLargeError struct {
	Name  string
	Size  int64
	Limit int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file %s is too large: %d bytes (limit %d)", e.Name, e.Size, e.Limit)
}

// ExtractionError indicates the decoder failed on a supported format.
type ExtractionError struct {
	Name  string
	Cause error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.Name, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
