package types

// ParsedSection is one titled block reconstructed from a raw model response.
// Sections are derived on every parse and never persisted.
type ParsedSection struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}
