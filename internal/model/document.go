package model

import (
	"strconv"
	"strings"
	"time"
)

// Document is a generated-documentation record. It is a pure domain model
// with no database-specific dependencies or tags; the persistence layer maps
// it to its own schema.
type Document struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	// Content is the post-processed Markdown documentation.
	Content string `json:"content"`
	// OriginalContent is the raw uploaded source code, retained so the
	// documentation can be regenerated later. Immutable once set.
	OriginalContent string `json:"originalContent,omitempty"`
	// Language is inferred from the file extension; "Unknown" when the
	// extension is not recognized.
	Language string `json:"language"`
	// StoragePath is the object-storage key of the archived source upload.
	StoragePath string `json:"storage_path"`
	// Version is a "MAJOR.MINOR"-style counter; the trailing numeric segment
	// increments on every edit or regeneration.
	Version      string    `json:"version"`
	WordCount    int       `json:"wordCount"`
	CodeLines    int       `json:"codeLines"`
	GeneratedAt  time.Time `json:"generatedAt"`
	LastModified time.Time `json:"lastModified"`
	CreatedAt    time.Time `json:"created_at"`
}

// InitialVersion is assigned to freshly generated documents.
const InitialVersion = "1.0"

// NextVersion increments the trailing numeric segment of a version string,
// e.g. "1.0" -> "1.1", "1.9" -> "1.10", "2.0.3" -> "2.0.4".
// A blank or non-numeric trailing segment is treated as zero.
func NextVersion(v string) string {
	if v == "" {
		v = InitialVersion
	}
	parts := strings.Split(v, ".")
	last, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		last = 0
	}
	parts[len(parts)-1] = strconv.Itoa(last + 1)
	return strings.Join(parts, ".")
}
