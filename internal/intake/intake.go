package intake

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Package intake validates and reads uploaded source files before they enter
// the documentation pipeline. Files are spooled to a temp directory while
// being read and removed before Accept returns, so no upload outlives the
// request regardless of outcome.

var (
	ErrNoFile          = errors.New("no file uploaded")
	ErrEmptyFile       = errors.New("uploaded file is empty")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// allowedExtensions lists the source file extensions the pipeline accepts.
var allowedExtensions = map[string]struct{}{
	".js": {}, ".jsx": {}, ".ts": {}, ".tsx": {},
	".py": {}, ".java": {}, ".go": {}, ".php": {},
	".rb": {}, ".cs": {}, ".cpp": {}, ".c": {}, ".h": {},
	".sql": {}, ".vue": {}, ".svelte": {}, ".kt": {},
	".rs": {}, ".swift": {},
}

// Config controls where uploads are spooled and how much content is kept.
type Config struct {
	// TempDir is the directory used for spooling uploads. Created on demand.
	TempDir string
	// MaxChars caps the number of characters of content passed downstream.
	// Zero or negative disables truncation.
	MaxChars int
}

// SourceFile is a validated upload ready for documentation generation.
type SourceFile struct {
	Filename  string
	Content   string
	Size      int64
	Truncated bool
}

// Intake validates uploads and produces SourceFiles.
type Intake struct {
	cfg Config
}

func New(cfg Config) *Intake {
	return &Intake{cfg: cfg}
}

// Accept reads the upload from r, validates its name and content, and
// returns the resulting SourceFile. The upload is spooled through a temp
// file which is always removed before Accept returns.
func (in *Intake) Accept(r io.Reader, filename string) (*SourceFile, error) {
	if r == nil {
		return nil, ErrNoFile
	}
	filename = filepath.Base(strings.TrimSpace(filename))
	if filename == "" || filename == "." {
		return nil, ErrNoFile
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}

	if in.cfg.TempDir != "" {
		if err := os.MkdirAll(in.cfg.TempDir, 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
	}

	tmp, err := os.CreateTemp(in.cfg.TempDir, "upload-*"+ext)
	if err != nil {
		return nil, fmt.Errorf("spool upload: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	size, err := io.Copy(tmp, r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if size == 0 {
		return nil, ErrEmptyFile
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind upload: %w", err)
	}
	raw, err := io.ReadAll(tmp)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	content := string(raw)
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyFile
	}

	truncated := false
	if in.cfg.MaxChars > 0 && utf8.RuneCountInString(content) > in.cfg.MaxChars {
		content = truncateRunes(content, in.cfg.MaxChars)
		truncated = true
	}

	return &SourceFile{
		Filename:  filename,
		Content:   content,
		Size:      size,
		Truncated: truncated,
	}, nil
}

// truncateRunes cuts s to at most n runes without splitting a multi-byte
// sequence.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
