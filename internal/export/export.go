package export

import (
	"errors"
	"fmt"
	"strings"
)

// Package export renders stored documentation into downloadable files.

var ErrUnsupportedFormat = errors.New("unsupported format")

// Format identifies a supported export format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
)

// ParseFormat validates a user-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatMarkdown:
		return FormatMarkdown, nil
	case FormatHTML:
		return FormatHTML, nil
	case FormatPDF:
		return FormatPDF, nil
	case FormatDOCX:
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// File is a rendered export ready to be sent as an attachment.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Render converts markdown documentation into the requested format. The
// returned filename is the source filename plus the format's extension.
func Render(format Format, filename, content string) (*File, error) {
	switch format {
	case FormatMarkdown:
		return &File{
			Name:        filename + ".md",
			ContentType: "text/markdown",
			Data:        []byte(content),
		}, nil
	case FormatHTML:
		data, err := renderHTML(content)
		if err != nil {
			return nil, err
		}
		return &File{
			Name:        filename + ".html",
			ContentType: "text/html",
			Data:        data,
		}, nil
	case FormatPDF:
		data, err := renderPDF(content)
		if err != nil {
			return nil, err
		}
		return &File{
			Name:        filename + ".pdf",
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	case FormatDOCX:
		data, err := renderDOCX(content)
		if err != nil {
			return nil, err
		}
		return &File{
			Name:        filename + ".docx",
			ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			Data:        data,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
