package lines

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// SupportedExtensions lists file extensions this service can ingest.
var SupportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".html": true,
	".htm":  true,
	".pdf":  true,
	".docx": true,
	".csv":  true,
}

// ForFile returns a Source for the given file content, chosen by extension.
func ForFile(r io.Reader, filename string, fallbackPdftotext bool) (Source, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextSource{Reader: r}, nil
	case ".md", ".markdown":
		return &MarkdownSource{Reader: r}, nil
	case ".html", ".htm":
		return &HTMLSource{Reader: r}, nil
	case ".pdf":
		return &PDFSource{Reader: r, FallbackPdftotext: fallbackPdftotext}, nil
	case ".docx":
		return &DOCXSource{Reader: r}, nil
	case ".csv":
		return &CSVSource{Reader: r}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
