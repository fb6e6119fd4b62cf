package reader

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var ErrUnsupportedFormat = errors.New("unsupported document format")

// ReadFile loads the text of a .txt, .md or .html document. Word and PDF
// documents are rejected with ErrUnsupportedFormat.
func ReadFile(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("file path is required")
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".docx", ".doc", ".pdf", ".odt", ".rtf":
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(body) {
		return "", fmt.Errorf("%w: %s is not UTF-8 text", ErrUnsupportedFormat, filepath.Base(path))
	}

	switch ext {
	case ".md", ".markdown":
		return nonEmpty(MarkdownText(body))
	case ".html", ".htm", ".xhtml":
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		return extractHTML(body, &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)})
	default:
		return nonEmpty(CleanText(string(body)))
	}
}
