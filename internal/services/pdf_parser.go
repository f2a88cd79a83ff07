package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedFormat is returned for files that are neither PDF nor plain text.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// DocumentLoader reads a CV or job posting from disk as plain text.
type DocumentLoader interface {
	Load(path string) (*Document, error)
}

type Document struct {
	Text      string
	PageCount int
	FilePath  string
}

type documentLoader struct{}

func NewDocumentLoader() DocumentLoader {
	return &documentLoader{}
}

// Load implements DocumentLoader. PDFs go through the text extractor; .txt and
// .md files are read as is.
func (l *documentLoader) Load(path string) (*Document, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractPDF(path)
	case ".txt", ".md", "":
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		text := CleanText(string(raw))
		if text == "" {
			return nil, fmt.Errorf("no text content found in %s", path)
		}
		return &Document{Text: text, PageCount: 1, FilePath: path}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func extractPDF(filePath string) (*Document, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// unreadable pages are skipped
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := CleanText(textBuilder.String())
	if text == "" {
		return nil, fmt.Errorf("no text content found in PDF")
	}

	return &Document{
		Text:      text,
		PageCount: totalPage,
		FilePath:  filePath,
	}, nil
}

// CleanText trims every line and drops blank ones.
func CleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	cleaned := make([]string, 0, len(lines))

	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			cleaned = append(cleaned, line)
		}
	}

	return strings.Join(cleaned, "\n")
}
