package extract

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/advisor-labs/readiness/internal/models"
)

// charsPerPage is the best-effort page estimate for non-paginated formats.
const charsPerPage = 3000

// UnsupportedFormatError is returned for file extensions no extractor handles.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type: %s (supported: pdf, docx, txt, md, html)", e.Extension)
}

// ExtractionError wraps a parser-level failure for a recognised format.
type ExtractionError struct {
	Filename string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract %s: %v", e.Filename, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Extract routes content to the correct extractor based on the filename's
// extension and returns a uniform document representation.
func Extract(filename string, data []byte) (models.ExtractedDocument, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extractPDF(filename, data)
	case ".docx", ".doc":
		return extractDOCX(filename, data)
	case ".txt", ".md":
		return extractText(filename, data)
	case ".html", ".htm":
		return extractHTML(filename, data)
	default:
		return models.ExtractedDocument{}, &UnsupportedFormatError{
			Extension: strings.ToLower(filepath.Ext(filename)),
		}
	}
}

// ExtractFile reads a file from disk and extracts it.
func ExtractFile(path string) (models.ExtractedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.ExtractedDocument{}, &ExtractionError{Filename: filepath.Base(path), Err: err}
	}
	return Extract(filepath.Base(path), data)
}

func extractText(filename string, data []byte) (models.ExtractedDocument, error) {
	content := sanitizeUTF8(string(data))

	return models.ExtractedDocument{
		Filename:  filename,
		Content:   content,
		PageCount: estimatePages(len(content)),
		FileType:  strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), "."),
	}, nil
}

func estimatePages(chars int) int {
	pages := chars / charsPerPage
	if pages < 1 {
		return 1
	}
	return pages
}

// sanitizeUTF8 drops invalid byte sequences so content is safe to store and
// embed in prompts.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	v := make([]rune, 0, len(s))
	for i, r := range s {
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(s[i:])
			if size == 1 {
				continue
			}
		}
		v = append(v, r)
	}
	return string(v)
}

// joinPages renders extracted pages with their page markers.
func joinPages(pages []string) string {
	var b bytes.Buffer
	for i, page := range pages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(page)
	}
	return b.String()
}
