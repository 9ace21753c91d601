package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/advisor-labs/readiness/internal/models"
)

func extractPDF(filename string, data []byte) (doc models.ExtractedDocument, err error) {
	// The pdf package panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = &ExtractionError{Filename: filename, Err: fmt.Errorf("pdf parse panic: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return models.ExtractedDocument{}, &ExtractionError{Filename: filename, Err: err}
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, fmt.Sprintf("[Page %d]\n%s", i, text))
	}

	return models.ExtractedDocument{
		Filename:  filename,
		Content:   sanitizeUTF8(joinPages(pages)),
		PageCount: reader.NumPage(),
		FileType:  "pdf",
	}, nil
}
