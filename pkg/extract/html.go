package extract

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/advisor-labs/readiness/internal/models"
)

// mainContentSelectors are tried in order before falling back to body.
var mainContentSelectors = []string{
	"main",
	"article",
	".content",
	"#content",
	".documentation",
	"#documentation",
}

func extractHTML(filename string, data []byte) (models.ExtractedDocument, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return models.ExtractedDocument{}, &ExtractionError{Filename: filename, Err: err}
	}

	var content string
	for _, selector := range mainContentSelectors {
		if selected := doc.Find(selector); selected.Length() > 0 {
			content = selected.Text()
			break
		}
	}
	if content == "" {
		content = doc.Find("body").Text()
	}

	content = cleanHTMLText(content)

	return models.ExtractedDocument{
		Filename:  filename,
		Content:   sanitizeUTF8(content),
		PageCount: estimatePages(len(content)),
		FileType:  "html",
	}, nil
}

func cleanHTMLText(content string) string {
	// Collapse whitespace runs left behind by tag removal
	content = strings.Join(strings.Fields(content), " ")

	noisePatterns := []string{
		"Cookie Policy",
		"Accept Cookies",
		"Privacy Policy",
		"Terms of Service",
	}
	for _, pattern := range noisePatterns {
		content = strings.ReplaceAll(content, pattern, "")
	}

	return strings.TrimSpace(content)
}
