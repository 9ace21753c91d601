package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/advisor-labs/readiness/internal/models"
)

// Paragraphs per estimated page for Word documents.
const paragraphsPerPage = 25

// documentXML mirrors the subset of word/document.xml we read.
type documentXML struct {
	Body struct {
		Paragraphs []docxParagraph `xml:"p"`
		Tables     []docxTable     `xml:"tbl"`
	} `xml:"body"`
}

type docxTable struct {
	Rows []docxRow `xml:"tr"`
}

type docxRow struct {
	Cells []docxCell `xml:"tc"`
}

type docxCell struct {
	Paragraphs []docxParagraph `xml:"p"`
}

type docxParagraph struct {
	Properties struct {
		Style struct {
			Val string `xml:"val,attr"`
		} `xml:"pStyle"`
	} `xml:"pPr"`
	Runs []docxRun `xml:"r"`
}

type docxRun struct {
	Text []docxText `xml:"t"`
}

type docxText struct {
	Content string `xml:",chardata"`
}

func extractDOCX(filename string, data []byte) (models.ExtractedDocument, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return models.ExtractedDocument{}, &ExtractionError{Filename: filename, Err: err}
	}

	raw, err := readArchiveFile(reader, "word/document.xml")
	if err != nil {
		return models.ExtractedDocument{}, &ExtractionError{Filename: filename, Err: err}
	}

	var doc documentXML
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return models.ExtractedDocument{}, &ExtractionError{Filename: filename, Err: err}
	}

	var sections []string
	for _, para := range doc.Body.Paragraphs {
		text := paragraphText(para)
		if text == "" {
			continue
		}
		// Preserve heading structure as markdown-style markers
		if strings.HasPrefix(para.Properties.Style.Val, "Heading") {
			text = "## " + text
		}
		sections = append(sections, text)
	}

	// Tables carry structured evidence (inventories, org charts); render each
	// row as cells joined with " | ".
	for _, table := range doc.Body.Tables {
		for _, row := range table.Rows {
			if text := rowText(row); text != "" {
				sections = append(sections, text)
			}
		}
	}

	pageCount := len(doc.Body.Paragraphs)/paragraphsPerPage + 1

	return models.ExtractedDocument{
		Filename:  filename,
		Content:   sanitizeUTF8(strings.Join(sections, "\n")),
		PageCount: pageCount,
		FileType:  "docx",
	}, nil
}

func paragraphText(para docxParagraph) string {
	var b strings.Builder
	for _, run := range para.Runs {
		for _, text := range run.Text {
			b.WriteString(text.Content)
		}
	}
	return strings.TrimSpace(b.String())
}

func rowText(row docxRow) string {
	var cells []string
	for _, cell := range row.Cells {
		var parts []string
		for _, para := range cell.Paragraphs {
			if text := paragraphText(para); text != "" {
				parts = append(parts, text)
			}
		}
		if joined := strings.Join(parts, " "); joined != "" {
			cells = append(cells, joined)
		}
	}
	return strings.Join(cells, " | ")
}

func readArchiveFile(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("missing %s in archive", name)
}
