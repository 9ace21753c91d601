package extract_test

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advisor-labs/readiness/pkg/extract"
)

func TestExtract_Text(t *testing.T) {
	doc, err := extract.Extract("notes.txt", []byte("Hello, this is a test document with important content."))
	require.NoError(t, err)

	assert.Equal(t, "notes.txt", doc.Filename)
	assert.Contains(t, doc.Content, "Hello")
	assert.Equal(t, "txt", doc.FileType)
	assert.Equal(t, 1, doc.PageCount)
}

func TestExtract_Markdown(t *testing.T) {
	doc, err := extract.Extract("README.md", []byte("# Title\n\nSome body text."))
	require.NoError(t, err)

	assert.Equal(t, "md", doc.FileType)
	assert.Contains(t, doc.Content, "Some body text.")
}

func TestExtract_TextPageEstimate(t *testing.T) {
	big := bytes.Repeat([]byte("a"), 9500)
	doc, err := extract.Extract("big.txt", big)
	require.NoError(t, err)

	assert.Equal(t, 3, doc.PageCount)
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	_, err := extract.Extract("report.xlsx", []byte("fake content"))
	require.Error(t, err)

	var unsupported *extract.UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, ".xlsx", unsupported.Extension)
	assert.Contains(t, err.Error(), ".xlsx")
}

func TestExtract_HTML(t *testing.T) {
	html := `<html><head><title>Strategy</title></head><body>
		<nav>Cookie Policy</nav>
		<main><p>Our cloud migration plan covers three regions.</p></main>
	</body></html>`

	doc, err := extract.Extract("strategy.html", []byte(html))
	require.NoError(t, err)

	assert.Equal(t, "html", doc.FileType)
	assert.Contains(t, doc.Content, "cloud migration plan")
	assert.NotContains(t, doc.Content, "Cookie Policy")
}

func TestExtract_DOCX(t *testing.T) {
	data := buildDOCX(t, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p>
      <w:pPr><w:pStyle w:val="Heading1"/></w:pPr>
      <w:r><w:t>Data Strategy</w:t></w:r>
    </w:p>
    <w:p><w:r><w:t>We maintain a central </w:t></w:r><w:r><w:t>data warehouse.</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	doc, err := extract.Extract("strategy.docx", data)
	require.NoError(t, err)

	assert.Equal(t, "docx", doc.FileType)
	assert.Contains(t, doc.Content, "## Data Strategy")
	assert.Contains(t, doc.Content, "We maintain a central data warehouse.")
	assert.GreaterOrEqual(t, doc.PageCount, 1)
}

func TestExtract_DOCXTables(t *testing.T) {
	data := buildDOCX(t, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Intro paragraph.</w:t></w:r></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>System</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>Owner</w:t></w:r></w:p></w:tc>
      </w:tr>
      <w:tr>
        <w:tc><w:p><w:r><w:t>CRM</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>governance policy detail</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
  </w:body>
</w:document>`)

	doc, err := extract.Extract("inventory.docx", data)
	require.NoError(t, err)

	assert.Contains(t, doc.Content, "Intro paragraph.")
	assert.Contains(t, doc.Content, "System | Owner")
	assert.Contains(t, doc.Content, "CRM | governance policy detail")
}

func TestExtract_DOCXCorrupt(t *testing.T) {
	_, err := extract.Extract("broken.docx", []byte("not a zip archive"))
	require.Error(t, err)

	var extraction *extract.ExtractionError
	require.ErrorAs(t, err, &extraction)
	assert.Equal(t, "broken.docx", extraction.Filename)
	assert.NotNil(t, errors.Unwrap(extraction))
}

func TestExtract_PDFCorrupt(t *testing.T) {
	_, err := extract.Extract("broken.pdf", []byte("%PDF-1.4 truncated garbage"))
	require.Error(t, err)

	var extraction *extract.ExtractionError
	assert.ErrorAs(t, err, &extraction)
}

func TestExtractFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("File on disk."), 0644))

	doc, err := extract.ExtractFile(path)
	require.NoError(t, err)
	assert.Equal(t, "doc.txt", doc.Filename)
	assert.Equal(t, "File on disk.", doc.Content)

	_, err = extract.ExtractFile(filepath.Join(tmpDir, "missing.txt"))
	require.Error(t, err)
	var extraction *extract.ExtractionError
	assert.ErrorAs(t, err, &extraction)
}

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(strings.TrimSpace(documentXML)))
	require.NoError(t, err)

	require.NoError(t, w.Close())
	return buf.Bytes()
}
