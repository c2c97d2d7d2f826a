package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPlainText(t *testing.T) {
	doc := Extract([]byte("Jane Doe\nSKILLS\nGo, SQL"))

	require.NotNil(t, doc)
	assert.Equal(t, KindText, doc.Kind)
	assert.Equal(t, "Jane Doe\nSKILLS\nGo, SQL", doc.Text)
	assert.Empty(t, doc.Fallback)
	assert.Contains(t, doc.MIME, "text/plain")
}

func TestExtractEmpty(t *testing.T) {
	doc := Extract(nil)

	assert.Equal(t, KindText, doc.Kind)
	assert.Empty(t, doc.Text)
}

func TestExtractDropsInvalidUTF8(t *testing.T) {
	doc := Extract([]byte("Jane \xff\xfeDoe"))

	assert.Equal(t, "Jane Doe", doc.Text)
}

func TestExtractBrokenPDFFallsBackToText(t *testing.T) {
	doc := Extract([]byte("%PDF-1.4\nSKILLS python\n"))

	assert.Equal(t, KindText, doc.Kind)
	assert.Equal(t, "application/pdf", doc.MIME)
	assert.NotEmpty(t, doc.Fallback)
	assert.Contains(t, doc.Text, "SKILLS python")
}

func TestDocxXMLToText(t *testing.T) {
	xml := `<w:document><w:body>` +
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>R&amp;D</w:t><w:tab/><w:t>Python</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>line</w:t><w:br/><w:t>break</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	assert.Equal(t, "Jane Doe\nR&D\tPython\nline\nbreak\n", docxXMLToText(xml))
}
