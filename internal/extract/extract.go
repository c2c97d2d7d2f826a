// Package extract pulls plain text out of uploaded résumé bytes.
package extract

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Kind is the detected document format.
type Kind string

const (
	KindText Kind = "text"
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br/>|<w:cr/>`)
	docxTab          = regexp.MustCompile(`<w:tab/>`)
	xmlTags          = regexp.MustCompile(`<[^>]+>`)
)

// Document is the best-effort text of an upload.
type Document struct {
	Kind Kind   `json:"kind"`
	MIME string `json:"mime"`
	Text string `json:"-"`
	// Fallback explains why a PDF or DOCX was decoded as plain text.
	Fallback string `json:"fallback,omitempty"`
}

// Extract detects the format of data and returns its text. PDF and DOCX
// files that cannot be parsed are decoded as UTF-8 instead, dropping invalid
// bytes; the reason is kept in Document.Fallback.
func Extract(data []byte) *Document {
	if len(data) == 0 {
		return &Document{Kind: KindText, MIME: "text/plain"}
	}

	mime := mimetype.Detect(data)
	doc := &Document{MIME: mime.String()}

	var (
		text string
		err  error
	)

	switch {
	case mime.Is(mimePDF):
		doc.Kind = KindPDF
		text, err = pdfText(data)
	case mime.Is(mimeDOCX):
		doc.Kind = KindDOCX
		text, err = docxText(data)
	default:
		doc.Kind = KindText
		doc.Text = plainText(data)
		return doc
	}

	if err != nil {
		doc.Kind = KindText
		doc.Fallback = err.Error()
		doc.Text = plainText(data)
		return doc
	}

	doc.Text = text
	return doc
}

func plainText(data []byte) string {
	return strings.ToValidUTF8(string(data), "")
}

func pdfText(data []byte) (text string, err error) {
	// The pdf reader panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read pdf page %d: %w", i, err)
		}
		pages = append(pages, content)
	}

	return strings.Join(pages, "\n"), nil
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	defer doc.Close()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

// docxXMLToText keeps paragraphs as lines and drops all markup.
func docxXMLToText(content string) string {
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = docxTab.ReplaceAllString(content, "\t")
	content = xmlTags.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}
