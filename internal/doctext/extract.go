// Package doctext converts PDF and Word documents into plain text.
package doctext

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

var (
	// ErrUnsupportedFormat is returned for extensions other than pdf, doc and docx.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrExtractionFailed is returned when the bytes cannot be decoded as the declared type.
	ErrExtractionFailed = errors.New("document extraction failed")
)

// Extract returns the plain text of content decoded as ext. ext may carry a
// leading dot and is matched case-insensitively. No partial text is returned
// on failure.
func Extract(content []byte, ext string) (string, error) {
	ext = NormalizeExt(ext)
	switch ext {
	case "pdf":
		return extractPDF(content)
	case "doc", "docx":
		return extractDocx(content)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Supported reports whether ext can be extracted.
func Supported(ext string) bool {
	switch NormalizeExt(ext) {
	case "pdf", "doc", "docx":
		return true
	}
	return false
}

// NormalizeExt lower-cases ext and drops a leading dot.
func NormalizeExt(ext string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
}

// extractPDF concatenates the plain text of every page in page order.
// The pdf package panics on some malformed streams.
func extractPDF(content []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: pdf: %v", ErrExtractionFailed, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("%w: failed to read pdf: %v", ErrExtractionFailed, err)
	}

	var textBuilder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: failed to read pdf page %d: %v", ErrExtractionFailed, i, err)
		}
		textBuilder.WriteString(pageText)
	}
	return textBuilder.String(), nil
}

// extractDocx writes each paragraph of the main document part followed by a newline.
func extractDocx(content []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("%w: failed to parse docx: %v", ErrExtractionFailed, err)
	}
	defer doc.Close()

	text, err := paragraphText(doc.Editable().GetContent())
	if err != nil {
		return "", fmt.Errorf("%w: failed to read docx body: %v", ErrExtractionFailed, err)
	}
	return text, nil
}

// paragraphText walks WordprocessingML and emits the text runs of each w:p.
// Elements are matched by local name so the namespace prefix does not matter.
// Tabs and breaks count only inside a run; w:pPr holds tab-stop definitions.
func paragraphText(documentXML string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(documentXML))
	var (
		out       strings.Builder
		paragraph strings.Builder
		depth     int
		runDepth  int
		inText    bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				if depth == 0 {
					paragraph.Reset()
				}
				depth++
			case "r":
				if depth > 0 {
					runDepth++
				}
			case "t":
				inText = depth > 0
			case "tab":
				if runDepth > 0 {
					paragraph.WriteByte('\t')
				}
			case "br", "cr":
				if runDepth > 0 {
					paragraph.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "r":
				if runDepth > 0 {
					runDepth--
				}
			case "p":
				if depth == 0 {
					continue
				}
				depth--
				if depth == 0 {
					out.WriteString(paragraph.String())
					out.WriteByte('\n')
				}
			}
		case xml.CharData:
			if inText {
				paragraph.Write(t)
			}
		}
	}
	return out.String(), nil
}
