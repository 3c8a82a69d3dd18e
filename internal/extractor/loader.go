package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ledongthuc/pdf"
)

// MIMEPDF is the only accepted input MIME type.
const MIMEPDF = "application/pdf"

// Classified loader failures. Everything downstream of the loader is a total
// function, so these are the only errors the pipeline can surface.
var (
	// ErrNotPDF means the uploaded file is not a PDF at all.
	ErrNotPDF = errors.New("file is not a PDF (expected application/pdf)")
	// ErrEmptyFile means the byte buffer had zero length.
	ErrEmptyFile = errors.New("file is empty")
	// ErrUnreadableDocument means the decoder could not build a page collection.
	// The file may be corrupted or password-protected.
	ErrUnreadableDocument = errors.New("document could not be decoded")
	// ErrNoTextContent means decoding succeeded but no text fragments were found
	// on any page. Typical of scanned/image-only PDFs without a text layer.
	ErrNoTextContent = errors.New("no extractable text in document")
)

// Fragment is one positioned piece of text from a page's content stream.
type Fragment struct {
	Text string
	X    float64
	Y    float64
}

// Document is the decoded PDF: positioned text fragments per page.
type Document struct {
	PageCount int
	Pages     [][]Fragment
}

// FragmentCount returns the total number of fragments across all pages.
func (d *Document) FragmentCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p)
	}
	return n
}

// The decode backend is shared process-wide and must be initialized exactly
// once, even with concurrent first callers.
var backendOnce sync.Once

func initBackend() {
	backendOnce.Do(func() {
		pdf.DebugOn = false
	})
}

// LoadDocument validates the input and decodes it into positioned text
// fragments, page by page. A corrupt page is skipped rather than aborting the
// whole document, but recovering zero fragments overall is ErrNoTextContent.
func LoadDocument(data []byte, mimeType string) (*Document, error) {
	if mimeType != MIMEPDF {
		return nil, fmt.Errorf("%w: got %q", ErrNotPDF, mimeType)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	initBackend()

	reader, err := openReader(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}

	numPages := reader.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("%w: document has no pages", ErrUnreadableDocument)
	}

	doc := &Document{PageCount: numPages}
	for i := 1; i <= numPages; i++ {
		doc.Pages = append(doc.Pages, extractPage(reader, i))
	}

	if doc.FragmentCount() == 0 {
		return nil, ErrNoTextContent
	}
	return doc, nil
}

// openReader builds a pdf.Reader over the in-memory buffer. The library
// panics on some malformed files, so the panic is converted to an error.
func openReader(data []byte) (r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("decoder crashed: %v", rec)
		}
	}()
	return pdf.NewReader(bytes.NewReader(data), int64(len(data)))
}

// extractPage pulls every positioned text fragment from one page.
// Failures (including library panics) leave the page empty.
func extractPage(reader *pdf.Reader, pageNum int) (frags []Fragment) {
	defer func() {
		if rec := recover(); rec != nil {
			frags = nil
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return nil
	}

	content := page.Content()
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		frags = append(frags, Fragment{Text: t.S, X: t.X, Y: t.Y})
	}
	return frags
}
