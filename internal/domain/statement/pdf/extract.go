package pdf

import (
	"strings"

	dslipak "github.com/dslipak/pdf"
)

// Document is the text-extraction collaborator: a paginated source that
// yields plain text per page. Scanned or image-only pages yield the empty
// string, not an error.
type Document interface {
	NumPages() int
	PageText(n int) (string, error)
}

// pdfDocument adapts a dslipak reader to Document.
type pdfDocument struct {
	r *dslipak.Reader
}

func (d pdfDocument) NumPages() int { return d.r.NumPage() }

func (d pdfDocument) PageText(n int) (string, error) {
	page := d.r.Page(n)
	if page.V.IsNull() {
		return "", nil
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		// A page with no extractable text layer contributes nothing;
		// that is routine for scanned pages, not a failure.
		return "", nil
	}
	return text, nil
}

// extractLines flattens a document into its ordered sequence of trimmed,
// non-empty text lines, page by page.
func extractLines(doc Document) ([]string, error) {
	var lines []string
	for n := 1; n <= doc.NumPages(); n++ {
		text, err := doc.PageText(n)
		if err != nil {
			return nil, err
		}
		for _, raw := range strings.Split(text, "\n") {
			line := strings.TrimSpace(raw)
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines, nil
}
