// Package pdftext implements the two PDF-backed extraction strategies: the
// embedded text layer and a layout-aware row reconstruction. Both build a
// fresh reader over the raw bytes per call, so a document's read position is
// never shared between strategies or requests.
package pdftext

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// StructuredReader reads the embedded text layer page by page.
type StructuredReader struct{}

func NewStructuredReader() *StructuredReader {
	return &StructuredReader{}
}

func (r *StructuredReader) ReadPages(ctx context.Context, data []byte) (pages []string, err error) {
	// The pdf package panics on some malformed documents; the chain's
	// contract is that a broken document is zero output, not a crash.
	defer func() {
		if rec := recover(); rec != nil {
			pages = nil
			err = fmt.Errorf("pdf text layer: parser panic: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	total := reader.NumPage()
	pages = make([]string, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Page-local failure: skip the page, keep the rest.
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}
