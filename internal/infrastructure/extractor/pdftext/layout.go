package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// LayoutReader reconstructs page text from glyph positions, row by row. It is
// the secondary strategy for documents whose plain text layer decodes badly
// but still carries positioned glyphs (tables, multi-column layouts).
type LayoutReader struct{}

func NewLayoutReader() *LayoutReader {
	return &LayoutReader{}
}

func (r *LayoutReader) ReadPages(ctx context.Context, data []byte) (pages []string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			pages = nil
			err = fmt.Errorf("pdf layout: parser panic: %v", rec)
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
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		pages = append(pages, renderRows(rows))
	}
	return pages, nil
}

func renderRows(rows pdf.Rows) string {
	// Row positions grow from the page bottom; render top-down.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Position > rows[j].Position
	})

	var b strings.Builder
	for _, row := range rows {
		for _, word := range row.Content {
			if word.S == "" {
				continue
			}
			b.WriteString(word.S)
			b.WriteString(" ")
		}
	}
	return b.String()
}
