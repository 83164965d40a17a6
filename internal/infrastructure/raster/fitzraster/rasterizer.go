// Package fitzraster renders PDF pages to images through MuPDF (go-fitz) for
// the optical-recognition extraction strategy.
package fitzraster

import (
	"context"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

const defaultDPI = 150

type Rasterizer struct {
	dpi float64
}

func New(dpi float64) *Rasterizer {
	if dpi <= 0 {
		dpi = defaultDPI
	}
	return &Rasterizer{dpi: dpi}
}

func (r *Rasterizer) Rasterize(ctx context.Context, data []byte) ([]image.Image, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("open document for rasterization: %w", err)
	}
	defer doc.Close()

	images := make([]image.Image, 0, doc.NumPage())
	for n := 0; n < doc.NumPage(); n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := doc.ImageDPI(n, r.dpi)
		if err != nil {
			return nil, fmt.Errorf("rasterize page %d: %w", n+1, err)
		}
		images = append(images, img)
	}
	return images, nil
}
