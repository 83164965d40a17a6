package ports

import (
	"context"
	"image"
)

// StructuredTextReader reads the embedded text layer of a document page by
// page. Implementations report parser failures as errors; the extraction
// chain treats them as zero output.
type StructuredTextReader interface {
	ReadPages(ctx context.Context, data []byte) ([]string, error)
}

// LayoutTextReader reconstructs per-page text from page layout when the
// embedded text layer is unusable.
type LayoutTextReader interface {
	ReadPages(ctx context.Context, data []byte) ([]string, error)
}

// PageRasterizer renders document pages to images for optical recognition.
type PageRasterizer interface {
	Rasterize(ctx context.Context, data []byte) ([]image.Image, error)
}

// OCREngine recognizes text in a single page image.
type OCREngine interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// Embedder builds fixed-length vectors for texts. Vectors have the same
// dimensionality for all inputs and are deterministic for identical input;
// the empty string embeds to a well-formed vector.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
