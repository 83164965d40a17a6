package usecase

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/Logeshkanna0406/ai-resume-job-matching/internal/core/domain"
)

type pageReaderFake struct {
	pages []string
	err   error
	calls int
}

func (f *pageReaderFake) ReadPages(context.Context, []byte) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.pages, nil
}

type rasterizerFake struct {
	images []image.Image
	err    error
	calls  int
}

func (f *rasterizerFake) Rasterize(context.Context, []byte) ([]image.Image, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.images, nil
}

type ocrFake struct {
	texts []string
	err   error
	calls int
}

func (f *ocrFake) Recognize(context.Context, image.Image) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if f.calls > len(f.texts) {
		return "", nil
	}
	return f.texts[f.calls-1], nil
}

func longText(n int) string {
	return strings.Repeat("x", n)
}

func blankImage() image.Image {
	return image.NewGray(image.Rect(0, 0, 1, 1))
}

func TestExtractStopsAfterSufficientStructuredText(t *testing.T) {
	structured := &pageReaderFake{pages: []string{longText(300), longText(200)}}
	layout := &pageReaderFake{pages: []string{"layout"}}
	raster := &rasterizerFake{images: []image.Image{blankImage()}}
	ocr := &ocrFake{texts: []string{"ocr"}}
	uc := NewExtractTextUseCase(structured, layout, raster, ocr, 100)

	res := uc.ExtractText(context.Background(), domain.Document{Kind: domain.KindPDF, Data: []byte("%PDF")})
	if res.Strategy != StrategyStructured {
		t.Fatalf("Strategy = %q, want %q", res.Strategy, StrategyStructured)
	}
	if !res.Sufficient {
		t.Fatalf("expected sufficient extraction, got %+v", res)
	}
	if layout.calls != 0 || raster.calls != 0 || ocr.calls != 0 {
		t.Fatalf("later strategies invoked: layout=%d raster=%d ocr=%d", layout.calls, raster.calls, ocr.calls)
	}
}

func TestExtractFallsThroughToLayout(t *testing.T) {
	structured := &pageReaderFake{err: errors.New("corrupt xref")}
	layout := &pageReaderFake{pages: []string{longText(150)}}
	uc := NewExtractTextUseCase(structured, layout, &rasterizerFake{}, &ocrFake{}, 100)

	res := uc.ExtractText(context.Background(), domain.Document{Kind: domain.KindPDF})
	if res.Strategy != StrategyLayout {
		t.Fatalf("Strategy = %q, want %q", res.Strategy, StrategyLayout)
	}
	if structured.calls != 1 || layout.calls != 1 {
		t.Fatalf("unexpected call counts: structured=%d layout=%d", structured.calls, layout.calls)
	}
}

func TestExtractFallsThroughToOCRAsLastResort(t *testing.T) {
	structured := &pageReaderFake{pages: []string{"short"}}
	layout := &pageReaderFake{err: errors.New("no layout")}
	raster := &rasterizerFake{images: []image.Image{blankImage(), blankImage()}}
	ocr := &ocrFake{texts: []string{longText(80), longText(80)}}
	uc := NewExtractTextUseCase(structured, layout, raster, ocr, 100)

	res := uc.ExtractText(context.Background(), domain.Document{Kind: domain.KindScannedPDF})
	if res.Strategy != StrategyOCR {
		t.Fatalf("Strategy = %q, want %q", res.Strategy, StrategyOCR)
	}
	if ocr.calls != 2 {
		t.Fatalf("expected one OCR call per page, got %d", ocr.calls)
	}
	// The short structured output stays in the accumulator.
	if !strings.Contains(res.Text, "short") {
		t.Fatalf("accumulated text lost earlier strategy output: %q", res.Text)
	}
}

func TestExtractNeverFailsWhenEverythingFails(t *testing.T) {
	uc := NewExtractTextUseCase(
		&pageReaderFake{err: errors.New("bad")},
		&pageReaderFake{err: errors.New("worse")},
		&rasterizerFake{err: errors.New("no pages")},
		&ocrFake{},
		100,
	)

	res := uc.ExtractText(context.Background(), domain.Document{Kind: domain.KindPDF})
	if res.Text != "" || res.Sufficient {
		t.Fatalf("expected empty best-effort result, got %+v", res)
	}
	if res.Strategy != StrategyNone {
		t.Fatalf("Strategy = %q, want %q", res.Strategy, StrategyNone)
	}
}

func TestExtractBestEffortConcatenationWhenNothingClearsThreshold(t *testing.T) {
	structured := &pageReaderFake{pages: []string{"alpha"}}
	layout := &pageReaderFake{pages: []string{"beta"}}
	raster := &rasterizerFake{images: []image.Image{blankImage()}}
	ocr := &ocrFake{texts: []string{"gamma"}}
	uc := NewExtractTextUseCase(structured, layout, raster, ocr, 100)

	res := uc.ExtractText(context.Background(), domain.Document{Kind: domain.KindPDF})
	if res.Text != "alpha beta gamma" {
		t.Fatalf("Text = %q, want concatenation of all attempts", res.Text)
	}
	if res.Sufficient || res.Strategy != StrategyNone {
		t.Fatalf("expected insufficient best-effort result, got %+v", res)
	}
}

func TestExtractManualTextBypassesChain(t *testing.T) {
	structured := &pageReaderFake{pages: []string{longText(500)}}
	uc := NewExtractTextUseCase(structured, nil, nil, nil, 100)

	res := uc.ExtractText(context.Background(), domain.Document{
		Kind:       domain.KindPDF,
		Data:       []byte("%PDF"),
		ManualText: "  manually   typed resume\ntext  ",
	})
	if res.Strategy != StrategyManual {
		t.Fatalf("Strategy = %q, want %q", res.Strategy, StrategyManual)
	}
	if res.Text != "manually typed resume text" {
		t.Fatalf("Text = %q, want normalized manual text", res.Text)
	}
	if structured.calls != 0 {
		t.Fatalf("chain invoked despite manual bypass")
	}
}

func TestExtractPlainTextKindSkipsParsers(t *testing.T) {
	structured := &pageReaderFake{err: errors.New("should not run")}
	uc := NewExtractTextUseCase(structured, nil, nil, nil, 100)

	res := uc.ExtractText(context.Background(), domain.Document{
		Kind: domain.KindPlainText,
		Data: []byte("plain\t resume   body"),
	})
	if res.Strategy != StrategyPlainText {
		t.Fatalf("Strategy = %q, want %q", res.Strategy, StrategyPlainText)
	}
	if res.Text != "plain resume body" {
		t.Fatalf("Text = %q", res.Text)
	}
	if structured.calls != 0 {
		t.Fatalf("pdf reader invoked for plain text document")
	}
}
