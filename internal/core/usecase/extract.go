package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Logeshkanna0406/ai-resume-job-matching/internal/core/domain"
	"github.com/Logeshkanna0406/ai-resume-job-matching/internal/core/ports"
)

type strategyState int

const (
	stateNotTried strategyState = iota
	stateTriedInsufficient
	stateSufficient
)

const (
	StrategyManual     = "manual"
	StrategyPlainText  = "plaintext"
	StrategyStructured = "structured"
	StrategyLayout     = "layout"
	StrategyOCR        = "ocr"
	StrategyNone       = "none"
)

// ExtractTextUseCase converts a document of unknown internal structure into
// normalized text via ordered fallback strategies: embedded text layer,
// layout reconstruction, then optical recognition. Each strategy runs only if
// the accumulated output of all prior strategies stayed under the
// sufficiency threshold, and each failure is swallowed locally so the chain
// never surfaces a fatal error.
type ExtractTextUseCase struct {
	structured ports.StructuredTextReader
	layout     ports.LayoutTextReader
	rasterizer ports.PageRasterizer
	ocr        ports.OCREngine

	minUsableChars int
}

func NewExtractTextUseCase(
	structured ports.StructuredTextReader,
	layout ports.LayoutTextReader,
	rasterizer ports.PageRasterizer,
	ocr ports.OCREngine,
	minUsableChars int,
) *ExtractTextUseCase {
	if minUsableChars <= 0 {
		minUsableChars = 100
	}
	return &ExtractTextUseCase{
		structured:     structured,
		layout:         layout,
		rasterizer:     rasterizer,
		ocr:            ocr,
		minUsableChars: minUsableChars,
	}
}

func (uc *ExtractTextUseCase) ExtractText(ctx context.Context, doc domain.Document) domain.ExtractionResult {
	if strings.TrimSpace(doc.ManualText) != "" {
		return uc.result(doc.ManualText, StrategyManual)
	}
	if doc.Kind == domain.KindPlainText {
		return uc.result(string(doc.Data), StrategyPlainText)
	}

	type chainStep struct {
		name  string
		run   func(context.Context, []byte) string
		state strategyState
	}
	steps := []chainStep{
		{name: StrategyStructured, run: uc.runStructured},
		{name: StrategyLayout, run: uc.runLayout},
		{name: StrategyOCR, run: uc.runOCR},
	}

	// Every strategy appends to the same accumulator; a strategy is skipped
	// once the accumulated text clears the threshold.
	var acc strings.Builder
	winner := StrategyNone
	for i := range steps {
		if domain.CountUsableChars(acc.String()) >= uc.minUsableChars {
			break
		}
		steps[i].state = stateTriedInsufficient
		// Strategies must not share a read position: run gets the original
		// byte slice and builds its own reader over it.
		out := steps[i].run(ctx, doc.Data)
		if out != "" {
			acc.WriteString(out)
			acc.WriteString(" ")
		}
		if domain.CountUsableChars(acc.String()) >= uc.minUsableChars {
			steps[i].state = stateSufficient
			winner = steps[i].name
		}
	}

	return uc.result(acc.String(), winner)
}

func (uc *ExtractTextUseCase) result(raw, strategy string) domain.ExtractionResult {
	text := domain.Normalize(raw)
	usable := domain.CountUsableChars(text)
	return domain.ExtractionResult{
		Text:        text,
		Strategy:    strategy,
		UsableChars: usable,
		Sufficient:  usable >= uc.minUsableChars,
	}
}

func (uc *ExtractTextUseCase) runStructured(ctx context.Context, data []byte) string {
	if uc.structured == nil {
		return ""
	}
	pages, err := uc.structured.ReadPages(ctx, data)
	if err != nil {
		slog.Warn("extraction_strategy_failed", "strategy", StrategyStructured, "error", err)
		return ""
	}
	return strings.Join(pages, " ")
}

func (uc *ExtractTextUseCase) runLayout(ctx context.Context, data []byte) string {
	if uc.layout == nil {
		return ""
	}
	pages, err := uc.layout.ReadPages(ctx, data)
	if err != nil {
		slog.Warn("extraction_strategy_failed", "strategy", StrategyLayout, "error", err)
		return ""
	}
	return strings.Join(pages, " ")
}

func (uc *ExtractTextUseCase) runOCR(ctx context.Context, data []byte) string {
	if uc.rasterizer == nil || uc.ocr == nil {
		return ""
	}
	images, err := uc.rasterizer.Rasterize(ctx, data)
	if err != nil {
		slog.Warn("extraction_strategy_failed", "strategy", StrategyOCR, "stage", "rasterize", "error", err)
		return ""
	}

	var b strings.Builder
	for i, img := range images {
		text, err := uc.ocr.Recognize(ctx, img)
		if err != nil {
			slog.Warn("extraction_strategy_failed", "strategy", StrategyOCR, "stage", "recognize", "page", i+1, "error", err)
			continue
		}
		b.WriteString(text)
		b.WriteString(" ")
	}
	return b.String()
}
