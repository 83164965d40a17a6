// Package bootstrap assembles the application graph from configuration:
// taxonomy, extraction adapters, embedding client and the match use case.
package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/Logeshkanna0406/ai-resume-job-matching/internal/config"
	"github.com/Logeshkanna0406/ai-resume-job-matching/internal/core/ports"
	"github.com/Logeshkanna0406/ai-resume-job-matching/internal/core/usecase"
	"github.com/Logeshkanna0406/ai-resume-job-matching/internal/infrastructure/extractor/pdftext"
	"github.com/Logeshkanna0406/ai-resume-job-matching/internal/infrastructure/llm/ollama"
	"github.com/Logeshkanna0406/ai-resume-job-matching/internal/infrastructure/ocr/tesseract"
	"github.com/Logeshkanna0406/ai-resume-job-matching/internal/infrastructure/raster/fitzraster"
	"github.com/Logeshkanna0406/ai-resume-job-matching/internal/infrastructure/resilience"
	"github.com/Logeshkanna0406/ai-resume-job-matching/internal/infrastructure/taxonomy"
	"github.com/Logeshkanna0406/ai-resume-job-matching/internal/observability/metrics"
)

type App struct {
	Config  config.Config
	Matcher ports.ResumeMatcher
	Metrics *metrics.Metrics
}

func New(cfg config.Config, service string) (*App, error) {
	tax, err := taxonomy.Load(cfg.TaxonomyPath)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}

	var rasterizer ports.PageRasterizer
	var ocrEngine ports.OCREngine
	if cfg.OCREnabled {
		rasterizer = fitzraster.New(cfg.RasterDPI)
		ocrEngine = tesseract.New(cfg.OCRLanguage)
	} else {
		slog.Info("ocr_disabled", "service", service)
	}

	extractor := usecase.NewExtractTextUseCase(
		pdftext.NewStructuredReader(),
		pdftext.NewLayoutReader(),
		rasterizer,
		ocrEngine,
		cfg.MinExtractedChars,
	)

	executorCfg := resilience.DefaultConfig()
	executorCfg.RetryMaxAttempts = cfg.EmbedRetryMaxAttempts
	executorCfg.BreakerEnabled = cfg.EmbedBreakerEnabled
	embedder := ollama.NewEmbedderWithExecutor(
		ollama.New(cfg.OllamaURL, cfg.OllamaEmbedModel),
		resilience.NewExecutor(executorCfg),
	)

	matcher := usecase.NewMatchUseCase(extractor, tax, embedder, usecase.MatchOptions{
		SemanticWeight:    cfg.SemanticWeight,
		KeywordWeight:     cfg.KeywordWeight,
		MinMatchableChars: cfg.MinMatchableChars,
	})

	return &App{
		Config:  cfg,
		Matcher: matcher,
		Metrics: metrics.New(service),
	}, nil
}
