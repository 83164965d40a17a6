package ports

import (
	"context"

	"github.com/Logeshkanna0406/ai-resume-job-matching/internal/core/domain"
)

// ResumeMatcher is the inbound contract for one full match request.
type ResumeMatcher interface {
	Match(ctx context.Context, req domain.MatchRequest) (*domain.MatchReport, error)
}

// TextExtractor is the inbound contract for the document-to-text chain. It
// never returns a fatal error: degraded input yields empty or short text and
// the caller decides what to do with it.
type TextExtractor interface {
	ExtractText(ctx context.Context, doc domain.Document) domain.ExtractionResult
}
