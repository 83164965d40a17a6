package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Logeshkanna0406/ai-resume-job-matching/internal/core/domain"
	"github.com/Logeshkanna0406/ai-resume-job-matching/internal/core/ports"
)

const (
	DefaultSemanticWeight = 0.7
	DefaultKeywordWeight  = 0.3
)

type MatchOptions struct {
	SemanticWeight float64
	KeywordWeight  float64

	// MinMatchableChars rejects resume text below this many usable
	// characters before scoring. Text above it but below the extraction
	// sufficiency threshold still scores, flagged low-confidence.
	MinMatchableChars int
}

func (o MatchOptions) normalize() MatchOptions {
	out := o
	if out.SemanticWeight <= 0 || out.KeywordWeight < 0 || out.SemanticWeight+out.KeywordWeight > 1.0001 {
		out.SemanticWeight = DefaultSemanticWeight
		out.KeywordWeight = DefaultKeywordWeight
	}
	if out.MinMatchableChars <= 0 {
		out.MinMatchableChars = 50
	}
	return out
}

// MatchUseCase runs one full match request: extraction, taxonomy matching on
// both sides, dual-signal scoring and report building. It is stateless and
// safe for concurrent use; nothing outlives a single call.
type MatchUseCase struct {
	extractor ports.TextExtractor
	taxonomy  domain.Taxonomy
	embedder  ports.Embedder
	opts      MatchOptions
}

func NewMatchUseCase(
	extractor ports.TextExtractor,
	taxonomy domain.Taxonomy,
	embedder ports.Embedder,
	opts MatchOptions,
) *MatchUseCase {
	return &MatchUseCase{
		extractor: extractor,
		taxonomy:  taxonomy,
		embedder:  embedder,
		opts:      opts.normalize(),
	}
}

func (uc *MatchUseCase) Match(ctx context.Context, req domain.MatchRequest) (*domain.MatchReport, error) {
	extraction := uc.extractor.ExtractText(ctx, req.Resume)
	if extraction.UsableChars < uc.opts.MinMatchableChars {
		return nil, domain.WrapError(
			domain.ErrInvalidInput,
			"validate resume text",
			fmt.Errorf("%d usable characters extracted, need at least %d", extraction.UsableChars, uc.opts.MinMatchableChars),
		)
	}

	jdText := domain.Normalize(req.JobDescription)

	resumeSkills := uc.taxonomy.Match(extraction.Text)
	jdSkills := uc.taxonomy.Match(jdText)
	// An under-specified job description must not produce a spuriously low
	// or undefined match: fall back to the resume's own skill set.
	if jdSkills.Len() == 0 {
		jdSkills = resumeSkills.Clone()
	}

	semantic, err := uc.semanticScore(ctx, resumeSkills, jdSkills)
	if err != nil {
		return nil, err
	}
	keyword := keywordScore(resumeSkills, jdSkills)
	combined := combineScores(semantic, keyword, uc.opts.SemanticWeight, uc.opts.KeywordWeight)

	matched := resumeSkills.Intersect(jdSkills).Tags()
	missing := jdSkills.Diff(resumeSkills).Tags()
	extra := resumeSkills.Diff(jdSkills).Tags()

	return &domain.MatchReport{
		ID:                 uuid.NewString(),
		CombinedScore:      combined,
		SemanticScore:      semantic,
		KeywordScore:       keyword,
		Matched:            matched,
		Missing:            missing,
		Extra:              extra,
		Feedback:           domain.BuildFeedback(combined, matched, missing, extra),
		ExtractionStrategy: extraction.Strategy,
		LowConfidence:      !extraction.Sufficient,
		GeneratedAt:        time.Now().UTC(),
	}, nil
}

func (uc *MatchUseCase) semanticScore(ctx context.Context, resume, jd domain.SkillSet) (float64, error) {
	vectors, err := uc.embedder.Embed(ctx, []string{resume.Join(), jd.Join()})
	if err != nil {
		if domain.IsKind(err, domain.ErrCapabilityUnavailable) {
			return 0, fmt.Errorf("embed skill sets: %w", err)
		}
		return 0, domain.WrapError(domain.ErrCapabilityUnavailable, "embed skill sets", err)
	}
	if len(vectors) != 2 {
		return 0, domain.WrapError(
			domain.ErrCapabilityUnavailable,
			"embed skill sets",
			fmt.Errorf("expected 2 vectors, got %d", len(vectors)),
		)
	}
	if len(vectors[0]) != len(vectors[1]) {
		return 0, domain.WrapError(
			domain.ErrCapabilityUnavailable,
			"embed skill sets",
			errors.New("embedding dimensionality mismatch"),
		)
	}
	return semanticScore(cosineSimilarity(vectors[0], vectors[1])), nil
}
