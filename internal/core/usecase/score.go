package usecase

import (
	"math"

	"github.com/Logeshkanna0406/ai-resume-job-matching/internal/core/domain"
)

// cosineSimilarity returns the cosine of the angle between two vectors in
// [-1, 1], or 0 when either vector is empty, zero-length or the
// dimensionalities disagree.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// semanticScore rescales a cosine similarity to a 0-100 percentage. Negative
// similarity clamps to 0.
func semanticScore(similarity float64) float64 {
	return round2(math.Max(0, similarity) * 100)
}

// keywordScore is the fraction of job-description tags also present in the
// resume tags, as a 0-100 percentage. An empty jd set scores 0; callers are
// expected to have substituted the resume set before this point, so the
// zero-division branch is a safety net, not the common path.
func keywordScore(resume, jd domain.SkillSet) float64 {
	if jd.Len() == 0 {
		return 0
	}
	matched := resume.Intersect(jd)
	return round2(float64(matched.Len()) / float64(jd.Len()) * 100)
}

// combineScores blends the two sub-scores with fixed weights. Semantic
// similarity dominates because tag overlap is coarse while embeddings capture
// finer-grained relatedness.
func combineScores(semantic, keyword, semanticWeight, keywordWeight float64) float64 {
	return round2(semantic*semanticWeight + keyword*keywordWeight)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
