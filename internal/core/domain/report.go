package domain

import (
	"fmt"
	"strings"
	"time"
)

// NoSkillsPlaceholder renders instead of an empty skill list so that feedback
// sections are never blank.
const NoSkillsPlaceholder = "none"

// MatchReport is the final structured output of one match request. It is
// immutable once produced and owned by the caller.
type MatchReport struct {
	ID string `json:"id"`

	CombinedScore float64 `json:"combined_score"`
	SemanticScore float64 `json:"semantic_score"`
	KeywordScore  float64 `json:"keyword_score"`

	Matched []string `json:"matched_skills"`
	Missing []string `json:"missing_skills"`
	Extra   []string `json:"extra_skills"`

	Feedback string `json:"feedback"`

	ExtractionStrategy string `json:"extraction_strategy"`
	LowConfidence      bool   `json:"low_confidence"`

	GeneratedAt time.Time `json:"generated_at"`
}

// RenderSkillList joins tags for human-readable output, substituting the
// placeholder for an empty set.
func RenderSkillList(tags []string) string {
	if len(tags) == 0 {
		return NoSkillsPlaceholder
	}
	return strings.Join(tags, ", ")
}

// BuildFeedback produces the deterministic human-readable explanation of a
// match from the combined score and the three feedback sets.
func BuildFeedback(combined float64, matched, missing, extra []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Match score: %.2f%%\n", combined)
	fmt.Fprintf(&b, "Matching JD skills: %s\n", RenderSkillList(matched))
	fmt.Fprintf(&b, "Additional skills (not required but valuable): %s\n", RenderSkillList(extra))
	fmt.Fprintf(&b, "Missing JD-required skills: %s\n", RenderSkillList(missing))
	b.WriteString("Suggestions: emphasize experience related to the required skills, ")
	b.WriteString("highlight how additional skills add value, ")
	b.WriteString("and mirror the job description's terminology in the resume.")
	return b.String()
}
