package domain

import (
	"errors"
	"fmt"
	"strings"
)

// TaxonomyRule maps one canonical skill tag to the lowercase substrings whose
// presence in text implies the tag.
type TaxonomyRule struct {
	Tag      string
	Triggers []string
}

// Taxonomy is the static, ordered trigger-rule table. It is loaded once and
// immutable for the process lifetime.
type Taxonomy struct {
	rules []TaxonomyRule
}

func NewTaxonomy(rules []TaxonomyRule) (Taxonomy, error) {
	if len(rules) == 0 {
		return Taxonomy{}, errors.New("taxonomy has no rules")
	}

	seen := make(map[string]struct{}, len(rules))
	normalized := make([]TaxonomyRule, 0, len(rules))
	for _, rule := range rules {
		tag := Normalize(strings.ToLower(rule.Tag))
		if tag == "" {
			return Taxonomy{}, errors.New("taxonomy rule with empty tag")
		}
		if _, dup := seen[tag]; dup {
			return Taxonomy{}, fmt.Errorf("duplicate taxonomy tag %q", tag)
		}
		seen[tag] = struct{}{}

		triggers := make([]string, 0, len(rule.Triggers))
		for _, trigger := range rule.Triggers {
			trigger = Normalize(strings.ToLower(trigger))
			if trigger != "" {
				triggers = append(triggers, trigger)
			}
		}
		if len(triggers) == 0 {
			return Taxonomy{}, fmt.Errorf("taxonomy tag %q has no triggers", tag)
		}
		normalized = append(normalized, TaxonomyRule{Tag: tag, Triggers: triggers})
	}

	return Taxonomy{rules: normalized}, nil
}

func (t Taxonomy) Rules() []TaxonomyRule {
	out := make([]TaxonomyRule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Match maps free text onto the set of tags whose trigger substrings occur in
// it. Matching is case-insensitive plain containment: no tokenization, no
// word boundaries, so "html" satisfies an "ml" trigger. Identical input text
// always yields an identical set.
func (t Taxonomy) Match(text string) SkillSet {
	lowered := strings.ToLower(text)
	skills := make(SkillSet)
	for _, rule := range t.rules {
		for _, trigger := range rule.Triggers {
			if strings.Contains(lowered, trigger) {
				skills.Add(rule.Tag)
				break
			}
		}
	}
	return skills
}
