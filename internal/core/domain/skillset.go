package domain

import (
	"sort"
	"strings"
)

// SkillSet is the set of canonical skill tags derived from one document.
type SkillSet map[string]struct{}

func NewSkillSet(tags ...string) SkillSet {
	s := make(SkillSet, len(tags))
	for _, tag := range tags {
		s.Add(tag)
	}
	return s
}

func (s SkillSet) Add(tag string) {
	s[tag] = struct{}{}
}

func (s SkillSet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

func (s SkillSet) Len() int {
	return len(s)
}

func (s SkillSet) Clone() SkillSet {
	out := make(SkillSet, len(s))
	for tag := range s {
		out[tag] = struct{}{}
	}
	return out
}

// Tags returns the tags in sorted order so that serialization and report
// rendering are deterministic regardless of insertion order.
func (s SkillSet) Tags() []string {
	out := make([]string, 0, len(s))
	for tag := range s {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// Join serializes the set to a single space-joined string of its sorted tags.
// An empty set yields an empty string.
func (s SkillSet) Join() string {
	return strings.Join(s.Tags(), " ")
}

func (s SkillSet) Intersect(other SkillSet) SkillSet {
	out := make(SkillSet)
	for tag := range s {
		if other.Has(tag) {
			out[tag] = struct{}{}
		}
	}
	return out
}

// Diff returns the tags present in s but absent from other.
func (s SkillSet) Diff(other SkillSet) SkillSet {
	out := make(SkillSet)
	for tag := range s {
		if !other.Has(tag) {
			out[tag] = struct{}{}
		}
	}
	return out
}
