// Package taxonomy loads the canonical skill taxonomy from YAML. The rule
// table is static configuration: loaded once at startup, immutable after.
package taxonomy

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Logeshkanna0406/ai-resume-job-matching/internal/core/domain"
)

//go:embed default_taxonomy.yaml
var defaultRules []byte

type fileRule struct {
	Tag      string   `yaml:"tag"`
	Triggers []string `yaml:"triggers"`
}

// Load reads the taxonomy from path, or the embedded default when path is
// empty.
func Load(path string) (domain.Taxonomy, error) {
	raw := defaultRules
	if path != "" {
		var err error
		raw, err = os.ReadFile(path)
		if err != nil {
			return domain.Taxonomy{}, fmt.Errorf("read taxonomy file: %w", err)
		}
	}
	return parse(raw)
}

func parse(raw []byte) (domain.Taxonomy, error) {
	var rules []fileRule
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return domain.Taxonomy{}, fmt.Errorf("parse taxonomy yaml: %w", err)
	}

	out := make([]domain.TaxonomyRule, 0, len(rules))
	for _, rule := range rules {
		out = append(out, domain.TaxonomyRule{Tag: rule.Tag, Triggers: rule.Triggers})
	}

	tax, err := domain.NewTaxonomy(out)
	if err != nil {
		return domain.Taxonomy{}, fmt.Errorf("validate taxonomy: %w", err)
	}
	return tax, nil
}
