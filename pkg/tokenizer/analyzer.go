package tokenizer

import (
	"fmt"
	"sort"

	"github.com/hazyhaar/termvariant/pkg/variant"
)

// Analyzer holds the compiled variant set of one token-analysis section.
// The zero id denotes the default analyzer.
type Analyzer struct {
	id       string
	variants map[variant.Variant]struct{}
}

// ID returns the analyzer id, empty for the default analyzer.
func (a *Analyzer) ID() string { return a.id }

// VariantCount returns the number of distinct variants.
func (a *Analyzer) VariantCount() int { return len(a.variants) }

// Variants returns the compiled variants sorted by source then
// replacement, for deterministic iteration.
func (a *Analyzer) Variants() []variant.Variant {
	out := make([]variant.Variant, 0, len(a.variants))
	for v := range a.variants {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Replacement < out[j].Replacement
	})
	return out
}

// buildAnalyzer compiles one token-analysis section. Property descriptors
// are interned per section; any rule syntax error aborts the build.
func buildAnalyzer(section map[string]any, c *variant.Compiler) (*Analyzer, error) {
	a := &Analyzer{variants: make(map[variant.Variant]struct{})}
	if id, ok := section["id"].(string); ok {
		a.id = id
	}

	subsections, err := flattenList(section["variants"], "variants")
	if err != nil {
		return nil, err
	}

	var ps variant.PropertySet
	for _, raw := range subsections {
		subsection, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: 'variants' entries must be mappings", ErrBadSection)
		}
		props := ps.Intern(variant.PropertiesFromSection(subsection))

		rawWords, exists := subsection["words"]
		if !exists || rawWords == nil {
			continue
		}
		words, ok := rawWords.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: 'words' must be a list", ErrBadSection)
		}
		for _, w := range words {
			rule, ok := w.(string)
			if !ok {
				return nil, fmt.Errorf("%w: variant rules must be strings", ErrBadSection)
			}
			vs, err := c.Compile(rule, props)
			if err != nil {
				return nil, err
			}
			for _, v := range vs {
				a.variants[v] = struct{}{}
			}
		}
	}
	return a, nil
}
