package tokenizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/hazyhaar/termvariant/pkg/props"
	"github.com/hazyhaar/termvariant/pkg/translit"
	"github.com/hazyhaar/termvariant/pkg/variant"
)

// Store keys for the configuration parts that survive an import. The key
// names are a compatibility surface; do not change them.
const (
	propNormRules     = "tokenizer_import_normalisation"
	propTransRules    = "tokenizer_import_transliteration"
	propAnalysisRules = "tokenizer_import_analysis_rules"
)

// ErrDuplicateAnalyzer reports two token-analysis sections claiming the
// same id, or two sections without one.
var ErrDuplicateAnalyzer = errors.New("duplicate token analyzer")

// Loader compiles a tokenizer configuration into rule strings and
// per-analyzer variant sets. Build one with New or NewFromStore; a Loader
// is immutable afterwards and safe for concurrent reads.
type Loader struct {
	normRules        string
	transRules       string
	analysisSections []any
	analyzers        map[string]*Analyzer
	sanitizers       any
	trans            *translit.Transliterator
}

// New compiles the given configuration document.
func New(doc *Document) (*Loader, error) {
	l := &Loader{sanitizers: doc.Sanitizers()}

	var err error
	if l.normRules, err = doc.Rules("normalization"); err != nil {
		return nil, err
	}
	if l.transRules, err = doc.Rules("transliteration"); err != nil {
		return nil, err
	}
	analysis, err := doc.section("token-analysis")
	if err != nil {
		return nil, err
	}
	if err := l.setup(analysis); err != nil {
		return nil, err
	}
	return l, nil
}

// NewFromStore rebuilds a Loader from a previously saved configuration
// without re-reading the configuration document. The sanitizer
// configuration is not persisted and comes back empty.
func NewFromStore(store props.Store) (*Loader, error) {
	l := &Loader{sanitizers: []any{}}

	var err error
	if l.normRules, err = store.Get(propNormRules); err != nil {
		return nil, fmt.Errorf("restore normalization rules: %w", err)
	}
	if l.transRules, err = store.Get(propTransRules); err != nil {
		return nil, fmt.Errorf("restore transliteration rules: %w", err)
	}
	raw, err := store.Get(propAnalysisRules)
	if err != nil {
		return nil, fmt.Errorf("restore analysis rules: %w", err)
	}
	var analysis any
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return nil, fmt.Errorf("decode analysis rules: %w", err)
	}
	if err := l.setup(analysis); err != nil {
		return nil, err
	}
	return l, nil
}

// SaveToStore persists the raw rule strings and the analysis section under
// the fixed keys. Compiled variant sets are never persisted; they are
// recomputed from the rules on restore.
func (l *Loader) SaveToStore(store props.Store) error {
	if err := store.Set(propNormRules, l.normRules); err != nil {
		return fmt.Errorf("save normalization rules: %w", err)
	}
	if err := store.Set(propTransRules, l.transRules); err != nil {
		return fmt.Errorf("save transliteration rules: %w", err)
	}
	data, err := json.Marshal(l.analysisSections)
	if err != nil {
		return fmt.Errorf("encode analysis rules: %w", err)
	}
	if err := store.Set(propAnalysisRules, string(data)); err != nil {
		return fmt.Errorf("save analysis rules: %w", err)
	}
	return nil
}

// setup builds the normalization engine and compiles every analyzer
// section, enforcing id uniqueness.
func (l *Loader) setup(analysis any) error {
	sections, ok := analysis.([]any)
	if !ok {
		slog.Error("configuration section 'token-analysis' must be a list")
		return fmt.Errorf("%w: 'token-analysis' must be a list", ErrBadSection)
	}
	l.analysisSections = sections

	trans, err := translit.New("loader_normalization", l.normRules)
	if err != nil {
		return err
	}
	l.trans = trans
	c := variant.NewCompiler(trans.Transliterate)

	l.analyzers = make(map[string]*Analyzer, len(sections))
	for _, raw := range sections {
		section, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: 'token-analysis' entries must be mappings", ErrBadSection)
		}
		a, err := buildAnalyzer(section, c)
		if err != nil {
			return err
		}
		if _, dup := l.analyzers[a.id]; dup {
			if a.id == "" {
				slog.Error("tokenizer configuration has two default token analyzers")
				return fmt.Errorf("%w: default", ErrDuplicateAnalyzer)
			}
			slog.Error("tokenizer configuration has two token analyzers with the same id", "id", a.id)
			return fmt.Errorf("%w: %s", ErrDuplicateAnalyzer, a.id)
		}
		l.analyzers[a.id] = a
	}
	return nil
}

// NormalizationRules returns the raw normalization rule string.
func (l *Loader) NormalizationRules() string { return l.normRules }

// TransliterationRules returns the raw transliteration rule string.
func (l *Loader) TransliterationRules() string { return l.transRules }

// SearchRules returns the rules applied to search queries: normalization
// first, then transliteration.
func (l *Loader) SearchRules() string {
	return l.normRules + l.transRules
}

// Sanitizers returns the sanitizer configuration unchanged.
func (l *Loader) Sanitizers() any { return l.sanitizers }

// Analyzer returns the analyzer with the given id, "" for the default.
func (l *Loader) Analyzer(id string) (*Analyzer, bool) {
	a, ok := l.analyzers[id]
	return a, ok
}

// Analyzers returns all analyzer ids in sorted order; the default
// analyzer's empty id sorts first.
func (l *Loader) Analyzers() []string {
	ids := make([]string, 0, len(l.analyzers))
	for id := range l.analyzers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// TokenAnalysis bundles the construction inputs for one name analyzer.
type TokenAnalysis struct {
	NormalizationRules   string
	TransliterationRules string
	Variants             []variant.Variant
}

// TokenAnalysis returns the construction inputs for the analyzer with the
// given id, "" for the default.
func (l *Loader) TokenAnalysis(id string) (TokenAnalysis, error) {
	a, ok := l.analyzers[id]
	if !ok {
		return TokenAnalysis{}, fmt.Errorf("no token analyzer with id %q", id)
	}
	return TokenAnalysis{
		NormalizationRules:   l.normRules,
		TransliterationRules: l.transRules,
		Variants:             a.Variants(),
	}, nil
}

// CompileRule expands a single variant rule line against the loaded
// normalization rules. Debugging aid for rule authors.
func (l *Loader) CompileRule(rule string) ([]variant.Variant, error) {
	return variant.NewCompiler(l.trans.Transliterate).Compile(rule, nil)
}
