package variant

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrSyntax reports a malformed variant rule or word descriptor.
var ErrSyntax = errors.New("syntax error in variant rule")

var opRe = regexp.MustCompile(`(\|)?([=-])>`)

// Compiler turns variant rule lines into concrete Variants. All rule text
// passes through the normalizer so the compiled patterns match what the
// engine produces at analysis time.
type Compiler struct {
	norm Normalizer
}

// NewCompiler returns a Compiler using norm for all rule text.
func NewCompiler(norm Normalizer) *Compiler {
	return &Compiler{norm: norm}
}

// Compile expands one rule line of the form "WORDS ['|'] ('='|'-') '>'
// WORDS" into the full list of variants, all tagged with props. A '->'
// operator additionally emits the identity expansion of every source word,
// ahead of the substitution pairs. A '|' before the operator disables
// decomposition. Exactly one operator must occur and neither side may be
// empty.
func (c *Compiler) Compile(rule string, props *Properties) ([]Variant, error) {
	locs := opRe.FindAllStringSubmatchIndex(rule, -1)
	if len(locs) != 1 {
		return nil, fmt.Errorf("%w: %s", ErrSyntax, rule)
	}
	loc := locs[0]
	lhs, rhs := rule[:loc[0]], rule[loc[1]:]
	decompose := loc[2] == -1
	retain := rule[loc[4]:loc[5]] == "-"
	if strings.TrimSpace(lhs) == "" || strings.TrimSpace(rhs) == "" {
		return nil, fmt.Errorf("%w: %s", ErrSyntax, rule)
	}

	var sources []word
	for _, s := range strings.Split(lhs, ",") {
		w, ok, err := c.parseWord(s)
		if err != nil {
			return nil, err
		}
		if ok {
			sources = append(sources, w)
		}
	}

	var repls []string
	for _, r := range strings.Split(rhs, ",") {
		repls = append(repls, strings.TrimSpace(c.norm(r)))
	}

	var out []Variant
	if retain {
		for _, w := range sources {
			for _, p := range expandWord(w, w.text, decompose) {
				out = append(out, Variant{p.source, p.replacement, props})
			}
		}
	}
	for _, w := range sources {
		for _, r := range repls {
			if r == "" {
				continue
			}
			for _, p := range expandWord(w, r, decompose) {
				out = append(out, Variant{p.source, p.replacement, props})
			}
		}
	}
	return out, nil
}
