package translit

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/unicode/rangetable"
)

// stage is one compiled rule applied to the whole input string.
type stage func(string) string

// Transliterator applies a compiled chain of transliteration rules.
// Build once with New, then call Transliterate freely; it holds no
// mutable state.
type Transliterator struct {
	name   string
	rules  string
	stages []stage
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Supported ":: name ()" directives.
var directives = map[string]stage{
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
	"nfd":   transformStage(norm.NFD),
	"nfc":   transformStage(norm.NFC),
	"nfkd":  transformStage(norm.NFKD),
	"nfkc":  transformStage(norm.NFKC),
	"latin": transformStage(stripAccents),
}

// Character class names usable inside [:...:] sets.
var classTables = map[string]*unicode.RangeTable{
	"letter":          unicode.L,
	"number":          unicode.N,
	"mark":            unicode.M,
	"nonspacing mark": unicode.Mn,
	"punctuation":     unicode.P,
	"symbol":          unicode.S,
	"control":         unicode.C,
	"space":           unicode.White_Space,
	"white_space":     unicode.White_Space,
}

var (
	commentRe   = regexp.MustCompile(`(?m)#.*$`)
	directiveRe = regexp.MustCompile(`^::\s*([\w-]+)\s*\(\s*\)$`)
	classRe     = regexp.MustCompile(`\[:\s*([\w ]+?)\s*:\]`)
)

// New compiles a ';'-separated rule string into a Transliterator. The name
// only labels compile errors. Understood rules are "::" directives (lower,
// upper, nfd, nfc, nfkd, nfkc, latin), character-class replacements like
// "[[:Punctuation:][:Symbol:]] > ' '" and literal replacements like
// "'№' > 'no'". '#' starts a comment.
func New(name, rules string) (*Transliterator, error) {
	t := &Transliterator{name: name, rules: rules}
	cleaned := commentRe.ReplaceAllString(rules, "")
	for _, raw := range strings.Split(cleaned, ";") {
		rule := strings.TrimSpace(raw)
		if rule == "" {
			continue
		}
		st, err := compileRule(rule)
		if err != nil {
			return nil, fmt.Errorf("transliterator %s: %w", name, err)
		}
		t.stages = append(t.stages, st)
	}
	return t, nil
}

// Transliterate runs the input through every compiled stage in rule order.
func (t *Transliterator) Transliterate(s string) string {
	for _, st := range t.stages {
		s = st(s)
	}
	return s
}

// Rules returns the rule string the transliterator was compiled from.
func (t *Transliterator) Rules() string {
	return t.rules
}

func compileRule(rule string) (stage, error) {
	if strings.HasPrefix(rule, "::") {
		m := directiveRe.FindStringSubmatch(rule)
		if m == nil {
			return nil, fmt.Errorf("rule %q: malformed directive", rule)
		}
		st, ok := directives[strings.ToLower(m[1])]
		if !ok {
			return nil, fmt.Errorf("rule %q: unknown directive %q", rule, m[1])
		}
		return st, nil
	}

	lhs, rhs, ok := strings.Cut(rule, ">")
	if !ok {
		return nil, fmt.Errorf("rule %q: expected '>'", rule)
	}
	src := strings.TrimSpace(lhs)
	repl := unquote(strings.TrimSpace(rhs))

	if strings.HasPrefix(src, "[") {
		return compileClassRule(rule, src, repl)
	}
	src = unquote(src)
	if src == "" {
		return nil, fmt.Errorf("rule %q: empty source", rule)
	}
	return func(s string) string { return strings.ReplaceAll(s, src, repl) }, nil
}

// compileClassRule turns a character-class set into a removal or a
// single-rune mapping stage. Accepts "[:Name:]", "[[:A:][:B:]]" and the
// negated "[^...]" forms.
func compileClassRule(rule, src, repl string) (stage, error) {
	if !strings.HasSuffix(src, "]") {
		return nil, fmt.Errorf("rule %q: unterminated class set", rule)
	}
	negated := strings.HasPrefix(src, "[^")

	var tables []*unicode.RangeTable
	matches := classRe.FindAllStringSubmatch(src, -1)
	if matches == nil {
		return nil, fmt.Errorf("rule %q: no character classes in set", rule)
	}
	for _, m := range matches {
		rt, ok := classTables[strings.ToLower(m[1])]
		if !ok {
			return nil, fmt.Errorf("rule %q: unknown character class %q", rule, m[1])
		}
		tables = append(tables, rt)
	}
	merged := rangetable.Merge(tables...)
	set := runes.In(merged)
	if negated {
		set = runes.NotIn(merged)
	}

	if repl == "" {
		return transformStage(runes.Remove(set)), nil
	}
	rs := []rune(repl)
	if len(rs) != 1 {
		return nil, fmt.Errorf("rule %q: class replacement must be a single rune", rule)
	}
	return transformStage(runes.Map(func(r rune) rune {
		if set.Contains(r) {
			return rs[0]
		}
		return r
	})), nil
}

func transformStage(tr transform.Transformer) stage {
	return func(s string) string {
		out, _, _ := transform.String(tr, s)
		return out
	}
}

// unquote strips one pair of surrounding single quotes, if present.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1]
	}
	return s
}
