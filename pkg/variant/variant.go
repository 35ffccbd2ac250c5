package variant

// Normalizer maps a term to its normalized form before matching.
type Normalizer func(string) string

// Properties describes when a set of variants applies. Values are
// comparable; equal values from one analyzer section are interned so a
// Variant set can deduplicate by plain equality.
type Properties struct {
	Lang string
}

// PropertiesFromSection builds the descriptor from the metadata fields of
// one variants subsection. Unknown fields are ignored.
func PropertiesFromSection(section map[string]any) Properties {
	var p Properties
	if lang, ok := section["lang"].(string); ok {
		p.Lang = lang
	}
	return p
}

// PropertySet interns Properties so that equal values share one instance.
type PropertySet struct {
	known []*Properties
}

// Intern returns the canonical instance for p, registering p if no equal
// value is known yet.
func (ps *PropertySet) Intern(p Properties) *Properties {
	for _, q := range ps.known {
		if *q == p {
			return q
		}
	}
	c := new(Properties)
	*c = p
	ps.known = append(ps.known, c)
	return c
}

// Variant is one compiled source-to-replacement transform. Source and
// Replacement carry the boundary markers; Props points at the interned
// descriptor of the rule section the variant came from.
type Variant struct {
	Source      string
	Replacement string
	Props       *Properties
}
