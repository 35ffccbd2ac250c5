package variant

import "testing"

func TestPropertiesFromSection(t *testing.T) {
	tests := []struct {
		name    string
		section map[string]any
		want    Properties
	}{
		{"with lang", map[string]any{"lang": "de"}, Properties{Lang: "de"}},
		{"without lang", map[string]any{"words": []any{"a=>b"}}, Properties{}},
		{"lang wrong type", map[string]any{"lang": 5}, Properties{}},
		{"empty section", map[string]any{}, Properties{}},
	}
	for _, tt := range tests {
		if got := PropertiesFromSection(tt.section); got != tt.want {
			t.Errorf("%s: PropertiesFromSection = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestPropertySetIntern(t *testing.T) {
	var ps PropertySet

	de1 := ps.Intern(Properties{Lang: "de"})
	de2 := ps.Intern(Properties{Lang: "de"})
	en := ps.Intern(Properties{Lang: "en"})
	none := ps.Intern(Properties{})

	if de1 != de2 {
		t.Errorf("equal properties interned to distinct instances %p, %p", de1, de2)
	}
	if de1 == en || de1 == none || en == none {
		t.Error("distinct properties interned to the same instance")
	}
	if ps.Intern(Properties{Lang: "en"}) != en {
		t.Error("re-interning a known value returned a new instance")
	}
}

func TestVariantSetDedupAcrossInterning(t *testing.T) {
	var ps PropertySet
	c := testCompiler()
	set := make(map[Variant]struct{})

	// Two sections with identical properties must collapse identical
	// variants into one set entry.
	for range 2 {
		props := ps.Intern(PropertiesFromSection(map[string]any{"lang": "de"}))
		vs, err := c.Compile("st=>saint", props)
		if err != nil {
			t.Fatalf("Compile failed: %v", err)
		}
		for _, v := range vs {
			set[v] = struct{}{}
		}
	}
	if len(set) != 1 {
		t.Errorf("set has %d entries, want 1", len(set))
	}
}
