package variant

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestExpandTrailingElidable(t *testing.T) {
	w := word{text: "foo", trail: '~'}

	want := []pair{
		{"foo ", "bar "},
		{" foo ", " bar "},
		{"foo ", " bar "},
		{" foo ", "bar "},
	}
	got := expandWord(w, "bar", true)
	if len(got) != len(want) {
		t.Fatalf("expandWord(foo~, bar, true) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expandWord(foo~, bar, true)[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	got = expandWord(w, "bar", false)
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("expandWord(foo~, bar, false) = %v, want %v", got, want[:2])
	}
}

func TestExpandTrailingElidableWithStart(t *testing.T) {
	w := word{text: "foo", lead: '^', trail: '~'}
	want := []pair{
		{"foo^ ", "bar^ "},
		{" foo^ ", " bar^ "},
		{"foo^ ", " bar^ "},
		{" foo^ ", "bar^ "},
	}
	got := expandWord(w, "bar", true)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expandWord(^foo~, bar, true)[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestExpandLeadingElidable(t *testing.T) {
	w := word{text: "pre", lead: '~'}

	want := []pair{
		{" pre", " p"},
		{" pre ", " p "},
		{" pre", " p "},
		{" pre ", " p"},
	}
	got := expandWord(w, "p", true)
	if len(got) != len(want) {
		t.Fatalf("expandWord(~pre, p, true) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expandWord(~pre, p, true)[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	got = expandWord(w, "p", false)
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("expandWord(~pre, p, false) = %v, want %v", got, want[:2])
	}
}

func TestExpandLeadingElidableWithEnd(t *testing.T) {
	w := word{text: "pre", lead: '~', trail: '$'}
	want := []pair{
		{" ^pre", " ^p"},
		{" ^pre ", " ^p "},
		{" ^pre", " ^p "},
		{" ^pre ", " ^p"},
	}
	got := expandWord(w, "p", true)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expandWord(~pre$, p, true)[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestExpandFixed(t *testing.T) {
	tests := []struct {
		name string
		w    word
		want pair
	}{
		{"no flags", word{text: "foo"}, pair{" foo ", " bar "}},
		{"term start", word{text: "foo", lead: '^'}, pair{"^ foo ", "^ bar "}},
		{"term end", word{text: "foo", trail: '$'}, pair{" foo ^", " bar ^"}},
		{"both ends", word{text: "foo", lead: '^', trail: '$'}, pair{"^ foo ^", "^ bar ^"}},
	}
	for _, tt := range tests {
		for _, decompose := range []bool{true, false} {
			got := expandWord(tt.w, "bar", decompose)
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("%s: expandWord(decompose=%v) = %v, want [%v]", tt.name, decompose, got, tt.want)
			}
		}
	}
}

func TestMarker(t *testing.T) {
	tests := []struct {
		flag byte
		want string
	}{
		{'^', "^ "},
		{'$', " ^"},
		{0, " "},
	}
	for _, tt := range tests {
		if got := marker(tt.flag); got != tt.want {
			t.Errorf("marker(%q) = %q, want %q", tt.flag, got, tt.want)
		}
	}
}

// Property-based test: pair counts and pattern shape hold for any word.
func TestExpandWord_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	leads := []byte{0, '^', '~'}
	trails := []byte{0, '$', '~'}

	properties.Property("pair count is 1, 2 or 4 and no pattern is empty", prop.ForAll(
		func(text string, leadIdx, trailIdx int, decompose bool) bool {
			lead, trail := leads[leadIdx], trails[trailIdx]
			if lead == '~' && trail == '~' {
				return true // rejected at parse time, never expanded
			}
			w := word{text: text, lead: lead, trail: trail}
			got := expandWord(w, "rep", decompose)

			elidable := lead == '~' || trail == '~'
			wantLen := 1
			if elidable {
				wantLen = 2
				if decompose {
					wantLen = 4
				}
			}
			if len(got) != wantLen {
				return false
			}
			for _, p := range got {
				if p.source == "" || p.replacement == "" {
					return false
				}
			}
			return true
		},
		gen.Identifier(),
		gen.IntRange(0, 2),
		gen.IntRange(0, 2),
		gen.Bool(),
	))

	properties.Property("decompose=false output is a prefix of decompose=true output", prop.ForAll(
		func(text string, leadIdx, trailIdx int) bool {
			lead, trail := leads[leadIdx], trails[trailIdx]
			if lead == '~' && trail == '~' {
				return true
			}
			w := word{text: text, lead: lead, trail: trail}
			short := expandWord(w, "rep", false)
			long := expandWord(w, "rep", true)
			if len(short) > len(long) {
				return false
			}
			for i := range short {
				if short[i] != long[i] {
					return false
				}
			}
			return true
		},
		gen.Identifier(),
		gen.IntRange(0, 2),
		gen.IntRange(0, 2),
	))

	properties.TestingRun(t)
}
