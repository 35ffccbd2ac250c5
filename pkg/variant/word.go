package variant

import (
	"fmt"
	"regexp"
	"strings"
)

// word is a parsed variant word descriptor: the normalized term plus its
// boundary flags. lead is 0, '^' or '~'; trail is 0, '$' or '~'. The two
// flags are never both '~'.
type word struct {
	text  string
	lead  byte
	trail byte
}

var wordRe = regexp.MustCompile(`^([~^]?)([^~$^]*)([~$]?)$`)

// parseWord parses one descriptor from a rule's source list. A word whose
// term normalizes to nothing is absent (ok=false) and skipped by the
// caller.
func (c *Compiler) parseWord(s string) (w word, ok bool, err error) {
	s = strings.TrimSpace(s)
	m := wordRe.FindStringSubmatch(s)
	if m == nil || (m[1] == "~" && m[3] == "~") {
		return word{}, false, fmt.Errorf("%w: invalid word descriptor %q", ErrSyntax, s)
	}
	// Normalization can leave edge whitespace (punctuation rules map to
	// spaces), so trim after it.
	w.text = strings.TrimSpace(c.norm(m[2]))
	if w.text == "" {
		return word{}, false, nil
	}
	if m[1] != "" {
		w.lead = m[1][0]
	}
	if m[3] != "" {
		w.trail = m[3][0]
	}
	return w, true, nil
}
