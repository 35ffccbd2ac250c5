package variant

// Markers the matching engine recognizes at term boundaries.
const (
	termStart = "^ "
	termEnd   = " ^"
	wordSep   = " "
)

func marker(flag byte) string {
	switch flag {
	case '^':
		return termStart
	case '$':
		return termEnd
	default:
		return wordSep
	}
}

// pair is one expanded source/replacement pattern before the property
// descriptor is attached.
type pair struct {
	source      string
	replacement string
}

// expandWord renders one word descriptor and its replacement into concrete
// patterns. An elidable trailing flag fixes the lead marker at the end of
// both patterns and varies the leading space; an elidable leading flag
// mirrors that on the trailing side. decompose additionally emits the two
// mixed forms. Without an elidable flag exactly one fully marked pair is
// produced.
func expandWord(w word, repl string, decompose bool) []pair {
	switch {
	case w.trail == '~':
		suffix := marker(w.lead)
		src, rep := w.text+suffix, repl+suffix
		pairs := []pair{{src, rep}, {wordSep + src, wordSep + rep}}
		if decompose {
			pairs = append(pairs, pair{src, wordSep + rep}, pair{wordSep + src, rep})
		}
		return pairs
	case w.lead == '~':
		prefix := marker(w.trail)
		src, rep := prefix+w.text, prefix+repl
		pairs := []pair{{src, rep}, {src + wordSep, rep + wordSep}}
		if decompose {
			pairs = append(pairs, pair{src, rep + wordSep}, pair{src + wordSep, rep})
		}
		return pairs
	default:
		return []pair{{
			marker(w.lead) + w.text + marker(w.trail),
			marker(w.lead) + repl + marker(w.trail),
		}}
	}
}
