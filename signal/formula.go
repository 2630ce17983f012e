package signal

import (
	"strconv"
	"strings"
)

// formatNumber renders a parameter the shortest way that round-trips.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// shiftArgument renders t-τ, folding the sign of τ.
func shiftArgument(tau float64) string {
	if tau < 0 {
		return "(t+" + formatNumber(-tau) + ")"
	}
	return "(t-" + formatNumber(tau) + ")"
}

// substituteTime replaces every standalone t in formula with repl. A t that
// is part of an ASCII word (tri, rect, sqrt) is left alone. The rewrite is
// textual only; compound expressions are not re-associated.
func substituteTime(formula, repl string) string {
	var b strings.Builder
	runes := []rune(formula)
	for i, r := range runes {
		if r == 't' && !isWordRune(runes, i-1) && !isWordRune(runes, i+1) {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isWordRune(runes []rune, i int) bool {
	if i < 0 || i >= len(runes) {
		return false
	}
	r := runes[i]
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}
