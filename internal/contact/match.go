package contact

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MatchScore counts the values two records share, field by field, ignoring
// case. Values compare after lowercasing, so "Strauß" and "STRAUSS" stay
// distinct. Only fields filled on both sides contribute. A score of zero is no
// evidence of a match. The score is symmetric.
func MatchScore(a, b *Record) int {
	if a == nil || b == nil {
		return 0
	}
	lower := cases.Lower(language.Und)
	score := 0
	for _, f := range Fields() {
		left, right := a.Values(f), b.Values(f)
		if len(left) == 0 || len(right) == 0 {
			continue
		}
		score += commonCount(lower, left, right)
	}
	return score
}

func commonCount(lower cases.Caser, a, b []string) int {
	seen := make(map[string]struct{}, len(a))
	for _, v := range a {
		seen[lower.String(v)] = struct{}{}
	}
	counted := make(map[string]struct{}, len(b))
	for _, v := range b {
		key := lower.String(v)
		if _, ok := seen[key]; !ok {
			continue
		}
		counted[key] = struct{}{}
	}
	return len(counted)
}
