package export

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxSuggestDistance bounds the edit distance of a suggestion that is not a
// fuzzy subsequence match.
const maxSuggestDistance = 2

// Closest returns the candidate that best matches word, or "" when nothing
// is close. Fuzzy subsequence matches rank first; otherwise the candidate
// with the smallest edit distance wins.
func Closest(word string, candidates []string) string {
	if word == "" || len(candidates) == 0 {
		return ""
	}

	ranks := fuzzy.RankFindFold(word, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDist := "", maxSuggestDistance+1
	for _, c := range candidates {
		d := fuzzy.LevenshteinDistance(strings.ToUpper(word), strings.ToUpper(c))
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
