package reconcile

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// TokenSortRatio computes a token-order-insensitive similarity score
// between two normalized names (0-100). The words of each name are
// sorted and rejoined before comparison, so "SILVA MARIA" and
// "MARIA SILVA" score 100. Anything else is scored by Levenshtein
// distance relative to the longer string.
func TokenSortRatio(a, b string) int {
	sa := sortTokens(a)
	sb := sortTokens(b)

	if sa == "" || sb == "" {
		return 0
	}
	if sa == sb {
		return 100
	}

	distance := fuzzy.LevenshteinDistance(sa, sb)
	maxLen := len([]rune(sa))
	if l := len([]rune(sb)); l > maxLen {
		maxLen = l
	}
	return 100 * (maxLen - distance) / maxLen
}

// sortTokens rebuilds a name with its words in lexicographic order.
func sortTokens(s string) string {
	tokens := strings.Fields(s)
	if len(tokens) < 2 {
		return strings.TrimSpace(s)
	}
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
