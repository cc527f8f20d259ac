package chooser

import (
	"sort"
	"strings"
	"unicode"
)

// Match tiers. A prefix match always outranks a substring match, which
// always outranks a scattered subsequence, regardless of the secondary
// bonuses below.
const (
	tierPrefix      = 3000
	tierSubstring   = 2000
	tierSubsequence = 1000
)

// Result is a matched entry with scoring information.
type Result struct {
	// Entry is the matched entry.
	Entry Entry

	// Score is the match score (higher is better).
	Score int

	// Matches contains the indices of matched characters in the
	// label, for highlight rendering.
	Matches []int
}

// Filter is the stateless ranking engine.
type Filter struct {
	// MinScore is the minimum score for a match to be included.
	MinScore int
}

// NewFilter creates a filter with default settings.
func NewFilter() *Filter {
	return &Filter{}
}

// Search returns entries matching the query, best first. An empty
// query returns all entries in their original order.
func (f *Filter) Search(entries []Entry, query string, limit int) []Result {
	if query == "" {
		results := make([]Result, 0, len(entries))
		for _, e := range entries {
			results = append(results, Result{Entry: e})
		}
		return clip(results, limit)
	}

	query = strings.ToLower(query)
	results := make([]Result, 0, len(entries))

	for _, e := range entries {
		score, matches := f.matchEntry(query, e)
		if score > f.MinScore {
			results = append(results, Result{Entry: e, Score: score, Matches: matches})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return clip(results, limit)
}

func clip(results []Result, limit int) []Result {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}

// matchEntry scores an entry against the query. The label carries more
// weight than the sublabel.
func (f *Filter) matchEntry(query string, e Entry) (int, []int) {
	labelScore, labelMatches := f.match(query, e.Label)
	if labelScore > 0 {
		return labelScore + 50, labelMatches
	}

	subScore, _ := f.match(query, e.Sublabel)
	if subScore > 0 {
		return subScore, nil
	}

	return 0, nil
}

// match ranks query against text: prefix, then substring, then
// subsequence. Returns zero when the query's characters do not all
// appear in order.
func (f *Filter) match(query, text string) (int, []int) {
	if text == "" {
		return 0, nil
	}

	textLower := strings.ToLower(text)
	matches := subsequence(query, textLower)
	if matches == nil {
		return 0, nil
	}

	var score int
	switch {
	case strings.HasPrefix(textLower, query):
		score = tierPrefix
	case strings.Contains(textLower, query):
		score = tierSubstring
	default:
		score = tierSubsequence
	}

	return score + f.bonus(query, text, matches), matches
}

// subsequence returns the indices at which query's characters appear
// in order inside text, or nil if they do not.
func subsequence(query, text string) []int {
	matches := make([]int, 0, len(query))
	qi := 0
	for i := 0; i < len(text) && qi < len(query); i++ {
		if text[i] == query[qi] {
			matches = append(matches, i)
			qi++
		}
	}
	if qi != len(query) {
		return nil
	}
	return matches
}

// bonus computes the secondary score within a tier: tight clusters at
// word boundaries near the start of short labels rank first.
func (f *Filter) bonus(query, text string, matches []int) int {
	if len(matches) == 0 {
		return 0
	}

	score := 0

	for i := 1; i < len(matches); i++ {
		if matches[i] == matches[i-1]+1 {
			score += 20
		}
	}

	for _, idx := range matches {
		if isWordBoundary(text, idx) {
			score += 15
		}
	}

	if len(matches) > 1 {
		gap := matches[len(matches)-1] - matches[0] - len(matches) + 1
		score -= gap * 2
	}

	score -= matches[0]

	if len(text) < 20 {
		score += 20 - len(text)
	}

	return score
}

// isWordBoundary checks if the character at idx starts a word.
func isWordBoundary(text string, idx int) bool {
	if idx == 0 {
		return true
	}
	if idx >= len(text) {
		return false
	}

	prev := rune(text[idx-1])
	curr := rune(text[idx])

	switch prev {
	case '/', '_', '-', '.', ' ', ':':
		return true
	}

	return unicode.IsLower(prev) && unicode.IsUpper(curr)
}
