package generator

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// topicStopWords filters filler tokens before frequency ranking. Tokens of
// three characters or fewer are dropped before this set is consulted.
var topicStopWords = map[string]struct{}{
	"this": {}, "that": {}, "with": {}, "from": {}, "have": {}, "will": {},
	"your": {}, "about": {}, "more": {}, "than": {}, "they": {}, "them": {},
	"their": {}, "when": {}, "what": {}, "which": {}, "would": {}, "could": {},
	"should": {}, "been": {}, "were": {}, "there": {}, "these": {}, "those": {},
	"into": {}, "just": {}, "like": {}, "also": {}, "some": {}, "only": {},
	"over": {}, "such": {}, "then": {}, "very": {}, "because": {}, "while": {},
	"where": {}, "here": {}, "most": {}, "much": {}, "many": {}, "each": {},
	"other": {}, "being": {}, "does": {}, "doing": {}, "every": {}, "after": {},
	"before": {}, "through": {}, "really": {}, "always": {}, "never": {},
	"even": {}, "make": {}, "made": {}, "want": {}, "need": {}, "know": {},
	"think": {}, "going": {}, "still": {}, "dont": {}, "youre": {}, "thats": {},
}

// ExtractTopics returns the limit highest-frequency meaningful tokens from
// text, ties broken by first appearance. Deterministic for identical input.
func ExtractTopics(text string, limit int) []string {
	if limit <= 0 {
		return nil
	}
	counts := make(map[string]int)
	var order []string
	for _, token := range tokenize(text) {
		if utf8.RuneCountInString(token) <= 3 {
			continue
		}
		if _, stop := topicStopWords[token]; stop {
			continue
		}
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > limit {
		order = order[:limit]
	}
	return order
}

func tokenize(text string) []string {
	lowered := strings.ToLower(strings.TrimSpace(text))
	var builder strings.Builder
	builder.Grow(len(lowered))
	lastSpace := true
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
			lastSpace = false
			continue
		}
		// punctuation and whitespace both act as token boundaries
		if !lastSpace {
			builder.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.Fields(builder.String())
}
