package generator

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

const defaultMaxTokens = 700

var lengthTokenBudget = map[string]int{
	"short":  300,
	"medium": 700,
	"long":   1200,
}

// buildPrompt assembles the system/user message pair for one generation.
// History contributes only its topics, as an avoid-repetition hint; the
// history text itself never enters the prompt.
func buildPrompt(profile Profile, settings Settings, history []HistoryPost, input, reference string) (string, string) {
	var sys strings.Builder
	sys.WriteString("You are a LinkedIn content writer producing a single post.")
	if profile.Name != "" {
		fmt.Fprintf(&sys, " You write as %s", profile.Name)
		if profile.Headline != "" {
			fmt.Fprintf(&sys, " (%s)", profile.Headline)
		}
		sys.WriteString(".")
	}
	if profile.Industry != "" {
		fmt.Fprintf(&sys, " The author works in %s.", profile.Industry)
	}
	if settings.Tone != "" {
		fmt.Fprintf(&sys, " Tone: %s.", settings.Tone)
	}
	if settings.Style != "" {
		fmt.Fprintf(&sys, " Style: %s.", settings.Style)
	}
	if settings.Length != "" {
		fmt.Fprintf(&sys, " Length: %s.", settings.Length)
	}
	if settings.Language != "" {
		fmt.Fprintf(&sys, " Write in %s.", settings.Language)
	}
	if settings.Purpose != "" {
		fmt.Fprintf(&sys, " Purpose: %s.", settings.Purpose)
	}
	if settings.Audience != "" {
		fmt.Fprintf(&sys, " Audience: %s.", settings.Audience)
	}
	switch settings.EmojiUsage {
	case "none":
		sys.WriteString(" Do not use emojis.")
	case "minimal":
		sys.WriteString(" Use at most one or two emojis.")
	case "frequent":
		sys.WriteString(" Use emojis generously where they fit.")
	}
	if settings.IncludeCTA {
		sys.WriteString(" End with a clear call to action.")
	}
	sys.WriteString(" Return the post text only, with no surrounding commentary.")

	var user strings.Builder
	fmt.Fprintf(&user, "Write a LinkedIn post about:\n%s", strings.TrimSpace(input))
	if reference != "" {
		fmt.Fprintf(&user, "\n\nReference material to draw on:\n%s", reference)
	}
	if settings.CustomInstructions != "" {
		fmt.Fprintf(&user, "\n\nAdditional instructions: %s", settings.CustomInstructions)
	}
	if topics := historyTopics(history); len(topics) > 0 {
		fmt.Fprintf(&user, "\n\nAvoid repeating these topics from recent posts: %s.", strings.Join(topics, ", "))
	}
	return sys.String(), user.String()
}

// avoidSimilarityInstruction strengthens the user message for the single
// regeneration pass.
func avoidSimilarityInstruction(userMessage string, similar []SimilarPost) string {
	var builder strings.Builder
	builder.WriteString(userMessage)
	builder.WriteString("\n\nIMPORTANT: your previous attempt was too similar to posts already published. ")
	builder.WriteString("Take a substantially different angle, structure, and wording. Do not resemble:")
	for _, match := range similar {
		fmt.Fprintf(&builder, "\n- %s", match.Preview)
	}
	return builder.String()
}

func historyTopics(history []HistoryPost) []string {
	seen := make(map[string]struct{})
	var topics []string
	for _, post := range history {
		for _, topic := range ExtractTopics(post.Content, 3) {
			if _, dup := seen[topic]; dup {
				continue
			}
			seen[topic] = struct{}{}
			topics = append(topics, topic)
			if len(topics) >= 10 {
				return topics
			}
		}
	}
	return topics
}

func maxTokensFor(length string) int {
	if budget, ok := lengthTokenBudget[strings.ToLower(strings.TrimSpace(length))]; ok {
		return budget
	}
	return defaultMaxTokens
}

// countTokens measures prompt size for usage reporting. When the model's
// encoding is unavailable (for example offline) it falls back to a rough
// rune-based estimate rather than failing the request.
func countTokens(model string, texts ...string) int {
	encoding, err := tiktoken.EncodingForModel(model)
	total := 0
	for _, text := range texts {
		if err != nil || encoding == nil {
			total += estimateTokens(text)
			continue
		}
		total += len(encoding.Encode(text, nil, nil))
	}
	return total
}

func estimateTokens(text string) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}
	words := len(strings.Fields(trimmed))
	tokens := len(trimmed) / 4
	if tokens < words {
		tokens = words
	}
	return tokens
}
