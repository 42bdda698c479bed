package unit

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/postforge/postforge/internal/domain/generator"
	"github.com/postforge/postforge/internal/infra/llm/chatgpt"
	"github.com/postforge/postforge/internal/infra/previewcache"
	apperrors "github.com/postforge/postforge/pkg/errors"
)

func newGeneratorService(client *stubChatClient) *generator.Service {
	return generator.NewService(testGeneratorConfig(), client, previewcache.NewMemoryCache(), newTestLogger())
}

func testRequest(history []generator.HistoryPost) generator.Request {
	return generator.Request{
		Input: "scaling an engineering team",
		Settings: generator.Settings{
			Tone:   "professional",
			Style:  "storytelling",
			Length: "medium",
		},
		Profile:     generator.Profile{Name: "Dana", Headline: "VP Engineering", Industry: "SaaS"},
		RecentPosts: history,
	}
}

func TestGenerateReportsSimilarity(t *testing.T) {
	draft := "Scaling teams requires patience and hiring discipline"
	client := &stubChatClient{
		completeFn: func(chatgpt.ChatCompletionRequest) (string, error) {
			return draft, nil
		},
		embedFn: func(input string) ([]float32, error) {
			return []float32{1, 0}, nil
		},
	}
	svc := newGeneratorService(client)

	history := []generator.HistoryPost{
		{ID: "h1", Content: "an older post about hiring", Embedding: []float32{0.6, 0.8}},
		{ID: "h2", Content: "something unrelated", Embedding: []float32{0, 1}},
		{ID: "h3", Content: "post that predates embeddings"},
	}

	result, err := svc.Generate(context.Background(), testRequest(history))
	require.NoError(t, err)
	require.Equal(t, draft, result.Content)
	require.False(t, result.UsedPreview)
	require.Equal(t, generator.OutcomeComplete, result.Outcome)

	require.Len(t, client.requests, 1)
	require.Len(t, result.Report.SimilarPosts, 1)
	require.Equal(t, "h1", result.Report.SimilarPosts[0].ID)
	require.Equal(t, 60, result.Report.SimilarPosts[0].Score)
	require.Equal(t, 60, result.Report.HighestSimilarity)
	require.False(t, result.Report.WasRegenerated)
	require.False(t, result.Report.RegenerationAttempted)

	require.Contains(t, result.Topics, "scaling")
	require.Contains(t, result.Topics, "hiring")
	require.Equal(t, []float32{1, 0}, result.Embedding)
	require.Equal(t, 30, result.TokenUsage.TotalTokens)
}

func TestGenerateRegeneratesOnceWhenTooSimilar(t *testing.T) {
	vectors := map[string][]float32{
		"a fresh draft about growth":   {1, 0},
		"a completely different angle": {0, 1},
	}
	calls := 0
	client := &stubChatClient{
		completeFn: func(chatgpt.ChatCompletionRequest) (string, error) {
			calls++
			if calls == 1 {
				return "a fresh draft about growth", nil
			}
			return "a completely different angle", nil
		},
		embedFn: func(input string) ([]float32, error) {
			return vectors[input], nil
		},
	}
	svc := newGeneratorService(client)

	history := []generator.HistoryPost{
		{ID: "h1", Content: "my last post on growth", Embedding: []float32{1, 0}},
	}

	result, err := svc.Generate(context.Background(), testRequest(history))
	require.NoError(t, err)
	require.Len(t, client.requests, 2)
	require.Equal(t, "a completely different angle", result.Content)
	require.True(t, result.Report.RegenerationAttempted)
	require.True(t, result.Report.WasRegenerated)
	require.Empty(t, result.Report.SimilarPosts)
	require.Equal(t, 0, result.Report.HighestSimilarity)
	require.Equal(t, generator.OutcomeComplete, result.Outcome)
	require.Equal(t, 60, result.TokenUsage.TotalTokens)

	// the retry prompt must carry the avoid-similarity instruction
	retryPrompt := client.requests[1].Messages[1].Content
	require.Contains(t, retryPrompt, "too similar")
}

func TestGenerateRegenerationHappensAtMostOnce(t *testing.T) {
	client := &stubChatClient{
		completeFn: func(chatgpt.ChatCompletionRequest) (string, error) {
			return "same draft every time", nil
		},
		embedFn: func(string) ([]float32, error) {
			return []float32{1, 0}, nil
		},
	}
	svc := newGeneratorService(client)

	history := []generator.HistoryPost{
		{ID: "h1", Content: "previous near-identical post", Embedding: []float32{1, 0}},
	}

	result, err := svc.Generate(context.Background(), testRequest(history))
	require.NoError(t, err)
	// still 100% similar after the retry, but only two generation calls happen
	require.Len(t, client.requests, 2)
	require.True(t, result.Report.WasRegenerated)
	require.Equal(t, 100, result.Report.HighestSimilarity)
}

func TestGenerateRegenerationFailureKeepsOriginal(t *testing.T) {
	calls := 0
	client := &stubChatClient{
		completeFn: func(chatgpt.ChatCompletionRequest) (string, error) {
			calls++
			if calls == 1 {
				return "the original draft", nil
			}
			return "", errors.New("upstream blew up")
		},
		embedFn: func(string) ([]float32, error) {
			return []float32{1, 0}, nil
		},
	}
	svc := newGeneratorService(client)

	history := []generator.HistoryPost{
		{ID: "h1", Content: "previous post", Embedding: []float32{1, 0}},
	}

	result, err := svc.Generate(context.Background(), testRequest(history))
	require.NoError(t, err)
	require.Equal(t, "the original draft", result.Content)
	require.True(t, result.Report.RegenerationAttempted)
	require.False(t, result.Report.WasRegenerated)
	require.Equal(t, 100, result.Report.HighestSimilarity)
}

func TestGenerateEmbeddingFailureSkipsDuplicateCheck(t *testing.T) {
	client := &stubChatClient{
		completeFn: func(chatgpt.ChatCompletionRequest) (string, error) {
			return "content without a duplicate check", nil
		},
		embedFn: func(string) ([]float32, error) {
			return nil, errors.New("embedding service down")
		},
	}
	svc := newGeneratorService(client)

	history := []generator.HistoryPost{
		{ID: "h1", Content: "previous post", Embedding: []float32{1, 0}},
	}

	result, err := svc.Generate(context.Background(), testRequest(history))
	require.NoError(t, err)
	require.Equal(t, "content without a duplicate check", result.Content)
	require.Equal(t, generator.OutcomeNoDuplicateCheck, result.Outcome)
	require.Empty(t, result.Report.SimilarPosts)
	require.Empty(t, result.Topics)
	require.Nil(t, result.Embedding)
	require.Len(t, client.requests, 1)
}

func TestGenerateFailsWhenPrimaryGenerationFails(t *testing.T) {
	client := &stubChatClient{
		completeFn: func(chatgpt.ChatCompletionRequest) (string, error) {
			return "", errors.New("quota exceeded")
		},
	}
	svc := newGeneratorService(client)

	_, err := svc.Generate(context.Background(), testRequest(nil))
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "llm_error"))
}

func TestGenerateRejectsEmptyInput(t *testing.T) {
	svc := newGeneratorService(&stubChatClient{})
	req := testRequest(nil)
	req.Input = "   "
	_, err := svc.Generate(context.Background(), req)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestPreviewThenGenerateReusesDraft(t *testing.T) {
	client := &stubChatClient{
		completeFn: func(chatgpt.ChatCompletionRequest) (string, error) {
			return "previewed draft", nil
		},
		embedFn: func(string) ([]float32, error) {
			return []float32{0, 1}, nil
		},
	}
	svc := newGeneratorService(client)

	req := testRequest(nil)
	preview, err := svc.Preview(context.Background(), generator.PreviewRequest{
		Input:    req.Input,
		Settings: req.Settings,
		Profile:  req.Profile,
	})
	require.NoError(t, err)
	require.Equal(t, "previewed draft", preview.Content)
	require.NotEmpty(t, preview.ContentHash)
	require.Len(t, client.requests, 1)

	req.PreviewContent = preview.Content
	req.PreviewHash = preview.ContentHash
	result, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	require.True(t, result.UsedPreview)
	require.Equal(t, "previewed draft", result.Content)
	// no second generation call; only the embedding ran
	require.Len(t, client.requests, 1)
	require.Len(t, client.embedInputs, 1)
}

func TestGenerateKeepsReusedPreviewVerbatim(t *testing.T) {
	client := &stubChatClient{
		embedFn: func(string) ([]float32, error) {
			return []float32{1, 0}, nil
		},
	}
	svc := newGeneratorService(client)

	req := testRequest([]generator.HistoryPost{
		{ID: "h1", Content: "the same story again", Embedding: []float32{1, 0}},
	})
	req.PreviewContent = "the previewed draft"
	req.PreviewHash = generator.ComputeHash(req.Input, req.Settings, req.ReferenceContent)

	result, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	require.True(t, result.UsedPreview)
	require.Equal(t, "the previewed draft", result.Content)
	// 100% similar to history, yet a reused preview never regenerates and
	// never triggers a model call
	require.Empty(t, client.requests)
	require.Equal(t, 100, result.Report.HighestSimilarity)
	require.False(t, result.Report.RegenerationAttempted)
	require.False(t, result.Report.WasRegenerated)
	require.Equal(t, generator.OutcomeComplete, result.Outcome)
}

func TestGenerateIgnoresStalePreviewHash(t *testing.T) {
	client := &stubChatClient{
		completeFn: func(chatgpt.ChatCompletionRequest) (string, error) {
			return "newly generated", nil
		},
		embedFn: func(string) ([]float32, error) {
			return []float32{0, 1}, nil
		},
	}
	svc := newGeneratorService(client)

	req := testRequest(nil)
	req.PreviewContent = "old draft from different settings"
	req.PreviewHash = "stale-hash"
	result, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	require.False(t, result.UsedPreview)
	require.Equal(t, "newly generated", result.Content)
	require.Len(t, client.requests, 1)
}

func TestPreviewServesCachedDraft(t *testing.T) {
	client := &stubChatClient{
		completeFn: func(chatgpt.ChatCompletionRequest) (string, error) {
			return "cached draft", nil
		},
	}
	svc := newGeneratorService(client)

	req := generator.PreviewRequest{
		Input:    "same idea",
		Settings: generator.Settings{Tone: "casual", Length: "short"},
	}
	first, err := svc.Preview(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Preview(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, first.Content, second.Content)
	require.Equal(t, first.ContentHash, second.ContentHash)
	require.Len(t, client.requests, 1)
}

func TestGeneratePromptCarriesSettingsAndProfile(t *testing.T) {
	client := &stubChatClient{
		embedFn: func(string) ([]float32, error) {
			return []float32{0, 1}, nil
		},
	}
	svc := newGeneratorService(client)

	req := testRequest(nil)
	req.Settings.Audience = "startup founders"
	_, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, client.requests, 1)

	system := client.requests[0].Messages[0].Content
	require.Contains(t, system, "Dana")
	require.Contains(t, strings.ToLower(system), "professional")
	require.Contains(t, system, "startup founders")
}
