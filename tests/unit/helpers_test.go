package unit

import (
	"context"
	"io"
	"log/slog"

	"github.com/postforge/postforge/internal/domain/generator"
	"github.com/postforge/postforge/internal/infra/llm/chatgpt"
)

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

func testGeneratorConfig() generator.Config {
	return generator.Config{
		Model:          "gpt-test",
		EmbeddingModel: "embed-test",
		Temperature:    0.2,
	}
}

// stubChatClient scripts completion and embedding behavior per test.
type stubChatClient struct {
	completeFn func(req chatgpt.ChatCompletionRequest) (string, error)
	embedFn    func(input string) ([]float32, error)

	requests    []chatgpt.ChatCompletionRequest
	embedInputs []string
}

func (s *stubChatClient) CreateChatCompletion(_ context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error) {
	s.requests = append(s.requests, req)
	content := "generated content"
	if s.completeFn != nil {
		var err error
		content, err = s.completeFn(req)
		if err != nil {
			return chatgpt.ChatCompletionResponse{}, err
		}
	}
	var resp chatgpt.ChatCompletionResponse
	resp.Choices = []struct {
		Message chatgpt.Message `json:"message"`
	}{
		{Message: chatgpt.Message{Role: "assistant", Content: content}},
	}
	resp.Usage = chatgpt.Usage{PromptTokens: 10, CompletionTokens: 20, TotalTokens: 30}
	return resp, nil
}

func (s *stubChatClient) CreateEmbedding(_ context.Context, req chatgpt.EmbeddingRequest) (chatgpt.EmbeddingResponse, error) {
	input, _ := req.Input.(string)
	s.embedInputs = append(s.embedInputs, input)
	vector := []float32{0, 1}
	if s.embedFn != nil {
		var err error
		vector, err = s.embedFn(input)
		if err != nil {
			return chatgpt.EmbeddingResponse{}, err
		}
	}
	return chatgpt.EmbeddingResponse{
		Data: []chatgpt.EmbeddingData{{Index: 0, Embedding: vector}},
	}, nil
}

var _ generator.ChatClient = (*stubChatClient)(nil)
