package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// TextCompleter turns a prompt into free-form text.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// GeminiCompleter calls a Gemini model through the genai client.
type GeminiCompleter struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// InitGemini creates a completer for model using an API key.
func InitGemini(apiKey, model string) (*GeminiCompleter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}
	return &GeminiCompleter{client: client, model: client.GenerativeModel(model)}, nil
}

// Complete sends a single-turn prompt and joins the text parts of the first candidate.
func (g *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %v", err)
	}
	return candidateText(resp), nil
}

// Close releases the underlying connection.
func (g *GeminiCompleter) Close() error {
	return g.client.Close()
}

func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String())
}
