// File path: internal/llm/providers/gemini.go
package providers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/MADDY123987/AI-presentation-doc-generator/internal/common"
)

type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	modelName := strings.TrimSpace(os.Getenv("GEMINI_MODEL"))
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)
	common.Logger().Info("llm: Gemini provider configured", "chat_model", modelName)
	return &GeminiProvider{client: client, model: model}, nil
}

func (g *GeminiProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	logger := common.Logger()
	if len(messages) == 0 {
		return "", fmt.Errorf("no messages provided")
	}
	parts := make([]genai.Part, 0, len(messages))
	for _, msg := range messages {
		parts = append(parts, genai.Text(msg.Content))
	}
	logger.Debug("llm: sending generate content request", "parts", len(parts))
	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		logger.Error("llm: generate content failed", "error", err)
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}
	logger.Debug("llm: generate content succeeded")
	return sb.String(), nil
}

func (g *GeminiProvider) Close() error {
	if g == nil || g.client == nil {
		return nil
	}
	return g.client.Close()
}

func (g *GeminiProvider) Name() string {
	return "gemini"
}
