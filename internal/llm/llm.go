// File path: internal/llm/llm.go
package llm

import (
	"context"
	"os"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/MADDY123987/AI-presentation-doc-generator/internal/common"
	"github.com/MADDY123987/AI-presentation-doc-generator/internal/llm/providers"
)

type Message = providers.Message

type Provider = providers.Provider

// NewProvider picks the generative collaborator from the environment:
// Gemini when GEMINI_API_KEY is set, otherwise OpenAI when OPENAI_API_KEY is
// set, otherwise a local echo stub.
func NewProvider(ctx context.Context) Provider {
	logger := common.Logger()

	if apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); apiKey != "" {
		provider, err := providers.NewGeminiProvider(ctx, apiKey)
		if err == nil {
			logger.Info("llm: Gemini provider selected")
			return provider
		}
		logger.Error("llm: Gemini provider unavailable", "error", err)
	}

	if apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); apiKey != "" {
		opts := []option.RequestOption{option.WithAPIKey(apiKey)}
		if timeoutStr := strings.TrimSpace(os.Getenv("OPENAI_HTTP_TIMEOUT")); timeoutStr != "" {
			timeout, err := time.ParseDuration(timeoutStr)
			if err != nil {
				logger.Warn("llm: invalid OPENAI_HTTP_TIMEOUT, using default", "value", timeoutStr, "error", err)
			} else {
				opts = append(opts, option.WithRequestTimeout(timeout))
			}
		}
		if endpoint := strings.TrimSpace(os.Getenv("OPENAI_ENDPOINT")); endpoint != "" {
			logger.Info("llm: configuring OpenAI client with custom endpoint", "endpoint", endpoint)
			opts = append(opts, option.WithBaseURL(endpoint))
		}
		client := openai.NewClient(opts...)
		logger.Info("llm: OpenAI provider selected")
		return providers.NewOpenAIProvider(client)
	}

	logger.Warn("llm: no API key set; falling back to local provider")
	return providers.NewLocalProvider()
}
