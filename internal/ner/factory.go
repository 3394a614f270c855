package ner

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"bioscan/internal/config"
)

// NewEngine builds the configured NER engine. "huggingface" expects a
// token-classification endpoint; "openai" routes through any
// OpenAI-compatible chat API (including Ollama and vLLM).
func NewEngine(cfg *config.Config, logger *zap.Logger) (Engine, error) {
	provider := strings.ToLower(cfg.NERProvider)

	switch provider {
	case "huggingface":
		return NewHuggingFaceClient(cfg.NERBaseURL, cfg.NERModel, cfg.NERAPIKey, logger), nil

	case "openai":
		baseURL := cfg.NERBaseURL
		if baseURL != "" && !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}
		return NewOpenAIClient(cfg.NERAPIKey, cfg.NERModel, baseURL), nil

	default:
		return nil, fmt.Errorf("unsupported ner provider: %s", provider)
	}
}
