package ner

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"bioscan/internal/model"
)

const extractionPrompt = `You are a biomedical named-entity recognizer. Extract every chemical or drug mention from the text below, exactly as written. Return a JSON object with key "mentions", a list of objects each with "word" (the exact surface form) and "score" (your confidence between 0 and 1).

Example:
{"mentions": [{"word": "Ribavirin", "score": 0.97}]}

Text:
%s`

type mentionList struct {
	Mentions []model.Mention `json:"mentions"`
}

// OpenAIClient backs the NER capability with an OpenAI-compatible chat
// endpoint. This also covers Ollama, vLLM and similar local servers.
// Inference runs one request per batch item; a failure on any item fails
// the batch, since partial NER output cannot be trusted.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey, modelName, baseURL string) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(config),
		model:  modelName,
	}
}

func (c *OpenAIClient) Infer(ctx context.Context, batch []string) ([][]model.Mention, error) {
	results := make([][]model.Mention, len(batch))
	for i, text := range batch {
		mentions, err := c.extract(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("ner extraction failed for input %d: %w", i, err)
		}
		results[i] = mentions
	}
	return results, nil
}

func (c *OpenAIClient) extract(ctx context.Context, text string) ([]model.Mention, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(extractionPrompt, text),
			},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response choices")
	}

	result, err := parseJSON[mentionList](resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	return result.Mentions, nil
}
