package ner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"bioscan/internal/model"
)

// HuggingFaceClient calls a token-classification inference endpoint that
// speaks the HuggingFace Inference API protocol (the hosted API or a local
// text-inference server). Entities arrive pre-aggregated per word group.
type HuggingFaceClient struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewHuggingFaceClient(baseURL, modelName, apiKey string, logger *zap.Logger) *HuggingFaceClient {
	return &HuggingFaceClient{
		baseURL:    baseURL,
		model:      modelName,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		logger:     logger,
	}
}

type hfRequest struct {
	Inputs     []string `json:"inputs"`
	Parameters struct {
		AggregationStrategy string `json:"aggregation_strategy"`
	} `json:"parameters"`
	Options struct {
		WaitForModel bool `json:"wait_for_model"`
	} `json:"options"`
}

type hfEntity struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

func (c *HuggingFaceClient) Infer(ctx context.Context, batch []string) ([][]model.Mention, error) {
	if len(batch) == 0 {
		return nil, nil
	}

	var reqBody hfRequest
	reqBody.Inputs = batch
	reqBody.Parameters.AggregationStrategy = "simple"
	reqBody.Options.WaitForModel = true

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	c.logger.Debug("Running NER inference", zap.Int("batch_size", len(batch)), zap.String("model", c.model))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ner inference request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ner inference returned status %d: %s", resp.StatusCode, string(body))
	}

	var raw [][]hfEntity
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode ner response: %w", err)
	}

	if len(raw) != len(batch) {
		return nil, fmt.Errorf("ner returned %d result sets for %d inputs", len(raw), len(batch))
	}

	results := make([][]model.Mention, len(raw))
	for i, entities := range raw {
		mentions := make([]model.Mention, 0, len(entities))
		for _, e := range entities {
			mentions = append(mentions, model.Mention{Text: e.Word, Score: e.Score})
		}
		results[i] = mentions
	}

	return results, nil
}
