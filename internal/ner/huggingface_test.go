package ner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestHuggingFaceInfer(t *testing.T) {
	var gotPath string
	var gotBody hfRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			[{"entity_group": "CHEMICAL", "word": "Ribavirin", "score": 0.97}],
			[]
		]`))
	}))
	defer srv.Close()

	c := NewHuggingFaceClient(srv.URL, "test/chemical-ner", "", zap.NewNop())
	results, err := c.Infer(context.Background(), []string{"Ribavirin inhibits dengue.", "Nothing here."})

	assert.NoError(t, err)
	assert.Equal(t, "/models/test/chemical-ner", gotPath)
	assert.Equal(t, []string{"Ribavirin inhibits dengue.", "Nothing here."}, gotBody.Inputs)
	assert.Equal(t, "simple", gotBody.Parameters.AggregationStrategy)

	assert.Len(t, results, 2)
	assert.Len(t, results[0], 1)
	assert.Equal(t, "Ribavirin", results[0][0].Text)
	assert.InDelta(t, 0.97, results[0][0].Score, 1e-9)
	assert.Empty(t, results[1])
}

func TestHuggingFaceInferLengthMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[[]]`))
	}))
	defer srv.Close()

	c := NewHuggingFaceClient(srv.URL, "m", "", zap.NewNop())
	_, err := c.Infer(context.Background(), []string{"a", "b"})

	assert.Error(t, err)
}

func TestHuggingFaceInferServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewHuggingFaceClient(srv.URL, "m", "", zap.NewNop())
	_, err := c.Infer(context.Background(), []string{"a"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestParseJSONTolerance(t *testing.T) {
	type payload struct {
		Mentions []struct {
			Word string `json:"word"`
		} `json:"mentions"`
	}

	result, err := parseJSON[payload]("Sure! Here is the JSON:\n```json\n{\"mentions\": [{\"word\": \"Ribavirin\"}]}\n```")
	assert.NoError(t, err)
	assert.Len(t, result.Mentions, 1)
	assert.Equal(t, "Ribavirin", result.Mentions[0].Word)

	_, err = parseJSON[payload]("no json here")
	assert.Error(t, err)
}
