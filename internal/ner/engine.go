package ner

import (
	"context"

	"bioscan/internal/model"
)

// Engine is the named-entity-recognition capability. Infer is batched and
// order-preserving: result i holds the candidate mentions for batch[i].
// Engines are constructed once at process start and reused for all requests.
type Engine interface {
	Infer(ctx context.Context, batch []string) ([][]model.Mention, error)
}
