package analysis

import (
	"context"

	"bioscan/internal/model"
)

type MockEngine struct {
	Results   [][]model.Mention
	Err       error
	Calls     int
	LastBatch []string
}

func (m *MockEngine) Infer(ctx context.Context, batch []string) ([][]model.Mention, error) {
	m.Calls++
	m.LastBatch = batch
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Results, nil
}
