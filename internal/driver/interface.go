package driver

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// GraphDriver abstracts the bolt connection so the store can be tested
// against a mock. Connected reports the liveness decided once at
// construction time; callers short-circuit when it is false.
type GraphDriver interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]any) (neo4j.EagerResult, error)
	Connected() bool
	BuildIndices(ctx context.Context) error
	Close(ctx context.Context) error
}
