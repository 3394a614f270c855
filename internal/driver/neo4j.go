package driver

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// Neo4jDriver wraps the bolt driver. When the initial connectivity check
// fails the driver stays in a disconnected state instead of erroring: writes
// become no-ops and reads return empty results, so a missing database never
// takes the service down.
type Neo4jDriver struct {
	driver    neo4j.DriverWithContext
	connected bool
	logger    *zap.Logger
}

func NewNeo4jDriver(uri, username, password string, logger *zap.Logger) *Neo4jDriver {
	d := &Neo4jDriver{logger: logger}

	drv, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		logger.Warn("Failed to create Neo4j driver, running disconnected", zap.Error(err))
		return d
	}

	if err := drv.VerifyConnectivity(context.Background()); err != nil {
		logger.Warn("Failed to reach Neo4j, running disconnected", zap.String("uri", uri), zap.Error(err))
		_ = drv.Close(context.Background())
		return d
	}

	logger.Info("Connected to Neo4j", zap.String("uri", uri))
	d.driver = drv
	d.connected = true
	return d
}

func (d *Neo4jDriver) Connected() bool {
	return d.connected
}

func (d *Neo4jDriver) Close(ctx context.Context) error {
	if d.driver == nil {
		return nil
	}
	return d.driver.Close(ctx)
}

func (d *Neo4jDriver) ExecuteQuery(ctx context.Context, query string, params map[string]any) (neo4j.EagerResult, error) {
	if !d.connected {
		return neo4j.EagerResult{}, fmt.Errorf("no live Neo4j connection")
	}
	result, err := neo4j.ExecuteQuery(ctx, d.driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

func (d *Neo4jDriver) BuildIndices(ctx context.Context) error {
	if !d.connected {
		return nil
	}

	queries := []string{
		"CREATE INDEX drug_name IF NOT EXISTS FOR (d:Drug) ON (d.name)",
		"CREATE INDEX virus_name IF NOT EXISTS FOR (v:Virus) ON (v.name)",
		"CREATE INDEX paper_pmid IF NOT EXISTS FOR (p:Paper) ON (p.pmid)",
		"CREATE INDEX paper_title IF NOT EXISTS FOR (p:Paper) ON (p.title)",
	}

	for _, q := range queries {
		if _, err := d.ExecuteQuery(ctx, q, nil); err != nil {
			// Index may already exist on older servers without IF NOT EXISTS.
			d.logger.Warn("Failed to create index", zap.String("query", q), zap.Error(err))
		}
	}

	return nil
}
