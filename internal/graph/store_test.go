package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"bioscan/internal/driver"
	"bioscan/internal/model"
)

func TestRecordInteractionWithPMID(t *testing.T) {
	mock := &MockDriver{Live: true}
	store := NewStore(mock, zap.NewNop())

	store.RecordInteraction(context.Background(), "Ribavirin", "dengue", "A paper", "Ribavirin inhibits dengue.", "12345")

	assert.Equal(t, driver.RecordInteractionQuery, mock.QueryExecuted)
	assert.Equal(t, "Ribavirin", mock.QueryParams["drug"])
	assert.Equal(t, "dengue", mock.QueryParams["virus"])
	assert.Equal(t, "12345", mock.QueryParams["pmid"])
	assert.Equal(t, "A paper", mock.QueryParams["title"])
	assert.Equal(t, "Ribavirin inhibits dengue.", mock.QueryParams["evidence"])
	assert.Equal(t, model.ConfidenceHigh, mock.QueryParams["confidence"])
}

func TestRecordInteractionFallsBackToTitleKey(t *testing.T) {
	mock := &MockDriver{Live: true}
	store := NewStore(mock, zap.NewNop())

	store.RecordInteraction(context.Background(), "Ribavirin", "dengue", "A paper", "evidence text", "")

	assert.Equal(t, driver.RecordInteractionByTitleQuery, mock.QueryExecuted)
	assert.NotContains(t, mock.QueryParams, "pmid")
}

func TestRecordInteractionDisconnected(t *testing.T) {
	mock := &MockDriver{Live: false}
	store := NewStore(mock, zap.NewNop())

	store.RecordInteraction(context.Background(), "Ribavirin", "dengue", "A paper", "evidence", "1")

	assert.Zero(t, mock.QueryCount)
}

func TestRecordInteractionWriteFailureIsSwallowed(t *testing.T) {
	mock := &MockDriver{Live: true, Err: errors.New("constraint violation")}
	store := NewStore(mock, zap.NewNop())

	assert.NotPanics(t, func() {
		store.RecordInteraction(context.Background(), "Ribavirin", "dengue", "A paper", "evidence", "1")
	})
}

func TestFetchNeighborhoodDisconnected(t *testing.T) {
	store := NewStore(&MockDriver{Live: false}, zap.NewNop())

	nb := store.FetchNeighborhood(context.Background(), "dengue")

	assert.NotNil(t, nb.Nodes)
	assert.NotNil(t, nb.Links)
	assert.Empty(t, nb.Nodes)
	assert.Empty(t, nb.Links)
}

func TestFetchNeighborhoodCanonicalizesViruses(t *testing.T) {
	virusA := neo4j.Node{ElementId: "n1", Labels: []string{"Virus"}, Props: map[string]any{"name": "Dengue Virus"}}
	virusB := neo4j.Node{ElementId: "n2", Labels: []string{"Virus"}, Props: map[string]any{"name": "dengue"}}
	drug := neo4j.Node{ElementId: "n3", Labels: []string{"Drug"}, Props: map[string]any{"name": "Ribavirin"}}
	paper := neo4j.Node{ElementId: "n4", Labels: []string{"Paper"}, Props: map[string]any{"pmid": "12345", "title": "A very long paper title that exceeds the display cut"}}

	pathA := neo4j.Path{
		Nodes: []neo4j.Node{virusA, drug, paper},
		Relationships: []neo4j.Relationship{
			{StartElementId: "n3", EndElementId: "n1", Type: "POTENTIAL_CANDIDATE"},
			{StartElementId: "n3", EndElementId: "n4", Type: "MENTIONED_IN"},
		},
	}
	pathB := neo4j.Path{
		Nodes: []neo4j.Node{virusB, drug},
		Relationships: []neo4j.Relationship{
			{StartElementId: "n3", EndElementId: "n2", Type: "POTENTIAL_CANDIDATE"},
		},
	}

	mock := &MockDriver{
		Live: true,
		MockResult: neo4j.EagerResult{
			Records: []*neo4j.Record{
				{Keys: []string{"path"}, Values: []any{pathA}},
				{Keys: []string{"path"}, Values: []any{pathB}},
			},
		},
	}
	store := NewStore(mock, zap.NewNop())

	nb := store.FetchNeighborhood(context.Background(), "dengue")

	// Both stored virus variants collapse into one canonical node.
	var virusNodes, drugNodes, paperNodes []model.GraphNode
	for _, n := range nb.Nodes {
		switch n.Kind {
		case model.KindVirus:
			virusNodes = append(virusNodes, n)
		case model.KindDrug:
			drugNodes = append(drugNodes, n)
		case model.KindPaper:
			paperNodes = append(paperNodes, n)
		}
	}

	assert.Len(t, virusNodes, 1)
	assert.Equal(t, "Dengue", virusNodes[0].ID)
	assert.Len(t, drugNodes, 1)
	assert.Equal(t, "Ribavirin", drugNodes[0].ID)
	assert.Len(t, paperNodes, 1)
	assert.Equal(t, "12345", paperNodes[0].ID)
	assert.Len(t, paperNodes[0].Label, 30)

	// The two candidate edges resolve to the same triple and deduplicate.
	assert.Len(t, nb.Links, 2)
	assert.Contains(t, nb.Links, model.GraphLink{Source: "Ribavirin", Target: "Dengue", Kind: "POTENTIAL_CANDIDATE"})
	assert.Contains(t, nb.Links, model.GraphLink{Source: "Ribavirin", Target: "12345", Kind: "MENTIONED_IN"})
}

func TestFetchInteractions(t *testing.T) {
	mock := &MockDriver{
		Live: true,
		MockResult: neo4j.EagerResult{
			Records: []*neo4j.Record{
				{
					Keys:   []string{"drug", "evidence", "confidence", "papers"},
					Values: []any{"Ribavirin", "Ribavirin inhibits dengue.", "High", []any{"Paper one", "Paper two"}},
				},
			},
		},
	}
	store := NewStore(mock, zap.NewNop())

	interactions := store.FetchInteractions(context.Background(), "dengue")

	assert.Equal(t, driver.InteractionsQuery, mock.QueryExecuted)
	assert.Len(t, interactions, 1)
	assert.Equal(t, "Ribavirin", interactions[0].Drug)
	assert.Equal(t, "Ribavirin inhibits dengue.", interactions[0].Evidence)
	assert.Equal(t, "High", interactions[0].Confidence)
	assert.Equal(t, []string{"Paper one", "Paper two"}, interactions[0].Papers)
}

func TestFetchInteractionsDisconnected(t *testing.T) {
	store := NewStore(&MockDriver{Live: false}, zap.NewNop())

	interactions := store.FetchInteractions(context.Background(), "dengue")

	assert.NotNil(t, interactions)
	assert.Empty(t, interactions)
}
