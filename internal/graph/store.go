package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"bioscan/internal/driver"
	"bioscan/internal/model"
)

// Store owns all graph persistence: the merge-based write path for validated
// findings and the two read traversals. Writes are best-effort by contract:
// a failed record is logged and skipped so one bad write never aborts a
// batch. With no live connection every operation degrades silently.
type Store struct {
	Driver driver.GraphDriver
	logger *zap.Logger
}

func NewStore(d driver.GraphDriver, logger *zap.Logger) *Store {
	return &Store{Driver: d, logger: logger}
}

func (s *Store) Connected() bool {
	return s.Driver.Connected()
}

// RecordInteraction upserts one validated finding:
//
//	(Drug)-[:POTENTIAL_CANDIDATE]->(Virus)
//	(Drug)-[:MENTIONED_IN]->(Paper)
//
// The paper is keyed by pmid when available, else by title. Repeated calls
// for the same (drug, virus) pair overwrite the evidence rather than
// accumulating it.
func (s *Store) RecordInteraction(ctx context.Context, drug, virus, paperTitle, evidence, pmid string) {
	if !s.Driver.Connected() {
		return
	}

	query := driver.RecordInteractionQuery
	params := map[string]any{
		"drug":       drug,
		"virus":      virus,
		"title":      paperTitle,
		"evidence":   evidence,
		"confidence": model.ConfidenceHigh,
		"pmid":       pmid,
	}
	if pmid == "" {
		query = driver.RecordInteractionByTitleQuery
		delete(params, "pmid")
	}

	if _, err := s.Driver.ExecuteQuery(ctx, query, params); err != nil {
		s.logger.Error("Graph write failed",
			zap.String("drug", drug),
			zap.String("virus", virus),
			zap.Error(err))
	}
}

// FetchNeighborhood reconstructs the bounded subgraph around every virus
// whose name contains the query, case-insensitively. All matched viruses
// canonicalize to a single response node; nodes and links are deduplicated
// by resolved identity. Returns empty lists when disconnected.
func (s *Store) FetchNeighborhood(ctx context.Context, query string) model.Neighborhood {
	nb := model.Neighborhood{Nodes: []model.GraphNode{}, Links: []model.GraphLink{}}
	if !s.Driver.Connected() {
		return nb
	}

	result, err := s.Driver.ExecuteQuery(ctx, driver.NeighborhoodQuery, map[string]any{"query": query})
	if err != nil {
		s.logger.Error("Neighborhood query failed", zap.String("query", query), zap.Error(err))
		return nb
	}

	// Graph element id -> resolved response id, so relationship endpoints
	// can be remapped after virus canonicalization.
	resolved := make(map[string]string)
	seenNodes := make(map[string]struct{})
	seenLinks := make(map[model.GraphLink]struct{})

	addNode := func(n neo4j.Node) {
		id, node := resolveNode(n, query)
		if id == "" {
			return
		}
		resolved[n.ElementId] = id
		if _, ok := seenNodes[id]; ok {
			return
		}
		seenNodes[id] = struct{}{}
		nb.Nodes = append(nb.Nodes, node)
	}

	for _, record := range result.Records {
		value, ok := record.Get("path")
		if !ok {
			continue
		}
		path, ok := value.(neo4j.Path)
		if !ok {
			continue
		}

		for _, n := range path.Nodes {
			addNode(n)
		}
		for _, rel := range path.Relationships {
			link := model.GraphLink{
				Source: resolved[rel.StartElementId],
				Target: resolved[rel.EndElementId],
				Kind:   rel.Type,
			}
			if link.Source == "" || link.Target == "" || link.Source == link.Target {
				continue
			}
			if _, ok := seenLinks[link]; ok {
				continue
			}
			seenLinks[link] = struct{}{}
			nb.Links = append(nb.Links, link)
		}
	}

	return nb
}

// FetchInteractions lists every candidate edge pointing at a matched virus
// in tabular form. The papers column holds all distinct titles the drug is
// mentioned in, not only those tied to the matched virus.
func (s *Store) FetchInteractions(ctx context.Context, query string) []model.Interaction {
	interactions := []model.Interaction{}
	if !s.Driver.Connected() {
		return interactions
	}

	result, err := s.Driver.ExecuteQuery(ctx, driver.InteractionsQuery, map[string]any{"query": query})
	if err != nil {
		s.logger.Error("Interactions query failed", zap.String("query", query), zap.Error(err))
		return interactions
	}

	for _, record := range result.Records {
		interaction := model.Interaction{Papers: []string{}}
		if v, ok := record.Get("drug"); ok {
			interaction.Drug, _ = v.(string)
		}
		if v, ok := record.Get("evidence"); ok {
			interaction.Evidence, _ = v.(string)
		}
		if v, ok := record.Get("confidence"); ok {
			interaction.Confidence, _ = v.(string)
		}
		if v, ok := record.Get("papers"); ok {
			if titles, ok := v.([]any); ok {
				for _, t := range titles {
					if title, ok := t.(string); ok && title != "" {
						interaction.Papers = append(interaction.Papers, title)
					}
				}
			}
		}
		interactions = append(interactions, interaction)
	}

	return interactions
}

// resolveNode maps one stored node to its response identity and display
// shape. Viruses collapse to the canonical query id; drugs key on their
// stored name; papers key on pmid when present, else title.
func resolveNode(n neo4j.Node, query string) (string, model.GraphNode) {
	name, _ := n.Props["name"].(string)
	title, _ := n.Props["title"].(string)
	pmid, _ := n.Props["pmid"].(string)

	for _, label := range n.Labels {
		switch label {
		case "Virus":
			id := DisplayID(name, query)
			return id, model.GraphNode{ID: id, Label: id, Kind: model.KindVirus}
		case "Paper":
			id := pmid
			if id == "" {
				id = title
			}
			display := title
			if display == "" {
				display = id
			}
			return id, model.GraphNode{ID: id, Label: paperLabel(display), Kind: model.KindPaper}
		}
	}

	return name, model.GraphNode{ID: name, Label: name, Kind: model.KindDrug}
}
