package model

// Node kinds in the persisted graph.
const (
	KindDrug  = "drug"
	KindVirus = "virus"
	KindPaper = "paper"
)

// GraphNode is one node of a neighborhood response, shaped for a
// force-directed renderer. ID is the resolved identity after virus
// canonicalization; Label is the display text (papers are truncated).
type GraphNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Kind  string `json:"kind"`
}

// GraphLink is one deduplicated relationship between two resolved node IDs.
type GraphLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Kind   string `json:"kind"`
}

// Neighborhood is the bounded subgraph around a fuzzy-matched virus name.
type Neighborhood struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
}

// Interaction is one Drug->Virus candidate edge in tabular form. Papers holds
// the distinct titles the drug is mentioned in, across all viruses.
type Interaction struct {
	Drug       string   `json:"drug"`
	Evidence   string   `json:"evidence"`
	Confidence string   `json:"confidence"`
	Papers     []string `json:"papers"`
}
