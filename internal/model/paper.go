package model

// Paper is one bibliographic record as returned by retrieval. PMID is empty
// when the source did not supply an external identifier; the title then acts
// as the fallback identity key in the graph.
type Paper struct {
	PMID     string `json:"pmid,omitempty"`
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
}

// Mention is a single candidate chemical entity produced by the NER engine
// for one document, before any filtering.
type Mention struct {
	Text  string  `json:"word"`
	Score float64 `json:"score"`
}

// ConfidenceHigh is the fixed confidence label attached to every validated
// finding; the pipeline does not grade evidence strength yet.
const ConfidenceHigh = "High"

// Match is one evidence tuple: a candidate drug paired with the sentence that
// supports the interaction claim.
type Match struct {
	Drug       string `json:"drug"`
	Context    string `json:"context"`
	Confidence string `json:"confidence"`
}

// PaperFindings groups the evidence tuples of a single paper. Papers without
// at least one match never produce a PaperFindings.
type PaperFindings struct {
	PMID    string  `json:"pmid,omitempty"`
	Title   string  `json:"title"`
	Matches []Match `json:"matches"`
}
