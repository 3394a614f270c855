package analysis

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Lexicon holds the two fixed word lists the pipeline filters against:
// keywords that mark a sentence as interaction-relevant, and generic
// biological noise excluded from entity candidates. Noise terms are matched
// against the lowercased, trimmed mention.
type Lexicon struct {
	Interaction []string `toml:"interaction_keywords"`
	Noise       []string `toml:"noise_terms"`
}

var defaultInteraction = []string{
	"inhibit", "block", "reduce", "suppress", "antiviral", "treat", "prevent",
	"bind", "target", "activity", "effective", "potential", "candidate", "derivative",
	"downregulate", "antagonist", "interaction",
}

var defaultNoise = []string{
	"carbon", "water", "solution", "buffer", "protein", "virus", "drug",
	"patient", "study", "result", "fatty acyl", "cholesteryl ester",
	"pyrethroid", "mosquito", "vector", "control", "analysis", "data",
	"method", "gene", "expression", "assay", "compound", "agent", "elements",
	"oxygen", "hydrogen", "glucose", "saline", "dmso", "placebo",
}

func DefaultLexicon() *Lexicon {
	return &Lexicon{
		Interaction: defaultInteraction,
		Noise:       defaultNoise,
	}
}

// LoadLexicon reads a TOML override file. Lists left empty in the file fall
// back to the built-in defaults.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon file '%s': %w", path, err)
	}

	var lex Lexicon
	if err := toml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	if len(lex.Interaction) == 0 {
		lex.Interaction = defaultInteraction
	}
	if len(lex.Noise) == 0 {
		lex.Noise = defaultNoise
	}

	return &lex, nil
}
