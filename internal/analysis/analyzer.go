package analysis

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"bioscan/internal/model"
	"bioscan/internal/ner"
)

const (
	// Abstracts are truncated to this many characters before inference. A
	// speed bound for the model, not a correctness requirement; sentence
	// context is always taken from the full abstract.
	maxInferenceChars = 512

	scoreThreshold  = 0.85
	minEntityLength = 3
)

// Analyzer runs the pure analysis pipeline over a batch of papers: one NER
// inference call, then per-paper filtering and sentence-level validation.
// It performs no I/O beyond the injected NER engine.
type Analyzer struct {
	NER     ner.Engine
	Lexicon *Lexicon
	noise   map[string]struct{}
}

func NewAnalyzer(engine ner.Engine, lex *Lexicon) *Analyzer {
	if lex == nil {
		lex = DefaultLexicon()
	}
	noise := make(map[string]struct{}, len(lex.Noise))
	for _, w := range lex.Noise {
		noise[strings.ToLower(w)] = struct{}{}
	}
	return &Analyzer{
		NER:     engine,
		Lexicon: lex,
		noise:   noise,
	}
}

// FilterMentions reduces raw NER output for one document to a deduplicated
// set of candidate entities. A mention survives when its score is strictly
// above the threshold, its normalized form is longer than three characters
// and not a known noise term. The first-seen original casing is kept.
func (a *Analyzer) FilterMentions(mentions []model.Mention) []string {
	seen := make(map[string]struct{})
	var candidates []string

	for _, m := range mentions {
		norm := strings.ToLower(strings.TrimSpace(m.Text))
		if m.Score <= scoreThreshold {
			continue
		}
		if utf8.RuneCountInString(norm) <= minEntityLength {
			continue
		}
		if _, noisy := a.noise[norm]; noisy {
			continue
		}
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}
		candidates = append(candidates, m.Text)
	}

	return candidates
}

// ValidateContext pairs candidate entities with the sentences that support
// them. A sentence counts only when it contains an interaction keyword
// (case-insensitive); each candidate literally present in the original-case
// sentence yields one evidence tuple. No deduplication happens here.
func (a *Analyzer) ValidateContext(sentences, candidates []string) []model.Match {
	var matches []model.Match

	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)

		relevant := false
		for _, kw := range a.Lexicon.Interaction {
			if strings.Contains(lower, kw) {
				relevant = true
				break
			}
		}
		if !relevant {
			continue
		}

		for _, candidate := range candidates {
			if strings.Contains(sentence, candidate) {
				matches = append(matches, model.Match{
					Drug:       candidate,
					Context:    sentence,
					Confidence: model.ConfidenceHigh,
				})
			}
		}
	}

	return matches
}

// AnalyzeBatch runs the full pipeline over a batch of papers. The NER engine
// is invoked exactly once with the truncated abstracts; an inference failure
// is fatal for the whole batch and propagates unmodified. Papers without
// evidence contribute nothing to the result.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, papers []model.Paper) ([]model.PaperFindings, error) {
	if len(papers) == 0 {
		return nil, nil
	}

	inputs := make([]string, len(papers))
	for i, p := range papers {
		inputs[i] = truncate(p.Abstract, maxInferenceChars)
	}

	results, err := a.NER.Infer(ctx, inputs)
	if err != nil {
		return nil, err
	}
	if len(results) != len(papers) {
		return nil, fmt.Errorf("ner engine returned %d result sets for %d inputs", len(results), len(papers))
	}

	var findings []model.PaperFindings
	for i, paper := range papers {
		sentences := SplitSentences(paper.Abstract)
		candidates := a.FilterMentions(results[i])
		matches := a.ValidateContext(sentences, candidates)
		if len(matches) == 0 {
			continue
		}
		findings = append(findings, model.PaperFindings{
			PMID:    paper.PMID,
			Title:   paper.Title,
			Matches: matches,
		})
	}

	return findings, nil
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
