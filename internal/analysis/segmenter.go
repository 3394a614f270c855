package analysis

import (
	"strings"
	"unicode"
)

// SplitSentences splits raw text into sentence spans for context matching.
// A sentence ends at a period or question mark followed by whitespace, unless
// the period closes an abbreviation ("E. coli", "Dr. Smith", "e.g."). This is
// a heuristic, not a parser; occasional wrong splits are expected.
func SplitSentences(text string) []string {
	runes := []rune(text)
	var sentences []string
	start := 0

	for i := 0; i < len(runes)-1; i++ {
		c := runes[i]
		if c != '.' && c != '?' {
			continue
		}
		if !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if c == '.' && abbreviationBefore(runes, i) {
			continue
		}
		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			sentences = append(sentences, s)
		}
		start = i + 1
	}

	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// abbreviationBefore reports whether the period at runes[i] closes an
// abbreviation rather than a sentence. Three shapes are guarded: a lone
// capital letter ("E."), a capital-lowercase pair ("Dr."), and dotted forms
// ("e.g.", "U.S.").
func abbreviationBefore(runes []rune, i int) bool {
	if i >= 1 && unicode.IsUpper(runes[i-1]) && (i == 1 || !unicode.IsLetter(runes[i-2])) {
		return true
	}
	if i >= 2 && unicode.IsUpper(runes[i-2]) && unicode.IsLower(runes[i-1]) {
		return true
	}
	if i >= 3 && isWordRune(runes[i-1]) && runes[i-2] == '.' && isWordRune(runes[i-3]) {
		return true
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
