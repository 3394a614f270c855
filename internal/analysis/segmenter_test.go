package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSentencesBasic(t *testing.T) {
	sentences := SplitSentences("First sentence. Second sentence? Third sentence.")

	assert.Equal(t, []string{
		"First sentence.",
		"Second sentence?",
		"Third sentence.",
	}, sentences)
}

func TestSplitSentencesAbbreviationGuard(t *testing.T) {
	sentences := SplitSentences("Treated with E. coli. Results were positive.")

	assert.Len(t, sentences, 2)
	assert.Equal(t, "Treated with E. coli.", sentences[0])
	assert.Equal(t, "Results were positive.", sentences[1])
}

func TestSplitSentencesTitleAbbreviation(t *testing.T) {
	sentences := SplitSentences("Dr. Smith led the trial. It succeeded.")

	assert.Len(t, sentences, 2)
	assert.Equal(t, "Dr. Smith led the trial.", sentences[0])
}

func TestSplitSentencesDottedAbbreviation(t *testing.T) {
	sentences := SplitSentences("Some compounds, e.g. quinine, were tested. All failed.")

	assert.Len(t, sentences, 2)
	assert.Equal(t, "Some compounds, e.g. quinine, were tested.", sentences[0])
}

func TestSplitSentencesNoTrailingTerminator(t *testing.T) {
	sentences := SplitSentences("An abstract that just stops")

	assert.Equal(t, []string{"An abstract that just stops"}, sentences)
}

func TestSplitSentencesEmpty(t *testing.T) {
	assert.Empty(t, SplitSentences(""))
	assert.Empty(t, SplitSentences("   "))
}
