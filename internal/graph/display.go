package graph

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// DisplayID resolves the response identity of a Virus node. Every virus
// reached by a substring query collapses to the title-cased query, merging
// stored name variants ("dengue", "Dengue Virus") into one response node.
// rawName is deliberately unused today; it is part of the signature because
// the conflation is a policy that may later depend on the stored name.
// Two unrelated viruses sharing a substring merge too; that is a known
// limitation of substring matching, not a bug.
func DisplayID(rawName, query string) string {
	_ = rawName
	return titleCaser.String(strings.ToLower(strings.TrimSpace(query)))
}

// paperLabel shortens a paper title for display. The full identity is kept
// on the node id; only the label is truncated.
func paperLabel(title string) string {
	const max = 30
	if utf8.RuneCountInString(title) <= max {
		return title
	}
	return string([]rune(title)[:max])
}
