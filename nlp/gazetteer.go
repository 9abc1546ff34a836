// Package nlp provides the fallback analysis used when no knowledge base
// pattern matches an utterance: a domain gazetteer scan, then general
// named-entity recognition, then a fixed clarification prompt.
package nlp

import (
	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
)

// Category tags a recognized span of text.
type Category string

const (
	CategoryCharacter Category = "CHARACTER"
	CategoryPlace     Category = "PLACE"
	CategoryEvent     Category = "EVENT"
	CategoryOther     Category = "OTHER"
)

// vocabulary pairs a category with its fixed term list. Declaration order
// is priority order: when two terms start at the same position, the
// earlier vocabulary wins.
type vocabulary struct {
	category Category
	terms    []string
}

var vocabularies = []vocabulary{
	{CategoryCharacter, []string{
		"adam", "eve", "cain", "abel", "noah", "abram", "sarai",
		"abraham", "sarah", "isaac", "rebekah", "esau", "jacob", "joseph",
	}},
	{CategoryPlace, []string{
		"eden", "babel", "mount ararat", "egypt",
	}},
	{CategoryEvent, []string{
		"flood", "tower of babel", "sodom and gomorrah",
	}},
}

// Gazetteer recognizes the fixed domain vocabularies in free text using a
// single Aho-Corasick automaton. Read-only after construction, safe for
// concurrent use.
type Gazetteer struct {
	ac         ahocorasick.AhoCorasick
	categories []Category
}

// NewGazetteer builds the automaton over all vocabularies. Leftmost-first
// match kind plus insertion order gives the required semantics: the
// earliest occurrence in the utterance wins, and same-position overlaps
// resolve by vocabulary priority.
func NewGazetteer() *Gazetteer {
	var terms []string
	var categories []Category
	for _, v := range vocabularies {
		for _, t := range v.terms {
			terms = append(terms, t)
			categories = append(categories, v.category)
		}
	}

	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  true,
		MatchKind:            ahocorasick.LeftMostFirstMatch,
		DFA:                  true,
	})

	return &Gazetteer{
		ac:         builder.Build(terms),
		categories: categories,
	}
}

// Lookup scans text for the first vocabulary hit. It returns the category,
// the matched span as it appears in the text, and whether anything hit.
func (g *Gazetteer) Lookup(text string) (Category, string, bool) {
	matches := g.ac.FindAll(text)
	if len(matches) == 0 {
		return "", "", false
	}
	m := matches[0]
	return g.categories[m.Pattern()], text[m.Start():m.End()], true
}
