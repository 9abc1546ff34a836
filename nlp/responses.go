package nlp

import (
	"fmt"
	"sync"
)

// Two response variants per category. Successive fallback hits on the
// same category alternate between them so the bot does not repeat itself.
var responseTemplates = map[Category][2]string{
	CategoryCharacter: {
		"What would you like to know about %s?",
		"I'm not quite sure about %s. Can you ask about another character or a different topic?",
	},
	CategoryPlace: {
		"What would you like to know about the place called %s?",
		"The place called %s is beyond my current knowledge. What else can I assist with?",
	},
	CategoryEvent: {
		"What details are you interested in about the event known as %s?",
		"I have limited information on the event called %s. Perhaps inquire about a different event?",
	},
	CategoryOther: {
		"Sorry, I don't have information on %s.",
		"My knowledge about %s is limited. Feel free to ask another question.",
	},
}

// AlternationStore tracks which response variant each category should use
// next. It is the only mutable shared state in the pipeline; the
// read-then-write of a counter is serialized so two concurrent fallback
// hits for the same category cannot both see variant 0.
type AlternationStore struct {
	mu   sync.Mutex
	next map[Category]int
}

// NewAlternationStore returns an empty store: every category starts at
// variant 0 on first use.
func NewAlternationStore() *AlternationStore {
	return &AlternationStore{next: make(map[Category]int)}
}

// Respond formats the category's current response variant with the
// matched text and advances the counter. Categories without a template
// pair use the OTHER pair, but keep their own alternation counter.
func (s *AlternationStore) Respond(category Category, text string) string {
	templates, ok := responseTemplates[category]
	if !ok {
		templates = responseTemplates[CategoryOther]
	}
	idx := s.take(category)
	return fmt.Sprintf(templates[idx], text)
}

// take returns the category's current variant index and flips it.
func (s *AlternationStore) take(category Category) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.next[category]
	s.next[category] = (idx + 1) % 2
	return idx
}
