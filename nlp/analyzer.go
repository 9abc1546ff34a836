package nlp

import (
	"github.com/jdkato/prose/v2"
	"go.uber.org/zap"
)

// ClarificationPrompt is returned when neither the gazetteer nor NER
// recognizes anything in the utterance.
const ClarificationPrompt = "Can you please rephrase your question or ask about something else?"

// nerLabels are the prose entity labels that qualify for an OTHER
// response: person, location and organization-like entities.
var nerLabels = map[string]bool{
	"PERSON": true,
	"GPE":    true,
	"LOC":    true,
	"ORG":    true,
}

// Analyzer produces the fallback response for utterances that matched no
// knowledge base pattern.
type Analyzer struct {
	gazetteer *Gazetteer
	store     *AlternationStore
	logger    *zap.Logger
}

// NewAnalyzer wires the gazetteer and the injected alternation store.
func NewAnalyzer(store *AlternationStore, logger *zap.Logger) *Analyzer {
	return &Analyzer{
		gazetteer: NewGazetteer(),
		store:     store,
		logger:    logger,
	}
}

// Analyze runs the fallback chain on the raw (unsanitized) utterance:
// domain gazetteer, then named-entity recognition, then the fixed
// clarification prompt. Never fails; recognition errors degrade to the
// clarification prompt.
func (a *Analyzer) Analyze(utterance string) string {
	if category, span, ok := a.gazetteer.Lookup(utterance); ok {
		a.logger.Debug("Gazetteer hit",
			zap.String("category", string(category)),
			zap.String("span", span))
		return a.store.Respond(category, span)
	}

	doc, err := prose.NewDocument(utterance, prose.WithSegmentation(false))
	if err != nil {
		a.logger.Warn("Entity recognition failed, returning clarification prompt", zap.Error(err))
		return ClarificationPrompt
	}
	for _, ent := range doc.Entities() {
		if nerLabels[ent.Label] {
			a.logger.Debug("NER hit",
				zap.String("label", ent.Label),
				zap.String("text", ent.Text))
			return a.store.Respond(CategoryOther, ent.Text)
		}
	}

	return ClarificationPrompt
}
