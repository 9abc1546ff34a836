// Package engine drives the intent resolution pipeline: sanitize the
// utterance, short-circuit greetings and farewells, fuzzy-match against
// the knowledge base, and fall back to entity analysis when nothing
// matched.
package engine

import (
	"context"

	"faq-agent/fuzzy"
	"faq-agent/knowledge"
	"faq-agent/nlp"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
)

// Fixed conversational replies for the two literal keywords.
const (
	Greeting = "Hello! How can I assist you?"
	Farewell = "Goodbye! Have a wonderful day!"
)

// Engine resolves utterances to responses. Safe for concurrent use: the
// knowledge base and matcher are read-only, the reply cache is
// thread-safe, and the analyzer serializes its alternation state.
type Engine struct {
	kb       *knowledge.Base
	matcher  *fuzzy.Matcher
	analyzer *nlp.Analyzer
	cache    *lru.Cache
	logger   *zap.Logger
}

// New builds an Engine. cacheSize <= 0 disables the reply cache.
func New(kb *knowledge.Base, matcher *fuzzy.Matcher, analyzer *nlp.Analyzer, cacheSize int, logger *zap.Logger) (*Engine, error) {
	e := &Engine{
		kb:       kb,
		matcher:  matcher,
		analyzer: analyzer,
		logger:   logger,
	}
	if cacheSize > 0 {
		cache, err := lru.New(cacheSize)
		if err != nil {
			return nil, err
		}
		e.cache = cache
	}
	return e, nil
}

// Result is the outcome of one utterance. Done is true when the
// utterance was a farewell and the session should end. MatchedIndex is
// the knowledge base index the reply came from, or fuzzy.NoMatch for
// keyword and fallback replies.
type Result struct {
	Reply        string
	Done         bool
	MatchedIndex int
}

// HandleUtterance resolves one utterance to a reply. The context bounds
// processing time; an expired context degrades to the clarification
// prompt rather than surfacing an error to the user.
func (e *Engine) HandleUtterance(ctx context.Context, text string) Result {
	if ctx.Err() != nil {
		e.logger.Warn("Utterance dropped, context expired", zap.Error(ctx.Err()))
		return Result{Reply: nlp.ClarificationPrompt, MatchedIndex: fuzzy.NoMatch}
	}

	sanitized := Sanitize(text)
	switch sanitized {
	case "hello":
		return Result{Reply: Greeting, MatchedIndex: fuzzy.NoMatch}
	case "goodbye":
		return Result{Reply: Farewell, Done: true, MatchedIndex: fuzzy.NoMatch}
	}

	// Canned answers are deterministic per utterance, so they can be
	// served from cache. Fallback responses alternate and must not be.
	if e.cache != nil {
		if cached, ok := e.cache.Get(text); ok {
			hit := cached.(cachedReply)
			return Result{Reply: hit.reply, MatchedIndex: hit.index}
		}
	}

	// Fuzzy matching runs on the raw utterance; the pattern syntax owns
	// its own tolerance for punctuation and casing.
	idx, errCount := e.matcher.Match(text)
	return e.generate(idx, errCount, text)
}

type cachedReply struct {
	reply string
	index int
}

// generate resolves the matcher result to the final reply: the stored
// answer for a matched pattern, the fallback analyzer otherwise.
func (e *Engine) generate(idx, errCount int, utterance string) Result {
	if idx != fuzzy.NoMatch {
		answer, ok := e.kb.Answer(idx)
		if ok {
			e.logger.Debug("Answering from knowledge base",
				zap.Int("index", idx),
				zap.Int("errors", errCount))
			if e.cache != nil {
				e.cache.Add(utterance, cachedReply{reply: answer, index: idx})
			}
			return Result{Reply: answer, MatchedIndex: idx}
		}
		// Misaligned knowledge base; the loader's length check makes
		// this unreachable, but degrade conversationally regardless.
		e.logger.Error("Match index out of answer range", zap.Int("index", idx))
	}
	return Result{Reply: e.analyzer.Analyze(utterance), MatchedIndex: fuzzy.NoMatch}
}
