package engine

import (
	"context"
	"strings"
	"testing"

	"faq-agent/fuzzy"
	"faq-agent/knowledge"
	"faq-agent/nlp"

	"go.uber.org/zap"
)

func newTestEngine(t *testing.T, kb *knowledge.Base, cacheSize int) *Engine {
	t.Helper()
	logger := zap.NewNop()
	matcher := fuzzy.NewMatcher(kb.Patterns, logger)
	analyzer := nlp.NewAnalyzer(nlp.NewAlternationStore(), logger)
	eng, err := New(kb, matcher, analyzer, cacheSize, logger)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return eng
}

func minimalBase() *knowledge.Base {
	return &knowledge.Base{
		Questions: []string{"q1"},
		Answers:   []string{"a1"},
		Patterns:  []string{"q1{e<=0}"},
	}
}

func TestHandleUtteranceKeywords(t *testing.T) {
	eng := newTestEngine(t, minimalBase(), 0)

	tests := []struct {
		name      string
		utterance string
		wantReply string
		wantDone  bool
	}{
		{"hello", "hello", Greeting, false},
		{"hello_with_punctuation", "  Hello!! ", Greeting, false},
		{"goodbye", "goodbye", Farewell, true},
		{"goodbye_mixed_case", "GoodBye.", Farewell, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eng.HandleUtterance(context.Background(), tt.utterance)
			if result.Reply != tt.wantReply {
				t.Errorf("Reply = %q, want %q", result.Reply, tt.wantReply)
			}
			if result.Done != tt.wantDone {
				t.Errorf("Done = %v, want %v", result.Done, tt.wantDone)
			}
		})
	}
}

func TestHandleUtteranceRoundTrip(t *testing.T) {
	eng := newTestEngine(t, minimalBase(), 0)

	result := eng.HandleUtterance(context.Background(), "q1")
	if result.Reply != "a1" {
		t.Errorf("Reply = %q, want %q", result.Reply, "a1")
	}
	if result.MatchedIndex != 0 {
		t.Errorf("MatchedIndex = %d, want 0", result.MatchedIndex)
	}
}

func TestHandleUtteranceEmptyPatternsDelegatesToFallback(t *testing.T) {
	kb := &knowledge.Base{}
	eng := newTestEngine(t, kb, 0)

	result := eng.HandleUtterance(context.Background(), "who was Isaac")
	if result.MatchedIndex != fuzzy.NoMatch {
		t.Fatalf("MatchedIndex = %d, want NoMatch", result.MatchedIndex)
	}
	if !strings.Contains(result.Reply, "Isaac") {
		t.Errorf("Reply = %q, want a fallback response about Isaac", result.Reply)
	}
}

func TestHandleUtteranceFallbackNotCached(t *testing.T) {
	// Repeating the same unmatched utterance must keep alternating; a
	// cached fallback reply would freeze the variant.
	eng := newTestEngine(t, minimalBase(), 8)

	first := eng.HandleUtterance(context.Background(), "tell me about Jacob")
	second := eng.HandleUtterance(context.Background(), "tell me about Jacob")

	if first.Reply == second.Reply {
		t.Errorf("fallback replies did not alternate: both %q", first.Reply)
	}
}

func TestHandleUtteranceCachedAnswerStable(t *testing.T) {
	eng := newTestEngine(t, minimalBase(), 8)

	first := eng.HandleUtterance(context.Background(), "q1")
	second := eng.HandleUtterance(context.Background(), "q1")

	if first.Reply != "a1" || second.Reply != "a1" {
		t.Errorf("cached answers differ: %q then %q", first.Reply, second.Reply)
	}
	if second.MatchedIndex != 0 {
		t.Errorf("cached MatchedIndex = %d, want 0", second.MatchedIndex)
	}
}

func TestHandleUtteranceExpiredContext(t *testing.T) {
	eng := newTestEngine(t, minimalBase(), 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := eng.HandleUtterance(ctx, "q1")
	if result.Reply != nlp.ClarificationPrompt {
		t.Errorf("Reply = %q, want clarification prompt on expired context", result.Reply)
	}
	if result.Done {
		t.Error("Done = true, want false")
	}
}

func TestLowerErrorPatternWinsRegardlessOfOrder(t *testing.T) {
	kb := &knowledge.Base{
		Questions: []string{"helo?", "help?"},
		Answers:   []string{"noisy answer", "exact answer"},
		Patterns:  []string{"hel{1:e<=1}o", "help{1:e<=2}"},
	}
	eng := newTestEngine(t, kb, 0)

	result := eng.HandleUtterance(context.Background(), "help")
	if result.Reply != "exact answer" {
		t.Errorf("Reply = %q, want %q", result.Reply, "exact answer")
	}
}
