package console

import (
	"context"
	"strings"
	"testing"

	"faq-agent/engine"
	"faq-agent/fuzzy"
	"faq-agent/knowledge"
	"faq-agent/nlp"

	"go.uber.org/zap"
)

func newTestDriver(t *testing.T, input string) (*Driver, *strings.Builder) {
	t.Helper()
	logger := zap.NewNop()
	kb := &knowledge.Base{
		Questions: []string{"what is a chatbot"},
		Answers:   []string{"A chatbot simulates conversation."},
		Patterns:  []string{"what is a chatbot{e<=2}"},
	}
	matcher := fuzzy.NewMatcher(kb.Patterns, logger)
	analyzer := nlp.NewAnalyzer(nlp.NewAlternationStore(), logger)
	eng, err := engine.New(kb, matcher, analyzer, 0, logger)
	if err != nil {
		t.Fatalf("engine.New() failed: %v", err)
	}

	var out strings.Builder
	return NewDriver(eng, logger, strings.NewReader(input), &out), &out
}

func TestRunSession(t *testing.T) {
	driver, out := newTestDriver(t, "hello\nwhat is a chatbot?\ngoodbye\n")

	if err := driver.Run(context.Background()); err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		banner,
		engine.Greeting,
		"A chatbot simulates conversation.",
		engine.Farewell,
		parting,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\noutput: %s", want, got)
		}
	}
}

func TestRunStopsAtFarewell(t *testing.T) {
	driver, out := newTestDriver(t, "goodbye\nhello\n")

	if err := driver.Run(context.Background()); err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if strings.Contains(out.String(), engine.Greeting) {
		t.Error("driver processed input after the farewell")
	}
}

func TestRunEndsOnEOF(t *testing.T) {
	driver, _ := newTestDriver(t, "hello\n")

	if err := driver.Run(context.Background()); err != nil {
		t.Errorf("Run() on EOF = %v, want nil", err)
	}
}
