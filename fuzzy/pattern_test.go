package fuzzy

import (
	"testing"

	"faq-agent/errors"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantBudget int
		wantErr    bool
	}{
		{"bare_literal", "turing test", 0, false},
		{"total_edits", "what is a chatbot{e<=2}", 2, false},
		{"grouped", "(?:who created eliza){e<=3}", 3, false},
		{"embedded_group", "hel{1:e<=1}o", 1, false},
		{"per_operation_bounds", "eliza{s<=1,i<=2,d<=1}", 4, false},
		{"multiple_annotations", "hel{1:e<=1}o wor{1:e<=1}ld", 2, false},
		{"case_flag", "(?i)Turing Test{e<=1}", 1, false},
		{"empty_line", "   ", 0, true},
		{"bad_annotation", "chatbot{e<=}", 0, true},
		{"unknown_bound", "chatbot{x<=2}", 0, true},
		{"no_literal", "(?:){e<=1}", 0, true},
		{"unbalanced_brace", "{broken", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.line)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Compile(%q) expected error, got none", tt.line)
				}
				if !errors.IsInvalidPattern(err) {
					t.Errorf("Compile(%q) error = %v, want ErrInvalidPattern", tt.line, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Compile(%q) unexpected error: %v", tt.line, err)
			}
			if p.Budget() != tt.wantBudget {
				t.Errorf("Compile(%q).Budget() = %d, want %d", tt.line, p.Budget(), tt.wantBudget)
			}
		})
	}
}

func TestPatternMatch(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		utterance  string
		wantErrors int
		wantMatch  bool
	}{
		{"exact_zero_budget", "q1{e<=0}", "q1", 0, true},
		{"substring_zero_budget", "turing test", "tell me about the Turing test please", 0, true},
		{"zero_budget_rejects_typo", "turing test{e<=0}", "turin test", 0, false},
		{"one_substitution", "chatbot{e<=1}", "what is a chatbpt", 1, true},
		{"one_deletion", "chatbot{e<=2}", "what is a chatbt", 1, true},
		{"over_budget", "chatbot{e<=1}", "cabot", 0, false},
		{"case_insensitive", "CHATBOT{e<=1}", "I love my chatbot", 0, true},
		{"empty_utterance", "chatbot{e<=2}", "", 0, false},
		{"embedded_budget", "hel{1:e<=1}o", "help", 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.line)
			if err != nil {
				t.Fatalf("Compile(%q) failed: %v", tt.line, err)
			}
			errCount, ok := p.Match(tt.utterance)
			if ok != tt.wantMatch {
				t.Fatalf("Match(%q) matched = %v, want %v", tt.utterance, ok, tt.wantMatch)
			}
			if ok && errCount != tt.wantErrors {
				t.Errorf("Match(%q) errors = %d, want %d", tt.utterance, errCount, tt.wantErrors)
			}
		})
	}
}
