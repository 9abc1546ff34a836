package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"faq-agent/config"
	"faq-agent/errors"

	"go.uber.org/zap"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		QuestionsFile: writeFile(t, dir, "questions.txt", "q1\n\n  q2  \n"),
		AnswersFile:   writeFile(t, dir, "answers.txt", "a1\na2\n"),
		PatternsFile:  writeFile(t, dir, "patterns.txt", "q1{e<=0}\nq2{e<=1}\n"),
	}

	kb, err := Load(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if kb.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", kb.Len())
	}
	if kb.Questions[1] != "q2" {
		t.Errorf("Questions[1] = %q, want %q (blank lines skipped, whitespace trimmed)", kb.Questions[1], "q2")
	}
	if kb.Answers[0] != "a1" || kb.Patterns[1] != "q2{e<=1}" {
		t.Errorf("unexpected content: answers=%v patterns=%v", kb.Answers, kb.Patterns)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		QuestionsFile: filepath.Join(dir, "does-not-exist.txt"),
		AnswersFile:   writeFile(t, dir, "answers.txt", "a1\n"),
		PatternsFile:  writeFile(t, dir, "patterns.txt", "q1{e<=0}\n"),
	}

	_, err := Load(cfg, zap.NewNop())
	if err == nil {
		t.Fatal("Load() expected error for missing questions file")
	}
	if !errors.IsKnowledgeBase(err) {
		t.Errorf("Load() error = %v, want ErrKnowledgeBase", err)
	}
}

func TestLoadLengthMismatch(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		QuestionsFile: writeFile(t, dir, "questions.txt", "q1\nq2\n"),
		AnswersFile:   writeFile(t, dir, "answers.txt", "a1\n"),
		PatternsFile:  writeFile(t, dir, "patterns.txt", "q1{e<=0}\nq2{e<=0}\n"),
	}

	_, err := Load(cfg, zap.NewNop())
	if err == nil {
		t.Fatal("Load() expected error for misaligned sources")
	}
	if !errors.IsKnowledgeBase(err) {
		t.Errorf("Load() error = %v, want ErrKnowledgeBase", err)
	}
}

func TestAnswerRange(t *testing.T) {
	kb := &Base{
		Questions: []string{"q1"},
		Answers:   []string{"a1"},
		Patterns:  []string{"q1{e<=0}"},
	}

	if got, ok := kb.Answer(0); !ok || got != "a1" {
		t.Errorf("Answer(0) = %q, %v; want %q, true", got, ok, "a1")
	}
	for _, idx := range []int{-1, 1, 100} {
		if _, ok := kb.Answer(idx); ok {
			t.Errorf("Answer(%d) ok = true, want false", idx)
		}
	}
}
