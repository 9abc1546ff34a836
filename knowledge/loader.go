package knowledge

import (
	"bufio"
	"os"
	"strings"

	"faq-agent/config"
	"faq-agent/errors"

	"go.uber.org/zap"
)

// Base holds the question bank loaded at startup. The three slices are
// index-aligned: Questions[i] is answered by Answers[i] and matched by
// Patterns[i]. The Base is read-only after Load returns.
type Base struct {
	Questions []string
	Answers   []string
	Patterns  []string
}

// Load reads the three line-delimited knowledge base files named in cfg.
// One entry per non-empty line, whitespace-trimmed, source order preserved.
// A missing or unreadable file is fatal; so is a length mismatch between
// the three lists, since the line index is the only join key.
func Load(cfg *config.Config, logger *zap.Logger) (*Base, error) {
	questions, err := readLines(cfg.QuestionsFile)
	if err != nil {
		return nil, errors.WrapErrorf(errors.ErrKnowledgeBase, "reading questions from %s: %v", cfg.QuestionsFile, err)
	}

	answers, err := readLines(cfg.AnswersFile)
	if err != nil {
		return nil, errors.WrapErrorf(errors.ErrKnowledgeBase, "reading answers from %s: %v", cfg.AnswersFile, err)
	}

	patterns, err := readLines(cfg.PatternsFile)
	if err != nil {
		return nil, errors.WrapErrorf(errors.ErrKnowledgeBase, "reading patterns from %s: %v", cfg.PatternsFile, err)
	}

	if len(questions) != len(answers) || len(answers) != len(patterns) {
		return nil, errors.WrapErrorf(errors.ErrKnowledgeBase,
			"misaligned sources: %d questions, %d answers, %d patterns",
			len(questions), len(answers), len(patterns))
	}

	logger.Info("Knowledge base loaded",
		zap.Int("entries", len(questions)),
		zap.String("questions_file", cfg.QuestionsFile))

	return &Base{
		Questions: questions,
		Answers:   answers,
		Patterns:  patterns,
	}, nil
}

// Len returns the number of entries in the knowledge base.
func (b *Base) Len() int {
	return len(b.Questions)
}

// Answer returns the canned answer for a pattern index and whether the
// index is in range.
func (b *Base) Answer(idx int) (string, bool) {
	if idx < 0 || idx >= len(b.Answers) {
		return "", false
	}
	return b.Answers[idx], true
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
