package fuzzy

import (
	"go.uber.org/zap"
)

// NoMatch is the index returned when no pattern matched the utterance.
const NoMatch = -1

// Matcher scores utterances against the full pattern list. It is
// read-only after construction and safe for concurrent use.
type Matcher struct {
	// patterns is index-aligned with the knowledge base; a nil entry
	// holds the slot of a line that failed to compile so that later
	// indices still line up with their answers.
	patterns []*Pattern
	logger   *zap.Logger
}

// NewMatcher compiles every pattern line. A line that fails to compile is
// logged and skipped rather than aborting the whole load; its slot stays
// reserved to preserve index alignment.
func NewMatcher(lines []string, logger *zap.Logger) *Matcher {
	patterns := make([]*Pattern, len(lines))
	for i, line := range lines {
		p, err := Compile(line)
		if err != nil {
			logger.Warn("Skipping fuzzy pattern that failed to compile",
				zap.Int("line", i+1),
				zap.String("pattern", line),
				zap.Error(err))
			continue
		}
		patterns[i] = p
	}
	return &Matcher{patterns: patterns, logger: logger}
}

// Match scans every pattern in order and returns the index of the best
// match plus its edit count, or (NoMatch, 0) when nothing matched. The
// scan is linear with no early exit: a later pattern may beat an earlier
// one with a strictly lower edit count. On equal edit counts the earliest
// index wins, which fixes the answer returned for ambiguous input.
func (m *Matcher) Match(utterance string) (int, int) {
	bestIdx := NoMatch
	bestErrors := 0

	for i, p := range m.patterns {
		if p == nil {
			continue
		}
		errCount, ok := p.Match(utterance)
		if !ok {
			continue
		}
		if bestIdx == NoMatch || errCount < bestErrors {
			bestIdx = i
			bestErrors = errCount
		}
	}

	if bestIdx != NoMatch {
		m.logger.Debug("Fuzzy match",
			zap.Int("index", bestIdx),
			zap.Int("errors", bestErrors))
	}
	return bestIdx, bestErrors
}

// Len returns the number of pattern slots, including skipped ones.
func (m *Matcher) Len() int {
	return len(m.patterns)
}
