// Package fuzzy implements error-tolerant matching of utterances against
// the knowledge base pattern list. Each pattern line carries its own edit
// budget using the fuzzy-regex annotation syntax of the source data
// (e.g. "what is a chatbot{e<=2}"); matching permits up to that many
// character substitutions, insertions and deletions combined.
package fuzzy

import (
	"regexp"
	"strconv"
	"strings"

	"faq-agent/errors"

	"github.com/agnivade/levenshtein"
)

// annotationRe finds {...} budget annotations anywhere in a pattern line.
var annotationRe = regexp.MustCompile(`\{[^{}]*\}`)

// budgetRe validates a single annotation: an optional group prefix like
// "1:" followed by one or more comma-separated bounds, each of the form
// e<=N (total edits) or s<=N / i<=N / d<=N (per-operation bounds).
var budgetRe = regexp.MustCompile(`^\{(?:\d+:)?([esid]<=\d+(?:,[esid]<=\d+)*)\}$`)

var boundRe = regexp.MustCompile(`([esid])<=(\d+)`)

// Pattern is a compiled fuzzy pattern: the literal text with all
// annotations and grouping stripped, plus the summed edit budget.
type Pattern struct {
	Source  string
	literal string
	budget  int
}

// Compile parses a pattern line into a Pattern. The literal is lowercased
// once here; all matching is case-insensitive. A line whose annotations do
// not parse, or that is empty once annotations are stripped, fails with
// ErrInvalidPattern.
func Compile(line string) (*Pattern, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, errors.WrapError(errors.ErrInvalidPattern, "empty pattern line")
	}

	budget := 0
	for _, ann := range annotationRe.FindAllString(trimmed, -1) {
		m := budgetRe.FindStringSubmatch(ann)
		if m == nil {
			return nil, errors.WrapErrorf(errors.ErrInvalidPattern, "bad budget annotation %q in %q", ann, line)
		}
		for _, bound := range boundRe.FindAllStringSubmatch(m[1], -1) {
			n, _ := strconv.Atoi(bound[2]) // digits only by construction
			budget += n
		}
	}

	literal := annotationRe.ReplaceAllString(trimmed, "")
	// Tolerate the regex grouping syntax the source data uses around
	// fuzzy regions: (?:...) and a leading case-insensitivity flag.
	literal = strings.TrimPrefix(literal, "(?i)")
	literal = strings.ReplaceAll(literal, "(?:", "")
	literal = strings.ReplaceAll(literal, "(", "")
	literal = strings.ReplaceAll(literal, ")", "")
	literal = strings.TrimSpace(strings.ToLower(literal))
	if literal == "" {
		return nil, errors.WrapErrorf(errors.ErrInvalidPattern, "no literal text in %q", line)
	}
	if strings.ContainsAny(literal, "{}") {
		return nil, errors.WrapErrorf(errors.ErrInvalidPattern, "unbalanced annotation braces in %q", line)
	}

	return &Pattern{Source: line, literal: literal, budget: budget}, nil
}

// Budget returns the pattern's total permitted edit count.
func (p *Pattern) Budget() int {
	return p.budget
}

// Match runs an approximate substring search of the pattern against the
// utterance. It returns the edit count of the best alignment and whether
// that count falls within the pattern's budget.
func (p *Pattern) Match(utterance string) (int, bool) {
	haystack := strings.ToLower(utterance)

	if p.budget == 0 {
		if strings.Contains(haystack, p.literal) {
			return 0, true
		}
		return 0, false
	}

	best := p.bestDistance([]rune(haystack))
	if best > p.budget {
		return 0, false
	}
	return best, true
}

// bestDistance finds the minimum Levenshtein distance between the literal
// and any substring of the utterance, considering only windows whose
// length could possibly fall within the budget.
func (p *Pattern) bestDistance(utterance []rune) int {
	lit := []rune(p.literal)
	lp := len(lit)

	minLen := lp - p.budget
	if minLen < 0 {
		minLen = 0
	}
	maxLen := lp + p.budget

	// The empty window is always a legal alignment: delete every literal rune.
	best := lp
	for start := 0; start < len(utterance); start++ {
		for length := minLen; length <= maxLen; length++ {
			end := start + length
			if end > len(utterance) {
				break
			}
			d := levenshtein.ComputeDistance(p.literal, string(utterance[start:end]))
			if d < best {
				best = d
				if best == 0 {
					return 0
				}
			}
		}
	}
	return best
}
