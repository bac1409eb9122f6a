package quiz

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"humorpedia-web/internal/domain"
)

// Answer is a learner's response to one question. The question kind decides
// which field applies: Option for single choice, Options for multiple
// choice, Text for free input.
type Answer struct {
	Option  int    `json:"option"`
	Options []int  `json:"options,omitempty"`
	Text    string `json:"text,omitempty"`
}

// Score is the outcome of evaluating a full answer set.
type Score struct {
	Correct     int    `json:"correct"`
	Total       int    `json:"total"`
	Percentage  int    `json:"percentage"`
	PerQuestion []bool `json:"per_question"`
}

// Evaluate scores every question against the answer set. Unanswered
// questions count as incorrect and stay in the total; skipping never shrinks
// the denominator.
func Evaluate(questions []domain.QuizQuestion, answers map[int]Answer) Score {
	s := Score{Total: len(questions), PerQuestion: make([]bool, len(questions))}
	for i, q := range questions {
		a, ok := answers[i]
		if !ok {
			continue
		}
		if questionCorrect(q, a) {
			s.PerQuestion[i] = true
			s.Correct++
		}
	}
	s.Percentage = Percentage(s.Correct, s.Total)
	return s
}

// Percentage is the rounded share of correct answers.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

func questionCorrect(q domain.QuizQuestion, a Answer) bool {
	switch kind(q) {
	case domain.QuestionText:
		return foldText(a.Text) == foldText(q.CorrectAnswer)
	case domain.QuestionMultiple:
		chosen := append([]int(nil), a.Options...)
		sort.Ints(chosen)
		// An empty selection equals an empty correct set.
		return intsEqual(chosen, correctIndices(q))
	default:
		idx := firstCorrectIndex(q)
		return idx >= 0 && a.Option == idx
	}
}

// foldText applies the comparison normalization for text answers: lowercase
// and trimmed, nothing more. No punctuation stripping, no partial credit.
func foldText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// firstCorrectIndex returns the index of the first option flagged correct,
// or -1. A single-choice question without a flagged option is unwinnable but
// still playable.
func firstCorrectIndex(q domain.QuizQuestion) int {
	for i, opt := range q.Options {
		if opt.Correct {
			return i
		}
	}
	return -1
}

// correctIndices returns every flagged option index, ascending.
func correctIndices(q domain.QuizQuestion) []int {
	var idx []int
	for i, opt := range q.Options {
		if opt.Correct {
			idx = append(idx, i)
		}
	}
	return idx
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ResolveResult picks the result range for a score. Editors author ranges
// against either the percentage or the raw correct count, so a range matches
// on either reading; the percentage pass runs first across all ranges, then
// the raw-count pass, each returning the first match in list order. When
// nothing matches the last range applies. A quiz without ranges is a content
// configuration error, reported loudly instead of silently resolving to
// nothing.
func ResolveResult(s Score, ranges []domain.QuizResultRange) (domain.QuizResultRange, error) {
	if len(ranges) == 0 {
		return domain.QuizResultRange{}, domain.ErrNoResultRanges
	}
	for _, r := range ranges {
		if r.Contains(s.Percentage) {
			return r, nil
		}
	}
	for _, r := range ranges {
		if r.Contains(s.Correct) {
			return r, nil
		}
	}
	return ranges[len(ranges)-1], nil
}

// ShareText is the message offered to the share sheet after scoring.
func ShareText(title string, correct, total int) string {
	return fmt.Sprintf(`I took quiz "%s" and scored %d out of %d!`, title, correct, total)
}

// answered reports whether the current state satisfies the question. Text
// questions accept either a committed answer or a non-blank pending draft,
// so typing makes the question advanceable before the input is committed.
func answered(q domain.QuizQuestion, a Answer, present bool, draft string) bool {
	switch kind(q) {
	case domain.QuestionText:
		if strings.TrimSpace(draft) != "" {
			return true
		}
		return present && strings.TrimSpace(a.Text) != ""
	case domain.QuestionMultiple:
		return present && len(a.Options) > 0
	default:
		// Index zero is a valid selection; presence is what counts.
		return present
	}
}
