package quiz

import (
	"strings"
	"sync"
	"time"

	"humorpedia-web/internal/domain"
)

// Phase is the lifecycle position of a quiz session.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseInProgress Phase = "in_progress"
	PhaseScored     Phase = "scored"
)

// Session is one learner's run through a quiz. State only moves through the
// named transitions: Start, Select/SetInput, Advance, Restart. All methods
// are safe for concurrent use; the socket reader and any snapshotters share
// the session.
type Session struct {
	id        string
	def       Definition
	createdAt time.Time
	now       func() time.Time

	mu      sync.RWMutex
	phase   Phase
	index   int
	answers map[int]Answer
	draft   string
	outcome *Outcome
}

// Outcome is the final result of a scored run.
type Outcome struct {
	Score     Score                  `json:"score"`
	Result    domain.QuizResultRange `json:"result"`
	ShareText string                 `json:"share_text"`
	Review    []ReviewEntry          `json:"review,omitempty"`
}

// ReviewEntry is the per-question summary revealed after scoring.
type ReviewEntry struct {
	Prompt      string `json:"prompt"`
	Correct     bool   `json:"correct"`
	Explanation string `json:"explanation,omitempty"`
}

// NewSession builds a session for a parsed definition.
func NewSession(id string, def Definition) *Session {
	return newSessionWithClock(id, def, time.Now)
}

// NewSessionWithClock is test-only for deterministic timestamps.
func NewSessionWithClock(id string, def Definition, now func() time.Time) *Session {
	return newSessionWithClock(id, def, now)
}

func newSessionWithClock(id string, def Definition, now func() time.Time) *Session {
	return &Session{
		id:        id,
		def:       def,
		createdAt: now(),
		now:       now,
		phase:     PhaseNotStarted,
		answers:   make(map[int]Answer),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Definition returns the quiz the session runs.
func (s *Session) Definition() Definition {
	return s.def
}

// Start moves a fresh session to the first question. A quiz without
// questions cannot start. Starting an already-running session is a no-op so
// reconnecting clients can resync without losing progress.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.def.Questions) == 0 {
		return domain.ErrNoQuestions
	}
	if s.phase != PhaseNotStarted {
		return nil
	}
	s.resetLocked()
	return nil
}

// Select records an option for the current question. Single choice replaces
// the previous pick; multiple choice toggles membership, so selecting a
// chosen index removes it.
func (s *Session) Select(option int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, err := s.currentLocked()
	if err != nil {
		return err
	}
	if option < 0 || option >= len(q.Options) {
		return domain.ErrInvalidOption
	}

	switch kind(q) {
	case domain.QuestionText:
		return domain.ErrInvalidAction
	case domain.QuestionMultiple:
		a := s.answers[s.index]
		if i := indexOf(a.Options, option); i >= 0 {
			a.Options = append(a.Options[:i], a.Options[i+1:]...)
		} else {
			a.Options = append(a.Options, option)
		}
		s.answers[s.index] = a
	default:
		s.answers[s.index] = Answer{Option: option}
	}
	return nil
}

// SetInput records the pending text for the current free-input question. The
// draft is committed on advance, not on every keystroke.
func (s *Session) SetInput(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, err := s.currentLocked()
	if err != nil {
		return err
	}
	if kind(q) != domain.QuestionText {
		return domain.ErrInvalidAction
	}
	s.draft = text
	return nil
}

// Advance moves to the next question, requiring the current one answered.
// On the last question it commits any pending text input first, then scores
// the full run and resolves the result range.
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, err := s.currentLocked()
	if err != nil {
		return err
	}
	a, present := s.answers[s.index]
	if !answered(q, a, present, s.draft) {
		return domain.ErrUnanswered
	}
	if kind(q) == domain.QuestionText && strings.TrimSpace(s.draft) != "" {
		s.answers[s.index] = Answer{Text: strings.TrimSpace(s.draft)}
	}
	s.draft = ""

	if s.index+1 < len(s.def.Questions) {
		s.index++
		return nil
	}

	score := Evaluate(s.def.Questions, s.answers)
	result, err := ResolveResult(score, s.def.Results)
	if err != nil {
		return err
	}
	s.outcome = &Outcome{
		Score:     score,
		Result:    result,
		ShareText: ShareText(s.def.Title, score.Correct, score.Total),
		Review:    s.reviewLocked(score),
	}
	s.phase = PhaseScored
	return nil
}

// Restart clears all answers and returns to the first question. It works
// from any started phase; no state is terminal.
func (s *Session) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseNotStarted {
		return domain.ErrNotStarted
	}
	s.resetLocked()
	return nil
}

func (s *Session) resetLocked() {
	s.phase = PhaseInProgress
	s.index = 0
	s.answers = make(map[int]Answer)
	s.draft = ""
	s.outcome = nil
}

// currentLocked returns the current question or the phase error that blocks
// answer actions.
func (s *Session) currentLocked() (domain.QuizQuestion, error) {
	switch s.phase {
	case PhaseNotStarted:
		return domain.QuizQuestion{}, domain.ErrNotStarted
	case PhaseScored:
		return domain.QuizQuestion{}, domain.ErrAlreadyScored
	}
	return s.def.Questions[s.index], nil
}

func (s *Session) reviewLocked(score Score) []ReviewEntry {
	review := make([]ReviewEntry, len(s.def.Questions))
	for i, q := range s.def.Questions {
		review[i] = ReviewEntry{
			Prompt:      q.Prompt,
			Correct:     score.PerQuestion[i],
			Explanation: q.Explanation,
		}
	}
	return review
}

func indexOf(values []int, v int) int {
	for i, x := range values {
		if x == v {
			return i
		}
	}
	return -1
}
