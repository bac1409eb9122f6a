package quiz

// QuestionView is the transport-safe projection of one question: option
// correct flags and the expected text answer never leave the engine before
// scoring.
type QuestionView struct {
	Index   int      `json:"index"`
	Kind    string   `json:"kind"`
	Prompt  string   `json:"prompt"`
	Image   string   `json:"image,omitempty"`
	Options []string `json:"options,omitempty"`
}

// State is a read-only snapshot of a session for clients.
type State struct {
	SessionID string        `json:"session_id"`
	QuizID    string        `json:"quiz_id"`
	Slug      string        `json:"slug,omitempty"`
	Title     string        `json:"title"`
	Phase     Phase         `json:"phase"`
	Index     int           `json:"index"`
	Total     int           `json:"total"`
	Question  *QuestionView `json:"question,omitempty"`
	Answer    *Answer       `json:"answer,omitempty"`
	Draft     string        `json:"draft,omitempty"`
	Answered  bool          `json:"answered"`
	Outcome   *Outcome      `json:"outcome,omitempty"`
}

// State snapshots the session for transport.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := State{
		SessionID: s.id,
		QuizID:    s.def.ID,
		Slug:      s.def.Slug,
		Title:     s.def.Title,
		Phase:     s.phase,
		Index:     s.index,
		Total:     len(s.def.Questions),
		Draft:     s.draft,
		Outcome:   s.outcome,
	}
	if s.phase != PhaseInProgress {
		return st
	}

	q := s.def.Questions[s.index]
	view := QuestionView{
		Index:  s.index,
		Kind:   string(kind(q)),
		Prompt: q.Prompt,
		Image:  q.Image,
	}
	for _, opt := range q.Options {
		view.Options = append(view.Options, opt.Text)
	}
	st.Question = &view

	a, present := s.answers[s.index]
	if present {
		answer := a
		st.Answer = &answer
	}
	st.Answered = answered(q, a, present, s.draft)
	return st
}
