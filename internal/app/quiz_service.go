package app

import (
	"context"

	"github.com/google/uuid"

	"humorpedia-web/internal/domain"
	"humorpedia-web/internal/quiz"
)

// SessionRepository abstracts where live quiz sessions are held (in-memory,
// Redis-marked, etc).
type SessionRepository interface {
	Put(session *quiz.Session)
	Get(sessionID string) (*quiz.Session, bool)
	Delete(sessionID string)
}

// QuizService runs quiz sessions on top of the content source.
type QuizService struct {
	sessions SessionRepository
	content  EntityRepository
	newID    func() string
}

func NewQuizService(store SessionRepository, content EntityRepository) *QuizService {
	return &QuizService{
		sessions: store,
		content:  content,
		newID:    uuid.NewString,
	}
}

// StartSession resumes the session when the client presents a known id;
// otherwise it loads the quiz document and starts a fresh run. An expired or
// unknown id silently falls through to a fresh session.
func (s *QuizService) StartSession(ctx context.Context, slug, sessionID string) (quiz.State, error) {
	if sessionID != "" {
		if session, ok := s.sessions.Get(sessionID); ok {
			if err := session.Start(); err != nil {
				return quiz.State{}, err
			}
			return session.State(), nil
		}
	}

	e, err := s.content.LoadEntity(ctx, domain.TypeQuiz, slug)
	if err != nil {
		return quiz.State{}, err
	}

	session := quiz.NewSession(s.newID(), quiz.ParseDefinition(e))
	if err := session.Start(); err != nil {
		return quiz.State{}, err
	}
	s.sessions.Put(session)
	return session.State(), nil
}

// Select records an option pick for the session's current question.
func (s *QuizService) Select(_ context.Context, sessionID string, option int) (quiz.State, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return quiz.State{}, domain.ErrSessionNotFound
	}
	if err := session.Select(option); err != nil {
		return quiz.State{}, err
	}
	return session.State(), nil
}

// SetInput records the pending free-text answer.
func (s *QuizService) SetInput(_ context.Context, sessionID, text string) (quiz.State, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return quiz.State{}, domain.ErrSessionNotFound
	}
	if err := session.SetInput(text); err != nil {
		return quiz.State{}, err
	}
	return session.State(), nil
}

// Advance moves the session forward, scoring it on the last question.
func (s *QuizService) Advance(_ context.Context, sessionID string) (quiz.State, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return quiz.State{}, domain.ErrSessionNotFound
	}
	if err := session.Advance(); err != nil {
		return quiz.State{}, err
	}
	return session.State(), nil
}

// Restart puts a started session back on the first question.
func (s *QuizService) Restart(_ context.Context, sessionID string) (quiz.State, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return quiz.State{}, domain.ErrSessionNotFound
	}
	if err := session.Restart(); err != nil {
		return quiz.State{}, err
	}
	return session.State(), nil
}

// Snapshot returns the current state without mutating the session.
func (s *QuizService) Snapshot(_ context.Context, sessionID string) (quiz.State, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return quiz.State{}, domain.ErrSessionNotFound
	}
	return session.State(), nil
}

// EndSession drops the session; a vanished id is not an error.
func (s *QuizService) EndSession(_ context.Context, sessionID string) {
	s.sessions.Delete(sessionID)
}
