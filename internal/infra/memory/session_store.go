package memory

import (
	"sync"
	"time"

	"humorpedia-web/internal/quiz"
)

// SessionStore holds live quiz sessions keyed by session ID. Sessions are
// transient UI state: entries expire after ttl of inactivity, and access
// slides the expiry forward.
type SessionStore struct {
	ttl   time.Duration
	clock func() time.Time

	// OnChange, when set, observes the session count after every mutation.
	OnChange func(count int)

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

type sessionEntry struct {
	session   *quiz.Session
	expiresAt time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		clock:    time.Now,
		sessions: make(map[string]*sessionEntry),
	}
}

func (s *SessionStore) Put(session *quiz.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	s.purgeLocked(now)
	s.sessions[session.ID()] = &sessionEntry{
		session:   session,
		expiresAt: now.Add(s.ttl),
	}
	s.notifyLocked()
}

func (s *SessionStore) Get(sessionID string) (*quiz.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	now := s.clock()
	if !entry.expiresAt.After(now) {
		delete(s.sessions, sessionID)
		s.notifyLocked()
		return nil, false
	}
	entry.expiresAt = now.Add(s.ttl)
	return entry.session, true
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return
	}
	delete(s.sessions, sessionID)
	s.notifyLocked()
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) purgeLocked(now time.Time) {
	for id, entry := range s.sessions {
		if !entry.expiresAt.After(now) {
			delete(s.sessions, id)
		}
	}
}

func (s *SessionStore) notifyLocked() {
	if s.OnChange != nil {
		s.OnChange(len(s.sessions))
	}
}
