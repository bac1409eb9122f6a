package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"humorpedia-web/internal/quiz"
)

// SessionStore is a Redis-aware quiz session store.
// Notes:
//   - Live sessions stay in a local in-memory map: the state machine holds
//     locks and callbacks that do not serialize.
//   - Redis marks session liveness under quiz:session:{id}, so other
//     instances can see which sessions exist (and a future projector could
//     share snapshots or route cross-instance pub/sub).
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
	clock  func() time.Time

	// OnChange, when set, observes the session count after every mutation.
	OnChange func(count int)

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

type sessionEntry struct {
	session   *quiz.Session
	expiresAt time.Time
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
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
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(session.ID()), "1", s.ttl).Err()
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
		_ = s.client.Del(context.Background(), s.key(sessionID)).Err()
		s.notifyLocked()
		return nil, false
	}
	entry.expiresAt = now.Add(s.ttl)
	_ = s.client.Expire(context.Background(), s.key(sessionID), s.ttl).Err()
	return entry.session, true
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return
	}
	delete(s.sessions, sessionID)
	_ = s.client.Del(context.Background(), s.key(sessionID)).Err()
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
			_ = s.client.Del(context.Background(), s.key(id)).Err()
		}
	}
}

func (s *SessionStore) notifyLocked() {
	if s.OnChange != nil {
		s.OnChange(len(s.sessions))
	}
}

func (s *SessionStore) key(sessionID string) string {
	return "quiz:session:" + sessionID
}
