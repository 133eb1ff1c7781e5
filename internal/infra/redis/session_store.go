package redis

import (
	"context"
	"sync"
	"time"

	"element-quiz-service/internal/app"
	"github.com/redis/go-redis/v9"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Games live in process; Redis only carries a liveness marker per open game
// so operators can count sessions across instances.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.Game
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.Game),
	}
}

func (s *SessionStore) Put(sessionID string, game *app.Game) {
	s.mu.Lock()
	s.sessions[sessionID] = game
	s.mu.Unlock()
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(sessionID), "1", s.ttl).Err()
}

func (s *SessionStore) Get(sessionID string) (*app.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.sessions[sessionID]
	return game, ok
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	_ = s.client.Del(context.Background(), s.key(sessionID)).Err()
}

func (s *SessionStore) Range(fn func(sessionID string, game *app.Game) bool) {
	s.mu.RLock()
	snapshot := make(map[string]*app.Game, len(s.sessions))
	for id, game := range s.sessions {
		snapshot[id] = game
	}
	s.mu.RUnlock()

	for id, game := range snapshot {
		if !fn(id, game) {
			return
		}
	}
}

func (s *SessionStore) key(sessionID string) string {
	return "game:session:" + sessionID
}
