package memory

import (
	"sync"

	"element-quiz-service/internal/app"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*app.Game
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*app.Game),
	}
}

func (s *SessionStore) Put(sessionID string, game *app.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = game
}

func (s *SessionStore) Get(sessionID string) (*app.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.sessions[sessionID]
	return game, ok
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Range calls fn for every open game until fn returns false. fn runs on a
// snapshot, so it may call back into the store.
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
