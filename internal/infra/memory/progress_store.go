package memory

import (
	"context"
	"sync"

	"element-quiz-service/internal/domain"
)

// ProgressStore is an in-memory implementation of app.ProgressStore.
type ProgressStore struct {
	mu           sync.RWMutex
	streaks      map[string]domain.Streak
	history      map[string][]domain.HistoryEntry
	achievements map[string]map[string]struct{}
}

func NewProgressStore() *ProgressStore {
	return &ProgressStore{
		streaks:      make(map[string]domain.Streak),
		history:      make(map[string][]domain.HistoryEntry),
		achievements: make(map[string]map[string]struct{}),
	}
}

func (s *ProgressStore) GetStreak(_ context.Context, userID string) (domain.Streak, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	streak, ok := s.streaks[userID]
	return streak, ok, nil
}

func (s *ProgressStore) UpsertStreak(_ context.Context, userID string, streak domain.Streak) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streaks[userID] = streak
	return nil
}

func (s *ProgressStore) InsertHistory(_ context.Context, userID string, entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history[userID] = append(s.history[userID], entry)
	return nil
}

// History returns a copy of the user's history log.
func (s *ProgressStore) History(userID string) []domain.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.HistoryEntry(nil), s.history[userID]...)
}

func (s *ProgressStore) GetUnlockedAchievementIDs(_ context.Context, userID string) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]struct{}, len(s.achievements[userID]))
	for id := range s.achievements[userID] {
		out[id] = struct{}{}
	}
	return out, nil
}

func (s *ProgressStore) InsertUnlockedAchievement(_ context.Context, userID, achievementID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.achievements[userID]
	if !ok {
		set = make(map[string]struct{})
		s.achievements[userID] = set
	}
	set[achievementID] = struct{}{}
	return nil
}
