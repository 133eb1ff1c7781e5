package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"element-quiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// ProgressStore keeps per-user progress in Redis:
//
//	HSET  progress:{user}:streak        current, longest, last_played_at
//	RPUSH progress:{user}:history       JSON history entries
//	SADD  progress:{user}:achievements  achievement ids
type ProgressStore struct {
	client *redis.Client
}

func NewProgressStore(client *redis.Client) *ProgressStore {
	return &ProgressStore{client: client}
}

func (s *ProgressStore) GetStreak(ctx context.Context, userID string) (domain.Streak, bool, error) {
	fields, err := s.client.HGetAll(ctx, streakKey(userID)).Result()
	if err != nil {
		return domain.Streak{}, false, err
	}
	if len(fields) == 0 {
		return domain.Streak{}, false, nil
	}

	var streak domain.Streak
	if streak.CurrentStreak, err = strconv.Atoi(fields["current"]); err != nil {
		return domain.Streak{}, false, fmt.Errorf("decode current streak: %w", err)
	}
	if streak.LongestStreak, err = strconv.Atoi(fields["longest"]); err != nil {
		return domain.Streak{}, false, fmt.Errorf("decode longest streak: %w", err)
	}
	if ts, ok := fields["last_played_at"]; ok && ts != "" {
		if streak.LastPlayedAt, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return domain.Streak{}, false, fmt.Errorf("decode last played: %w", err)
		}
	}
	return streak, true, nil
}

func (s *ProgressStore) UpsertStreak(ctx context.Context, userID string, streak domain.Streak) error {
	return s.client.HSet(ctx, streakKey(userID),
		"current", streak.CurrentStreak,
		"longest", streak.LongestStreak,
		"last_played_at", streak.LastPlayedAt.UTC().Format(time.RFC3339Nano),
	).Err()
}

func (s *ProgressStore) InsertHistory(ctx context.Context, userID string, entry domain.HistoryEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.client.RPush(ctx, historyKey(userID), raw).Err()
}

// History returns the recorded rounds of a user, oldest first.
func (s *ProgressStore) History(ctx context.Context, userID string) ([]domain.HistoryEntry, error) {
	rows, err := s.client.LRange(ctx, historyKey(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]domain.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		var entry domain.HistoryEntry
		if err := json.Unmarshal([]byte(row), &entry); err != nil {
			return nil, fmt.Errorf("decode history entry: %w", err)
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *ProgressStore) GetUnlockedAchievementIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	ids, err := s.client.SMembers(ctx, achievementsKey(userID)).Result()
	if err != nil && !isNil(err) {
		return nil, err
	}
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}

// InsertUnlockedAchievement is idempotent: a set member is stored once.
func (s *ProgressStore) InsertUnlockedAchievement(ctx context.Context, userID, achievementID string) error {
	return s.client.SAdd(ctx, achievementsKey(userID), achievementID).Err()
}

func streakKey(userID string) string       { return "progress:" + userID + ":streak" }
func historyKey(userID string) string      { return "progress:" + userID + ":history" }
func achievementsKey(userID string) string { return "progress:" + userID + ":achievements" }
