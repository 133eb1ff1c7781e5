package postgres

import (
	"context"
	"errors"
	"fmt"

	"element-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ProgressStore persists streaks, history and unlocked achievements.
type ProgressStore struct {
	pool *pgxpool.Pool
}

func NewProgressStore(pool *pgxpool.Pool) *ProgressStore {
	return &ProgressStore{pool: pool}
}

func (s *ProgressStore) GetStreak(ctx context.Context, userID string) (domain.Streak, bool, error) {
	var streak domain.Streak
	err := s.pool.QueryRow(ctx,
		`SELECT current_streak, longest_streak, last_played_at FROM user_streaks WHERE user_id=$1`, userID,
	).Scan(&streak.CurrentStreak, &streak.LongestStreak, &streak.LastPlayedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Streak{}, false, nil
	}
	if err != nil {
		return domain.Streak{}, false, fmt.Errorf("get streak: %w", err)
	}
	return streak, true, nil
}

func (s *ProgressStore) UpsertStreak(ctx context.Context, userID string, streak domain.Streak) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO user_streaks (user_id, current_streak, longest_streak, last_played_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			current_streak = EXCLUDED.current_streak,
			longest_streak = EXCLUDED.longest_streak,
			last_played_at = EXCLUDED.last_played_at`,
		userID, streak.CurrentStreak, streak.LongestStreak, streak.LastPlayedAt)
	if err != nil {
		return fmt.Errorf("upsert streak: %w", err)
	}
	return nil
}

func (s *ProgressStore) InsertHistory(ctx context.Context, userID string, entry domain.HistoryEntry) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO game_history (user_id, correct_delta, questions_delta, played_at) VALUES ($1, $2, $3, $4)`,
		userID, entry.CorrectDelta, entry.QuestionsDelta, entry.PlayedAt)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

func (s *ProgressStore) GetUnlockedAchievementIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	rows, err := s.pool.Query(ctx, `SELECT achievement_id FROM user_achievements WHERE user_id=$1`, userID)
	if err != nil {
		return nil, fmt.Errorf("get achievements: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

func (s *ProgressStore) InsertUnlockedAchievement(ctx context.Context, userID, achievementID string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO user_achievements (user_id, achievement_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, achievementID)
	if err != nil {
		return fmt.Errorf("insert achievement: %w", err)
	}
	return nil
}
