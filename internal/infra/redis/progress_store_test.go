package redis

import (
	"context"
	"testing"
	"time"

	"element-quiz-service/internal/domain"
	miniredis "github.com/alicebob/miniredis/v2"
)

func TestProgressStoreStreakRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewProgressStore(newClient(mr))

	if _, ok, err := store.GetStreak(ctx, "u1"); err != nil || ok {
		t.Fatalf("expected no streak yet, ok=%v err=%v", ok, err)
	}

	played := time.Date(2024, 11, 22, 10, 0, 0, 0, time.UTC)
	if err := store.UpsertStreak(ctx, "u1", domain.Streak{CurrentStreak: 2, LongestStreak: 5, LastPlayedAt: played}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := store.UpsertStreak(ctx, "u1", domain.Streak{CurrentStreak: 3, LongestStreak: 5, LastPlayedAt: played}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, ok, err := store.GetStreak(ctx, "u1")
	if err != nil || !ok {
		t.Fatalf("get streak: ok=%v err=%v", ok, err)
	}
	if got.CurrentStreak != 3 || got.LongestStreak != 5 || !got.LastPlayedAt.Equal(played) {
		t.Fatalf("unexpected streak %+v", got)
	}
	if mr.HGet("progress:u1:streak", "current") != "3" {
		t.Fatalf("expected streak hash in redis")
	}
}

func TestProgressStoreHistoryAndAchievements(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewProgressStore(newClient(mr))

	_ = store.InsertHistory(ctx, "u1", domain.HistoryEntry{CorrectDelta: 1, QuestionsDelta: 1})
	_ = store.InsertHistory(ctx, "u1", domain.HistoryEntry{CorrectDelta: 0, QuestionsDelta: 1})
	history, err := store.History(ctx, "u1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 || history[0].CorrectDelta != 1 || history[1].CorrectDelta != 0 {
		t.Fatalf("unexpected history %+v", history)
	}

	for i := 0; i < 2; i++ {
		if err := store.InsertUnlockedAchievement(ctx, "u1", domain.AchievementFirstWin); err != nil {
			t.Fatalf("insert achievement: %v", err)
		}
	}
	_ = store.InsertUnlockedAchievement(ctx, "u1", "streak_3")

	ids, err := store.GetUnlockedAchievementIDs(ctx, "u1")
	if err != nil {
		t.Fatalf("get achievements: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected duplicates collapsed, got %v", ids)
	}

	empty, err := store.GetUnlockedAchievementIDs(ctx, "nobody")
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty set, got %v err=%v", empty, err)
	}
}

func TestRevocationStoreExpires(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewRevocationStore(newClient(mr))

	if err := store.Revoke(ctx, "jti-1", time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if revoked, _ := store.IsRevoked(ctx, "jti-1"); !revoked {
		t.Fatalf("expected token revoked")
	}

	mr.FastForward(2 * time.Minute)
	if revoked, _ := store.IsRevoked(ctx, "jti-1"); revoked {
		t.Fatalf("expected revocation to expire with the token")
	}

	_ = store.Revoke(ctx, "jti-2", time.Now().Add(-time.Second))
	if revoked, _ := store.IsRevoked(ctx, "jti-2"); revoked {
		t.Fatalf("expected already expired token to be skipped")
	}
}
