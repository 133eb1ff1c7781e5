package redis

import (
	"testing"
	"time"

	"element-quiz-service/internal/app"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestSessionStoreSetsAndClearsKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewSessionStore(client, time.Minute)

	game := app.NewGame("s1", nil, nil, nil, nil, app.GameOptions{})
	store.Put("s1", game)
	if !mr.Exists("game:session:s1") {
		t.Fatalf("expected redis key to be set")
	}
	if got, ok := store.Get("s1"); !ok || got != game {
		t.Fatalf("expected stored game back")
	}

	var seen int
	store.Range(func(string, *app.Game) bool {
		seen++
		return true
	})
	if seen != 1 {
		t.Fatalf("expected one game in range, got %d", seen)
	}

	store.Delete("s1")
	if mr.Exists("game:session:s1") {
		t.Fatalf("expected redis key to be removed")
	}
	if _, ok := store.Get("s1"); ok {
		t.Fatalf("expected game to be gone")
	}
}
