package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"element-quiz-service/internal/app"
	"element-quiz-service/internal/auth"
	"element-quiz-service/internal/domain"
	"element-quiz-service/internal/infra/memory"
	"github.com/gorilla/websocket"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	server   *httptest.Server
	identity *auth.Service
	store    *memory.ProgressStore
	outbox   *app.Outbox
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewProgressStore()
	outbox := app.NewOutbox(nil, app.OutboxOptions{})
	questions := memory.NewQuestionRepository(memory.NewStaticQuestionLoader(sampleQuestions()), time.Minute)
	games := app.NewGameService(memory.NewSessionStore(), questions, store, outbox, nil, app.GameOptions{Mode: app.ModeQuestions, Seed: 1})

	identity, err := auth.NewService(memory.NewIdentityStore(), memory.NewRevocationStore(), nil, auth.Options{
		Secret:     "test-secret",
		BcryptCost: bcrypt.MinCost,
	})
	if err != nil {
		t.Fatalf("auth service: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	events, unsubscribe := identity.Subscribe()
	go games.WatchSessions(ctx, events)
	t.Cleanup(func() {
		cancel()
		unsubscribe()
	})

	router := NewRouter(NewAPIHandler(identity, nil), NewWSHandler(games, identity, nil), RouterOptions{})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return &testServer{server: server, identity: identity, store: store, outbox: outbox}
}

func (s *testServer) dial(t *testing.T, token string) *websocket.Conn {
	t.Helper()
	u := "ws" + s.server.URL[len("http"):] + "/ws"
	if token != "" {
		u += "?token=" + token
	}
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func (s *testServer) signIn(t *testing.T) auth.Session {
	t.Helper()
	ctx := context.Background()
	if _, err := s.identity.SignUp(ctx, auth.SignUpInput{Email: "alice@example.com", Password: "hunter22", Username: "alice"}); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	session, err := s.identity.SignIn(ctx, "alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	return session
}

func TestWebSocketGuessFlow(t *testing.T) {
	ts := newTestServer(t)
	conn := ts.dial(t, "")

	_, state := readNext(conn, t, "state")
	principal := state["principal"].(map[string]any)
	if principal["isAuthenticated"] != false {
		t.Fatalf("expected guest game, got %v", principal)
	}

	send(t, conn, map[string]any{"type": "start"})
	_, prompt := readNext(conn, t, "prompt")
	if prompt["text"] != "Which element is the lightest?" {
		t.Fatalf("unexpected prompt %v", prompt)
	}

	send(t, conn, map[string]any{"type": "guess", "payload": map[string]any{"answer": "hydrogen"}})
	_, outcome := readNext(conn, t, "outcome")
	if outcome["correct"] != true || outcome["correctElement"] != "H" {
		t.Fatalf("unexpected outcome %v", outcome)
	}
	counters := outcome["counters"].(map[string]any)
	if counters["score"] != float64(1) || counters["currentStreak"] != float64(1) {
		t.Fatalf("unexpected counters %v", counters)
	}
	unlocked := outcome["unlocked"].([]any)
	if len(unlocked) != 1 || unlocked[0].(map[string]any)["id"] != domain.AchievementFirstWin {
		t.Fatalf("expected first_win unlocked, got %v", unlocked)
	}
	if outcome["next"] == nil {
		t.Fatalf("expected next prompt in outcome")
	}

	send(t, conn, map[string]any{"type": "click", "payload": map[string]any{"symbol": "He"}})
	_, outcome = readNext(conn, t, "outcome")
	if outcome["correct"] != false {
		t.Fatalf("expected wrong click, got %v", outcome)
	}

	send(t, conn, map[string]any{"type": "reset"})
	_, state = readNext(conn, t, "state")
	counters = state["counters"].(map[string]any)
	if counters["score"] != float64(0) || counters["longestStreak"] != float64(1) {
		t.Fatalf("unexpected counters after reset %v", counters)
	}
}

func TestWebSocketGuessWithoutPrompt(t *testing.T) {
	ts := newTestServer(t)
	conn := ts.dial(t, "")
	readNext(conn, t, "state")

	send(t, conn, map[string]any{"type": "guess", "payload": map[string]any{"answer": "H"}})
	_, payload := readNext(conn, t, "error")
	if payload["message"] != domain.ErrNoActivePrompt.Error() {
		t.Fatalf("unexpected error %v", payload)
	}

	send(t, conn, map[string]any{"type": "dance"})
	readNext(conn, t, "error")
}

func TestWebSocketAuthenticatedGamePersists(t *testing.T) {
	ts := newTestServer(t)
	session := ts.signIn(t)
	conn := ts.dial(t, session.Token)

	_, state := readNext(conn, t, "state")
	if state["principal"].(map[string]any)["isAuthenticated"] != true {
		t.Fatalf("expected signed-in game")
	}

	send(t, conn, map[string]any{"type": "start"})
	readNext(conn, t, "prompt")
	send(t, conn, map[string]any{"type": "guess", "payload": map[string]any{"answer": "H"}})
	readNext(conn, t, "outcome")

	if err := ts.outbox.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	streak, ok, _ := ts.store.GetStreak(context.Background(), session.Principal.UserID)
	if !ok || streak.CurrentStreak != 1 {
		t.Fatalf("expected persisted streak, got %+v ok=%v", streak, ok)
	}

	send(t, conn, map[string]any{"type": "signOut"})
	_, state = readNext(conn, t, "state")
	if state["principal"].(map[string]any)["isAuthenticated"] != false {
		t.Fatalf("expected guest after sign out")
	}
}

func TestWebSocketAuthenticateUpgradesGuest(t *testing.T) {
	ts := newTestServer(t)
	session := ts.signIn(t)
	conn := ts.dial(t, "")
	readNext(conn, t, "state")

	send(t, conn, map[string]any{"type": "authenticate", "payload": map[string]any{"token": "bogus"}})
	readNext(conn, t, "error")

	send(t, conn, map[string]any{"type": "authenticate", "payload": map[string]any{"token": session.Token}})
	_, state := readNext(conn, t, "state")
	principal := state["principal"].(map[string]any)
	if principal["isAuthenticated"] != true || principal["username"] != "alice" {
		t.Fatalf("expected alice, got %v", principal)
	}
}

func TestWebSocketPushesStateOnRemoteSignOut(t *testing.T) {
	ts := newTestServer(t)
	session := ts.signIn(t)
	conn := ts.dial(t, session.Token)
	_, state := readNext(conn, t, "state")
	if state["principal"].(map[string]any)["isAuthenticated"] != true {
		t.Fatalf("expected signed-in game")
	}

	if err := ts.identity.SignOut(context.Background(), session.Token); err != nil {
		t.Fatalf("sign out: %v", err)
	}

	_, state = readNext(conn, t, "state")
	if state["principal"].(map[string]any)["isAuthenticated"] != false {
		t.Fatalf("expected pushed guest state, got %v", state["principal"])
	}
}

func TestWebSocketRejectsBlankAnswers(t *testing.T) {
	ts := newTestServer(t)
	conn := ts.dial(t, "")
	readNext(conn, t, "state")

	send(t, conn, map[string]any{"type": "start"})
	readNext(conn, t, "prompt")

	send(t, conn, map[string]any{"type": "guess", "payload": map[string]any{"answer": "   "}})
	_, payload := readNext(conn, t, "error")
	if payload["message"] != "answer must not be empty" {
		t.Fatalf("unexpected error %v", payload)
	}
	send(t, conn, map[string]any{"type": "click", "payload": map[string]any{"symbol": ""}})
	readNext(conn, t, "error")

	send(t, conn, map[string]any{"type": "guess", "payload": map[string]any{"answer": "H"}})
	_, outcome := readNext(conn, t, "outcome")
	counters := outcome["counters"].(map[string]any)
	if outcome["correct"] != true || counters["totalQuestions"] != float64(1) || counters["currentStreak"] != float64(1) {
		t.Fatalf("expected blank answers to leave the round open, got %v", outcome)
	}
}

func TestWebSocketRejectsBadToken(t *testing.T) {
	ts := newTestServer(t)
	u := "ws" + ts.server.URL[len("http"):] + "/ws?token=bogus"
	_, resp, err := websocket.DefaultDialer.Dial(u, nil)
	if err == nil {
		t.Fatalf("expected dial to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %+v", resp)
	}
}

func send(t *testing.T, conn *websocket.Conn, msg map[string]any) {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func readNext(conn *websocket.Conn, t *testing.T, expect string) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s (%v)", expect, msg.Type, msg.Payload)
	}
	return msg.Type, msg.Payload
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{ID: 1, Text: "Which element is the lightest?", CorrectElement: "H"},
	}
}
