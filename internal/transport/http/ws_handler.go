package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"element-quiz-service/internal/app"
	"element-quiz-service/internal/domain"
	"element-quiz-service/internal/platform/logger"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// TokenVerifier resolves a bearer token to a principal.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (domain.Principal, error)
}

type WSHandler struct {
	games    *app.GameService
	verifier TokenVerifier
	log      *logger.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(games *app.GameService, verifier TokenVerifier, log *logger.Logger) *WSHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &WSHandler{
		games:    games,
		verifier: verifier,
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type guessPayload struct {
	Answer string `json:"answer"`
}

type clickPayload struct {
	Symbol string `json:"symbol"`
}

type authenticatePayload struct {
	Token string `json:"token"`
}

type outcomePayload struct {
	Correct        bool                 `json:"correct"`
	CorrectElement string               `json:"correctElement"`
	Counters       domain.Counters      `json:"counters"`
	Unlocked       []domain.Achievement `json:"unlocked"`
	Next           *domain.Prompt       `json:"next,omitempty"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and runs one game for the connection. An
// optional token query parameter starts the game signed in.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	principal := domain.Guest
	if token := r.URL.Query().Get("token"); token != "" {
		p, err := h.verifier.Verify(r.Context(), token)
		if err != nil {
			handleError(w, h.log, err)
			return
		}
		principal = p
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	sessionID := uuid.NewString()
	game := h.games.Open(ctx, sessionID, principal)
	defer h.games.Close(sessionID)
	log := h.log.With("session_id", sessionID)

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Warn("ws write error", "error", err)
				// keep draining so the reader never blocks
				for range send {
				}
				return
			}
		}
	}()

	sendError := func(err error) {
		send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
	}
	sendState := func(snap domain.Snapshot) {
		send <- outboundMessage[any]{Type: "state", Payload: snap}
	}

	sendState(game.Snapshot())

	// pushes state when the game changes outside this connection, e.g. a
	// sign-out from another device
	stopWatch := make(chan struct{})
	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		for {
			select {
			case <-stopWatch:
				return
			case <-game.Changes():
				select {
				case send <- outboundMessage[any]{Type: "state", Payload: game.Snapshot()}:
				case <-stopWatch:
					return
				}
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "start":
			prompt, err := game.StartRound(ctx)
			if err != nil {
				sendError(err)
				continue
			}
			send <- outboundMessage[any]{Type: "prompt", Payload: prompt}
		case "guess", "click":
			answer, err := answerFrom(inbound)
			if err != nil {
				sendError(err)
				continue
			}
			result, next, err := game.Guess(ctx, answer)
			if errors.Is(err, domain.ErrNoActivePrompt) {
				sendError(err)
				continue
			}
			payload := outcomePayload{
				Correct:        result.Outcome.Correct,
				CorrectElement: result.CorrectElement,
				Counters:       result.Counters,
				Unlocked:       result.NewlyUnlocked,
			}
			if err == nil {
				payload.Next = &next
			}
			send <- outboundMessage[any]{Type: "outcome", Payload: payload}
			if err != nil {
				sendError(err)
			}
		case "reset":
			game.Reset()
			sendState(game.Snapshot())
		case "authenticate":
			var payload authenticatePayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.Token == "" {
				sendError(errors.New("invalid authenticate payload"))
				continue
			}
			p, err := h.verifier.Verify(ctx, payload.Token)
			if err != nil {
				sendError(err)
				continue
			}
			snap, err := h.games.Authenticate(ctx, sessionID, p)
			if err != nil {
				sendError(err)
				continue
			}
			sendState(snap)
		case "signOut":
			snap, err := h.games.SignOut(sessionID)
			if err != nil {
				sendError(err)
				continue
			}
			sendState(snap)
		default:
			sendError(errors.New("unsupported message type"))
		}
	}

	close(stopWatch)
	<-watchDone
	close(send)
	<-writerDone
}

func answerFrom(msg inboundMessage) (string, error) {
	if msg.Type == "click" {
		var payload clickPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return "", errors.New("invalid click payload")
		}
		if strings.TrimSpace(payload.Symbol) == "" {
			return "", errors.New("symbol must not be empty")
		}
		return payload.Symbol, nil
	}
	var payload guessPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return "", errors.New("invalid guess payload")
	}
	if strings.TrimSpace(payload.Answer) == "" {
		return "", errors.New("answer must not be empty")
	}
	return payload.Answer, nil
}
