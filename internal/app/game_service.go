package app

import (
	"context"

	"element-quiz-service/internal/domain"
	"element-quiz-service/internal/platform/logger"
)

// SessionRepository abstracts where open games are kept (in-memory, Redis-marked, etc).
type SessionRepository interface {
	Put(sessionID string, game *Game)
	Get(sessionID string) (*Game, bool)
	Delete(sessionID string)
	Range(fn func(sessionID string, game *Game) bool)
}

// QuestionRepository serves the question bank (from cache/backing store).
type QuestionRepository interface {
	Questions(ctx context.Context) ([]domain.Question, error)
}

// ProgressStore is the remote per-user progress service. Writes are upserts or
// appends; InsertUnlockedAchievement must tolerate duplicates.
type ProgressStore interface {
	GetStreak(ctx context.Context, userID string) (domain.Streak, bool, error)
	UpsertStreak(ctx context.Context, userID string, streak domain.Streak) error
	InsertHistory(ctx context.Context, userID string, entry domain.HistoryEntry) error
	GetUnlockedAchievementIDs(ctx context.Context, userID string) (map[string]struct{}, error)
	InsertUnlockedAchievement(ctx context.Context, userID, achievementID string) error
}

// GameService opens, finds and closes player games.
type GameService struct {
	sessions  SessionRepository
	questions QuestionRepository
	store     ProgressStore
	outbox    *Outbox
	log       *logger.Logger
	opts      GameOptions
}

func NewGameService(sessions SessionRepository, questions QuestionRepository, store ProgressStore, outbox *Outbox, log *logger.Logger, opts GameOptions) *GameService {
	if log == nil {
		log = logger.Nop()
	}
	return &GameService{
		sessions:  sessions,
		questions: questions,
		store:     store,
		outbox:    outbox,
		log:       log,
		opts:      opts,
	}
}

// Open creates a game for sessionID. Authenticated players get their persisted
// progress loaded before the first round.
func (s *GameService) Open(ctx context.Context, sessionID string, principal domain.Principal) *Game {
	game := NewGame(sessionID, s.questions, s.store, s.outbox, s.log, s.opts)
	if principal.Authenticated {
		s.loadUserData(ctx, game, principal)
	}
	s.sessions.Put(sessionID, game)
	return game
}

func (s *GameService) Get(sessionID string) (*Game, error) {
	game, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return game, nil
}

// Authenticate upgrades a guest game to principal. Rounds already played as a
// guest are kept.
func (s *GameService) Authenticate(ctx context.Context, sessionID string, principal domain.Principal) (domain.Snapshot, error) {
	game, err := s.Get(sessionID)
	if err != nil {
		return domain.Snapshot{}, err
	}
	s.loadUserData(ctx, game, principal)
	return game.Snapshot(), nil
}

// SignOut turns a game back into a guest game.
func (s *GameService) SignOut(sessionID string) (domain.Snapshot, error) {
	game, err := s.Get(sessionID)
	if err != nil {
		return domain.Snapshot{}, err
	}
	game.SignOut()
	return game.Snapshot(), nil
}

func (s *GameService) Close(sessionID string) {
	s.sessions.Delete(sessionID)
}

// WatchSessions signs out every open game of a user when the identity provider
// reports a sign-out. It returns when ctx is done or events is closed.
func (s *GameService) WatchSessions(ctx context.Context, events <-chan domain.SessionEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Type != domain.SessionSignedOut {
				continue
			}
			s.sessions.Range(func(sessionID string, game *Game) bool {
				if p := game.Principal(); p.Authenticated && p.UserID == ev.UserID {
					game.SignOut()
					game.notifyChanged()
					s.log.Info("game signed out", "session_id", sessionID, "user_id", ev.UserID)
				}
				return true
			})
		}
	}
}

func (s *GameService) loadUserData(ctx context.Context, game *Game, principal domain.Principal) {
	if err := game.LoadUserData(ctx, principal); err != nil {
		s.log.Warn("load user data failed, continuing with local progress", "user_id", principal.UserID, "error", err)
	}
}
