package app

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"element-quiz-service/internal/achievement"
	"element-quiz-service/internal/catalog"
	"element-quiz-service/internal/domain"
	"element-quiz-service/internal/platform/logger"
	"golang.org/x/sync/errgroup"
)

// PromptMode selects which pool StartRound draws from.
type PromptMode string

const (
	ModeQuestions PromptMode = "questions"
	ModeElements  PromptMode = "elements"
	ModeMixed     PromptMode = "mixed"
)

// ParsePromptMode maps a config value to a mode, defaulting to mixed.
func ParsePromptMode(raw string) PromptMode {
	switch PromptMode(strings.ToLower(strings.TrimSpace(raw))) {
	case ModeQuestions:
		return ModeQuestions
	case ModeElements:
		return ModeElements
	default:
		return ModeMixed
	}
}

// GameOptions are per-game knobs. Zero values pick sensible defaults.
type GameOptions struct {
	Mode  PromptMode
	Seed  int64 // zero seeds from the clock
	Clock func() time.Time
}

// Game is the round controller of one player session. Calls are serialized by a
// mutex; persistence is handed to the outbox and never awaited.
type Game struct {
	id        string
	questions QuestionRepository
	store     ProgressStore
	outbox    *Outbox
	log       *logger.Logger
	mode      PromptMode
	now       func() time.Time

	mu           sync.Mutex
	rnd          *rand.Rand
	principal    domain.Principal
	state        domain.RoundState
	prompt       *domain.Prompt
	counters     domain.Counters
	achievements []domain.Achievement

	changes chan struct{}
}

func NewGame(id string, questions QuestionRepository, store ProgressStore, outbox *Outbox, log *logger.Logger, opts GameOptions) *Game {
	if log == nil {
		log = logger.Nop()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Mode == "" {
		opts.Mode = ModeMixed
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Game{
		id:           id,
		questions:    questions,
		store:        store,
		outbox:       outbox,
		log:          log.With("game_id", id),
		mode:         opts.Mode,
		now:          opts.Clock,
		rnd:          rand.New(rand.NewSource(seed)),
		principal:    domain.Guest,
		state:        domain.RoundIdle,
		achievements: catalog.Achievements(),
		changes:      make(chan struct{}, 1),
	}
}

func (g *Game) ID() string {
	return g.id
}

// StartRound draws the next prompt uniformly at random. Repeats are allowed.
func (g *Game) StartRound(ctx context.Context) (domain.Prompt, error) {
	pool, err := g.promptPool(ctx)
	if err != nil {
		return domain.Prompt{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	c := pool[g.rnd.Intn(len(pool))]
	p := c.prompt(g.rnd)
	g.prompt = &p
	g.state = domain.RoundAwaitingGuess
	return p, nil
}

// SubmitGuess scores a typed answer: the symbol or the name, ignoring case and
// surrounding whitespace.
func (g *Game) SubmitGuess(raw string) (domain.RoundOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != domain.RoundAwaitingGuess || g.prompt == nil {
		return domain.RoundOutcome{}, domain.ErrNoActivePrompt
	}
	g.state = domain.RoundEvaluating
	return domain.RoundOutcome{Correct: matches(g.prompt.CorrectElement, raw)}, nil
}

// ClickElement scores a click on the rendered table.
func (g *Game) ClickElement(symbol string) (domain.RoundOutcome, error) {
	return g.SubmitGuess(symbol)
}

// ApplyOutcome updates the counters and achievements for one round and schedules
// persistence for authenticated players.
func (g *Game) ApplyOutcome(_ context.Context, outcome domain.RoundOutcome) domain.RoundResult {
	g.mu.Lock()
	g.counters = g.counters.Apply(outcome)
	updated, unlocked := achievement.Evaluate(g.achievements, outcome, g.counters)
	g.achievements = updated
	g.state = domain.RoundIdle

	result := domain.RoundResult{
		Outcome:       outcome,
		Counters:      g.counters,
		NewlyUnlocked: unlocked,
	}
	if g.prompt != nil {
		result.CorrectElement = g.prompt.CorrectElement
	}
	principal := g.principal
	playedAt := g.now()
	g.mu.Unlock()

	if principal.Authenticated {
		g.persist(principal.UserID, result, playedAt)
	}
	return result
}

// Guess runs a full turn: score the answer, apply it and start the next round.
func (g *Game) Guess(ctx context.Context, raw string) (domain.RoundResult, domain.Prompt, error) {
	outcome, err := g.SubmitGuess(raw)
	if err != nil {
		return domain.RoundResult{}, domain.Prompt{}, err
	}
	result := g.ApplyOutcome(ctx, outcome)
	next, err := g.StartRound(ctx)
	return result, next, err
}

// Click is Guess for a clicked element.
func (g *Game) Click(ctx context.Context, symbol string) (domain.RoundResult, domain.Prompt, error) {
	return g.Guess(ctx, symbol)
}

// LoadUserData binds the game to principal and merges its persisted progress.
// Unlocks already earned in this session are kept and queued for the user. A
// game bound to another user starts over first. On a fetch error the game stays
// authenticated and keeps playing on local state.
func (g *Game) LoadUserData(ctx context.Context, principal domain.Principal) error {
	var (
		streak   domain.Streak
		found    bool
		unlocked map[string]struct{}
	)
	grp, gctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		var err error
		streak, found, err = g.store.GetStreak(gctx, principal.UserID)
		if err != nil {
			return fmt.Errorf("get streak: %w", err)
		}
		return nil
	})
	grp.Go(func() error {
		var err error
		unlocked, err = g.store.GetUnlockedAchievementIDs(gctx, principal.UserID)
		if err != nil {
			return fmt.Errorf("get unlocked achievements: %w", err)
		}
		return nil
	})
	err := grp.Wait()

	g.mu.Lock()
	if g.principal.Authenticated && g.principal.UserID != principal.UserID {
		g.clearProgressLocked()
	}
	g.principal = principal
	if err != nil {
		g.mu.Unlock()
		return err
	}
	var pending []string
	for _, a := range g.achievements {
		if _, ok := unlocked[a.ID]; a.Unlocked && !ok {
			pending = append(pending, a.ID)
		}
	}
	g.achievements = catalog.MergeUnlocked(g.achievements, unlocked)
	if found {
		g.counters.CurrentStreak = streak.CurrentStreak
		g.counters.LongestStreak = max(g.counters.LongestStreak, streak.LongestStreak, streak.CurrentStreak)
	}
	g.mu.Unlock()

	if principal.Authenticated {
		for _, id := range pending {
			achievementID := id
			g.outbox.Enqueue("insert_achievement", principal.UserID, func(ctx context.Context) error {
				return g.store.InsertUnlockedAchievement(ctx, principal.UserID, achievementID)
			})
		}
	}
	return nil
}

// SignOut turns the game back into a guest game and drops the user's progress.
// Queued writes still run.
func (g *Game) SignOut() {
	g.mu.Lock()
	g.principal = domain.Guest
	g.clearProgressLocked()
	g.mu.Unlock()
}

// Changes signals when the game was changed from outside its own session, such
// as a sign-out reported by the identity provider.
func (g *Game) Changes() <-chan struct{} {
	return g.changes
}

func (g *Game) notifyChanged() {
	select {
	case g.changes <- struct{}{}:
	default:
	}
}

func (g *Game) clearProgressLocked() {
	g.counters = domain.Counters{}
	g.achievements = catalog.Achievements()
}

// Reset clears the scoreboard. The longest streak and unlocked achievements survive.
func (g *Game) Reset() domain.Counters {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counters = domain.Counters{LongestStreak: g.counters.LongestStreak}
	return g.counters
}

func (g *Game) Counters() domain.Counters {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.counters
}

func (g *Game) Principal() domain.Principal {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.principal
}

// Snapshot copies the state the presentation layer renders.
func (g *Game) Snapshot() domain.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	snap := domain.Snapshot{
		Principal:    g.principal,
		State:        g.state,
		Counters:     g.counters,
		Achievements: append([]domain.Achievement(nil), g.achievements...),
	}
	if g.prompt != nil {
		p := *g.prompt
		snap.Prompt = &p
	}
	return snap
}

func (g *Game) persist(userID string, result domain.RoundResult, playedAt time.Time) {
	for _, a := range result.NewlyUnlocked {
		achievementID := a.ID
		g.outbox.Enqueue("insert_achievement", userID, func(ctx context.Context) error {
			return g.store.InsertUnlockedAchievement(ctx, userID, achievementID)
		})
	}

	g.outbox.Enqueue("upsert_streak", userID, func(ctx context.Context) error {
		return g.store.UpsertStreak(ctx, userID, g.streakFor(userID, result.Counters, playedAt))
	})

	entry := domain.HistoryEntry{QuestionsDelta: 1, PlayedAt: playedAt}
	if result.Outcome.Correct {
		entry.CorrectDelta = 1
	}
	g.outbox.Enqueue("insert_history", userID, func(ctx context.Context) error {
		return g.store.InsertHistory(ctx, userID, entry)
	})
}

// streakFor reads the live counters when the write executes, so a late write
// carries the newest values. If the game changed hands since, the enqueue-time
// copy is used instead.
func (g *Game) streakFor(userID string, fallback domain.Counters, playedAt time.Time) domain.Streak {
	g.mu.Lock()
	defer g.mu.Unlock()
	c := fallback
	if g.principal.Authenticated && g.principal.UserID == userID {
		c = g.counters
	}
	return domain.Streak{
		CurrentStreak: c.CurrentStreak,
		LongestStreak: c.LongestStreak,
		LastPlayedAt:  playedAt,
	}
}

func (g *Game) promptPool(ctx context.Context) ([]candidate, error) {
	var pool []candidate
	if g.mode == ModeQuestions || g.mode == ModeMixed {
		questions, err := g.questions.Questions(ctx)
		switch {
		case err != nil && g.mode == ModeQuestions:
			return nil, fmt.Errorf("%w: %v", domain.ErrQuestionsUnavailable, err)
		case err != nil:
			g.log.Warn("question bank unavailable, using elements only", "error", err)
		}
		for i := range questions {
			pool = append(pool, candidate{question: &questions[i]})
		}
	}
	if g.mode == ModeElements || g.mode == ModeMixed {
		elements := catalog.Elements()
		for i := range elements {
			pool = append(pool, candidate{element: &elements[i]})
		}
	}
	if len(pool) == 0 {
		return nil, domain.ErrQuestionsUnavailable
	}
	return pool, nil
}

type candidate struct {
	question *domain.Question
	element  *domain.Element
}

func (c candidate) prompt(rnd *rand.Rand) domain.Prompt {
	if c.question != nil {
		q := c.question
		return domain.Prompt{
			ID:             fmt.Sprintf("question-%d", q.ID),
			Text:           q.Text,
			Hint:           q.Hint,
			Difficulty:     q.Difficulty,
			CorrectElement: q.CorrectElement,
		}
	}

	e := c.element
	p := domain.Prompt{
		Hint:           fmt.Sprintf("It is %s.", e.Category.Label()),
		CorrectElement: e.Symbol,
	}
	if rnd.Intn(2) == 0 {
		p.ID = "element-" + e.Symbol + "-name"
		p.Text = fmt.Sprintf("Find %s on the periodic table", e.Name)
	} else {
		p.ID = "element-" + e.Symbol + "-number"
		p.Text = fmt.Sprintf("Which element has atomic number %d?", e.AtomicNumber)
	}
	return p
}

func matches(correctSymbol, raw string) bool {
	guess := strings.TrimSpace(raw)
	if guess == "" {
		return false
	}
	if strings.EqualFold(guess, correctSymbol) {
		return true
	}
	e, ok := catalog.BySymbol(correctSymbol)
	return ok && strings.EqualFold(guess, e.Name)
}
