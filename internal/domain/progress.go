package domain

import "time"

// Counters is the per-session progress record.
// Invariants: LongestStreak >= CurrentStreak and Score <= TotalQuestions.
type Counters struct {
	Score          int `json:"score"`
	TotalQuestions int `json:"totalQuestions"`
	CurrentStreak  int `json:"currentStreak"`
	LongestStreak  int `json:"longestStreak"`
}

// Apply returns the counters after one round.
func (c Counters) Apply(outcome RoundOutcome) Counters {
	c.TotalQuestions++
	if outcome.Correct {
		c.Score++
		c.CurrentStreak++
		if c.CurrentStreak > c.LongestStreak {
			c.LongestStreak = c.CurrentStreak
		}
		return c
	}
	c.CurrentStreak = 0
	return c
}

// Streak is the persisted streak row of a user.
type Streak struct {
	CurrentStreak int       `json:"currentStreak"`
	LongestStreak int       `json:"longestStreak"`
	LastPlayedAt  time.Time `json:"lastPlayedAt"`
}

// HistoryEntry is one append-only row of the game history log.
type HistoryEntry struct {
	CorrectDelta   int       `json:"correctDelta"`
	QuestionsDelta int       `json:"questionsDelta"`
	PlayedAt       time.Time `json:"playedAt"`
}

// RoundResult is what ApplyOutcome reports back to the presentation layer.
type RoundResult struct {
	Outcome        RoundOutcome  `json:"outcome"`
	CorrectElement string        `json:"correctElement,omitempty"`
	Counters       Counters      `json:"counters"`
	NewlyUnlocked  []Achievement `json:"unlocked"`
}

// Snapshot is a read-only view of a game for rendering.
type Snapshot struct {
	Principal    Principal     `json:"principal"`
	State        RoundState    `json:"state"`
	Prompt       *Prompt       `json:"prompt,omitempty"`
	Counters     Counters      `json:"counters"`
	Achievements []Achievement `json:"achievements"`
}
