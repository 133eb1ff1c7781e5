package domain

// Difficulty is an optional label on bank questions.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question is a static bank entry. CorrectElement is an element symbol.
type Question struct {
	ID             int        `json:"id"`
	Text           string     `json:"text"`
	CorrectElement string     `json:"correctElement"`
	Hint           string     `json:"hint,omitempty"`
	Difficulty     Difficulty `json:"difficulty,omitempty"`
}

// Prompt is what a single round asks the player.
type Prompt struct {
	ID             string     `json:"id"`
	Text           string     `json:"text"`
	Hint           string     `json:"hint,omitempty"`
	Difficulty     Difficulty `json:"difficulty,omitempty"`
	CorrectElement string     `json:"correctElement"`
}

// RoundOutcome is produced once per guess and consumed immediately.
type RoundOutcome struct {
	Correct bool `json:"correct"`
}

// RoundState is the per-session round lifecycle.
type RoundState string

const (
	RoundIdle          RoundState = "idle"
	RoundAwaitingGuess RoundState = "awaiting_guess"
	RoundEvaluating    RoundState = "evaluating"
)
