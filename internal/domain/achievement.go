package domain

// AchievementType selects the evaluation rule of an achievement.
type AchievementType string

const (
	AchievementScore      AchievementType = "score"
	AchievementStreak     AchievementType = "streak"
	AchievementTotalGames AchievementType = "total_games"
)

// AchievementFirstWin is the only score-type rule the engine knows about.
const AchievementFirstWin = "first_win"

// Achievement is a static definition merged with per-user unlock state.
// Unlocked only ever transitions from false to true.
type Achievement struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"`
	Requirement int             `json:"requirement"`
	Type        AchievementType `json:"type"`
	Unlocked    bool            `json:"unlocked"`
	Progress    int             `json:"progress"`
}
