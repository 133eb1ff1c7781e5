package catalog

import "element-quiz-service/internal/domain"

var achievements = []domain.Achievement{
	{ID: domain.AchievementFirstWin, Name: "First Victory", Description: "Get your first correct answer", Icon: "🎯", Requirement: 1, Type: domain.AchievementScore},
	{ID: "perfect_game", Name: "Perfect Game", Description: "Get all answers correct in a game", Icon: "🌟", Requirement: 1, Type: domain.AchievementScore},
	{ID: "streak_3", Name: "On Fire", Description: "Get a streak of 3 correct answers", Icon: "🔥", Requirement: 3, Type: domain.AchievementStreak},
	{ID: "streak_5", Name: "Unstoppable", Description: "Get a streak of 5 correct answers", Icon: "⚡", Requirement: 5, Type: domain.AchievementStreak},
	{ID: "games_10", Name: "Dedicated Chemist", Description: "Play 10 games", Icon: "🧪", Requirement: 10, Type: domain.AchievementTotalGames},
	{ID: "games_50", Name: "Element Master", Description: "Play 50 games", Icon: "👨‍🔬", Requirement: 50, Type: domain.AchievementTotalGames},
}

// Achievements returns the static definitions, all locked with zero progress.
func Achievements() []domain.Achievement {
	out := make([]domain.Achievement, len(achievements))
	copy(out, achievements)
	return out
}

// MergeUnlocked marks every definition whose id is in unlocked.
func MergeUnlocked(defs []domain.Achievement, unlocked map[string]struct{}) []domain.Achievement {
	out := make([]domain.Achievement, len(defs))
	for i, a := range defs {
		if _, ok := unlocked[a.ID]; ok {
			a.Unlocked = true
		}
		out[i] = a
	}
	return out
}
