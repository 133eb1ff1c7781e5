// Package achievement decides which achievements a finished round unlocks.
package achievement

import "element-quiz-service/internal/domain"

// evaluator computes the fresh progress of a locked achievement and whether it unlocks.
type evaluator func(a domain.Achievement, outcome domain.RoundOutcome, counters domain.Counters) (progress int, unlocked bool)

var evaluators = map[domain.AchievementType]evaluator{
	domain.AchievementScore:      evaluateScore,
	domain.AchievementStreak:     evaluateStreak,
	domain.AchievementTotalGames: evaluateTotalGames,
}

// Evaluate applies one round to the achievement list. Counters must already include
// the round. Unlocked entries are copied through untouched, so an unlock never
// reverts. The input slice is never modified.
func Evaluate(current []domain.Achievement, outcome domain.RoundOutcome, counters domain.Counters) ([]domain.Achievement, []domain.Achievement) {
	updated := make([]domain.Achievement, 0, len(current))
	newlyUnlocked := make([]domain.Achievement, 0)

	for _, a := range current {
		if a.Unlocked {
			updated = append(updated, a)
			continue
		}
		eval, ok := evaluators[a.Type]
		if !ok {
			updated = append(updated, a)
			continue
		}

		progress, unlock := eval(a, outcome, counters)
		a.Progress = progress
		if unlock || a.Requirement <= 0 {
			a.Unlocked = true
			newlyUnlocked = append(newlyUnlocked, a)
		}
		updated = append(updated, a)
	}
	return updated, newlyUnlocked
}

// evaluateScore only knows the first-correct-answer rule; other score
// achievements stay locked.
func evaluateScore(a domain.Achievement, outcome domain.RoundOutcome, _ domain.Counters) (int, bool) {
	if a.ID == domain.AchievementFirstWin && outcome.Correct {
		return 1, true
	}
	return 0, false
}

// evaluateStreak reports the current run, which drops back to zero on a miss.
func evaluateStreak(a domain.Achievement, outcome domain.RoundOutcome, counters domain.Counters) (int, bool) {
	progress := 0
	if outcome.Correct {
		progress = counters.CurrentStreak
	}
	return progress, progress >= a.Requirement
}

func evaluateTotalGames(a domain.Achievement, _ domain.RoundOutcome, counters domain.Counters) (int, bool) {
	return counters.TotalQuestions, counters.TotalQuestions >= a.Requirement
}
