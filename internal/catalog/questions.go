package catalog

import "element-quiz-service/internal/domain"

var questions = []domain.Question{
	{ID: 1, Text: "Which element is the lightest and most abundant in the universe?", CorrectElement: "H", Hint: "It has a single proton.", Difficulty: domain.DifficultyEasy},
	{ID: 2, Text: "Which noble gas is used to fill party balloons?", CorrectElement: "He", Hint: "Its name comes from the Greek word for the sun.", Difficulty: domain.DifficultyEasy},
	{ID: 3, Text: "Which element forms the backbone of all organic molecules?", CorrectElement: "C", Difficulty: domain.DifficultyEasy},
	{ID: 4, Text: "Which gas makes up about 78% of Earth's atmosphere?", CorrectElement: "N", Difficulty: domain.DifficultyEasy},
	{ID: 5, Text: "Which element do we need to breathe to survive?", CorrectElement: "O", Difficulty: domain.DifficultyEasy},
	{ID: 6, Text: "Which element is added to toothpaste to prevent tooth decay?", CorrectElement: "F", Hint: "It is the most electronegative element.", Difficulty: domain.DifficultyMedium},
	{ID: 7, Text: "Which gas glows red-orange in advertising signs?", CorrectElement: "Ne", Difficulty: domain.DifficultyEasy},
	{ID: 8, Text: "Which alkali metal combines with chlorine to make table salt?", CorrectElement: "Na", Hint: "Its symbol comes from the Latin natrium.", Difficulty: domain.DifficultyMedium},
	{ID: 9, Text: "Which lightweight metal is used in drink cans?", CorrectElement: "Al", Difficulty: domain.DifficultyEasy},
	{ID: 10, Text: "Which metalloid is the basis of computer chips?", CorrectElement: "Si", Hint: "A famous valley in California is named after it.", Difficulty: domain.DifficultyEasy},
	{ID: 11, Text: "Which element gives rotten eggs their smell in its hydrogen compound?", CorrectElement: "S", Difficulty: domain.DifficultyMedium},
	{ID: 12, Text: "Which element is used to disinfect swimming pools?", CorrectElement: "Cl", Difficulty: domain.DifficultyEasy},
	{ID: 13, Text: "Which element is essential for strong bones and teeth?", CorrectElement: "Ca", Difficulty: domain.DifficultyEasy},
	{ID: 14, Text: "Which metal is the main component of steel?", CorrectElement: "Fe", Hint: "Its symbol comes from the Latin ferrum.", Difficulty: domain.DifficultyEasy},
	{ID: 15, Text: "Which reddish metal is widely used in electrical wiring?", CorrectElement: "Cu", Difficulty: domain.DifficultyEasy},
	{ID: 16, Text: "Which metal is used to galvanize iron against rust?", CorrectElement: "Zn", Difficulty: domain.DifficultyMedium},
	{ID: 17, Text: "Which is the only nonmetal that is liquid at room temperature?", CorrectElement: "Br", Difficulty: domain.DifficultyHard},
	{ID: 18, Text: "Which precious metal has the highest electrical conductivity?", CorrectElement: "Ag", Difficulty: domain.DifficultyMedium},
	{ID: 19, Text: "Which metal coats food cans to stop corrosion?", CorrectElement: "Sn", Hint: "Its symbol comes from the Latin stannum.", Difficulty: domain.DifficultyMedium},
	{ID: 20, Text: "Which element is added to salt to prevent thyroid problems?", CorrectElement: "I", Difficulty: domain.DifficultyMedium},
	{ID: 21, Text: "Which metal has the highest melting point?", CorrectElement: "W", Hint: "Old light bulb filaments were made of it.", Difficulty: domain.DifficultyHard},
	{ID: 22, Text: "Which precious metal never tarnishes and has the symbol from aurum?", CorrectElement: "Au", Difficulty: domain.DifficultyEasy},
	{ID: 23, Text: "Which metal is liquid at room temperature?", CorrectElement: "Hg", Difficulty: domain.DifficultyEasy},
	{ID: 24, Text: "Which heavy metal was used in old water pipes and paint?", CorrectElement: "Pb", Hint: "Its symbol comes from the Latin plumbum.", Difficulty: domain.DifficultyMedium},
	{ID: 25, Text: "Which radioactive gas can build up in basements?", CorrectElement: "Rn", Difficulty: domain.DifficultyHard},
	{ID: 26, Text: "Which element fuels most nuclear power plants?", CorrectElement: "U", Difficulty: domain.DifficultyMedium},
	{ID: 27, Text: "Which element was named after the dwarf planet beyond Neptune?", CorrectElement: "Pu", Difficulty: domain.DifficultyHard},
	{ID: 28, Text: "Which element is the heaviest ever synthesized?", CorrectElement: "Og", Hint: "It sits at the bottom of the noble gas column.", Difficulty: domain.DifficultyHard},
}

// Questions returns a copy of the static question bank.
func Questions() []domain.Question {
	out := make([]domain.Question, len(questions))
	copy(out, questions)
	return out
}
