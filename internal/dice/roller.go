package dice

// Roller rolls dice. Table rolls go through it so tests can inject
// predetermined results.
type Roller interface {
	// Roll rolls count dice with the given sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)

	// RollRange returns a uniform number in [low, high]
	RollRange(low, high int) (int, error)
}

// RollNotation rolls parsed notation with the given roller
func RollNotation(r Roller, n Notation) (*RollResult, error) {
	return r.Roll(n.Count, n.Sides, n.Bonus)
}
