package dice

import (
	"math/rand"
	"sync"
	"time"

	apperr "github.com/KirkDiggler/dungeon-generator/internal/errors"
)

// randomRoller implements Roller with math/rand
type randomRoller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// NewRandomRoller creates a roller seeded from the clock
func NewRandomRoller() Roller {
	return NewSeededRoller(time.Now().UnixNano())
}

// NewSeededRoller creates a roller that repeats its sequence for a seed
func NewSeededRoller(seed int64) Roller {
	return &randomRoller{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if err := validate(count, sides); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rolls := make([]int, count)
	total := bonus
	for i := range rolls {
		rolls[i] = r.random.Intn(sides) + 1
		total += rolls[i]
	}

	return &RollResult{
		Total: total,
		Rolls: rolls,
		Bonus: bonus,
		Count: count,
		Sides: sides,
	}, nil
}

// RollRange implements Roller.RollRange
func (r *randomRoller) RollRange(low, high int) (int, error) {
	if high < low {
		return 0, apperr.InvalidArgumentf("invalid range [%d, %d]", low, high)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return low + r.random.Intn(high-low+1), nil
}
