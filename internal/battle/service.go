package battle

import (
	"context"
	"errors"
	"math"
	"unicode/utf8"

	"mealmax/internal/kitchen"
)

var (
	ErrCombatantsFull   = errors.New("combatant list is full")
	ErrNotEnoughPrepped = errors.New("two combatants must be prepped for a battle")
)

// RandomSource supplies a uniform random fraction in [0, 1).
type RandomSource interface {
	Fraction(ctx context.Context) (float64, error)
}

// StatsRecorder records a battle outcome against a meal's persistent
// counters, keyed by meal ID.
type StatsRecorder interface {
	UpdateMealStats(ctx context.Context, mealID int, outcome string) error
}

const maxCombatants = 2

// Service stages up to two meals and resolves battles between them.
// It is not safe for concurrent use; callers serialize access.
type Service struct {
	combatants []kitchen.Meal
	random     RandomSource
	stats      StatsRecorder
}

func NewService(random RandomSource, stats StatsRecorder) *Service {
	return &Service{
		combatants: make([]kitchen.Meal, 0, maxCombatants),
		random:     random,
		stats:      stats,
	}
}

// --------------------------------------------------
// Combatant staging
// --------------------------------------------------

func (s *Service) PrepCombatant(meal kitchen.Meal) error {
	if len(s.combatants) >= maxCombatants {
		return ErrCombatantsFull
	}
	s.combatants = append(s.combatants, meal)
	return nil
}

func (s *Service) ClearCombatants() {
	s.combatants = s.combatants[:0]
}

// Combatants returns a snapshot of the staged meals in prep order.
func (s *Service) Combatants() []kitchen.Meal {
	out := make([]kitchen.Meal, len(s.combatants))
	copy(out, s.combatants)
	return out
}

// --------------------------------------------------
// Score
// --------------------------------------------------

// Score rates a meal for battle: price times the length of the cuisine
// label, minus a difficulty modifier (HIGH 1, MED 2, LOW 3). The result
// can be negative for cheap meals.
func (s *Service) Score(meal kitchen.Meal) float64 {
	length := float64(utf8.RuneCountInString(meal.Cuisine))
	return meal.Price*length - difficultyModifier(meal.Difficulty)
}

func difficultyModifier(difficulty string) float64 {
	switch difficulty {
	case kitchen.DifficultyHigh:
		return 1
	case kitchen.DifficultyMed:
		return 2
	default: // LOW
		return 3
	}
}

// --------------------------------------------------
// Battle resolution
// --------------------------------------------------

// Battle resolves one fight between the two staged meals and returns the
// winner's name. The normalized score gap acts as an upset threshold: a
// random draw below it hands the win to the LOWER-scoring meal, otherwise
// the higher score wins. A zero gap means the higher-ranked slot always
// wins, since the draw is never below zero.
//
// Stats are recorded for both meals before the loser is evicted, so a
// failed stats write leaves both combatants staged for inspection.
func (s *Service) Battle(ctx context.Context) (string, error) {
	if len(s.combatants) < maxCombatants {
		return "", ErrNotEnoughPrepped
	}

	first, second := s.combatants[0], s.combatants[1]

	scoreFirst := s.Score(first)
	scoreSecond := s.Score(second)

	delta := math.Abs(scoreFirst-scoreSecond) / 100
	if delta > 1 {
		delta = 1
	}

	draw, err := s.random.Fraction(ctx)
	if err != nil {
		return "", err
	}

	lower, higher := first, second
	if scoreFirst > scoreSecond {
		lower, higher = second, first
	}

	winner, loser := higher, lower
	if draw < delta {
		winner, loser = lower, higher
	}

	if err := s.stats.UpdateMealStats(ctx, winner.ID, kitchen.OutcomeWin); err != nil {
		return "", err
	}
	if err := s.stats.UpdateMealStats(ctx, loser.ID, kitchen.OutcomeLoss); err != nil {
		return "", err
	}

	s.combatants = s.combatants[:0]
	s.combatants = append(s.combatants, winner)

	return winner.Name, nil
}
