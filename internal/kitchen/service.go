package kitchen

import (
	"context"
	"errors"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// --------------------------------------------------
// Create meal
// --------------------------------------------------
func (s *Service) CreateMeal(
	ctx context.Context,
	name string,
	cuisine string,
	price float64,
	difficulty string,
) (*Meal, error) {

	if name == "" || cuisine == "" {
		return nil, errors.New("missing required fields")
	}

	if price <= 0 {
		return nil, fmt.Errorf("invalid price: %v, price must be a positive number", price)
	}

	if !validDifficulty(difficulty) {
		return nil, fmt.Errorf("invalid difficulty level: %s, must be LOW, MED or HIGH", difficulty)
	}

	meal := &Meal{
		Name:       name,
		Cuisine:    cuisine,
		Price:      price,
		Difficulty: difficulty,
	}

	if err := s.repo.Create(ctx, meal); err != nil {
		return nil, err
	}

	return meal, nil
}

// --------------------------------------------------
// Soft delete
// --------------------------------------------------
func (s *Service) DeleteMeal(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------
func (s *Service) GetMealByID(ctx context.Context, id int) (*Meal, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetMealByName(ctx context.Context, name string) (*Meal, error) {
	return s.repo.GetByName(ctx, name)
}

// --------------------------------------------------
// Battle counters
// --------------------------------------------------

// UpdateMealStats increments the battle counter for the meal and, for a
// win, the win counter. It satisfies the battle engine's StatsRecorder.
func (s *Service) UpdateMealStats(ctx context.Context, id int, outcome string) error {
	if outcome != OutcomeWin && outcome != OutcomeLoss {
		return fmt.Errorf("invalid result: %s, expected 'win' or 'loss'", outcome)
	}
	return s.repo.UpdateStats(ctx, id, outcome)
}

// --------------------------------------------------
// Leaderboard
// --------------------------------------------------
func (s *Service) Leaderboard(ctx context.Context, sortBy string) ([]LeaderboardEntry, error) {
	if sortBy == "" {
		sortBy = SortByWins
	}
	return s.repo.Leaderboard(ctx, sortBy)
}

// --------------------------------------------------
// Clear all meals
// --------------------------------------------------
func (s *Service) ClearMeals(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

func validDifficulty(difficulty string) bool {
	switch difficulty {
	case DifficultyLow, DifficultyMed, DifficultyHigh:
		return true
	}
	return false
}
