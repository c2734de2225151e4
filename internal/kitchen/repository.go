package kitchen

import (
	"context"
	"errors"
)

var (
	ErrMealNotFound  = errors.New("meal not found")
	ErrMealDeleted   = errors.New("meal has been deleted")
	ErrDuplicateMeal = errors.New("meal with this name already exists")
)

// Repository defines the meal data-access contract.
// Service depends ONLY on this interface.
type Repository interface {
	Create(ctx context.Context, meal *Meal) error
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (*Meal, error)
	GetByName(ctx context.Context, name string) (*Meal, error)
	UpdateStats(ctx context.Context, id int, outcome string) error
	Leaderboard(ctx context.Context, sortBy string) ([]LeaderboardEntry, error)
	Clear(ctx context.Context) error
}
