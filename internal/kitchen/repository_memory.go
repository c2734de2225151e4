package kitchen

import (
	"context"
	"fmt"
	"math"
	"sort"
)

type InMemoryRepository struct {
	meals  map[int]*Meal
	gone   map[int]bool
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		meals:  make(map[int]*Meal),
		gone:   make(map[int]bool),
		nextID: 1,
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, meal *Meal) error {
	for id, m := range r.meals {
		if m.Name == meal.Name && !r.gone[id] {
			return fmt.Errorf("meal with name %q: %w", meal.Name, ErrDuplicateMeal)
		}
	}

	meal.ID = r.nextID
	r.nextID++

	stored := *meal
	r.meals[meal.ID] = &stored
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id int) error {
	if err := r.checkNotDeleted(id); err != nil {
		return err
	}
	r.gone[id] = true
	return nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id int) (*Meal, error) {
	meal, ok := r.meals[id]
	if !ok {
		return nil, ErrMealNotFound
	}
	if r.gone[id] {
		return nil, ErrMealDeleted
	}

	out := *meal
	return &out, nil
}

func (r *InMemoryRepository) GetByName(ctx context.Context, name string) (*Meal, error) {
	for id, meal := range r.meals {
		if meal.Name != name {
			continue
		}
		if r.gone[id] {
			return nil, ErrMealDeleted
		}
		out := *meal
		return &out, nil
	}
	return nil, ErrMealNotFound
}

func (r *InMemoryRepository) UpdateStats(ctx context.Context, id int, outcome string) error {
	if err := r.checkNotDeleted(id); err != nil {
		return err
	}

	meal := r.meals[id]
	meal.Battles++
	if outcome == OutcomeWin {
		meal.Wins++
	}
	return nil
}

func (r *InMemoryRepository) Leaderboard(ctx context.Context, sortBy string) ([]LeaderboardEntry, error) {
	if sortBy != SortByWins && sortBy != SortByWinPct {
		return nil, fmt.Errorf("invalid sort_by parameter: %s", sortBy)
	}

	var entries []LeaderboardEntry

	for id, meal := range r.meals {
		if r.gone[id] || meal.Battles == 0 {
			continue
		}

		pct := float64(meal.Wins) / float64(meal.Battles)
		entries = append(entries, LeaderboardEntry{
			ID:         meal.ID,
			Name:       meal.Name,
			Cuisine:    meal.Cuisine,
			Price:      meal.Price,
			Difficulty: meal.Difficulty,
			Battles:    meal.Battles,
			Wins:       meal.Wins,
			WinPct:     math.Round(pct*1000) / 10,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if sortBy == SortByWinPct {
			return entries[i].WinPct > entries[j].WinPct
		}
		return entries[i].Wins > entries[j].Wins
	})

	return entries, nil
}

func (r *InMemoryRepository) Clear(ctx context.Context) error {
	r.meals = make(map[int]*Meal)
	r.gone = make(map[int]bool)
	r.nextID = 1
	return nil
}

func (r *InMemoryRepository) checkNotDeleted(id int) error {
	if _, ok := r.meals[id]; !ok {
		return ErrMealNotFound
	}
	if r.gone[id] {
		return ErrMealDeleted
	}
	return nil
}
