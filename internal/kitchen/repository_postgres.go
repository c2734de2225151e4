package kitchen

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Create a new meal
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, meal *Meal) error {
	query := `
		INSERT INTO meals (
			name,
			cuisine,
			price,
			difficulty
		)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx,
		query,
		meal.Name,
		meal.Cuisine,
		meal.Price,
		meal.Difficulty,
	).Scan(&meal.ID)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("meal with name %q: %w", meal.Name, ErrDuplicateMeal)
	}

	return err
}

// --------------------------------------------------
// Soft-delete a meal by ID
// --------------------------------------------------
func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	if err := r.checkNotDeleted(ctx, id); err != nil {
		return err
	}

	_, err := r.db.Exec(ctx, `
		UPDATE meals
		SET deleted = TRUE
		WHERE id = $1
	`, id)

	return err
}

// --------------------------------------------------
// Get meal by ID
// --------------------------------------------------
func (r *PostgresRepository) GetByID(ctx context.Context, id int) (*Meal, error) {
	return r.getOne(ctx, `
		SELECT id, name, cuisine, price, difficulty, battles, wins, deleted
		FROM meals
		WHERE id = $1
	`, id)
}

// --------------------------------------------------
// Get meal by name
// --------------------------------------------------
func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*Meal, error) {
	return r.getOne(ctx, `
		SELECT id, name, cuisine, price, difficulty, battles, wins, deleted
		FROM meals
		WHERE name = $1
	`, name)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*Meal, error) {
	var (
		meal    Meal
		deleted bool
	)

	err := r.db.QueryRow(ctx, query, arg).Scan(
		&meal.ID,
		&meal.Name,
		&meal.Cuisine,
		&meal.Price,
		&meal.Difficulty,
		&meal.Battles,
		&meal.Wins,
		&deleted,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMealNotFound
	}
	if err != nil {
		return nil, err
	}

	if deleted {
		return nil, ErrMealDeleted
	}

	return &meal, nil
}

// --------------------------------------------------
// Record a battle outcome on a meal's counters
// --------------------------------------------------
func (r *PostgresRepository) UpdateStats(ctx context.Context, id int, outcome string) error {
	if err := r.checkNotDeleted(ctx, id); err != nil {
		return err
	}

	query := `UPDATE meals SET battles = battles + 1 WHERE id = $1`
	if outcome == OutcomeWin {
		query = `UPDATE meals SET battles = battles + 1, wins = wins + 1 WHERE id = $1`
	}

	_, err := r.db.Exec(ctx, query, id)
	return err
}

// --------------------------------------------------
// Leaderboard of meals that fought at least once
// --------------------------------------------------
func (r *PostgresRepository) Leaderboard(ctx context.Context, sortBy string) ([]LeaderboardEntry, error) {
	var order string
	switch sortBy {
	case SortByWins:
		order = "wins"
	case SortByWinPct:
		order = "win_pct"
	default:
		return nil, fmt.Errorf("invalid sort_by parameter: %s", sortBy)
	}

	query := `
		SELECT id, name, cuisine, price, difficulty, battles, wins,
		       (wins * 1.0 / battles) AS win_pct
		FROM meals
		WHERE deleted = FALSE AND battles > 0
		ORDER BY ` + order + ` DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []LeaderboardEntry

	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(
			&e.ID,
			&e.Name,
			&e.Cuisine,
			&e.Price,
			&e.Difficulty,
			&e.Battles,
			&e.Wins,
			&e.WinPct,
		); err != nil {
			return nil, err
		}
		e.WinPct = math.Round(e.WinPct*1000) / 10
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// --------------------------------------------------
// Clear all meals (admin reset)
// --------------------------------------------------
func (r *PostgresRepository) Clear(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `TRUNCATE meals RESTART IDENTITY`)
	return err
}

func (r *PostgresRepository) checkNotDeleted(ctx context.Context, id int) error {
	var deleted bool

	err := r.db.QueryRow(ctx, `
		SELECT deleted FROM meals WHERE id = $1
	`, id).Scan(&deleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrMealNotFound
	}
	if err != nil {
		return err
	}

	if deleted {
		return ErrMealDeleted
	}

	return nil
}
