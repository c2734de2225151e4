package kitchen

// Difficulty levels accepted for a meal.
const (
	DifficultyLow  = "LOW"
	DifficultyMed  = "MED"
	DifficultyHigh = "HIGH"
)

// Battle outcomes recorded against a meal's counters.
const (
	OutcomeWin  = "win"
	OutcomeLoss = "loss"
)

type Meal struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Cuisine    string  `json:"cuisine"`
	Price      float64 `json:"price"`
	Difficulty string  `json:"difficulty"`
	Battles    int     `json:"battles"`
	Wins       int     `json:"wins"`
}

// LeaderboardEntry is a meal row augmented with its win percentage,
// reported as a percentage rounded to one decimal place.
type LeaderboardEntry struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Cuisine    string  `json:"cuisine"`
	Price      float64 `json:"price"`
	Difficulty string  `json:"difficulty"`
	Battles    int     `json:"battles"`
	Wins       int     `json:"wins"`
	WinPct     float64 `json:"win_pct"`
}

// Leaderboard sort keys.
const (
	SortByWins   = "wins"
	SortByWinPct = "win_pct"
)
