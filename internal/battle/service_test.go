package battle

import (
	"context"
	"errors"
	"testing"

	"mealmax/internal/kitchen"
)

// --------------------------------------------------
// Mock collaborators
// --------------------------------------------------

type stubRandom struct {
	value float64
	err   error
	calls int
}

func (s *stubRandom) Fraction(ctx context.Context) (float64, error) {
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	return s.value, nil
}

type statCall struct {
	mealID  int
	outcome string
}

type recorderSpy struct {
	calls []statCall
	err   error
}

func (r *recorderSpy) UpdateMealStats(ctx context.Context, mealID int, outcome string) error {
	if r.err != nil {
		return r.err
	}
	r.calls = append(r.calls, statCall{mealID: mealID, outcome: outcome})
	return nil
}

func newTestService(r float64) (*Service, *stubRandom, *recorderSpy) {
	random := &stubRandom{value: r}
	recorder := &recorderSpy{}
	return NewService(random, recorder), random, recorder
}

func sampleMeal1() kitchen.Meal {
	return kitchen.Meal{ID: 1, Name: "Meal 1", Cuisine: "Chinese", Price: 20.0, Difficulty: kitchen.DifficultyMed}
}

func sampleMeal2() kitchen.Meal {
	return kitchen.Meal{ID: 2, Name: "Meal 2", Cuisine: "Ecuadorian", Price: 25.0, Difficulty: kitchen.DifficultyLow}
}

// --------------------------------------------------
// Combatant staging
// --------------------------------------------------

func TestPrepCombatant(t *testing.T) {
	service, _, _ := newTestService(0.5)

	if err := service.PrepCombatant(sampleMeal1()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	combatants := service.Combatants()
	if len(combatants) != 1 {
		t.Fatalf("expected 1 combatant, got %d", len(combatants))
	}
	if combatants[0].Name != "Meal 1" {
		t.Errorf("expected 'Meal 1', got %q", combatants[0].Name)
	}
}

func TestPrepCombatantFull(t *testing.T) {
	service, _, _ := newTestService(0.5)

	service.PrepCombatant(sampleMeal1())
	service.PrepCombatant(sampleMeal2())

	extra := kitchen.Meal{ID: 3, Name: "Meal 3", Cuisine: "French", Price: 15.0, Difficulty: kitchen.DifficultyLow}
	if err := service.PrepCombatant(extra); !errors.Is(err, ErrCombatantsFull) {
		t.Fatalf("expected ErrCombatantsFull, got %v", err)
	}

	combatants := service.Combatants()
	if len(combatants) != 2 {
		t.Fatalf("expected list unchanged at 2, got %d", len(combatants))
	}
	if combatants[0].Name != "Meal 1" || combatants[1].Name != "Meal 2" {
		t.Errorf("expected original order preserved, got %q, %q", combatants[0].Name, combatants[1].Name)
	}
}

func TestClearCombatants(t *testing.T) {
	service, _, _ := newTestService(0.5)

	service.PrepCombatant(sampleMeal1())
	service.PrepCombatant(sampleMeal2())
	service.ClearCombatants()

	if len(service.Combatants()) != 0 {
		t.Fatalf("expected empty combatant list")
	}

	// Clearing an already-empty list is fine.
	service.ClearCombatants()
	if len(service.Combatants()) != 0 {
		t.Fatalf("expected empty combatant list after second clear")
	}
}

func TestCombatantsReturnsSnapshot(t *testing.T) {
	service, _, _ := newTestService(0.5)
	service.PrepCombatant(sampleMeal1())

	snapshot := service.Combatants()
	snapshot[0].Name = "Tampered"

	if service.Combatants()[0].Name != "Meal 1" {
		t.Errorf("internal combatant state was mutated through the snapshot")
	}
}

// --------------------------------------------------
// Score
// --------------------------------------------------

func TestScore(t *testing.T) {
	service, _, _ := newTestService(0.5)

	cases := []struct {
		name string
		meal kitchen.Meal
		want float64
	}{
		{"medium difficulty", sampleMeal1(), 20.0*7 - 2},
		{"low difficulty", sampleMeal2(), 25.0*10 - 3},
		{"high difficulty", kitchen.Meal{ID: 3, Name: "Meal 3", Cuisine: "Korean", Price: 30.0, Difficulty: kitchen.DifficultyHigh}, 30.0*6 - 1},
		{"zero price", kitchen.Meal{ID: 4, Name: "Meal 4", Cuisine: "Japanese", Price: 0.0, Difficulty: kitchen.DifficultyHigh}, -1},
		{"cheap meal goes negative", kitchen.Meal{ID: 5, Name: "Meal 5", Cuisine: "Thai", Price: 0.5, Difficulty: kitchen.DifficultyLow}, 0.5*4 - 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := service.Score(tc.meal); got != tc.want {
				t.Errorf("expected score %v, got %v", tc.want, got)
			}
		})
	}
}

// --------------------------------------------------
// Battle resolution
// --------------------------------------------------

func TestBattleNoCombatants(t *testing.T) {
	service, random, recorder := newTestService(0.5)

	if _, err := service.Battle(context.Background()); !errors.Is(err, ErrNotEnoughPrepped) {
		t.Fatalf("expected ErrNotEnoughPrepped, got %v", err)
	}
	if random.calls != 0 {
		t.Errorf("random source should not be called, got %d calls", random.calls)
	}
	if len(recorder.calls) != 0 {
		t.Errorf("stats should not be recorded, got %d calls", len(recorder.calls))
	}
}

func TestBattleOneCombatant(t *testing.T) {
	service, random, recorder := newTestService(0.5)
	service.PrepCombatant(sampleMeal1())

	if _, err := service.Battle(context.Background()); !errors.Is(err, ErrNotEnoughPrepped) {
		t.Fatalf("expected ErrNotEnoughPrepped, got %v", err)
	}
	if random.calls != 0 || len(recorder.calls) != 0 {
		t.Errorf("no collaborator calls expected")
	}
}

// Meal 1 scores 138, Meal 2 scores 247: the gap of 109 clamps the upset
// threshold to 1, so the lower-scoring Meal 1 wins for any draw in [0, 1).
func TestBattleClampedDeltaAlwaysUpsets(t *testing.T) {
	for _, r := range []float64{0.5, 0.999} {
		service, _, recorder := newTestService(r)
		service.PrepCombatant(sampleMeal1())
		service.PrepCombatant(sampleMeal2())

		winner, err := service.Battle(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if winner != "Meal 1" {
			t.Fatalf("r=%v: expected 'Meal 1' to win, got %q", r, winner)
		}

		combatants := service.Combatants()
		if len(combatants) != 1 || combatants[0].Name != "Meal 1" {
			t.Fatalf("r=%v: expected only the winner staged, got %v", r, combatants)
		}

		want := []statCall{
			{mealID: 1, outcome: kitchen.OutcomeWin},
			{mealID: 2, outcome: kitchen.OutcomeLoss},
		}
		if len(recorder.calls) != 2 || recorder.calls[0] != want[0] || recorder.calls[1] != want[1] {
			t.Fatalf("r=%v: unexpected stat calls: %v", r, recorder.calls)
		}
	}
}

func TestBattleHigherScoreWins(t *testing.T) {
	// Thai/MED scores 38, Greek/HIGH scores 49: delta is 0.11.
	thai := kitchen.Meal{ID: 10, Name: "Pad Thai", Cuisine: "Thai", Price: 10.0, Difficulty: kitchen.DifficultyMed}
	greek := kitchen.Meal{ID: 11, Name: "Moussaka", Cuisine: "Greek", Price: 10.0, Difficulty: kitchen.DifficultyHigh}

	service, _, recorder := newTestService(0.5)
	service.PrepCombatant(thai)
	service.PrepCombatant(greek)

	winner, err := service.Battle(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if winner != "Moussaka" {
		t.Fatalf("expected higher-scoring 'Moussaka' to win, got %q", winner)
	}

	if recorder.calls[0].mealID != 11 || recorder.calls[0].outcome != kitchen.OutcomeWin {
		t.Errorf("expected win recorded for meal 11, got %v", recorder.calls[0])
	}
	if recorder.calls[1].mealID != 10 || recorder.calls[1].outcome != kitchen.OutcomeLoss {
		t.Errorf("expected loss recorded for meal 10, got %v", recorder.calls[1])
	}
}

func TestBattleUpsetBelowThreshold(t *testing.T) {
	thai := kitchen.Meal{ID: 10, Name: "Pad Thai", Cuisine: "Thai", Price: 10.0, Difficulty: kitchen.DifficultyMed}
	greek := kitchen.Meal{ID: 11, Name: "Moussaka", Cuisine: "Greek", Price: 10.0, Difficulty: kitchen.DifficultyHigh}

	// Draw below the 0.11 threshold flips the result to the lower score.
	service, _, _ := newTestService(0.05)
	service.PrepCombatant(thai)
	service.PrepCombatant(greek)

	winner, err := service.Battle(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if winner != "Pad Thai" {
		t.Fatalf("expected lower-scoring 'Pad Thai' to win, got %q", winner)
	}
}

func TestBattleEqualScores(t *testing.T) {
	// Equal scores mean a zero threshold: the draw can never flip the
	// result, so the second entrant (ranked higher on the tie) wins.
	a := kitchen.Meal{ID: 20, Name: "Dumplings", Cuisine: "Chinese", Price: 20.0, Difficulty: kitchen.DifficultyMed}
	b := kitchen.Meal{ID: 21, Name: "Noodles", Cuisine: "Chinese", Price: 20.0, Difficulty: kitchen.DifficultyMed}

	service, _, _ := newTestService(0.0)
	service.PrepCombatant(a)
	service.PrepCombatant(b)

	winner, err := service.Battle(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if winner != "Noodles" {
		t.Fatalf("expected 'Noodles' to win the tie, got %q", winner)
	}
}

func TestBattleDeterministicForFixedDraw(t *testing.T) {
	for i := 0; i < 3; i++ {
		service, _, _ := newTestService(0.2)
		service.PrepCombatant(sampleMeal1())
		service.PrepCombatant(sampleMeal2())

		winner, err := service.Battle(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if winner != "Meal 1" {
			t.Fatalf("run %d: expected 'Meal 1', got %q", i, winner)
		}
	}
}

func TestBattleRandomFailurePropagates(t *testing.T) {
	service, random, recorder := newTestService(0)
	random.err = errors.New("request to random.org timed out")

	service.PrepCombatant(sampleMeal1())
	service.PrepCombatant(sampleMeal2())

	_, err := service.Battle(context.Background())
	if !errors.Is(err, random.err) {
		t.Fatalf("expected random source error, got %v", err)
	}

	if len(recorder.calls) != 0 {
		t.Errorf("no stats should be recorded when the draw fails")
	}
	if len(service.Combatants()) != 2 {
		t.Errorf("combatants should stay staged when the draw fails")
	}
}

func TestBattleStatsFailureKeepsCombatants(t *testing.T) {
	service, _, recorder := newTestService(0.5)
	recorder.err = errors.New("meal not found")

	service.PrepCombatant(sampleMeal1())
	service.PrepCombatant(sampleMeal2())

	_, err := service.Battle(context.Background())
	if !errors.Is(err, recorder.err) {
		t.Fatalf("expected stats error, got %v", err)
	}

	if len(service.Combatants()) != 2 {
		t.Errorf("loser must not be evicted when a stats write fails")
	}
}
