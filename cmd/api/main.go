package main

import (
	"log"
	"os"

	"mealmax/internal/battle"
	"mealmax/internal/db"
	"mealmax/internal/kitchen"
	"mealmax/internal/random"
	"mealmax/internal/router"

	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"DATABASE_URL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── KITCHEN ─────────────────────────
	mealRepo := kitchen.NewPostgresRepository(pgDB)
	kitchenService := kitchen.NewService(mealRepo)
	kitchenHandler := kitchen.NewHandler(kitchenService)

	// ───────────────────────── BATTLE ─────────────────────────
	randomClient := random.NewClient()
	battleService := battle.NewService(randomClient, kitchenService)
	battleHandler := battle.NewHandler(battleService, kitchenService)

	// ───────────────────────── ROUTER ─────────────────────────
	r := router.New(kitchenHandler, battleHandler)

	// ───────────────────────── START ─────────────────────────
	log.Println("API running at http://localhost:8000")
	if err := r.Run(":8000"); err != nil {
		log.Fatal(err)
	}
}
