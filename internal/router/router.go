package router

import (
	"time"

	"mealmax/internal/battle"
	"mealmax/internal/kitchen"
	"mealmax/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func New(kitchenHandler *kitchen.Handler, battleHandler *battle.Handler) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	meals := r.Group("/meals")
	{
		meals.POST("", kitchenHandler.CreateMeal)
		meals.GET("/:id", kitchenHandler.GetMealByID)
		meals.GET("/by-name/:name", kitchenHandler.GetMealByName)
		meals.DELETE("/:id", kitchenHandler.DeleteMeal)
		meals.DELETE("", kitchenHandler.ClearMeals)
	}

	r.GET("/leaderboard", kitchenHandler.Leaderboard)

	fights := r.Group("/battle")
	{
		fights.POST("", battleHandler.Battle)
		fights.POST("/combatants", battleHandler.PrepCombatant)
		fights.GET("/combatants", battleHandler.GetCombatants)
		fights.DELETE("/combatants", battleHandler.ClearCombatants)
	}

	return r
}
