package kitchen

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// Create meal
// --------------------------------------------------
func (h *Handler) CreateMeal(c *gin.Context) {
	var req struct {
		Name       string  `json:"name"`
		Cuisine    string  `json:"cuisine"`
		Price      float64 `json:"price"`
		Difficulty string  `json:"difficulty"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	meal, err := h.service.CreateMeal(
		c.Request.Context(),
		req.Name,
		req.Cuisine,
		req.Price,
		req.Difficulty,
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, meal)
}

// --------------------------------------------------
// Get meal by ID
// --------------------------------------------------
func (h *Handler) GetMealByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	meal, err := h.service.GetMealByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(mealStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, meal)
}

// --------------------------------------------------
// Get meal by name
// --------------------------------------------------
func (h *Handler) GetMealByName(c *gin.Context) {
	meal, err := h.service.GetMealByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		c.JSON(mealStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, meal)
}

// --------------------------------------------------
// Soft-delete meal
// --------------------------------------------------
func (h *Handler) DeleteMeal(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	if err := h.service.DeleteMeal(c.Request.Context(), id); err != nil {
		c.JSON(mealStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// --------------------------------------------------
// Clear all meals
// --------------------------------------------------
func (h *Handler) ClearMeals(c *gin.Context) {
	if err := h.service.ClearMeals(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// --------------------------------------------------
// Leaderboard
// --------------------------------------------------
func (h *Handler) Leaderboard(c *gin.Context) {
	entries, err := h.service.Leaderboard(
		c.Request.Context(),
		c.Query("sort_by"),
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

func mealStatus(err error) int {
	switch {
	case errors.Is(err, ErrMealNotFound), errors.Is(err, ErrMealDeleted):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
