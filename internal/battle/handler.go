package battle

import (
	"errors"
	"net/http"
	"sync"

	"mealmax/internal/kitchen"
	"mealmax/internal/random"

	"github.com/gin-gonic/gin"
)

// Handler serializes HTTP access to the process-wide battle engine; the
// engine itself is single-threaded by contract.
type Handler struct {
	mu      sync.Mutex
	service *Service
	kitchen *kitchen.Service
}

func NewHandler(service *Service, kitchenService *kitchen.Service) *Handler {
	return &Handler{service: service, kitchen: kitchenService}
}

// --------------------------------------------------
// Prep a combatant by meal ID
// --------------------------------------------------
func (h *Handler) PrepCombatant(c *gin.Context) {
	var req struct {
		MealID int `json:"meal_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	meal, err := h.kitchen.GetMealByID(c.Request.Context(), req.MealID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, kitchen.ErrMealNotFound) || errors.Is(err, kitchen.ErrMealDeleted) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.service.PrepCombatant(*meal); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"combatants": h.service.Combatants()})
}

// --------------------------------------------------
// List staged combatants
// --------------------------------------------------
func (h *Handler) GetCombatants(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"combatants": h.service.Combatants()})
}

// --------------------------------------------------
// Clear staged combatants
// --------------------------------------------------
func (h *Handler) ClearCombatants(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.service.ClearCombatants()
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// --------------------------------------------------
// Fight
// --------------------------------------------------
func (h *Handler) Battle(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	winner, err := h.service.Battle(c.Request.Context())
	if err != nil {
		c.JSON(battleStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"winner": winner})
}

func battleStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotEnoughPrepped):
		return http.StatusBadRequest
	case errors.Is(err, random.ErrInvalidResponse),
		errors.Is(err, random.ErrTimeout),
		errors.Is(err, random.ErrRequestFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
