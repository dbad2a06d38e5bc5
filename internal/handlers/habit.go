package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rishanreddy/habitmind/internal/dto"
	apierrors "github.com/rishanreddy/habitmind/internal/errors"
	"github.com/rishanreddy/habitmind/internal/habit"
	"github.com/rishanreddy/habitmind/internal/logger"
	"github.com/rishanreddy/habitmind/internal/services"
	"github.com/rishanreddy/habitmind/internal/utils"
)

type HabitHandler struct {
	habitService *services.HabitService
}

func NewHabitHandler(habitService *services.HabitService) *HabitHandler {
	return &HabitHandler{
		habitService: habitService,
	}
}

// ListHabits returns the current user's habits, sorted by priority.
// Supports page, limit and active query parameters.
func (h *HabitHandler) ListHabits(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	habits, total, err := h.habitService.ListHabits(c.Request.Context(), services.ListHabitsInput{
		Page:       params.Page,
		PageSize:   params.Limit,
		ActiveOnly: utils.GetBoolQuery(c, "active"),
	})
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHabitListResponse(habits, params.Page, params.Limit, total))
}

// GetHabit returns a specific habit by ID
func (h *HabitHandler) GetHabit(c *gin.Context) {
	found, err := h.habitService.GetHabit(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHabitDTO(*found))
}

// CreateHabit creates a new habit. Days are given either explicitly or as
// a preset name.
func (h *HabitHandler) CreateHabit(c *gin.Context) {
	type CreateHabitRequest struct {
		Name        string   `json:"name" binding:"required"`
		Description string   `json:"description" binding:"max=1000"`
		DaysOfWeek  []string `json:"days_of_week"`
		Preset      string   `json:"preset"`
		Priority    int      `json:"priority"`
		Color       string   `json:"color"`
		IsActive    *bool    `json:"is_active"`
	}

	var req CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	created, err := h.habitService.CreateHabit(c.Request.Context(), services.CreateHabitInput{
		Name:        req.Name,
		Description: req.Description,
		Days:        req.DaysOfWeek,
		Preset:      req.Preset,
		Priority:    req.Priority,
		Color:       req.Color,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToHabitDTO(*created))
}

// UpdateHabit applies a partial update. Omitted fields are left unchanged.
func (h *HabitHandler) UpdateHabit(c *gin.Context) {
	type UpdateHabitRequest struct {
		Name        *string   `json:"name"`
		Description *string   `json:"description" binding:"omitempty,max=1000"`
		DaysOfWeek  *[]string `json:"days_of_week"`
		Preset      *string   `json:"preset"`
		Priority    *int      `json:"priority"`
		Color       *string   `json:"color"`
		IsActive    *bool     `json:"is_active"`
	}

	var req UpdateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	input := services.UpdateHabitInput{
		Name:        req.Name,
		Description: req.Description,
		Preset:      req.Preset,
		Priority:    req.Priority,
		Color:       req.Color,
		IsActive:    req.IsActive,
	}
	if req.DaysOfWeek != nil {
		input.Days = *req.DaysOfWeek
		if input.Days == nil {
			input.Days = []string{}
		}
	}

	updated, err := h.habitService.UpdateHabit(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHabitDTO(*updated))
}

// DeleteHabit permanently deletes a habit
func (h *HabitHandler) DeleteHabit(c *gin.Context) {
	if err := h.habitService.DeleteHabit(c.Request.Context(), c.Param("id")); err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Habit deleted successfully",
	})
}

// CompleteHabit marks a habit as done today and returns the updated habit
func (h *HabitHandler) CompleteHabit(c *gin.Context) {
	updated, err := h.habitService.CompleteHabit(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHabitDTO(*updated))
}

// UncompleteHabit reverts today's completion and returns the updated habit
func (h *HabitHandler) UncompleteHabit(c *gin.Context) {
	updated, err := h.habitService.UncompleteHabit(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHabitDTO(*updated))
}

// Today returns the habits due today and the full list
func (h *HabitHandler) Today(c *gin.Context) {
	view, err := h.habitService.TodayHabits(c.Request.Context())
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodayResponse(*view))
}

// Week returns the Sunday-first weekly schedule
func (h *HabitHandler) Week(c *gin.Context) {
	week, err := h.habitService.WeekSchedule(c.Request.Context())
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWeekResponse(week))
}

// Presets lists the quick-select day sets
func (h *HabitHandler) Presets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"presets": dto.Presets(),
	})
}

// Explore searches the catalog of example habits by q and category
func (h *HabitHandler) Explore(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ExploreResponse{
		Habits:     habit.Explore(c.Query("q"), c.Query("category")),
		Categories: habit.Categories(),
	})
}

func respondHabitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		apierrors.Unauthorized(c, "Not authenticated")
	case errors.Is(err, services.ErrHabitNotFound):
		apierrors.NotFound(c, "Habit not found")
	case errors.Is(err, services.ErrValidation):
		apierrors.BadRequest(c, err.Error())
	default:
		logger.Error("Habit request failed", "path", c.FullPath(), "err", err)
		apierrors.InternalError(c, "Internal server error")
	}
}
