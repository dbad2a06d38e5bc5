package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/rishanreddy/habitmind/internal/errors"
	"github.com/rishanreddy/habitmind/internal/services"
)

type InsightHandler struct {
	insightService *services.InsightService
}

func NewInsightHandler(insightService *services.InsightService) *InsightHandler {
	return &InsightHandler{
		insightService: insightService,
	}
}

// DecayRisk predicts which of the user's habits are at risk of being abandoned
func (h *InsightHandler) DecayRisk(c *gin.Context) {
	report, err := h.insightService.DecayRisk(c.Request.Context())
	if err != nil {
		respondInsightError(c, err, "Failed to fetch decay predictions")
		return
	}

	c.JSON(http.StatusOK, report)
}

// Insights suggests one improvement based on today's success rate
func (h *InsightHandler) Insights(c *gin.Context) {
	report, err := h.insightService.Insights(c.Request.Context())
	if err != nil {
		respondInsightError(c, err, "Failed to fetch AI habit insights")
		return
	}

	c.JSON(http.StatusOK, report)
}

func respondInsightError(c *gin.Context, err error, failure string) {
	switch {
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI service is not configured")
	case errors.Is(err, services.ErrNoHabits):
		apierrors.BadRequest(c, "No active habits found")
	case errors.Is(err, services.ErrInsightUnavailable):
		apierrors.InternalError(c, failure)
	default:
		respondHabitError(c, err)
	}
}
