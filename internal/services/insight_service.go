package services

import (
	"context"
	"errors"

	"github.com/rishanreddy/habitmind/internal/logger"
	"github.com/rishanreddy/habitmind/internal/models"
)

var (
	ErrNoHabits               = errors.New("no active habits found")
	ErrInsightUnavailable     = errors.New("failed to generate insights")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
)

// InsightGenerator produces structured insights from a user's habits.
type InsightGenerator interface {
	PredictDecay(ctx context.Context, habits []models.Habit, maxTokens int) (*DecayReport, error)
	GenerateInsights(ctx context.Context, habits []models.Habit, successRate int) (*InsightReport, error)
}

// InsightService forwards the caller's habits to the AI collaborator.
type InsightService struct {
	habits    *HabitService
	generator InsightGenerator
}

// NewInsightService creates a new InsightService. A nil generator makes
// every call fail with ErrAIServiceNotConfigured.
func NewInsightService(habits *HabitService, generator InsightGenerator) *InsightService {
	return &InsightService{
		habits:    habits,
		generator: generator,
	}
}

// DecayRisk predicts how likely each of the caller's habits is to be
// abandoned. An empty habit list is still sent to the model.
func (s *InsightService) DecayRisk(ctx context.Context) (*DecayReport, error) {
	if s.generator == nil {
		return nil, ErrAIServiceNotConfigured
	}

	habits, err := s.habits.AllHabits(ctx)
	if err != nil {
		return nil, err
	}

	report, err := s.generator.PredictDecay(ctx, habits, decayMaxTokens(len(habits)))
	if err != nil {
		logger.Error("Decay prediction failed", "habits", len(habits), "err", err)
		return nil, ErrInsightUnavailable
	}
	return report, nil
}

// Insights suggests one improvement based on today's success rate.
func (s *InsightService) Insights(ctx context.Context) (*InsightReport, error) {
	if s.generator == nil {
		return nil, ErrAIServiceNotConfigured
	}

	habits, err := s.habits.AllHabits(ctx)
	if err != nil {
		return nil, err
	}
	if len(habits) == 0 {
		return nil, ErrNoHabits
	}

	rate := computeStats(habits).SuccessRate
	report, err := s.generator.GenerateInsights(ctx, habits, rate)
	if err != nil {
		logger.Error("Insight generation failed", "habits", len(habits), "err", err)
		return nil, ErrInsightUnavailable
	}
	return report, nil
}
