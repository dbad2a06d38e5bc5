package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishanreddy/habitmind/internal/auth"
	"github.com/rishanreddy/habitmind/internal/models"
	"github.com/rishanreddy/habitmind/internal/repository"
)

type fakeGenerator struct {
	err         error
	habitCount  int
	maxTokens   int
	successRate int
	calls       int
}

func (f *fakeGenerator) PredictDecay(_ context.Context, habits []models.Habit, maxTokens int) (*DecayReport, error) {
	f.calls++
	f.habitCount = len(habits)
	f.maxTokens = maxTokens
	if f.err != nil {
		return nil, f.err
	}
	risks := make([]DecayRisk, 0, len(habits))
	for _, h := range habits {
		risks = append(risks, DecayRisk{HabitName: h.Name, RiskPercentage: 40, RiskLevel: "Medium", Recommendation: "Keep going"})
	}
	return &DecayReport{DecayRisk: risks}, nil
}

func (f *fakeGenerator) GenerateInsights(_ context.Context, habits []models.Habit, successRate int) (*InsightReport, error) {
	f.calls++
	f.habitCount = len(habits)
	f.successRate = successRate
	if f.err != nil {
		return nil, f.err
	}
	return &InsightReport{Recommendations: "Stack habits", SuccessRate: float64(successRate), ImprovementPercentage: 5}, nil
}

type insightTestEnv struct {
	habits    *HabitService
	insights  *InsightService
	generator *fakeGenerator
	ctx       context.Context
}

func setupInsightTestEnv(t *testing.T) insightTestEnv {
	t.Helper()

	db := newTestDB(t)
	habits := NewHabitService(repository.NewHabitRepository(db), time.UTC)
	generator := &fakeGenerator{}

	return insightTestEnv{
		habits:    habits,
		insights:  NewInsightService(habits, generator),
		generator: generator,
		ctx:       auth.WithOwner(context.Background(), "owner-1"),
	}
}

func (env insightTestEnv) createHabits(t *testing.T, names ...string) []string {
	t.Helper()
	ids := make([]string, 0, len(names))
	for _, name := range names {
		h, err := env.habits.CreateHabit(env.ctx, CreateHabitInput{Name: name, Preset: "everyday"})
		require.NoError(t, err)
		ids = append(ids, h.ID)
	}
	return ids
}

func TestInsightService_DecayRiskAllowsEmptyList(t *testing.T) {
	env := setupInsightTestEnv(t)

	report, err := env.insights.DecayRisk(env.ctx)
	require.NoError(t, err)
	assert.Empty(t, report.DecayRisk)
	assert.Equal(t, 1, env.generator.calls)
	assert.Equal(t, 0, env.generator.habitCount)
	assert.Equal(t, 500, env.generator.maxTokens)
}

func TestInsightService_DecayRiskScalesTokens(t *testing.T) {
	env := setupInsightTestEnv(t)
	env.createHabits(t, "A", "B", "C", "D")

	report, err := env.insights.DecayRisk(env.ctx)
	require.NoError(t, err)
	assert.Len(t, report.DecayRisk, 4)
	assert.Equal(t, 600, env.generator.maxTokens)
}

func TestInsightService_InsightsRequiresHabits(t *testing.T) {
	env := setupInsightTestEnv(t)

	_, err := env.insights.Insights(env.ctx)
	assert.ErrorIs(t, err, ErrNoHabits)
	assert.Equal(t, 0, env.generator.calls)
}

func TestInsightService_InsightsSuccessRate(t *testing.T) {
	env := setupInsightTestEnv(t)
	ids := env.createHabits(t, "A", "B", "C")

	_, err := env.habits.CompleteHabit(env.ctx, ids[0])
	require.NoError(t, err)
	_, err = env.habits.CompleteHabit(env.ctx, ids[1])
	require.NoError(t, err)

	report, err := env.insights.Insights(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, 67, env.generator.successRate)
	assert.Equal(t, 3, env.generator.habitCount)
	assert.Equal(t, "Stack habits", report.Recommendations)
}

func TestInsightService_GeneratorFailureIsOpaque(t *testing.T) {
	env := setupInsightTestEnv(t)
	env.createHabits(t, "A")
	env.generator.err = errors.New("upstream 502: quota exceeded")

	_, err := env.insights.DecayRisk(env.ctx)
	assert.ErrorIs(t, err, ErrInsightUnavailable)
	assert.NotContains(t, err.Error(), "quota")

	_, err = env.insights.Insights(env.ctx)
	assert.ErrorIs(t, err, ErrInsightUnavailable)
}

func TestInsightService_NotConfigured(t *testing.T) {
	env := setupInsightTestEnv(t)
	service := NewInsightService(env.habits, nil)

	_, err := service.DecayRisk(env.ctx)
	assert.ErrorIs(t, err, ErrAIServiceNotConfigured)

	_, err = service.Insights(env.ctx)
	assert.ErrorIs(t, err, ErrAIServiceNotConfigured)
}

func TestInsightService_RequiresOwner(t *testing.T) {
	env := setupInsightTestEnv(t)

	_, err := env.insights.DecayRisk(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 0, env.generator.calls)
}

func TestDecayMaxTokens(t *testing.T) {
	assert.Equal(t, 500, decayMaxTokens(0))
	assert.Equal(t, 500, decayMaxTokens(3))
	assert.Equal(t, 600, decayMaxTokens(4))
	assert.Equal(t, 1500, decayMaxTokens(10))
}
