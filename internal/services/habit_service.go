package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/rishanreddy/habitmind/internal/auth"
	"github.com/rishanreddy/habitmind/internal/constants"
	"github.com/rishanreddy/habitmind/internal/habit"
	"github.com/rishanreddy/habitmind/internal/models"
	"github.com/rishanreddy/habitmind/internal/repository"
)

var (
	ErrUnauthorized  = errors.New("not authenticated")
	ErrHabitNotFound = errors.New("habit not found")
	ErrValidation    = errors.New("validation failed")
)

var validate = validator.New()

// HabitService loads habits, runs the pure transitions from the habit
// package and saves the result.
type HabitService struct {
	habitRepo repository.HabitRepository
	loc       *time.Location
	now       func() time.Time
}

// NewHabitService creates a new HabitService. Calendar days are evaluated
// in loc.
func NewHabitService(habitRepo repository.HabitRepository, loc *time.Location) *HabitService {
	if loc == nil {
		loc = time.UTC
	}
	return &HabitService{
		habitRepo: habitRepo,
		loc:       loc,
		now:       time.Now,
	}
}

func (s *HabitService) today() time.Time {
	return s.now().In(s.loc)
}

// ListHabitsInput holds list options. A zero PageSize lists everything.
type ListHabitsInput struct {
	Page       int
	PageSize   int
	ActiveOnly bool
}

// ListHabits returns the caller's habits sorted by priority along with the
// total number of matching habits.
func (s *HabitService) ListHabits(ctx context.Context, input ListHabitsInput) ([]models.Habit, int64, error) {
	ownerID, err := auth.OwnerFrom(ctx)
	if err != nil {
		return nil, 0, ErrUnauthorized
	}

	habits, total, err := s.habitRepo.FindByOwner(ctx, repository.HabitFilter{
		OwnerID:    ownerID,
		ActiveOnly: input.ActiveOnly,
		Page:       input.Page,
		PageSize:   input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list habits: %w", err)
	}

	return s.rollAll(habits), total, nil
}

// AllHabits returns every habit of the caller with rollover applied.
func (s *HabitService) AllHabits(ctx context.Context) ([]models.Habit, error) {
	habits, _, err := s.ListHabits(ctx, ListHabitsInput{})
	return habits, err
}

// GetHabit returns a single habit owned by the caller.
func (s *HabitService) GetHabit(ctx context.Context, id string) (*models.Habit, error) {
	h, err := s.loadOwned(ctx, id)
	if err != nil {
		return nil, err
	}
	rolled, _ := habit.Rollover(*h, s.today())
	return &rolled, nil
}

// CreateHabitInput represents the fields accepted when creating a habit.
// Either Days or Preset must be set.
type CreateHabitInput struct {
	Name        string
	Description string
	Days        []string
	Preset      string
	Priority    int
	Color       string
	IsActive    *bool
}

// CreateHabit validates the input and stores a new habit for the caller.
func (s *HabitService) CreateHabit(ctx context.Context, input CreateHabitInput) (*models.Habit, error) {
	ownerID, err := auth.OwnerFrom(ctx)
	if err != nil {
		return nil, ErrUnauthorized
	}

	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}

	days, err := resolveDays(input.Days, input.Preset)
	if err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == 0 {
		priority = constants.DefaultHabitPriority
	}
	if err := validatePriority(priority); err != nil {
		return nil, err
	}

	color := strings.TrimSpace(input.Color)
	if color == "" {
		color = constants.DefaultHabitColor
	}
	if err := validateColor(color); err != nil {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	h := &models.Habit{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		DaysOfWeek:  days,
		Priority:    priority,
		Color:       color,
		IsActive:    isActive,
	}

	if err := s.habitRepo.Create(ctx, h); err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	return h, nil
}

// UpdateHabitInput carries a partial update. Nil fields are left unchanged.
type UpdateHabitInput struct {
	Name        *string
	Description *string
	Days        []string
	Preset      *string
	Priority    *int
	Color       *string
	IsActive    *bool
}

// UpdateHabit applies a partial update to one of the caller's habits.
// Completion state is never touched here.
func (s *HabitService) UpdateHabit(ctx context.Context, id string, input UpdateHabitInput) (*models.Habit, error) {
	h, err := s.loadOwned(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}
		h.Name = name
	}
	if input.Description != nil {
		h.Description = strings.TrimSpace(*input.Description)
	}
	if input.Days != nil || input.Preset != nil {
		preset := ""
		if input.Preset != nil {
			preset = *input.Preset
		}
		days, err := resolveDays(input.Days, preset)
		if err != nil {
			return nil, err
		}
		h.DaysOfWeek = days
	}
	if input.Priority != nil {
		if err := validatePriority(*input.Priority); err != nil {
			return nil, err
		}
		h.Priority = *input.Priority
	}
	if input.Color != nil {
		color := strings.TrimSpace(*input.Color)
		if err := validateColor(color); err != nil {
			return nil, err
		}
		h.Color = color
	}
	if input.IsActive != nil {
		h.IsActive = *input.IsActive
	}

	*h, _ = habit.Rollover(*h, s.today())
	if err := s.save(ctx, h); err != nil {
		return nil, err
	}

	return h, nil
}

// CompleteHabit marks the habit as done today and returns the updated
// record. Completing twice on the same day is a no-op.
func (s *HabitService) CompleteHabit(ctx context.Context, id string) (*models.Habit, error) {
	return s.transition(ctx, id, habit.Complete)
}

// UncompleteHabit reverts today's completion and returns the updated record.
func (s *HabitService) UncompleteHabit(ctx context.Context, id string) (*models.Habit, error) {
	return s.transition(ctx, id, habit.Uncomplete)
}

func (s *HabitService) transition(ctx context.Context, id string, fn func(models.Habit, time.Time) (models.Habit, bool)) (*models.Habit, error) {
	h, err := s.loadOwned(ctx, id)
	if err != nil {
		return nil, err
	}

	next, changed := fn(*h, s.today())
	if !changed {
		return &next, nil
	}

	if err := s.save(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// DeleteHabit permanently removes one of the caller's habits.
func (s *HabitService) DeleteHabit(ctx context.Context, id string) error {
	if _, err := s.loadOwned(ctx, id); err != nil {
		return err
	}

	if err := s.habitRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrHabitNotFound
		}
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	return nil
}

// TodayView is the dashboard summary for the current day.
type TodayView struct {
	Date    time.Time
	Weekday models.Weekday
	Due     []models.Habit
	All     []models.Habit
}

// TodayHabits returns the habits due today, sorted by priority, together
// with the full list.
func (s *HabitService) TodayHabits(ctx context.Context) (*TodayView, error) {
	habits, err := s.AllHabits(ctx)
	if err != nil {
		return nil, err
	}

	today := s.today()
	weekday := habit.WeekdayOf(today.Weekday())
	return &TodayView{
		Date:    habit.StartOfDay(today),
		Weekday: weekday,
		Due:     habit.DueOn(habits, weekday),
		All:     habits,
	}, nil
}

// WeekSchedule returns the Sunday-first weekly grid of due habits.
func (s *HabitService) WeekSchedule(ctx context.Context) ([]habit.DaySchedule, error) {
	habits, err := s.AllHabits(ctx)
	if err != nil {
		return nil, err
	}
	return habit.Week(habits, s.today()), nil
}

// HabitStats aggregates the caller's habits.
type HabitStats struct {
	TotalHabits      int
	ActiveHabits     int
	CompletedToday   int
	SuccessRate      int
	BestStreak       int
	TotalCompletions int
}

// Stats summarises the caller's habits for the profile view.
func (s *HabitService) Stats(ctx context.Context) (*HabitStats, error) {
	habits, err := s.AllHabits(ctx)
	if err != nil {
		return nil, err
	}
	return computeStats(habits), nil
}

func computeStats(habits []models.Habit) *HabitStats {
	stats := &HabitStats{TotalHabits: len(habits)}
	for _, h := range habits {
		if h.IsActive {
			stats.ActiveHabits++
		}
		if h.CompletedToday {
			stats.CompletedToday++
		}
		if h.Streak > stats.BestStreak {
			stats.BestStreak = h.Streak
		}
		stats.TotalCompletions += h.TotalCompletions
	}
	stats.SuccessRate = successRate(stats.CompletedToday, stats.TotalHabits)
	return stats
}

func successRate(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// loadOwned fetches a habit and hides records owned by someone else behind
// ErrHabitNotFound.
func (s *HabitService) loadOwned(ctx context.Context, id string) (*models.Habit, error) {
	ownerID, err := auth.OwnerFrom(ctx)
	if err != nil {
		return nil, ErrUnauthorized
	}

	h, err := s.habitRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("failed to find habit: %w", err)
	}
	if h.OwnerID != ownerID {
		return nil, ErrHabitNotFound
	}

	return h, nil
}

func (s *HabitService) save(ctx context.Context, h *models.Habit) error {
	if err := s.habitRepo.Update(ctx, h); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrHabitNotFound
		}
		return fmt.Errorf("failed to update habit: %w", err)
	}
	return nil
}

func (s *HabitService) rollAll(habits []models.Habit) []models.Habit {
	today := s.today()
	for i := range habits {
		habits[i], _ = habit.Rollover(habits[i], today)
	}
	return habits
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrValidation)
	}
	if len([]rune(name)) > constants.MaxHabitNameLength {
		return "", fmt.Errorf("%w: name must be at most %d characters", ErrValidation, constants.MaxHabitNameLength)
	}
	return name, nil
}

func resolveDays(days []string, preset string) ([]models.Weekday, error) {
	preset = strings.TrimSpace(preset)
	if preset != "" {
		if len(days) > 0 {
			return nil, fmt.Errorf("%w: set either days or preset, not both", ErrValidation)
		}
		resolved, ok := habit.PresetDays(preset)
		if !ok {
			return nil, fmt.Errorf("%w: unknown preset %q", ErrValidation, preset)
		}
		return resolved, nil
	}

	resolved, err := habit.NormalizeDays(days)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return resolved, nil
}

func validatePriority(priority int) error {
	if priority < constants.MinHabitPriority || priority > constants.MaxHabitPriority {
		return fmt.Errorf("%w: priority must be between %d and %d", ErrValidation, constants.MinHabitPriority, constants.MaxHabitPriority)
	}
	return nil
}

func validateColor(color string) error {
	if err := validate.Var(color, "hexcolor"); err != nil {
		return fmt.Errorf("%w: color must be a hex color", ErrValidation)
	}
	return nil
}
