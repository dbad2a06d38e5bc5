package dto

import (
	"time"

	"github.com/rishanreddy/habitmind/internal/habit"
	"github.com/rishanreddy/habitmind/internal/models"
	"github.com/rishanreddy/habitmind/internal/services"
)

const dateLayout = "2006-01-02"

// HabitDTO represents a habit in API responses
type HabitDTO struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	DaysOfWeek       []models.Weekday `json:"days_of_week"`
	Priority         int              `json:"priority"`
	Color            string           `json:"color"`
	IsActive         bool             `json:"is_active"`
	Streak           int              `json:"streak"`
	TotalCompletions int              `json:"total_completions"`
	CompletedToday   bool             `json:"completed_today"`
	LastCompleted    *time.Time       `json:"last_completed"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// HabitListResponse represents a paginated list of habits
type HabitListResponse struct {
	Habits     []HabitDTO `json:"habits"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalCount int64      `json:"total_count"`
	TotalPages int        `json:"total_pages"`
}

// TodayResponse is the dashboard view of the current day
type TodayResponse struct {
	Date           string         `json:"date"`
	Weekday        models.Weekday `json:"weekday"`
	Due            []HabitDTO     `json:"due"`
	Habits         []HabitDTO     `json:"habits"`
	DueCount       int            `json:"due_count"`
	CompletedCount int            `json:"completed_count"`
}

// DayScheduleDTO is one column of the weekly grid
type DayScheduleDTO struct {
	Date    string         `json:"date"`
	Weekday models.Weekday `json:"weekday"`
	IsToday bool           `json:"is_today"`
	Habits  []HabitDTO     `json:"habits"`
}

// WeekResponse is the Sunday-first weekly grid
type WeekResponse struct {
	Days []DayScheduleDTO `json:"days"`
}

// PresetDTO describes a quick-select day set
type PresetDTO struct {
	Name string           `json:"name"`
	Days []models.Weekday `json:"days"`
}

// ExploreResponse lists catalog habits matching a query
type ExploreResponse struct {
	Habits     []habit.Example `json:"habits"`
	Categories []string        `json:"categories"`
}

// StatsDTO summarises a user's habits
type StatsDTO struct {
	TotalHabits      int `json:"total_habits"`
	ActiveHabits     int `json:"active_habits"`
	CompletedToday   int `json:"completed_today"`
	SuccessRate      int `json:"success_rate"`
	BestStreak       int `json:"best_streak"`
	TotalCompletions int `json:"total_completions"`
}

// ToHabitDTO converts a Habit model to HabitDTO
func ToHabitDTO(h models.Habit) HabitDTO {
	days := h.DaysOfWeek
	if days == nil {
		days = []models.Weekday{}
	}
	return HabitDTO{
		ID:               h.ID,
		Name:             h.Name,
		Description:      h.Description,
		DaysOfWeek:       days,
		Priority:         h.Priority,
		Color:            h.Color,
		IsActive:         h.IsActive,
		Streak:           h.Streak,
		TotalCompletions: h.TotalCompletions,
		CompletedToday:   h.CompletedToday,
		LastCompleted:    h.LastCompleted,
		CreatedAt:        h.CreatedAt,
		UpdatedAt:        h.UpdatedAt,
	}
}

// ToHabitDTOs converts a slice of habits, never returning nil
func ToHabitDTOs(habits []models.Habit) []HabitDTO {
	items := make([]HabitDTO, len(habits))
	for i, h := range habits {
		items[i] = ToHabitDTO(h)
	}
	return items
}

// ToHabitListResponse converts a page of habits to HabitListResponse
func ToHabitListResponse(habits []models.Habit, page, pageSize int, totalCount int64) HabitListResponse {
	totalPages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		totalPages++
	}

	return HabitListResponse{
		Habits:     ToHabitDTOs(habits),
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}

// ToTodayResponse converts the service's today view
func ToTodayResponse(view services.TodayView) TodayResponse {
	completed := 0
	for _, h := range view.Due {
		if h.CompletedToday {
			completed++
		}
	}

	return TodayResponse{
		Date:           view.Date.Format(dateLayout),
		Weekday:        view.Weekday,
		Due:            ToHabitDTOs(view.Due),
		Habits:         ToHabitDTOs(view.All),
		DueCount:       len(view.Due),
		CompletedCount: completed,
	}
}

// ToWeekResponse converts the weekly grid
func ToWeekResponse(week []habit.DaySchedule) WeekResponse {
	days := make([]DayScheduleDTO, len(week))
	for i, day := range week {
		days[i] = DayScheduleDTO{
			Date:    day.Date.Format(dateLayout),
			Weekday: day.Weekday,
			IsToday: day.IsToday,
			Habits:  ToHabitDTOs(day.Habits),
		}
	}
	return WeekResponse{Days: days}
}

// Presets lists the quick-select day sets in display order
func Presets() []PresetDTO {
	return []PresetDTO{
		{Name: habit.PresetEveryDay, Days: habit.EveryDay()},
		{Name: habit.PresetWeekdays, Days: habit.Weekdays()},
		{Name: habit.PresetWeekends, Days: habit.Weekends()},
	}
}

// ToStatsDTO converts the service's aggregate stats
func ToStatsDTO(stats services.HabitStats) StatsDTO {
	return StatsDTO{
		TotalHabits:      stats.TotalHabits,
		ActiveHabits:     stats.ActiveHabits,
		CompletedToday:   stats.CompletedToday,
		SuccessRate:      stats.SuccessRate,
		BestStreak:       stats.BestStreak,
		TotalCompletions: stats.TotalCompletions,
	}
}
