package habit

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rishanreddy/habitmind/internal/constants"
	"github.com/rishanreddy/habitmind/internal/models"
)

// AllWeekdays lists the weekday labels in canonical storage order.
var AllWeekdays = []models.Weekday{
	models.Monday,
	models.Tuesday,
	models.Wednesday,
	models.Thursday,
	models.Friday,
	models.Saturday,
	models.Sunday,
}

const (
	PresetEveryDay = "everyday"
	PresetWeekdays = "weekdays"
	PresetWeekends = "weekends"
)

// EveryDay returns all seven weekdays.
func EveryDay() []models.Weekday {
	return append([]models.Weekday(nil), AllWeekdays...)
}

// Weekdays returns Monday through Friday.
func Weekdays() []models.Weekday {
	return append([]models.Weekday(nil), AllWeekdays[:5]...)
}

// Weekends returns Saturday and Sunday.
func Weekends() []models.Weekday {
	return []models.Weekday{models.Saturday, models.Sunday}
}

// PresetDays resolves a quick-select preset name.
func PresetDays(name string) ([]models.Weekday, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case PresetEveryDay:
		return EveryDay(), true
	case PresetWeekdays:
		return Weekdays(), true
	case PresetWeekends:
		return Weekends(), true
	default:
		return nil, false
	}
}

// WeekdayOf converts a time.Weekday to its label.
func WeekdayOf(d time.Weekday) models.Weekday {
	if d == time.Sunday {
		return models.Sunday
	}
	return AllWeekdays[int(d)-1]
}

// ParseWeekday accepts a weekday label case-insensitively.
func ParseWeekday(s string) (models.Weekday, error) {
	s = strings.TrimSpace(s)
	for _, d := range AllWeekdays {
		if strings.EqualFold(string(d), s) {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid weekday %q", s)
}

// NormalizeDays validates a day set and returns it in canonical order.
// Empty sets and duplicates are rejected.
func NormalizeDays(days []string) ([]models.Weekday, error) {
	if len(days) == 0 {
		return nil, fmt.Errorf("at least one day is required")
	}

	seen := make(map[models.Weekday]struct{}, len(days))
	for _, raw := range days {
		d, err := ParseWeekday(raw)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[d]; dup {
			return nil, fmt.Errorf("duplicate weekday %q", d)
		}
		seen[d] = struct{}{}
	}

	result := make([]models.Weekday, 0, len(seen))
	for _, d := range AllWeekdays {
		if _, ok := seen[d]; ok {
			result = append(result, d)
		}
	}
	return result, nil
}

// IsDueOn reports whether an active habit is scheduled on the given weekday.
func IsDueOn(h models.Habit, day models.Weekday) bool {
	if !h.IsActive {
		return false
	}
	for _, d := range h.DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}

// DueOn returns the habits due on the given weekday, sorted by priority.
func DueOn(habits []models.Habit, day models.Weekday) []models.Habit {
	due := make([]models.Habit, 0, len(habits))
	for _, h := range habits {
		if IsDueOn(h, day) {
			due = append(due, h)
		}
	}
	SortByPriority(due)
	return due
}

// SortByPriority orders habits ascending by priority, treating an unset
// priority as the lowest. Ties are broken by name.
func SortByPriority(habits []models.Habit) {
	sort.SliceStable(habits, func(i, j int) bool {
		pi, pj := sortPriority(habits[i]), sortPriority(habits[j])
		if pi != pj {
			return pi < pj
		}
		return habits[i].Name < habits[j].Name
	})
}

func sortPriority(h models.Habit) int {
	if h.Priority == 0 {
		return constants.FallbackSortPriority
	}
	return h.Priority
}

// WeekStart returns midnight of the Sunday that starts today's week.
func WeekStart(today time.Time) time.Time {
	y, m, d := today.Date()
	return time.Date(y, m, d-int(today.Weekday()), 0, 0, 0, 0, today.Location())
}

// WeekDates returns the seven dates of today's week, Sunday first.
func WeekDates(today time.Time) []time.Time {
	start := WeekStart(today)
	y, m, d := start.Date()
	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = time.Date(y, m, d+i, 0, 0, 0, 0, start.Location())
	}
	return dates
}

// DaySchedule is one column of the weekly grid.
type DaySchedule struct {
	Date    time.Time
	Weekday models.Weekday
	IsToday bool
	Habits  []models.Habit
}

// Week builds the Sunday-first weekly grid for today.
func Week(habits []models.Habit, today time.Time) []DaySchedule {
	dates := WeekDates(today)
	week := make([]DaySchedule, len(dates))
	for i, date := range dates {
		day := WeekdayOf(date.Weekday())
		week[i] = DaySchedule{
			Date:    date,
			Weekday: day,
			IsToday: SameDay(date, today),
			Habits:  DueOn(habits, day),
		}
	}
	return week
}
