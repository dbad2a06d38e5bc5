package habit

import (
	"math/rand"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishanreddy/habitmind/internal/models"
)

var day1 = time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)

func freshHabit() models.Habit {
	return models.Habit{
		ID:         "h1",
		OwnerID:    "u1",
		Name:       "Read",
		DaysOfWeek: EveryDay(),
		Priority:   3,
		IsActive:   true,
	}
}

func TestComplete_FirstCompletion(t *testing.T) {
	h, changed := Complete(freshHabit(), day1)

	require.True(t, changed)
	assert.Equal(t, 1, h.Streak)
	assert.Equal(t, 1, h.TotalCompletions)
	assert.True(t, h.CompletedToday)
	require.NotNil(t, h.LastCompleted)
	assert.True(t, h.LastCompleted.Equal(day1))
}

func TestComplete_ConsecutiveDayExtendsStreak(t *testing.T) {
	h, _ := Complete(freshHabit(), day1)

	day2 := day1.AddDate(0, 0, 1).Add(-time.Hour)
	h, changed := Complete(h, day2)

	require.True(t, changed)
	assert.Equal(t, 2, h.Streak)
	assert.Equal(t, 2, h.TotalCompletions)
	assert.True(t, h.CompletedToday)
	assert.True(t, h.LastCompleted.Equal(day2))
}

func TestComplete_SkippedDayResetsStreak(t *testing.T) {
	h, _ := Complete(freshHabit(), day1)
	h, _ = Complete(h, day1.AddDate(0, 0, 1))
	require.Equal(t, 2, h.Streak)

	h, changed := Complete(h, day1.AddDate(0, 0, 3))

	require.True(t, changed)
	assert.Equal(t, 1, h.Streak)
	assert.Equal(t, 3, h.TotalCompletions)
}

func TestComplete_SameDayIsNoop(t *testing.T) {
	first, _ := Complete(freshHabit(), day1)

	second, changed := Complete(first, day1.Add(3*time.Hour))

	assert.False(t, changed)
	assert.Equal(t, first, second)
}

func TestCompleteThenUncomplete_RestoresCounters(t *testing.T) {
	before, _ := Complete(freshHabit(), day1)
	before, _ = Rollover(before, day1.AddDate(0, 0, 1))

	now := day1.AddDate(0, 0, 1)
	completed, _ := Complete(before, now)
	reverted, changed := Uncomplete(completed, now)

	require.True(t, changed)
	assert.False(t, reverted.CompletedToday)
	assert.Equal(t, before.TotalCompletions, reverted.TotalCompletions)
	assert.Equal(t, completed.Streak-1, reverted.Streak)
}

func TestUncomplete_DecrementsStreakWhenNotCompletedToday(t *testing.T) {
	h := freshHabit()
	h.Streak = 3
	h.TotalCompletions = 7

	h, changed := Uncomplete(h, day1)
	require.True(t, changed)
	assert.Equal(t, 2, h.Streak)
	assert.Equal(t, 7, h.TotalCompletions)

	h, _ = Uncomplete(h, day1)
	assert.Equal(t, 1, h.Streak)
	assert.Equal(t, 7, h.TotalCompletions)
}

func TestUncomplete_ZeroStreakIsNoop(t *testing.T) {
	h, changed := Uncomplete(freshHabit(), day1)

	assert.False(t, changed)
	assert.Equal(t, freshHabit(), h)
}

func TestUncomplete_AfterRolloverOnlyTouchesStreak(t *testing.T) {
	h, _ := Complete(freshHabit(), day1)

	h, changed := Uncomplete(h, day1.AddDate(0, 0, 1))

	require.True(t, changed)
	assert.False(t, h.CompletedToday)
	assert.Equal(t, 1, h.TotalCompletions)
	assert.Equal(t, 0, h.Streak)
}

func TestRollover(t *testing.T) {
	yesterday := day1.AddDate(0, 0, -1)
	lastWeek := day1.AddDate(0, 0, -7)
	tomorrow := day1.AddDate(0, 0, 1)

	cases := []struct {
		name          string
		lastCompleted *time.Time
		completed     bool
		wantCompleted bool
		wantChanged   bool
	}{
		{"never completed", nil, false, false, false},
		{"completed yesterday", &yesterday, true, false, true},
		{"completed last week", &lastWeek, true, false, true},
		{"clock moved backwards", &tomorrow, true, false, true},
		{"completed earlier today", &day1, true, true, false},
		{"already rolled over", &yesterday, false, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := freshHabit()
			h.Streak = 4
			h.TotalCompletions = 9
			h.LastCompleted = tc.lastCompleted
			h.CompletedToday = tc.completed

			got, changed := Rollover(h, day1.Add(5*time.Hour))

			assert.Equal(t, tc.wantChanged, changed)
			assert.Equal(t, tc.wantCompleted, got.CompletedToday)
			assert.Equal(t, 4, got.Streak)
			assert.Equal(t, 9, got.TotalCompletions)

			again, changedAgain := Rollover(got, day1.Add(5*time.Hour))
			assert.False(t, changedAgain)
			assert.Equal(t, got, again)
		})
	}
}

func TestTransitions_CountersNeverNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		h := freshHabit()
		now := day1
		for step := 0; step < 200; step++ {
			transitioned := true
			switch rng.Intn(4) {
			case 0:
				h, _ = Complete(h, now)
			case 1:
				h, _ = Uncomplete(h, now)
			case 2:
				now = now.Add(time.Duration(rng.Intn(36)) * time.Hour)
				transitioned = false
			case 3:
				h, _ = Rollover(h, now)
			}

			require.GreaterOrEqual(t, h.Streak, 0)
			require.GreaterOrEqual(t, h.TotalCompletions, 0)
			if transitioned && h.CompletedToday {
				require.NotNil(t, h.LastCompleted)
				require.True(t, SameDay(*h.LastCompleted, now), "completedToday implies lastCompleted is today")
			}
		}
	}
}

func TestIsDayBefore_AcrossDSTAndZones(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2024-03-10 is 23 hours long in New York.
	last := time.Date(2024, time.March, 9, 22, 0, 0, 0, ny)
	now := time.Date(2024, time.March, 10, 21, 0, 0, 0, ny)
	assert.True(t, IsDayBefore(last, now))

	// Stored in UTC, this is the evening of March 4th in New York.
	storedUTC := time.Date(2024, time.March, 5, 2, 0, 0, 0, time.UTC)
	morningNY := time.Date(2024, time.March, 5, 10, 0, 0, 0, ny)
	assert.True(t, IsDayBefore(storedUTC, morningNY))
	assert.False(t, SameDay(storedUTC, morningNY))
	assert.True(t, SameDay(storedUTC, morningNY.In(time.UTC)))
}

func TestStartOfDay(t *testing.T) {
	got := StartOfDay(day1)
	assert.Equal(t, time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), got)
}
