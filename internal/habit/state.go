// Package habit holds the completion state machine and the weekly schedule
// rules for habits. Everything here is pure: callers load a record, run a
// transition, and persist the result themselves.
//
// Calendar days are evaluated in the location of the supplied now. The
// stored lastCompleted timestamp is converted into that location before
// comparison, so callers control the day boundary by choosing now's zone.
package habit

import (
	"time"

	"github.com/rishanreddy/habitmind/internal/models"
)

// Rollover clears CompletedToday when the last completion happened on an
// earlier calendar day than now. Streak and TotalCompletions are untouched.
func Rollover(h models.Habit, now time.Time) (models.Habit, bool) {
	if h.LastCompleted == nil || !h.CompletedToday {
		return h, false
	}
	if SameDay(*h.LastCompleted, now) {
		return h, false
	}
	h.CompletedToday = false
	return h, true
}

// Complete marks the habit as done for now's calendar day. It is a no-op
// when the habit is already completed today.
func Complete(h models.Habit, now time.Time) (models.Habit, bool) {
	h, rolled := Rollover(h, now)
	if h.CompletedToday {
		return h, rolled
	}

	previous := h.LastCompleted
	completedAt := now
	h.CompletedToday = true
	h.LastCompleted = &completedAt
	h.TotalCompletions++

	if previous != nil && IsDayBefore(*previous, now) {
		h.Streak++
	} else {
		h.Streak = 1
	}

	return h, true
}

// Uncomplete reverts a completion. The streak is decremented (floored at
// zero) even when the habit was not completed today; callers relying on
// symmetric behaviour must check CompletedToday first.
func Uncomplete(h models.Habit, now time.Time) (models.Habit, bool) {
	h, changed := Rollover(h, now)

	if h.CompletedToday {
		h.CompletedToday = false
		h.TotalCompletions--
		changed = true
	}

	if h.Streak > 0 {
		h.Streak--
		changed = true
	}

	return h, changed
}

// SameDay reports whether t falls on the same calendar day as ref, using
// ref's location.
func SameDay(t, ref time.Time) bool {
	ty, tm, td := t.In(ref.Location()).Date()
	ry, rm, rd := ref.Date()
	return ty == ry && tm == rm && td == rd
}

// IsDayBefore reports whether t falls on the calendar day immediately
// preceding ref, using ref's location.
func IsDayBefore(t, ref time.Time) bool {
	y, m, d := ref.Date()
	yesterday := time.Date(y, m, d-1, 12, 0, 0, 0, ref.Location())
	return SameDay(t, yesterday)
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
