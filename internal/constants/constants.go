package constants

const (
	// ContextKeyUserID is the key used for the user id in sessions and gin contexts.
	ContextKeyUserID = "user_id"

	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "habit_session"

	MinPasswordLength = 8

	DefaultPageSize = 20
	MinPageSize     = 1
	MaxPageSize     = 100

	DefaultHabitPriority = 3
	// FallbackSortPriority is used when sorting habits that have no priority set.
	FallbackSortPriority = 5
	MinHabitPriority     = 1
	MaxHabitPriority     = 5
	DefaultHabitColor    = "#3b82f6"
	MaxHabitNameLength   = 100

	MaxAvatarBytes = 5 << 20
)
