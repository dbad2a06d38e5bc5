package repository

import (
	"context"
	"errors"

	"github.com/rishanreddy/habitmind/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("duplicate record")
)

// HabitRepository defines the interface for habit data access
type HabitRepository interface {
	// FindByOwner lists habits of one owner, sorted by priority
	FindByOwner(ctx context.Context, filter HabitFilter) ([]models.Habit, int64, error)

	// FindByID finds a habit by ID
	FindByID(ctx context.Context, id string) (*models.Habit, error)

	// Create inserts a new habit
	Create(ctx context.Context, habit *models.Habit) error

	// Update replaces an existing habit
	Update(ctx context.Context, habit *models.Habit) error

	// Delete permanently removes a habit
	Delete(ctx context.Context, id string) error
}

// HabitFilter holds filtering options for listing habits.
// A zero Page or PageSize returns every matching habit.
type HabitFilter struct {
	OwnerID    string
	ActiveOnly bool
	Page       int
	PageSize   int
}

// Offset returns the number of records to skip for the filter's page.
func (f HabitFilter) Offset() int {
	if f.Page <= 0 || f.PageSize <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Paged reports whether the filter limits the result set.
func (f HabitFilter) Paged() bool {
	return f.Page > 0 && f.PageSize > 0
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByEmail finds a user by email address
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// Update saves changes to an existing user
	Update(ctx context.Context, user *models.User) error
}
