package repository

import (
	"context"
	"errors"

	"github.com/rishanreddy/habitmind/internal/database"
	"github.com/rishanreddy/habitmind/internal/models"
	"gorm.io/gorm"
)

// GormHabitRepository is a GORM implementation of HabitRepository
type GormHabitRepository struct {
	db *gorm.DB
}

// NewHabitRepository creates a new HabitRepository
func NewHabitRepository(db *gorm.DB) HabitRepository {
	return &GormHabitRepository{db: db}
}

// FindByOwner lists habits of one owner with optional pagination
func (r *GormHabitRepository) FindByOwner(ctx context.Context, filter HabitFilter) ([]models.Habit, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Habit{}).Where("owner_id = ?", filter.OwnerID)
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("priority ASC").Order("created_at ASC")
	if filter.Paged() {
		listQuery = listQuery.Scopes(database.Paginate(filter.Page, filter.PageSize))
	}

	habits := []models.Habit{}
	if err := listQuery.Find(&habits).Error; err != nil {
		return nil, 0, err
	}

	return habits, total, nil
}

// FindByID finds a habit by ID
func (r *GormHabitRepository) FindByID(ctx context.Context, id string) (*models.Habit, error) {
	var habit models.Habit
	if err := r.db.WithContext(ctx).First(&habit, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &habit, nil
}

// Create inserts a new habit
func (r *GormHabitRepository) Create(ctx context.Context, habit *models.Habit) error {
	return translateError(r.db.WithContext(ctx).Create(habit).Error)
}

// Update writes every column of an existing habit
func (r *GormHabitRepository) Update(ctx context.Context, habit *models.Habit) error {
	result := r.db.WithContext(ctx).Model(habit).Select("*").Omit("created_at").Updates(habit)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete permanently removes a habit
func (r *GormHabitRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Habit{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
