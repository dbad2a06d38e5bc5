package database

import (
	"gorm.io/gorm"
)

// Paginate applies 1-based page/limit pagination to a GORM query
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		offset := 0
		if page > 1 {
			offset = (page - 1) * pageSize
		}
		return db.Offset(offset).Limit(pageSize)
	}
}
