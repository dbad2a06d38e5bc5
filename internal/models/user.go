package models

import (
	"time"
)

type User struct {
	ID           string    `gorm:"type:varchar(36);primarykey" bson:"_id" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" bson:"name" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" bson:"email" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" bson:"passwordHash" json:"-"`
	ImageKey     string    `gorm:"type:varchar(512)" bson:"imageKey,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updated_at"`
}
