package models

import (
	"time"
)

type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Habit is a recurring task owned by a single user. Completion fields are
// only changed through the habit package transitions.
type Habit struct {
	ID               string     `gorm:"type:varchar(36);primarykey" bson:"_id" json:"id"`
	OwnerID          string     `gorm:"type:varchar(36);index;not null" bson:"ownerId" json:"owner_id"`
	Name             string     `gorm:"type:varchar(255);not null" bson:"name" json:"name"`
	Description      string     `gorm:"type:text" bson:"description" json:"description"`
	DaysOfWeek       []Weekday  `gorm:"serializer:json;type:text;not null" bson:"daysOfWeek" json:"days_of_week"`
	Priority         int        `gorm:"not null;default:3" bson:"priority" json:"priority"`
	Color            string     `gorm:"type:varchar(32);not null" bson:"color" json:"color"`
	IsActive         bool       `gorm:"not null" bson:"isActive" json:"is_active"`
	Streak           int        `gorm:"not null;default:0" bson:"streak" json:"streak"`
	TotalCompletions int        `gorm:"not null;default:0" bson:"totalCompletions" json:"total_completions"`
	CompletedToday   bool       `gorm:"not null" bson:"completedToday" json:"completed_today"`
	LastCompleted    *time.Time `bson:"lastCompleted,omitempty" json:"last_completed"`
	CreatedAt        time.Time  `bson:"createdAt" json:"created_at"`
	UpdatedAt        time.Time  `bson:"updatedAt" json:"updated_at"`
}
