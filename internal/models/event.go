package models

import (
	"time"
)

type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EventName   string    `gorm:"not null" json:"eventName"`
	EventDate   time.Time `gorm:"not null" json:"eventDate"`
	StartTime   string    `gorm:"not null" json:"startTime"`
	EndTime     string    `gorm:"not null" json:"endTime"`
	Description string    `gorm:"not null" json:"description"`
	Location    string    `gorm:"not null" json:"location"`
	Tags        []Tag     `gorm:"many2many:event_tags;" json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
