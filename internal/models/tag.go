package models

import (
	"time"
)

// Tag is a normalized label attachable to events. Value is the lookup form
// (lowercased, whitespace stripped), Name keeps the submitted casing.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Value     string    `gorm:"uniqueIndex;not null" json:"value"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Events    []Event   `gorm:"many2many:event_tags;" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
