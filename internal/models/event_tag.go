package models

// EventTag is the join row between events and tags.
type EventTag struct {
	EventID uint `gorm:"primaryKey" json:"eventId"`
	TagID   uint `gorm:"primaryKey" json:"tagId"`
}

func (EventTag) TableName() string {
	return "event_tags"
}
