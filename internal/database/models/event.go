package models

import "time"

// Event is a one-off happening at the center. Content holds a rich-text
// editor document as JSON; it is rendered through a constrained renderer
// downstream and is not run through the flat-string sanitizer.
type Event struct {
	Base
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	Location  string    `json:"location"`
	StartsAt  time.Time `gorm:"index" json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	Published bool      `gorm:"default:false;index" json:"published"`
}

func (Event) TableName() string {
	return "events"
}
