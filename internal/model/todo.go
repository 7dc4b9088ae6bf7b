package model

import "time"

// Todo is a daily task for the counter or driver crew. System-generated todos are
// created by lifecycle rules (e.g. a vehicle becoming ready for collection) and are
// the only ones that may be postponed, at most once.
type Todo struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	Title             string     `gorm:"not null" json:"title"`
	AssignedTo        string     `gorm:"size:64" json:"assignedTo"`
	Completed         bool       `gorm:"default:false" json:"completed"`
	CompletedBy       *string    `json:"completedBy,omitempty"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`
	VehicleID         *uint      `gorm:"index" json:"vehicleId,omitempty"`
	IsSystemGenerated bool       `gorm:"default:false" json:"isSystemGenerated"`
	IsRecurring       bool       `gorm:"default:false" json:"isRecurring"`
	Priority          int        `gorm:"default:0" json:"priority"`
	PostponedToDate   *string    `gorm:"size:10" json:"postponedToDate,omitempty"`
	PostponeCount     int        `gorm:"default:0" json:"postponeCount"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// PostponedTo reports whether the todo was pushed to the given civil date.
func (t *Todo) PostponedTo(date string) bool {
	return t.PostponedToDate != nil && *t.PostponedToDate == date
}
