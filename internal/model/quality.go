package model

import "time"

// QualityCheck records a single curbside check of a returned vehicle.
// A failed check spawns exactly one DriverTask.
type QualityCheck struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	LicensePlate string       `gorm:"size:16;not null" json:"licensePlate"`
	IsEv         bool         `gorm:"default:false" json:"isEv"`
	Passed       bool         `gorm:"default:true" json:"passed"`
	Comment      string       `json:"comment,omitempty"`
	CheckedBy    *string      `json:"checkedBy,omitempty"`
	CreatedAt    time.Time    `gorm:"index" json:"createdAt"`
	DriverTasks  []DriverTask `gorm:"foreignKey:QualityCheckID;constraint:OnDelete:CASCADE" json:"-"`
}

// DriverTask is follow-up work for the driver crew, created from a failed quality check.
type DriverTask struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	QualityCheckID uint       `gorm:"index;not null" json:"qualityCheckId"`
	LicensePlate   string     `gorm:"size:16;not null" json:"licensePlate"`
	Description    string     `gorm:"not null" json:"description"`
	Completed      bool       `gorm:"default:false" json:"completed"`
	CompletedBy    *string    `json:"completedBy,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}
