package model

import "time"

// Vehicle is a bodyshop vehicle tracked by the branch until it leaves the active set.
type Vehicle struct {
	ID                 uint   `gorm:"primaryKey" json:"id"`
	LicensePlate       string `gorm:"index;size:16;not null" json:"licensePlate"`
	Name               string `json:"name,omitempty"`
	Notes              string `json:"notes,omitempty"`
	IsEv               bool   `gorm:"default:false" json:"isEv"`
	ReadyForCollection bool   `gorm:"default:false" json:"readyForCollection"`
	CollectionTodoID   *uint  `json:"collectionTodoId,omitempty"`
	IsPast             bool   `gorm:"default:false;index" json:"isPast"`
	// CountdownStart anchors the fixed 7-day bodyshop window.
	CountdownStart time.Time `json:"countdownStart"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Comments       []Comment `gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE" json:"-"`
}

// Comment is a history log entry attached to a vehicle.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VehicleID uint      `gorm:"index;not null" json:"vehicleId"`
	Content   string    `gorm:"not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// VehicleDailyComment marks that a vehicle received a comment on a given civil day.
// One record per (vehicle, date).
type VehicleDailyComment struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	VehicleID  uint   `gorm:"index:idx_vehicle_day,unique;not null" json:"vehicleId"`
	Date       string `gorm:"index:idx_vehicle_day,unique;size:10;not null" json:"date"`
	HasComment bool   `gorm:"default:false" json:"hasComment"`
	CommentID  *uint  `json:"commentId,omitempty"`
}
