package model

import "time"

// Flow task types, roughly the stations a vehicle passes on its way back to the lot.
const (
	FlowTypeWash        = "wash"
	FlowTypeVacuum      = "vacuum"
	FlowTypeFuel        = "fuel"
	FlowTypeCharge      = "charge"
	FlowTypeInterior    = "interior"
	FlowTypeExterior    = "exterior"
	FlowTypeDamageCheck = "damage_check"
	FlowTypeTransfer    = "transfer"
	FlowTypeWorkshop    = "workshop"
	FlowTypeTires       = "tires"
	FlowTypeDocuments   = "documents"
)

// FlowTaskTypes lists every valid task type.
var FlowTaskTypes = []string{
	FlowTypeWash, FlowTypeVacuum, FlowTypeFuel, FlowTypeCharge,
	FlowTypeInterior, FlowTypeExterior, FlowTypeDamageCheck,
	FlowTypeTransfer, FlowTypeWorkshop, FlowTypeTires, FlowTypeDocuments,
}

// ValidFlowTaskType reports whether t is a known task type.
func ValidFlowTaskType(t string) bool {
	for _, known := range FlowTaskTypes {
		if t == known {
			return true
		}
	}
	return false
}

// FlowTask is one unit of turnaround work on a vehicle. Priority defines manual
// ordering: new tasks are appended (max+1), reordering rewrites priorities in bulk.
// Completed and NeedsRetry are mutually exclusive.
type FlowTask struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	LicensePlate string     `gorm:"size:16;not null" json:"licensePlate"`
	IsEv         bool       `gorm:"default:false" json:"isEv"`
	TaskType     string     `gorm:"size:32;not null" json:"taskType"`
	Priority     int        `gorm:"index;not null" json:"priority"`
	Completed    bool       `gorm:"default:false" json:"completed"`
	CompletedBy  *string    `json:"completedBy,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	NeedsRetry   bool       `gorm:"default:false" json:"needsRetry"`
	NeedAt       *string    `gorm:"size:5" json:"needAt,omitempty"`
	CreatedBy    *string    `json:"createdBy,omitempty"`
	CreatedAt    time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
