package model

import "time"

// Module names tracked by the status ledger and the daily progress score.
const (
	ModuleTimedriver = "timedriver"
	ModuleUpgrade    = "upgrade"
	ModuleFlow       = "flow"
	ModuleTodo       = "todo"
	ModuleQuality    = "quality"
	ModuleBodyshop   = "bodyshop"
	ModuleFuture     = "future"
)

// ModuleStatus is the per (module, civil date) done flag. Unique per pair; writes upsert.
type ModuleStatus struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	ModuleName string     `gorm:"index:idx_module_date,unique;size:32;not null" json:"moduleName"`
	Date       string     `gorm:"index:idx_module_date,unique;size:10;not null" json:"date"`
	IsDone     bool       `gorm:"default:false" json:"isDone"`
	DoneAt     *time.Time `json:"doneAt,omitempty"`
	DoneBy     *string    `json:"doneBy,omitempty"`
}

// AppSetting is a keyed string value.
type AppSetting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:64;not null" json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}
