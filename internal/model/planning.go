package model

import "time"

// TimedriverCalculation is the labor-budget allocation for one civil day.
// DriversData holds the per-driver allocation serialized as JSON.
type TimedriverCalculation struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Date            string    `gorm:"uniqueIndex;size:10;not null" json:"date"`
	Rentals         int       `json:"rentals"`
	BudgetPerRental float64   `json:"budgetPerRental"`
	TotalBudget     float64   `json:"totalBudget"`
	DriversData     string    `json:"driversData"`
	CalculatedBy    *string   `json:"calculatedBy,omitempty"`
	CalculatedAt    time.Time `json:"calculatedAt"`
}

// UpgradeVehicle is a candidate for an upgrade sale on a given day.
type UpgradeVehicle struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	LicensePlate string     `gorm:"size:16;not null" json:"licensePlate"`
	Model        string     `json:"model"`
	Reason       string     `json:"reason"`
	IsVan        bool       `gorm:"default:false" json:"isVan"`
	IsSold       bool       `gorm:"default:false" json:"isSold"`
	SoldBy       *string    `json:"soldBy,omitempty"`
	SoldAt       *time.Time `json:"soldAt,omitempty"`
	Date         string     `gorm:"index;size:10;not null" json:"date"`
	CreatedBy    *string    `json:"createdBy,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// FuturePlanning captures tomorrow's reservation outlook for one civil day.
// Invariant: ReservationsCar + ReservationsVan + ReservationsTas == ReservationsTotal.
type FuturePlanning struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Date               string    `gorm:"uniqueIndex;size:10;not null" json:"date"`
	ReservationsTotal  int       `json:"reservationsTotal"`
	ReservationsCar    int       `json:"reservationsCar"`
	ReservationsVan    int       `json:"reservationsVan"`
	ReservationsTas    int       `json:"reservationsTas"`
	DeliveriesTomorrow int       `json:"deliveriesTomorrow"`
	CollectionsOpen    int       `json:"collectionsOpen"`
	CarDayMin          *int      `json:"carDayMin,omitempty"`
	VanDayMin          *int      `json:"vanDayMin,omitempty"`
	SavedBy            *string   `json:"savedBy,omitempty"`
	SavedAt            time.Time `json:"savedAt"`
}

// KpiMetric is a scalar branch metric (e.g. "irpd", "ses") tracked against a goal.
type KpiMetric struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:32;not null" json:"key"`
	Value     float64   `json:"value"`
	Goal      float64   `json:"goal"`
	UpdatedBy *string   `json:"updatedBy,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}
