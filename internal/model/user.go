package model

import (
	"strings"
	"time"
)

// Roles a user can hold. A user may hold both.
const (
	RoleCounter = "counter"
	RoleDriver  = "driver"
)

// User is a branch employee identified by initials and a 4-digit PIN.
// Exactly one admin ("Branch Manager") exists at all times.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Initials string `gorm:"size:8;not null" json:"initials"`
	// PINHash is a bcrypt hash; the plain PIN is never stored.
	PINHash       string    `gorm:"not null" json:"-"`
	Roles         string    `gorm:"size:64" json:"roles"`
	IsAdmin       bool      `gorm:"default:false" json:"isAdmin"`
	MaxDailyHours *float64  `json:"maxDailyHours,omitempty"`
	HourlyRate    *float64  `json:"hourlyRate,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// HasRole reports whether the user holds the given role. Admins hold every role.
func (u *User) HasRole(role string) bool {
	if u.IsAdmin {
		return true
	}
	for _, r := range strings.Split(u.Roles, ",") {
		if strings.TrimSpace(r) == role {
			return true
		}
	}
	return false
}

// RoleList splits the stored role string into its parts.
func (u *User) RoleList() []string {
	if u.Roles == "" {
		return nil
	}
	parts := strings.Split(u.Roles, ",")
	roles := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			roles = append(roles, trimmed)
		}
	}
	return roles
}

// JoinRoles builds the stored role string from a role slice.
func JoinRoles(roles []string) string {
	return strings.Join(roles, ",")
}
