package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusActive  Status = "Active"
	StatusPaused  Status = "Paused"
	StatusRevoked Status = "Revoked"
)

// Consent authorizes a supplier's service for one resident. A consent
// covers a visit when it is Active, was given on or before the visit and
// has not expired by the visit date.
type Consent struct {
	ID               snowflake.ID `gorm:"primaryKey" json:"id"`
	ResidentID       snowflake.ID `gorm:"not null" json:"residentId"`
	SupplierID       snowflake.ID `gorm:"not null" json:"supplierId"`
	ServiceType      string       `gorm:"not null" json:"serviceType"`
	Status           Status       `gorm:"not null;default:'Active'" json:"status"`
	ConsentGivenAt   time.Time    `gorm:"not null" json:"consentGivenAt"`
	ConsentExpiresAt *time.Time   `json:"consentExpiresAt"`
	Notes            string       `json:"notes"`
	CreatedBy        string       `json:"createdBy"`
	CreatedAt        time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (Consent) TableName() string { return "consents" }

// Covers reports whether this consent authorizes a visit at the given
// time.
func (c Consent) Covers(visitedAt time.Time) bool {
	if c.Status != StatusActive {
		return false
	}
	if c.ConsentGivenAt.After(visitedAt) {
		return false
	}
	if c.ConsentExpiresAt != nil && c.ConsentExpiresAt.Before(visitedAt) {
		return false
	}
	return true
}
