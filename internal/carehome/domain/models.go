package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// CareHome is a stable reference entity; created by admin action, rarely
// mutated and never deleted.
type CareHome struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"not null" json:"name"`
	Region    string       `gorm:"not null;default:'UK South'" json:"region"`
	IsActive  bool         `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (CareHome) TableName() string { return "care_homes" }
