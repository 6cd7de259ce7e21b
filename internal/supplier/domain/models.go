package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Supplier delivers on-site services billed per visit. ServiceType feeds
// the consent gate; invoices for a supplier derive their number prefix
// from Name.
type Supplier struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	Name         string       `gorm:"not null" json:"name"`
	ServiceType  string       `gorm:"not null" json:"serviceType"`
	ContactEmail string       `json:"contactEmail"`
	IsActive     bool         `gorm:"not null;default:true" json:"isActive"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (Supplier) TableName() string { return "suppliers" }
