package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// PriceItem is a catalog entry for a vendor. Price is copied onto sale
// items at reconciliation time; later catalog edits never rewrite history.
type PriceItem struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	VendorID    snowflake.ID    `gorm:"not null" json:"vendorId"`
	Description string          `gorm:"not null" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	ValidFrom   *time.Time      `json:"validFrom"`
	IsActive    bool            `gorm:"not null;default:true" json:"isActive"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (PriceItem) TableName() string { return "price_items" }
