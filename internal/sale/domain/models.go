package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	priceitemdomain "github.com/sundries-services/sundries/internal/priceitem/domain"
	residentdomain "github.com/sundries-services/sundries/internal/resident/domain"
	vendordomain "github.com/sundries-services/sundries/internal/vendors/domain"
)

// SaleItem is one charge against a resident. Description and Price are
// copied from the price item at creation; catalog edits never change a
// recorded sale. Invoiced items are immutable.
type SaleItem struct {
	ID               snowflake.ID    `gorm:"primaryKey" json:"id"`
	CareHomeID       snowflake.ID    `gorm:"not null" json:"careHomeId"`
	RosterResidentID snowflake.ID    `gorm:"not null" json:"rosterResidentId"`
	VendorID         snowflake.ID    `gorm:"not null" json:"vendorId"`
	PriceItemID      *snowflake.ID   `json:"priceItemId"`
	Description      string          `gorm:"not null" json:"description"`
	Price            decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Date             time.Time       `gorm:"not null" json:"date"`
	Invoiced         bool            `gorm:"not null;default:false" json:"invoiced"`
	InvoiceNumber    *string         `json:"invoiceNumber"`
	CreatedAt        time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (SaleItem) TableName() string { return "sale_items" }

type SaleItemDetail struct {
	SaleItem
	Resident  *residentdomain.RosterResident `json:"resident"`
	Vendor    *vendordomain.Vendor           `json:"vendor"`
	PriceItem *priceitemdomain.PriceItem     `json:"priceItem"`
}

// SalesInvoice is reconstructed from sale items sharing an invoice
// number; invoices of this scheme are never stored as rows.
type SalesInvoice struct {
	InvoiceNumber string          `json:"invoiceNumber"`
	VendorID      snowflake.ID    `json:"vendorId"`
	CareHomeID    snowflake.ID    `json:"careHomeId"`
	Total         decimal.Decimal `json:"total"`
	ItemCount     int             `json:"itemCount"`
	IssuedAt      time.Time       `json:"issuedAt"`
	Status        string          `json:"status"`
}
