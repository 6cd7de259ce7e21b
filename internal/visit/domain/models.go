package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	residentdomain "github.com/sundries-services/sundries/internal/resident/domain"
	supplierdomain "github.com/sundries-services/sundries/internal/supplier/domain"
)

type Status string

const (
	StatusDraft     Status = "Draft"
	StatusConfirmed Status = "Confirmed"
	StatusInvoiced  Status = "Invoiced"
)

// Visit is one supplier call at a care home. Once invoiced the visit and
// its items are immutable.
type Visit struct {
	ID         snowflake.ID  `gorm:"primaryKey" json:"id"`
	CareHomeID snowflake.ID  `gorm:"not null" json:"careHomeId"`
	SupplierID snowflake.ID  `gorm:"not null" json:"supplierId"`
	VisitedAt  time.Time     `gorm:"not null" json:"visitedAt"`
	Notes      string        `json:"notes"`
	Status     Status        `gorm:"not null;default:'Draft'" json:"status"`
	LockedAt   *time.Time    `json:"lockedAt"`
	InvoiceID  *snowflake.ID `json:"invoiceId"`
	CreatedBy  string        `json:"createdBy"`
	CreatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (Visit) TableName() string { return "visits" }

func (v Visit) Editable() bool { return v.Status != StatusInvoiced }

type VisitItem struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	VisitID     snowflake.ID    `gorm:"not null" json:"visitId"`
	ResidentID  snowflake.ID    `gorm:"not null" json:"residentId"`
	Description string          `gorm:"not null" json:"description"`
	Qty         decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"qty"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unitPrice"`
	VatRate     decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"vatRate"`
	LineTotal   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"lineTotal"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (VisitItem) TableName() string { return "visit_items" }

// LineTotal is qty x unit price, inclusive of VAT.
func ComputeLineTotal(qty, unitPrice, vatRate decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	hundred := decimal.NewFromInt(100)
	return qty.Mul(unitPrice).Mul(one.Add(vatRate.Div(hundred)))
}

type ItemWithResident struct {
	VisitItem
	Resident *residentdomain.Resident `json:"resident"`
}

// VisitDetail is the list/read shape with the supplier and item rows
// joined in.
type VisitDetail struct {
	Visit
	Supplier *supplierdomain.Supplier `json:"supplier"`
	Items    []ItemWithResident       `json:"items"`
}
