package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	carehomedomain "github.com/sundries-services/sundries/internal/carehome/domain"
	supplierdomain "github.com/sundries-services/sundries/internal/supplier/domain"
	visitdomain "github.com/sundries-services/sundries/internal/visit/domain"
)

type Status string

const (
	StatusDraft  Status = "Draft"
	StatusIssued Status = "Issued"
	StatusPaid   Status = "Paid"
)

// Invoice bills one supplier's confirmed visits at one care home over a
// period. InvoiceNo is {prefix}-{YYYYMM}-{seq}.
type Invoice struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	SupplierID  snowflake.ID    `gorm:"not null" json:"supplierId"`
	CareHomeID  snowflake.ID    `gorm:"not null" json:"careHomeId"`
	InvoiceNo   string          `gorm:"not null" json:"invoiceNo"`
	PeriodStart time.Time       `gorm:"not null" json:"periodStart"`
	PeriodEnd   time.Time       `gorm:"not null" json:"periodEnd"`
	IssuedAt    *time.Time      `json:"issuedAt"`
	Subtotal    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"subtotal"`
	VatTotal    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"vatTotal"`
	Total       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total"`
	Status      Status          `gorm:"not null;default:'Draft'" json:"status"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (Invoice) TableName() string { return "invoices" }

// InvoiceItem snapshots one visit item. VisitItemID is unique, which is
// what keeps a visit item from being billed twice.
type InvoiceItem struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	InvoiceID   snowflake.ID    `gorm:"not null" json:"invoiceId"`
	VisitItemID snowflake.ID    `gorm:"not null;uniqueIndex:ux_invoice_items_visit_item" json:"visitItemId"`
	Description string          `gorm:"not null" json:"description"`
	Qty         decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"qty"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unitPrice"`
	VatRate     decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"vatRate"`
	LineTotal   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"lineTotal"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (InvoiceItem) TableName() string { return "invoice_items" }

type InvoiceDetail struct {
	Invoice
	Supplier *supplierdomain.Supplier `json:"supplier"`
	CareHome *carehomedomain.CareHome `json:"careHome"`
	Items    []ItemWithVisitItem      `json:"items"`
}

type ItemWithVisitItem struct {
	InvoiceItem
	VisitItem *visitdomain.VisitItem `json:"visitItem"`
}
