package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type InvoiceFilter struct {
	SupplierID snowflake.ID
	CareHomeID snowflake.ID
	Status     Status
	From       *time.Time
	To         *time.Time
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	List(ctx context.Context, db *gorm.DB, filter InvoiceFilter) ([]Invoice, error)
	// CountByPrefix counts a supplier's invoices whose number starts with
	// the given prefix.
	CountByPrefix(ctx context.Context, db *gorm.DB, supplierID snowflake.ID, prefix string) (int64, error)

	InsertItem(ctx context.Context, db *gorm.DB, item *InvoiceItem) error
	ListItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) ([]InvoiceItem, error)
	// InvoicedVisitItemIDs reports which of the given visit items already
	// appear on an invoice.
	InvoicedVisitItemIDs(ctx context.Context, db *gorm.DB, visitItemIDs []snowflake.ID) (map[snowflake.ID]bool, error)
}
