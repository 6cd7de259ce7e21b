package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type SaleFilter struct {
	CareHomeID snowflake.ID
	VendorID   snowflake.ID
	Invoiced   *bool
	From       *time.Time
	To         *time.Time
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, item *SaleItem) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*SaleItem, error)
	List(ctx context.Context, db *gorm.DB, filter SaleFilter) ([]SaleItem, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	// DeleteForSheet removes the items for (home, vendor, day) that
	// belong to the given roster residents.
	DeleteForSheet(ctx context.Context, db *gorm.DB, careHomeID, vendorID snowflake.ID, dayStart, dayEnd time.Time, residentIDs []snowflake.ID) error
	MarkInvoiced(ctx context.Context, db *gorm.DB, ids []snowflake.ID, invoiceNumber string) error
	// ListInvoiced returns items carrying an invoice number for the
	// given home (and vendor, when set).
	ListInvoiced(ctx context.Context, db *gorm.DB, careHomeID, vendorID snowflake.ID) ([]SaleItem, error)
}
