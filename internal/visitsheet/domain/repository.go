package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type SheetFilter struct {
	CareHomeID snowflake.ID
	VendorID   snowflake.ID
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, sheet *VisitSheet) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*VisitSheet, error)
	// FindForVisit resolves the unique sheet for a (home, vendor, day)
	// triple; day must already be truncated to midnight UTC.
	FindForVisit(ctx context.Context, db *gorm.DB, careHomeID, vendorID snowflake.ID, day time.Time) (*VisitSheet, error)
	List(ctx context.Context, db *gorm.DB, filter SheetFilter) ([]VisitSheet, error)
	Update(ctx context.Context, db *gorm.DB, sheet *VisitSheet) error
}
