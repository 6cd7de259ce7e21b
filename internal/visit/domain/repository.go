package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type VisitFilter struct {
	From       *time.Time
	To         *time.Time
	SupplierID snowflake.ID
	CareHomeID snowflake.ID
	Status     Status
	VisitID    snowflake.ID
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, visit *Visit) error
	Update(ctx context.Context, db *gorm.DB, visit *Visit) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Visit, error)
	List(ctx context.Context, db *gorm.DB, filter VisitFilter) ([]Visit, error)

	InsertItem(ctx context.Context, db *gorm.DB, item *VisitItem) error
	UpdateItem(ctx context.Context, db *gorm.DB, item *VisitItem) error
	FindItemByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*VisitItem, error)
	ListItemsByVisits(ctx context.Context, db *gorm.DB, visitIDs []snowflake.ID) ([]VisitItem, error)
}
