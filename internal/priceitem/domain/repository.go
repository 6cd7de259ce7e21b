package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, item *PriceItem) error
	Update(ctx context.Context, db *gorm.DB, item *PriceItem) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*PriceItem, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]PriceItem, error)
	ListByVendor(ctx context.Context, db *gorm.DB, vendorID snowflake.ID) ([]PriceItem, error)
}
