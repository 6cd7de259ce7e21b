package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, home *CareHome) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*CareHome, error)
	List(ctx context.Context, db *gorm.DB) ([]CareHome, error)
}
