package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, consent *Consent) error
	Update(ctx context.Context, db *gorm.DB, consent *Consent) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Consent, error)
	ListByResident(ctx context.Context, db *gorm.DB, residentID snowflake.ID) ([]Consent, error)
	ListForPair(ctx context.Context, db *gorm.DB, residentID, supplierID snowflake.ID, serviceType string) ([]Consent, error)
}
