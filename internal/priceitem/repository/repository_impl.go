package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/sundries-services/sundries/internal/priceitem/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, item *domain.PriceItem) error {
	return db.WithContext(ctx).Create(item).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, item *domain.PriceItem) error {
	return db.WithContext(ctx).Save(item).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.PriceItem, error) {
	var item domain.PriceItem
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]domain.PriceItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []domain.PriceItem
	err := db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListByVendor(ctx context.Context, db *gorm.DB, vendorID snowflake.ID) ([]domain.PriceItem, error) {
	var items []domain.PriceItem
	err := db.WithContext(ctx).
		Model(&domain.PriceItem{}).
		Where("vendor_id = ?", vendorID).
		Order("description asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
