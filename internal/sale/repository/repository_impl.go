package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/sundries-services/sundries/internal/sale/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, item *domain.SaleItem) error {
	return db.WithContext(ctx).Create(item).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.SaleItem, error) {
	var item domain.SaleItem
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

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.SaleFilter) ([]domain.SaleItem, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.SaleItem{}).
		Where("care_home_id = ?", filter.CareHomeID)
	if filter.VendorID != 0 {
		stmt = stmt.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.Invoiced != nil {
		stmt = stmt.Where("invoiced = ?", *filter.Invoiced)
	}
	if filter.From != nil {
		stmt = stmt.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		stmt = stmt.Where("date <= ?", *filter.To)
	}

	var items []domain.SaleItem
	err := stmt.
		Order("date desc, created_at desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.SaleItem{}).Error
}

func (r *repo) DeleteForSheet(ctx context.Context, db *gorm.DB, careHomeID, vendorID snowflake.ID, dayStart, dayEnd time.Time, residentIDs []snowflake.ID) error {
	if len(residentIDs) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Where("care_home_id = ? AND vendor_id = ? AND date >= ? AND date < ? AND roster_resident_id IN ?",
			careHomeID, vendorID, dayStart, dayEnd, residentIDs).
		Delete(&domain.SaleItem{}).Error
}

func (r *repo) MarkInvoiced(ctx context.Context, db *gorm.DB, ids []snowflake.ID, invoiceNumber string) error {
	if len(ids) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Model(&domain.SaleItem{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"invoiced":       true,
			"invoice_number": invoiceNumber,
		}).Error
}

func (r *repo) ListInvoiced(ctx context.Context, db *gorm.DB, careHomeID, vendorID snowflake.ID) ([]domain.SaleItem, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.SaleItem{}).
		Where("care_home_id = ? AND invoice_number IS NOT NULL", careHomeID)
	if vendorID != 0 {
		stmt = stmt.Where("vendor_id = ?", vendorID)
	}

	var items []domain.SaleItem
	err := stmt.
		Order("date desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
