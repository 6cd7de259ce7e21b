package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/sundries-services/sundries/internal/visitsheet/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, sheet *domain.VisitSheet) error {
	return db.WithContext(ctx).Create(sheet).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.VisitSheet, error) {
	var sheet domain.VisitSheet
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&sheet).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &sheet, nil
}

func (r *repo) FindForVisit(ctx context.Context, db *gorm.DB, careHomeID, vendorID snowflake.ID, day time.Time) (*domain.VisitSheet, error) {
	var sheet domain.VisitSheet
	err := db.WithContext(ctx).
		Where("care_home_id = ? AND vendor_id = ? AND visit_date = ?", careHomeID, vendorID, day).
		Take(&sheet).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &sheet, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.SheetFilter) ([]domain.VisitSheet, error) {
	stmt := db.WithContext(ctx).Model(&domain.VisitSheet{})
	if filter.CareHomeID != 0 {
		stmt = stmt.Where("care_home_id = ?", filter.CareHomeID)
	}
	if filter.VendorID != 0 {
		stmt = stmt.Where("vendor_id = ?", filter.VendorID)
	}

	var sheets []domain.VisitSheet
	err := stmt.
		Order("visit_date desc, created_at desc").
		Find(&sheets).Error
	if err != nil {
		return nil, err
	}
	return sheets, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, sheet *domain.VisitSheet) error {
	return db.WithContext(ctx).Save(sheet).Error
}
