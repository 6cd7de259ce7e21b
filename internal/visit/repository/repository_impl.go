package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/sundries-services/sundries/internal/visit/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, visit *domain.Visit) error {
	return db.WithContext(ctx).Create(visit).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, visit *domain.Visit) error {
	return db.WithContext(ctx).Save(visit).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Visit, error) {
	var visit domain.Visit
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&visit).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &visit, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.VisitFilter) ([]domain.Visit, error) {
	stmt := db.WithContext(ctx).Model(&domain.Visit{})
	if filter.VisitID != 0 {
		stmt = stmt.Where("id = ?", filter.VisitID)
	}
	if filter.From != nil {
		stmt = stmt.Where("visited_at >= ?", *filter.From)
	}
	if filter.To != nil {
		stmt = stmt.Where("visited_at <= ?", *filter.To)
	}
	if filter.SupplierID != 0 {
		stmt = stmt.Where("supplier_id = ?", filter.SupplierID)
	}
	if filter.CareHomeID != 0 {
		stmt = stmt.Where("care_home_id = ?", filter.CareHomeID)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}

	var visits []domain.Visit
	err := stmt.
		Order("visited_at desc").
		Find(&visits).Error
	if err != nil {
		return nil, err
	}
	return visits, nil
}

func (r *repo) InsertItem(ctx context.Context, db *gorm.DB, item *domain.VisitItem) error {
	return db.WithContext(ctx).Create(item).Error
}

func (r *repo) UpdateItem(ctx context.Context, db *gorm.DB, item *domain.VisitItem) error {
	return db.WithContext(ctx).Save(item).Error
}

func (r *repo) FindItemByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.VisitItem, error) {
	var item domain.VisitItem
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

func (r *repo) ListItemsByVisits(ctx context.Context, db *gorm.DB, visitIDs []snowflake.ID) ([]domain.VisitItem, error) {
	if len(visitIDs) == 0 {
		return nil, nil
	}
	var items []domain.VisitItem
	err := db.WithContext(ctx).
		Where("visit_id IN ?", visitIDs).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
