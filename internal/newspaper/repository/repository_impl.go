package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/sundries-services/sundries/internal/newspaper/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

var weekdayColumns = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true,
	"thursday": true, "friday": true, "saturday": true, "sunday": true,
}

func (r *repo) ListTitles(ctx context.Context, db *gorm.DB) ([]domain.Newspaper, error) {
	var titles []domain.Newspaper
	err := db.WithContext(ctx).
		Model(&domain.Newspaper{}).
		Where("is_active = ?", true).
		Order("sort asc").
		Find(&titles).Error
	if err != nil {
		return nil, err
	}
	return titles, nil
}

func (r *repo) FindTitleByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Newspaper, error) {
	var title domain.Newspaper
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&title).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &title, nil
}

func (r *repo) ListOrders(ctx context.Context, db *gorm.DB, filter domain.OrderFilter) ([]domain.NewspaperOrder, error) {
	stmt := db.WithContext(ctx).Model(&domain.NewspaperOrder{})
	if filter.CareHomeID != 0 {
		stmt = stmt.Where("care_home_id = ?", filter.CareHomeID)
	}
	if filter.RosterResidentID != 0 {
		stmt = stmt.Where("roster_resident_id = ?", filter.RosterResidentID)
	}
	if filter.Weekday != "" && weekdayColumns[filter.Weekday] {
		stmt = stmt.Where(filter.Weekday+" = ?", true)
	}

	var orders []domain.NewspaperOrder
	err := stmt.
		Order("roster_resident_id asc, item_title asc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) FindOrder(ctx context.Context, db *gorm.DB, rosterResidentID, newspaperID snowflake.ID) (*domain.NewspaperOrder, error) {
	var order domain.NewspaperOrder
	err := db.WithContext(ctx).
		Where("roster_resident_id = ? AND newspaper_id = ?", rosterResidentID, newspaperID).
		Take(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *repo) InsertOrder(ctx context.Context, db *gorm.DB, order *domain.NewspaperOrder) error {
	return db.WithContext(ctx).Create(order).Error
}

func (r *repo) UpdateOrder(ctx context.Context, db *gorm.DB, order *domain.NewspaperOrder) error {
	return db.WithContext(ctx).Save(order).Error
}
