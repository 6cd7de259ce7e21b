package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/sundries-services/sundries/internal/carehome/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, home *domain.CareHome) error {
	return db.WithContext(ctx).Create(home).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.CareHome, error) {
	var home domain.CareHome
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, region, is_active, created_at, updated_at
		 FROM care_homes WHERE id = ?`,
		id,
	).Scan(&home).Error
	if err != nil {
		return nil, err
	}
	if home.ID == 0 {
		return nil, nil
	}
	return &home, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.CareHome, error) {
	var homes []domain.CareHome
	err := db.WithContext(ctx).
		Model(&domain.CareHome{}).
		Order("name asc").
		Find(&homes).Error
	if err != nil {
		return nil, err
	}
	return homes, nil
}
