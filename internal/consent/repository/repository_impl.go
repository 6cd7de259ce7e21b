package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/sundries-services/sundries/internal/consent/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, consent *domain.Consent) error {
	return db.WithContext(ctx).Create(consent).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, consent *domain.Consent) error {
	return db.WithContext(ctx).Save(consent).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Consent, error) {
	var consent domain.Consent
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&consent).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &consent, nil
}

func (r *repo) ListByResident(ctx context.Context, db *gorm.DB, residentID snowflake.ID) ([]domain.Consent, error) {
	var consents []domain.Consent
	err := db.WithContext(ctx).
		Model(&domain.Consent{}).
		Where("resident_id = ?", residentID).
		Order("consent_given_at desc").
		Find(&consents).Error
	if err != nil {
		return nil, err
	}
	return consents, nil
}

func (r *repo) ListForPair(ctx context.Context, db *gorm.DB, residentID, supplierID snowflake.ID, serviceType string) ([]domain.Consent, error) {
	var consents []domain.Consent
	err := db.WithContext(ctx).
		Model(&domain.Consent{}).
		Where("resident_id = ? AND supplier_id = ? AND service_type = ?", residentID, supplierID, serviceType).
		Find(&consents).Error
	if err != nil {
		return nil, err
	}
	return consents, nil
}
