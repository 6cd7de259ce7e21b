package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/sundries-services/sundries/internal/resident/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListRosterByHome(ctx context.Context, db *gorm.DB, careHomeID snowflake.ID) ([]domain.RosterResident, error) {
	var residents []domain.RosterResident
	err := db.WithContext(ctx).
		Model(&domain.RosterResident{}).
		Where("care_home_id = ?", careHomeID).
		Order("room_number asc").
		Find(&residents).Error
	if err != nil {
		return nil, err
	}
	return residents, nil
}

func (r *repo) FindRosterByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.RosterResident, error) {
	var resident domain.RosterResident
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&resident).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &resident, nil
}

func (r *repo) FindRosterByRoomID(ctx context.Context, db *gorm.DB, rosterRoomID string) (*domain.RosterResident, error) {
	var resident domain.RosterResident
	err := db.WithContext(ctx).
		Where("roster_room_id = ?", rosterRoomID).
		Take(&resident).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &resident, nil
}

func (r *repo) FindRosterByAccountCode(ctx context.Context, db *gorm.DB, careHomeID snowflake.ID, accountCode string) (*domain.RosterResident, error) {
	if accountCode == "" {
		return nil, nil
	}
	var resident domain.RosterResident
	err := db.WithContext(ctx).
		Where("care_home_id = ? AND account_code = ?", careHomeID, accountCode).
		Take(&resident).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &resident, nil
}

func (r *repo) UpsertRoster(ctx context.Context, db *gorm.DB, resident *domain.RosterResident) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "roster_room_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"care_home_id",
			"roster_location_id",
			"room_number",
			"full_name",
			"account_code",
			"service_user_id",
			"is_vacant",
			"last_synced_at",
			"updated_at",
		}),
	}).Create(resident).Error
}

func (r *repo) ListConsentsByHome(ctx context.Context, db *gorm.DB, careHomeID snowflake.ID) ([]domain.ResidentConsent, error) {
	var consents []domain.ResidentConsent
	err := db.WithContext(ctx).
		Model(&domain.ResidentConsent{}).
		Where("care_home_id = ?", careHomeID).
		Order("room_number asc, full_name asc").
		Find(&consents).Error
	if err != nil {
		return nil, err
	}
	return consents, nil
}

func (r *repo) FindConsentByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.ResidentConsent, error) {
	var consent domain.ResidentConsent
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

func (r *repo) FindConsentsByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]domain.ResidentConsent, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var consents []domain.ResidentConsent
	err := db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&consents).Error
	if err != nil {
		return nil, err
	}
	return consents, nil
}

func (r *repo) InsertConsent(ctx context.Context, db *gorm.DB, consent *domain.ResidentConsent) error {
	return db.WithContext(ctx).Create(consent).Error
}

func (r *repo) UpdateConsent(ctx context.Context, db *gorm.DB, consent *domain.ResidentConsent) error {
	return db.WithContext(ctx).Save(consent).Error
}

func (r *repo) ListResidentsByHome(ctx context.Context, db *gorm.DB, careHomeID snowflake.ID) ([]domain.Resident, error) {
	var residents []domain.Resident
	err := db.WithContext(ctx).
		Model(&domain.Resident{}).
		Where("care_home_id = ? AND is_active = ?", careHomeID, true).
		Order("last_name asc, first_name asc").
		Find(&residents).Error
	if err != nil {
		return nil, err
	}
	return residents, nil
}

func (r *repo) FindResidentByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Resident, error) {
	var resident domain.Resident
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&resident).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &resident, nil
}

func (r *repo) InsertResident(ctx context.Context, db *gorm.DB, resident *domain.Resident) error {
	return db.WithContext(ctx).Create(resident).Error
}
