package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/sundries-services/sundries/internal/auth/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, user *domain.AppUser) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, user *domain.AppUser) error {
	return db.WithContext(ctx).Save(user).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.AppUser, error) {
	var user domain.AppUser
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *repo) FindByOID(ctx context.Context, db *gorm.DB, oid string) (*domain.AppUser, error) {
	var user domain.AppUser
	err := db.WithContext(ctx).
		Where("oid = ?", oid).
		Take(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *repo) ListUsers(ctx context.Context, db *gorm.DB) ([]domain.AppUser, error) {
	var users []domain.AppUser
	err := db.WithContext(ctx).
		Model(&domain.AppUser{}).
		Order("upn asc").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repo) ListRolesByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]domain.UserHomeRole, error) {
	var roles []domain.UserHomeRole
	err := db.WithContext(ctx).
		Model(&domain.UserHomeRole{}).
		Where("user_id = ?", userID).
		Order("care_home_id asc").
		Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *repo) ListRolesByUsers(ctx context.Context, db *gorm.DB, userIDs []snowflake.ID) ([]domain.UserHomeRole, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var roles []domain.UserHomeRole
	err := db.WithContext(ctx).
		Model(&domain.UserHomeRole{}).
		Where("user_id IN ?", userIDs).
		Order("care_home_id asc").
		Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *repo) DeleteRolesByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) error {
	return db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.UserHomeRole{}).Error
}

func (r *repo) InsertRoles(ctx context.Context, db *gorm.DB, roles []domain.UserHomeRole) error {
	if len(roles) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&roles).Error
}

func (r *repo) HasHomeRole(ctx context.Context, db *gorm.DB, userID, careHomeID snowflake.ID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.UserHomeRole{}).
		Where("user_id = ? AND care_home_id = ?", userID, careHomeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
