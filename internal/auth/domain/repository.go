package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, user *AppUser) error
	Update(ctx context.Context, db *gorm.DB, user *AppUser) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*AppUser, error)
	FindByOID(ctx context.Context, db *gorm.DB, oid string) (*AppUser, error)
	ListUsers(ctx context.Context, db *gorm.DB) ([]AppUser, error)

	ListRolesByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]UserHomeRole, error)
	ListRolesByUsers(ctx context.Context, db *gorm.DB, userIDs []snowflake.ID) ([]UserHomeRole, error)
	DeleteRolesByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) error
	InsertRoles(ctx context.Context, db *gorm.DB, roles []UserHomeRole) error
	HasHomeRole(ctx context.Context, db *gorm.DB, userID, careHomeID snowflake.ID) (bool, error)
}
