package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	carehomedomain "github.com/sundries-services/sundries/internal/carehome/domain"
)

// AppUser is a directory user known to this service. Users are created
// lazily the first time a verified token for their object id is seen, or
// explicitly by an admin.
type AppUser struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	OID         string       `gorm:"column:oid;not null;uniqueIndex:ux_app_users_oid" json:"oid"`
	UPN         string       `gorm:"column:upn" json:"upn"`
	DisplayName string       `json:"displayName"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (AppUser) TableName() string { return "app_users" }

// UserHomeRole grants a user a role at one care home. Admins bypass
// these grants entirely.
type UserHomeRole struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID     snowflake.ID `gorm:"not null;uniqueIndex:ux_user_home_roles" json:"userId"`
	CareHomeID snowflake.ID `gorm:"not null;uniqueIndex:ux_user_home_roles" json:"careHomeId"`
	Role       string       `gorm:"not null" json:"role"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (UserHomeRole) TableName() string { return "user_home_roles" }

type RoleWithHome struct {
	UserHomeRole
	CareHome *carehomedomain.CareHome `gorm:"-" json:"careHome"`
}

type UserWithRoles struct {
	AppUser
	HomeRoles []RoleWithHome `gorm:"-" json:"homeRoles"`
}
