package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	ListRosterByHome(ctx context.Context, db *gorm.DB, careHomeID snowflake.ID) ([]RosterResident, error)
	FindRosterByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*RosterResident, error)
	FindRosterByRoomID(ctx context.Context, db *gorm.DB, rosterRoomID string) (*RosterResident, error)
	FindRosterByAccountCode(ctx context.Context, db *gorm.DB, careHomeID snowflake.ID, accountCode string) (*RosterResident, error)
	UpsertRoster(ctx context.Context, db *gorm.DB, resident *RosterResident) error

	ListConsentsByHome(ctx context.Context, db *gorm.DB, careHomeID snowflake.ID) ([]ResidentConsent, error)
	FindConsentByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ResidentConsent, error)
	FindConsentsByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]ResidentConsent, error)
	InsertConsent(ctx context.Context, db *gorm.DB, consent *ResidentConsent) error
	UpdateConsent(ctx context.Context, db *gorm.DB, consent *ResidentConsent) error

	ListResidentsByHome(ctx context.Context, db *gorm.DB, careHomeID snowflake.ID) ([]Resident, error)
	FindResidentByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Resident, error)
	InsertResident(ctx context.Context, db *gorm.DB, resident *Resident) error
}
