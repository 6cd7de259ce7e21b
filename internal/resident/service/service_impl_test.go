package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	auditdomain "github.com/sundries-services/sundries/internal/audit/domain"
	auditservice "github.com/sundries-services/sundries/internal/audit/service"
	carehomedomain "github.com/sundries-services/sundries/internal/carehome/domain"
	"github.com/sundries-services/sundries/internal/clock"
	"github.com/sundries-services/sundries/internal/resident/domain"
	"github.com/sundries-services/sundries/internal/resident/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type residentFixture struct {
	svc   domain.Service
	db    *gorm.DB
	node  *snowflake.Node
	clock *clock.FakeClock
	home  carehomedomain.CareHome
}

func setupResidentService(t *testing.T) *residentFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&carehomedomain.CareHome{},
		&domain.RosterResident{},
		&domain.ResidentConsent{},
		&domain.Resident{},
		&auditdomain.AuditLog{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC))

	audit := auditservice.New(auditservice.Params{DB: db, Log: zap.NewNop(), GenID: node, Clock: fake})
	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fake,
		Repo:  repository.Provide(),
		Audit: audit,
	})

	f := &residentFixture{svc: svc, db: db, node: node, clock: fake}
	f.home = carehomedomain.CareHome{ID: node.Generate(), Name: "Oak House", Region: "UK South", IsActive: true, CreatedAt: fake.Now()}
	require.NoError(t, db.Create(&f.home).Error)
	return f
}

func (f *residentFixture) seedRoster(t *testing.T, room, name, accountCode string, vacant bool) domain.RosterResident {
	t.Helper()
	resident := domain.RosterResident{
		ID:               f.node.Generate(),
		CareHomeID:       f.home.ID,
		RosterLocationID: "loc-1",
		RosterRoomID:     "room-" + room,
		RoomNumber:       room,
		FullName:         name,
		AccountCode:      accountCode,
		IsVacant:         vacant,
		CreatedAt:        f.clock.Now(),
		UpdatedAt:        f.clock.Now(),
	}
	require.NoError(t, f.db.Create(&resident).Error)
	return resident
}

func TestBootstrapConsentsCreatesRows(t *testing.T) {
	f := setupResidentService(t)
	f.seedRoster(t, "1", "Ada Byron", "AC100", false)
	f.seedRoster(t, "2", "Mary Shelley", "AC200", false)
	f.seedRoster(t, "3", "", "", true)

	result, err := f.svc.BootstrapConsents(context.Background(), f.home.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 0, result.Deactivated)

	consents, err := f.svc.ListConsents(context.Background(), f.home.ID.String())
	require.NoError(t, err)
	require.Len(t, consents, 2)
	for _, consent := range consents {
		assert.True(t, consent.CurrentResident)
		require.NotNil(t, consent.RosterResidentID)
	}
}

func TestBootstrapConsentsUpdatesAndDeactivates(t *testing.T) {
	f := setupResidentService(t)
	ctx := context.Background()
	stay := f.seedRoster(t, "1", "Ada Byron", "AC100", false)
	leave := f.seedRoster(t, "2", "Mary Shelley", "AC200", false)

	_, err := f.svc.BootstrapConsents(ctx, f.home.ID.String())
	require.NoError(t, err)

	// The second resident moves out and the first changes rooms.
	require.NoError(t, f.db.Model(&domain.RosterResident{}).
		Where("id = ?", leave.ID).
		Update("is_vacant", true).Error)
	require.NoError(t, f.db.Model(&domain.RosterResident{}).
		Where("id = ?", stay.ID).
		Update("room_number", "5").Error)

	result, err := f.svc.BootstrapConsents(ctx, f.home.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Deactivated)

	consents, err := f.svc.ListConsents(ctx, f.home.ID.String())
	require.NoError(t, err)
	require.Len(t, consents, 2)
	byRoster := make(map[snowflake.ID]domain.ResidentConsent)
	for _, consent := range consents {
		require.NotNil(t, consent.RosterResidentID)
		byRoster[*consent.RosterResidentID] = consent
	}
	assert.Equal(t, "5", byRoster[stay.ID].RoomNumber)
	assert.True(t, byRoster[stay.ID].CurrentResident)
	assert.False(t, byRoster[leave.ID].CurrentResident)
}

func TestBootstrapConsentsIsIdempotent(t *testing.T) {
	f := setupResidentService(t)
	ctx := context.Background()
	f.seedRoster(t, "1", "Ada Byron", "AC100", false)

	_, err := f.svc.BootstrapConsents(ctx, f.home.ID.String())
	require.NoError(t, err)
	result, err := f.svc.BootstrapConsents(ctx, f.home.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 1, result.Updated)

	consents, err := f.svc.ListConsents(ctx, f.home.ID.String())
	require.NoError(t, err)
	assert.Len(t, consents, 1)
}

func TestPatchConsentFlags(t *testing.T) {
	f := setupResidentService(t)
	ctx := context.Background()
	f.seedRoster(t, "1", "Ada Byron", "AC100", false)
	_, err := f.svc.BootstrapConsents(ctx, f.home.ID.String())
	require.NoError(t, err)

	consents, err := f.svc.ListConsents(ctx, f.home.ID.String())
	require.NoError(t, err)
	require.Len(t, consents, 1)

	yes := true
	note := "  left foot only  "
	patched, err := f.svc.PatchConsent(ctx, consents[0].ID.String(), domain.PatchConsentRequest{
		ChiropodyConsent: &yes,
		ChiropodyNote:    &note,
	})
	require.NoError(t, err)
	assert.True(t, patched.ChiropodyConsent)
	assert.Equal(t, "left foot only", patched.ChiropodyNote)
	assert.False(t, patched.ShopConsent)
}

func TestPatchConsentUnknownID(t *testing.T) {
	f := setupResidentService(t)
	_, err := f.svc.PatchConsent(context.Background(), "9999999999", domain.PatchConsentRequest{})
	assert.ErrorIs(t, err, domain.ErrConsentNotFound)
}

func TestCreateResidentValidatesName(t *testing.T) {
	f := setupResidentService(t)
	_, err := f.svc.CreateResident(context.Background(), domain.CreateResidentRequest{
		CareHomeID: f.home.ID.String(),
		FirstName:  "  ",
		LastName:   "Byron",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	resident, err := f.svc.CreateResident(context.Background(), domain.CreateResidentRequest{
		CareHomeID: f.home.ID.String(),
		FirstName:  "Ada",
		LastName:   "Byron",
	})
	require.NoError(t, err)
	assert.True(t, resident.IsActive)
}
