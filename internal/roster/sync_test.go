package roster

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	auditdomain "github.com/sundries-services/sundries/internal/audit/domain"
	auditservice "github.com/sundries-services/sundries/internal/audit/service"
	carehomedomain "github.com/sundries-services/sundries/internal/carehome/domain"
	carehomerepo "github.com/sundries-services/sundries/internal/carehome/repository"
	"github.com/sundries-services/sundries/internal/clock"
	residentdomain "github.com/sundries-services/sundries/internal/resident/domain"
	residentrepo "github.com/sundries-services/sundries/internal/resident/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type stubClient struct {
	items []ResidentItem
	err   error
}

func (c *stubClient) FetchResidents(ctx context.Context) ([]ResidentItem, error) {
	return c.items, c.err
}

func setupSyncer(t *testing.T, client Client) (Syncer, *gorm.DB, carehomedomain.CareHome) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&carehomedomain.CareHome{},
		&residentdomain.RosterResident{},
		&auditdomain.AuditLog{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC))
	audit := auditservice.New(auditservice.Params{DB: db, Log: zap.NewNop(), GenID: node, Clock: fake})

	home := carehomedomain.CareHome{ID: node.Generate(), Name: "Oak House", Region: "UK South", IsActive: true, CreatedAt: fake.Now()}
	require.NoError(t, db.Create(&home).Error)

	syncer := NewSyncer(SyncParams{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Clock:     fake,
		Client:    client,
		Residents: residentrepo.Provide(),
		CareHomes: carehomerepo.Provide(),
		Audit:     audit,
	})
	return syncer, db, home
}

func TestSyncUpsertsMatchedHomes(t *testing.T) {
	client := &stubClient{items: []ResidentItem{
		{RosterRoomID: "r1", RosterLocationID: "l1", CareHomeName: "OAK HOUSE", RoomNumber: "1", FullName: "Ada Byron", AccountCode: "AC100"},
		{RosterRoomID: "r2", RosterLocationID: "l1", CareHomeName: "Oak House", RoomNumber: "2", IsVacant: true},
		{RosterRoomID: "r3", RosterLocationID: "l2", CareHomeName: "Elm Lodge", RoomNumber: "1", FullName: "Mary Shelley"},
	}}
	syncer, db, home := setupSyncer(t, client)

	result, err := syncer.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Synced)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 3, result.Total)

	var rows []residentdomain.RosterResident
	require.NoError(t, db.Order("room_number asc").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, home.ID, rows[0].CareHomeID)
	assert.Equal(t, "Ada Byron", rows[0].FullName)
	assert.True(t, rows[1].IsVacant)
	require.NotNil(t, rows[0].LastSyncedAt)
}

func TestSyncUpdatesExistingRoom(t *testing.T) {
	client := &stubClient{items: []ResidentItem{
		{RosterRoomID: "r1", RosterLocationID: "l1", CareHomeName: "Oak House", RoomNumber: "1", FullName: "Ada Byron"},
	}}
	syncer, db, _ := setupSyncer(t, client)

	_, err := syncer.Sync(context.Background())
	require.NoError(t, err)

	// The occupant moved out; the next sync flips the same row to vacant.
	client.items[0].FullName = ""
	client.items[0].IsVacant = true
	result, err := syncer.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Synced)

	var rows []residentdomain.RosterResident
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].IsVacant)
	assert.Empty(t, rows[0].FullName)
}

func TestSyncPropagatesFetchError(t *testing.T) {
	client := &stubClient{err: errors.New("provider unavailable")}
	syncer, _, _ := setupSyncer(t, client)

	_, err := syncer.Sync(context.Background())
	assert.EqualError(t, err, "provider unavailable")
}
