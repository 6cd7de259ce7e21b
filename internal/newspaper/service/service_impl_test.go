package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	carehomedomain "github.com/sundries-services/sundries/internal/carehome/domain"
	"github.com/sundries-services/sundries/internal/clock"
	"github.com/sundries-services/sundries/internal/newspaper/domain"
	"github.com/sundries-services/sundries/internal/newspaper/repository"
	residentdomain "github.com/sundries-services/sundries/internal/resident/domain"
	residentrepo "github.com/sundries-services/sundries/internal/resident/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type newspaperFixture struct {
	svc      domain.Service
	db       *gorm.DB
	node     *snowflake.Node
	clock    *clock.FakeClock
	home     carehomedomain.CareHome
	resident residentdomain.RosterResident
	paper    domain.Newspaper
}

func setupNewspaperService(t *testing.T) *newspaperFixture {
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
		&domain.Newspaper{},
		&domain.NewspaperOrder{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	// 2024-03-01 is a Friday.
	fake := clock.NewFakeClock(time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC))

	svc := New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Clock:     fake,
		Repo:      repository.Provide(),
		Residents: residentrepo.Provide(),
	})

	f := &newspaperFixture{svc: svc, db: db, node: node, clock: fake}

	f.home = carehomedomain.CareHome{ID: node.Generate(), Name: "Oak House", Region: "UK South", IsActive: true, CreatedAt: fake.Now()}
	require.NoError(t, db.Create(&f.home).Error)
	f.resident = residentdomain.RosterResident{
		ID:               node.Generate(),
		CareHomeID:       f.home.ID,
		RosterLocationID: "l1",
		RosterRoomID:     "r1",
		RoomNumber:       "1",
		FullName:         "Ada Byron",
		CreatedAt:        fake.Now(),
		UpdatedAt:        fake.Now(),
	}
	require.NoError(t, db.Create(&f.resident).Error)
	f.paper = domain.Newspaper{ID: node.Generate(), Title: "The Daily Post", Price: decimal.RequireFromString("1.20"), IsActive: true, CreatedAt: fake.Now()}
	require.NoError(t, db.Create(&f.paper).Error)

	return f
}

func TestUpsertOrderInsertsThenUpdates(t *testing.T) {
	f := setupNewspaperService(t)
	ctx := context.Background()
	yes := true

	order, err := f.svc.UpsertOrder(ctx, domain.UpsertOrderRequest{
		CareHomeID:       f.home.ID.String(),
		RosterResidentID: f.resident.ID.String(),
		NewspaperID:      f.paper.ID.String(),
		ItemTitle:        f.paper.Title,
		Price:            f.paper.Price,
		Monday:           &yes,
	})
	require.NoError(t, err)
	assert.True(t, order.Monday)
	assert.False(t, order.Friday)

	// Same resident and title again updates the existing row.
	updated, err := f.svc.UpsertOrder(ctx, domain.UpsertOrderRequest{
		CareHomeID:       f.home.ID.String(),
		RosterResidentID: f.resident.ID.String(),
		NewspaperID:      f.paper.ID.String(),
		ItemTitle:        f.paper.Title,
		Price:            decimal.RequireFromString("1.50"),
		Friday:           &yes,
	})
	require.NoError(t, err)
	assert.Equal(t, order.ID, updated.ID)
	assert.True(t, updated.Monday)
	assert.True(t, updated.Friday)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("1.50")), "price %s", updated.Price)

	var count int64
	require.NoError(t, f.db.Model(&domain.NewspaperOrder{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpsertOrderValidatesTitle(t *testing.T) {
	f := setupNewspaperService(t)
	_, err := f.svc.UpsertOrder(context.Background(), domain.UpsertOrderRequest{
		CareHomeID:       f.home.ID.String(),
		RosterResidentID: f.resident.ID.String(),
		NewspaperID:      f.paper.ID.String(),
		ItemTitle:        "   ",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTitle)
}

func TestTodayOrdersFiltersByWeekday(t *testing.T) {
	f := setupNewspaperService(t)
	ctx := context.Background()
	yes := true

	_, err := f.svc.UpsertOrder(ctx, domain.UpsertOrderRequest{
		CareHomeID:       f.home.ID.String(),
		RosterResidentID: f.resident.ID.String(),
		NewspaperID:      f.paper.ID.String(),
		ItemTitle:        f.paper.Title,
		Price:            f.paper.Price,
		Friday:           &yes,
	})
	require.NoError(t, err)

	weekend := domain.Newspaper{ID: f.node.Generate(), Title: "The Sunday Herald", Price: decimal.RequireFromString("2.50"), IsActive: true, CreatedAt: f.clock.Now()}
	require.NoError(t, f.db.Create(&weekend).Error)
	_, err = f.svc.UpsertOrder(ctx, domain.UpsertOrderRequest{
		CareHomeID:       f.home.ID.String(),
		RosterResidentID: f.resident.ID.String(),
		NewspaperID:      weekend.ID.String(),
		ItemTitle:        weekend.Title,
		Price:            weekend.Price,
		Sunday:           &yes,
	})
	require.NoError(t, err)

	today, err := f.svc.TodayOrders(ctx, f.home.ID.String())
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, "The Daily Post", today[0].ItemTitle)
	require.NotNil(t, today[0].Resident)
	assert.Equal(t, "Ada Byron", today[0].Resident.FullName)

	// Two days later it is Sunday.
	f.clock.Advance(48 * time.Hour)
	today, err = f.svc.TodayOrders(ctx, f.home.ID.String())
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, "The Sunday Herald", today[0].ItemTitle)
}

func TestTodayOrdersNeedsCareHome(t *testing.T) {
	f := setupNewspaperService(t)
	_, err := f.svc.TodayOrders(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrCareHomeNeeded)
}
