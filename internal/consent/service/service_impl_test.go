package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/sundries-services/sundries/internal/clock"
	"github.com/sundries-services/sundries/internal/consent/domain"
	"github.com/sundries-services/sundries/internal/consent/repository"
	residentdomain "github.com/sundries-services/sundries/internal/resident/domain"
	residentrepo "github.com/sundries-services/sundries/internal/resident/repository"
	supplierdomain "github.com/sundries-services/sundries/internal/supplier/domain"
	supplierrepo "github.com/sundries-services/sundries/internal/supplier/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupConsentService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node, *clock.FakeClock) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&domain.Consent{},
		&residentdomain.Resident{},
		&supplierdomain.Supplier{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	svc := New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Clock:     fake,
		Repo:      repository.Provide(),
		Residents: residentrepo.Provide(),
		Suppliers: supplierrepo.Provide(),
	})
	return svc, db, node, fake
}

func seedResidentAndSupplier(t *testing.T, db *gorm.DB, node *snowflake.Node) (residentdomain.Resident, supplierdomain.Supplier) {
	t.Helper()
	resident := residentdomain.Resident{
		ID:         node.Generate(),
		CareHomeID: node.Generate(),
		FirstName:  "Ada",
		LastName:   "Byron",
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, db.Create(&resident).Error)

	supplier := supplierdomain.Supplier{
		ID:          node.Generate(),
		Name:        "Acme Chiropody",
		ServiceType: "chiropody",
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, db.Create(&supplier).Error)
	return resident, supplier
}

func TestCreateConsentDefaultsServiceType(t *testing.T) {
	svc, db, node, _ := setupConsentService(t)
	resident, supplier := seedResidentAndSupplier(t, db, node)

	consent, err := svc.Create(context.Background(), domain.CreateConsentRequest{
		ResidentID:     resident.ID.String(),
		SupplierID:     supplier.ID.String(),
		ConsentGivenAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "chiropody", consent.ServiceType)
	assert.Equal(t, domain.StatusActive, consent.Status)
}

func TestRequireActiveTemporalContainment(t *testing.T) {
	svc, db, node, _ := setupConsentService(t)
	resident, supplier := seedResidentAndSupplier(t, db, node)

	givenAt := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	expiresAt := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), domain.CreateConsentRequest{
		ResidentID:       resident.ID.String(),
		SupplierID:       supplier.ID.String(),
		ConsentGivenAt:   givenAt,
		ConsentExpiresAt: &expiresAt,
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Inside the window.
	err = svc.RequireActive(ctx, resident.ID, supplier.ID, "chiropody", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	assert.NoError(t, err)

	// Before the consent was given.
	err = svc.RequireActive(ctx, resident.ID, supplier.ID, "chiropody", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, domain.ErrNoActiveConsent)

	// The expiry instant itself still counts.
	err = svc.RequireActive(ctx, resident.ID, supplier.ID, "chiropody", expiresAt)
	assert.NoError(t, err)

	// Past expiry.
	err = svc.RequireActive(ctx, resident.ID, supplier.ID, "chiropody", expiresAt.Add(time.Hour))
	assert.ErrorIs(t, err, domain.ErrNoActiveConsent)

	// Wrong service type.
	err = svc.RequireActive(ctx, resident.ID, supplier.ID, "hairdressing", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, domain.ErrNoActiveConsent)
}

func TestRequireActiveIgnoresRevokedConsents(t *testing.T) {
	svc, db, node, _ := setupConsentService(t)
	resident, supplier := seedResidentAndSupplier(t, db, node)

	consent, err := svc.Create(context.Background(), domain.CreateConsentRequest{
		ResidentID:     resident.ID.String(),
		SupplierID:     supplier.ID.String(),
		ConsentGivenAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	revoked := domain.StatusRevoked
	_, err = svc.Update(context.Background(), consent.ID.String(), domain.UpdateConsentRequest{Status: &revoked})
	require.NoError(t, err)

	err = svc.RequireActive(context.Background(), resident.ID, supplier.ID, "chiropody", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, domain.ErrNoActiveConsent)
}

func TestCreateConsentUnknownResident(t *testing.T) {
	svc, db, node, _ := setupConsentService(t)
	_, supplier := seedResidentAndSupplier(t, db, node)

	_, err := svc.Create(context.Background(), domain.CreateConsentRequest{
		ResidentID:     node.Generate().String(),
		SupplierID:     supplier.ID.String(),
		ConsentGivenAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, residentdomain.ErrNotFound)
}
