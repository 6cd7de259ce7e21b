package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	auditdomain "github.com/sundries-services/sundries/internal/audit/domain"
	auditservice "github.com/sundries-services/sundries/internal/audit/service"
	carehomedomain "github.com/sundries-services/sundries/internal/carehome/domain"
	carehomerepo "github.com/sundries-services/sundries/internal/carehome/repository"
	"github.com/sundries-services/sundries/internal/clock"
	consentdomain "github.com/sundries-services/sundries/internal/consent/domain"
	consentrepo "github.com/sundries-services/sundries/internal/consent/repository"
	consentservice "github.com/sundries-services/sundries/internal/consent/service"
	"github.com/sundries-services/sundries/internal/invoice/domain"
	"github.com/sundries-services/sundries/internal/invoice/repository"
	"github.com/sundries-services/sundries/internal/providers/pdf"
	residentdomain "github.com/sundries-services/sundries/internal/resident/domain"
	residentrepo "github.com/sundries-services/sundries/internal/resident/repository"
	supplierdomain "github.com/sundries-services/sundries/internal/supplier/domain"
	supplierrepo "github.com/sundries-services/sundries/internal/supplier/repository"
	visitdomain "github.com/sundries-services/sundries/internal/visit/domain"
	visitrepo "github.com/sundries-services/sundries/internal/visit/repository"
	visitservice "github.com/sundries-services/sundries/internal/visit/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type invoiceFixture struct {
	svc      domain.Service
	visits   visitdomain.Service
	audit    auditdomain.Recorder
	db       *gorm.DB
	clock    *clock.FakeClock
	home     carehomedomain.CareHome
	supplier supplierdomain.Supplier
	resident residentdomain.Resident
}

func setupInvoiceService(t *testing.T) *invoiceFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&carehomedomain.CareHome{},
		&supplierdomain.Supplier{},
		&residentdomain.Resident{},
		&consentdomain.Consent{},
		&visitdomain.Visit{},
		&visitdomain.VisitItem{},
		&domain.Invoice{},
		&domain.InvoiceItem{},
		&auditdomain.AuditLog{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC))

	consentSvc := consentservice.New(consentservice.Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Clock:     fake,
		Repo:      consentrepo.Provide(),
		Residents: residentrepo.Provide(),
		Suppliers: supplierrepo.Provide(),
	})
	visitSvc := visitservice.New(visitservice.Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Clock:     fake,
		Repo:      visitrepo.Provide(),
		Suppliers: supplierrepo.Provide(),
		Residents: residentrepo.Provide(),
		CareHomes: carehomerepo.Provide(),
		Consents:  consentSvc,
	})
	audit := auditservice.New(auditservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fake,
	})
	svc := New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Clock:     fake,
		Repo:      repository.Provide(),
		Visits:    visitrepo.Provide(),
		Suppliers: supplierrepo.Provide(),
		CareHomes: carehomerepo.Provide(),
		Pdf:       &pdf.NoOpProvider{},
		Audit:     audit,
	})

	f := &invoiceFixture{svc: svc, visits: visitSvc, audit: audit, db: db, clock: fake}

	f.home = carehomedomain.CareHome{ID: node.Generate(), Name: "Oak House", Region: "UK South", IsActive: true, CreatedAt: fake.Now()}
	require.NoError(t, db.Create(&f.home).Error)
	f.supplier = supplierdomain.Supplier{ID: node.Generate(), Name: "Acme Chiropody", ServiceType: "chiropody", IsActive: true, CreatedAt: fake.Now()}
	require.NoError(t, db.Create(&f.supplier).Error)
	f.resident = residentdomain.Resident{ID: node.Generate(), CareHomeID: f.home.ID, FirstName: "Ada", LastName: "Byron", IsActive: true, CreatedAt: fake.Now()}
	require.NoError(t, db.Create(&f.resident).Error)

	_, err = consentSvc.Create(context.Background(), consentdomain.CreateConsentRequest{
		ResidentID:     f.resident.ID.String(),
		SupplierID:     f.supplier.ID.String(),
		ConsentGivenAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	return f
}

// confirmedVisit creates a confirmed visit with one item per line.
func (f *invoiceFixture) confirmedVisit(t *testing.T, visitedAt time.Time, lines ...[3]int64) visitdomain.Visit {
	t.Helper()
	ctx := context.Background()
	visit, err := f.visits.Create(ctx, visitdomain.CreateVisitRequest{
		CareHomeID: f.home.ID.String(),
		SupplierID: f.supplier.ID.String(),
		VisitedAt:  visitedAt,
	})
	require.NoError(t, err)
	for _, line := range lines {
		_, err := f.visits.AddItem(ctx, visit.ID.String(), visitdomain.AddItemRequest{
			ResidentID:  f.resident.ID.String(),
			Description: "Treatment",
			Qty:         decimal.NewFromInt(line[0]),
			UnitPrice:   decimal.NewFromInt(line[1]),
			VatRate:     decimal.NewFromInt(line[2]),
		})
		require.NoError(t, err)
	}
	confirmed, err := f.visits.Confirm(ctx, visit.ID.String())
	require.NoError(t, err)
	return confirmed
}

func TestGenerateBillsConfirmedItemsAndLocksVisits(t *testing.T) {
	f := setupInvoiceService(t)
	visit := f.confirmedVisit(t, time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
		[3]int64{2, 10, 20},
		[3]int64{1, 5, 0},
	)

	result, err := f.svc.Generate(context.Background(), domain.GenerateRequest{
		SupplierID: f.supplier.ID.String(),
		CareHomeID: f.home.ID.String(),
		From:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		To:         time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "ACMECH-202403-0001", result.Invoice.InvoiceNo)
	assert.Equal(t, domain.StatusIssued, result.Invoice.Status)
	assert.Len(t, result.Items, 2)
	assert.True(t, result.Invoice.Subtotal.Equal(decimal.NewFromInt(25)), "subtotal %s", result.Invoice.Subtotal)
	assert.True(t, result.Invoice.VatTotal.Equal(decimal.NewFromInt(4)), "vat %s", result.Invoice.VatTotal)
	assert.True(t, result.Invoice.Total.Equal(decimal.NewFromInt(29)), "total %s", result.Invoice.Total)

	var locked visitdomain.Visit
	require.NoError(t, f.db.First(&locked, "id = ?", visit.ID).Error)
	assert.Equal(t, visitdomain.StatusInvoiced, locked.Status)
	require.NotNil(t, locked.LockedAt)
	require.NotNil(t, locked.InvoiceID)
	assert.Equal(t, result.Invoice.ID, *locked.InvoiceID)
}

func TestGenerateWithoutEligibleItems(t *testing.T) {
	f := setupInvoiceService(t)
	f.confirmedVisit(t, time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC), [3]int64{1, 10, 0})

	req := domain.GenerateRequest{
		SupplierID: f.supplier.ID.String(),
		CareHomeID: f.home.ID.String(),
		From:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		To:         time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC),
	}
	_, err := f.svc.Generate(context.Background(), req)
	require.NoError(t, err)

	_, err = f.svc.Generate(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrNoEligibleItems)
}

func TestGenerateNumbersSequentiallyWithinMonth(t *testing.T) {
	f := setupInvoiceService(t)
	req := domain.GenerateRequest{
		SupplierID: f.supplier.ID.String(),
		CareHomeID: f.home.ID.String(),
		From:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		To:         time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC),
	}

	f.confirmedVisit(t, time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC), [3]int64{1, 10, 0})
	first, err := f.svc.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "ACMECH-202403-0001", first.Invoice.InvoiceNo)

	f.confirmedVisit(t, time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC), [3]int64{1, 10, 0})
	second, err := f.svc.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "ACMECH-202403-0002", second.Invoice.InvoiceNo)

	// A new month starts its own sequence.
	f.confirmedVisit(t, time.Date(2024, 4, 2, 9, 0, 0, 0, time.UTC), [3]int64{1, 10, 0})
	april, err := f.svc.Generate(context.Background(), domain.GenerateRequest{
		SupplierID: f.supplier.ID.String(),
		CareHomeID: f.home.ID.String(),
		From:       time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		To:         time.Date(2024, 4, 30, 23, 59, 59, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "ACMECH-202404-0001", april.Invoice.InvoiceNo)
}

func TestGenerateValidatesPeriod(t *testing.T) {
	f := setupInvoiceService(t)
	_, err := f.svc.Generate(context.Background(), domain.GenerateRequest{
		SupplierID: f.supplier.ID.String(),
		CareHomeID: f.home.ID.String(),
		From:       time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		To:         time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestGetByIDReturnsDetail(t *testing.T) {
	f := setupInvoiceService(t)
	f.confirmedVisit(t, time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC), [3]int64{2, 15, 20})

	result, err := f.svc.Generate(context.Background(), domain.GenerateRequest{
		SupplierID: f.supplier.ID.String(),
		CareHomeID: f.home.ID.String(),
		From:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		To:         time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC),
	})
	require.NoError(t, err)

	detail, err := f.svc.GetByID(context.Background(), result.Invoice.ID.String())
	require.NoError(t, err)
	require.NotNil(t, detail.Supplier)
	assert.Equal(t, f.supplier.Name, detail.Supplier.Name)
	require.NotNil(t, detail.CareHome)
	assert.Equal(t, f.home.Name, detail.CareHome.Name)
	require.Len(t, detail.Items, 1)
	assert.True(t, detail.Items[0].LineTotal.Equal(decimal.NewFromInt(36)), "line total %s", detail.Items[0].LineTotal)
}

func TestGetByIDUnknownInvoice(t *testing.T) {
	f := setupInvoiceService(t)
	_, err := f.svc.GetByID(context.Background(), "9999999999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
