package service

import (
	"context"
	"fmt"
	"strings"
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
	priceitemdomain "github.com/sundries-services/sundries/internal/priceitem/domain"
	priceitemrepo "github.com/sundries-services/sundries/internal/priceitem/repository"
	"github.com/sundries-services/sundries/internal/providers/email"
	"github.com/sundries-services/sundries/internal/providers/pdf"
	residentdomain "github.com/sundries-services/sundries/internal/resident/domain"
	residentrepo "github.com/sundries-services/sundries/internal/resident/repository"
	"github.com/sundries-services/sundries/internal/sale/domain"
	"github.com/sundries-services/sundries/internal/sale/repository"
	vendordomain "github.com/sundries-services/sundries/internal/vendors/domain"
	vendorrepo "github.com/sundries-services/sundries/internal/vendors/repository"
	vendorservice "github.com/sundries-services/sundries/internal/vendors/service"
	visitsheetdomain "github.com/sundries-services/sundries/internal/visitsheet/domain"
	visitsheetrepo "github.com/sundries-services/sundries/internal/visitsheet/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type saleFixture struct {
	svc    domain.Service
	db     *gorm.DB
	node   *snowflake.Node
	clock  *clock.FakeClock
	home   carehomedomain.CareHome
	vendor vendordomain.Vendor
}

func setupSaleService(t *testing.T) *saleFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&carehomedomain.CareHome{},
		&vendordomain.Vendor{},
		&priceitemdomain.PriceItem{},
		&residentdomain.RosterResident{},
		&residentdomain.ResidentConsent{},
		&domain.SaleItem{},
		&visitsheetdomain.VisitSheet{},
		&auditdomain.AuditLog{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC))

	audit := auditservice.New(auditservice.Params{DB: db, Log: zap.NewNop(), GenID: node, Clock: fake})
	vendorSvc := vendorservice.New(vendorservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fake,
		Repo:  vendorrepo.Provide(),
	})
	svc := New(Params{
		DB:         db,
		Log:        zap.NewNop(),
		GenID:      node,
		Clock:      fake,
		Repo:       repository.Provide(),
		Residents:  residentrepo.Provide(),
		Vendors:    vendorrepo.Provide(),
		VendorSvc:  vendorSvc,
		PriceItems: priceitemrepo.Provide(),
		CareHomes:  carehomerepo.Provide(),
		Sheets:     visitsheetrepo.Provide(),
		Pdf:        &pdf.NoOpProvider{},
		Email:      &email.NoOpProvider{},
		Audit:      audit,
	})

	f := &saleFixture{svc: svc, db: db, node: node, clock: fake}

	f.home = carehomedomain.CareHome{ID: node.Generate(), Name: "Oak House", Region: "UK South", IsActive: true, CreatedAt: fake.Now()}
	require.NoError(t, db.Create(&f.home).Error)
	f.vendor = vendordomain.Vendor{ID: node.Generate(), Name: "Village Shop", AccountRef: "SHOP01", IsActive: true, CreatedAt: fake.Now()}
	require.NoError(t, db.Create(&f.vendor).Error)

	return f
}

func (f *saleFixture) seedRosterResident(t *testing.T, room, name, accountCode string) residentdomain.RosterResident {
	t.Helper()
	resident := residentdomain.RosterResident{
		ID:               f.node.Generate(),
		CareHomeID:       f.home.ID,
		RosterLocationID: "loc-1",
		RosterRoomID:     "room-" + room,
		RoomNumber:       room,
		FullName:         name,
		AccountCode:      accountCode,
		CreatedAt:        f.clock.Now(),
		UpdatedAt:        f.clock.Now(),
	}
	require.NoError(t, f.db.Create(&resident).Error)
	return resident
}

func (f *saleFixture) seedConsent(t *testing.T, rosterID *snowflake.ID, accountCode string) residentdomain.ResidentConsent {
	t.Helper()
	consent := residentdomain.ResidentConsent{
		ID:               f.node.Generate(),
		CareHomeID:       f.home.ID,
		RosterResidentID: rosterID,
		AccountCode:      accountCode,
		OtherConsent:     true,
		CurrentResident:  true,
		CreatedAt:        f.clock.Now(),
		UpdatedAt:        f.clock.Now(),
	}
	require.NoError(t, f.db.Create(&consent).Error)
	return consent
}

func (f *saleFixture) seedPriceItem(t *testing.T, description string, price int64, active bool) priceitemdomain.PriceItem {
	t.Helper()
	item := priceitemdomain.PriceItem{
		ID:          f.node.Generate(),
		VendorID:    f.vendor.ID,
		Description: description,
		Price:       decimal.NewFromInt(price),
		IsActive:    active,
		CreatedAt:   f.clock.Now(),
		UpdatedAt:   f.clock.Now(),
	}
	require.NoError(t, f.db.Create(&item).Error)
	if !active {
		// Create skips zero-value fields with a column default, so a
		// false flag has to be written as an explicit update.
		require.NoError(t, f.db.Model(&priceitemdomain.PriceItem{}).
			Where("id = ?", item.ID).
			Update("is_active", false).Error)
	}
	return item
}

func TestBulkReconcileReplacesSheet(t *testing.T) {
	f := setupSaleService(t)
	ctx := context.Background()
	resident := f.seedRosterResident(t, "12", "Ada Byron", "AC100")
	consent := f.seedConsent(t, &resident.ID, "")
	toiletries := f.seedPriceItem(t, "Toiletries", 3, true)
	sweets := f.seedPriceItem(t, "Sweets", 2, true)

	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	count, err := f.svc.BulkReconcile(ctx, domain.BulkReconcileRequest{
		CareHomeID: f.home.ID.String(),
		VendorID:   f.vendor.ID.String(),
		Date:       day,
		Items: []domain.BulkSelection{
			{ResidentConsentID: consent.ID.String(), PriceItemID: toiletries.ID.String()},
			{ResidentConsentID: consent.ID.String(), PriceItemID: sweets.ID.String()},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = f.svc.BulkReconcile(ctx, domain.BulkReconcileRequest{
		CareHomeID: f.home.ID.String(),
		VendorID:   f.vendor.ID.String(),
		Date:       day,
		Items: []domain.BulkSelection{
			{ResidentConsentID: consent.ID.String(), PriceItemID: sweets.ID.String()},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var items []domain.SaleItem
	require.NoError(t, f.db.Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, "Sweets", items[0].Description)
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(2)), "price %s", items[0].Price)
	assert.Equal(t, resident.ID, items[0].RosterResidentID)
}

func TestBulkReconcileLeavesOtherResidents(t *testing.T) {
	f := setupSaleService(t)
	ctx := context.Background()
	ada := f.seedRosterResident(t, "12", "Ada Byron", "AC100")
	adaConsent := f.seedConsent(t, &ada.ID, "")
	mary := f.seedRosterResident(t, "7", "Mary Shelley", "AC200")
	maryConsent := f.seedConsent(t, &mary.ID, "")
	toiletries := f.seedPriceItem(t, "Toiletries", 3, true)
	sweets := f.seedPriceItem(t, "Sweets", 2, true)

	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	count, err := f.svc.BulkReconcile(ctx, domain.BulkReconcileRequest{
		CareHomeID: f.home.ID.String(),
		VendorID:   f.vendor.ID.String(),
		Date:       day,
		Items: []domain.BulkSelection{
			{ResidentConsentID: adaConsent.ID.String(), PriceItemID: toiletries.ID.String()},
			{ResidentConsentID: maryConsent.ID.String(), PriceItemID: sweets.ID.String()},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Resubmitting only Ada's sheet must leave Mary's same-day items alone.
	count, err = f.svc.BulkReconcile(ctx, domain.BulkReconcileRequest{
		CareHomeID: f.home.ID.String(),
		VendorID:   f.vendor.ID.String(),
		Date:       day,
		Items: []domain.BulkSelection{
			{ResidentConsentID: adaConsent.ID.String(), PriceItemID: sweets.ID.String()},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var items []domain.SaleItem
	require.NoError(t, f.db.Order("description asc").Find(&items).Error)
	require.Len(t, items, 2)

	byResident := make(map[snowflake.ID]domain.SaleItem, len(items))
	for _, item := range items {
		byResident[item.RosterResidentID] = item
	}
	assert.Equal(t, "Sweets", byResident[ada.ID].Description)
	assert.Equal(t, "Sweets", byResident[mary.ID].Description)
}

func TestBulkReconcileAccountCodeFallback(t *testing.T) {
	f := setupSaleService(t)
	resident := f.seedRosterResident(t, "7", "Mary Shelley", "AC200")
	consent := f.seedConsent(t, nil, "AC200")
	priceItem := f.seedPriceItem(t, "Toiletries", 3, true)

	count, err := f.svc.BulkReconcile(context.Background(), domain.BulkReconcileRequest{
		CareHomeID: f.home.ID.String(),
		VendorID:   f.vendor.ID.String(),
		Date:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Items:      []domain.BulkSelection{{ResidentConsentID: consent.ID.String(), PriceItemID: priceItem.ID.String()}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var items []domain.SaleItem
	require.NoError(t, f.db.Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, resident.ID, items[0].RosterResidentID)
}

func TestBulkReconcileUnlinkedConsent(t *testing.T) {
	f := setupSaleService(t)
	consent := f.seedConsent(t, nil, "")
	priceItem := f.seedPriceItem(t, "Toiletries", 3, true)

	_, err := f.svc.BulkReconcile(context.Background(), domain.BulkReconcileRequest{
		CareHomeID: f.home.ID.String(),
		VendorID:   f.vendor.ID.String(),
		Date:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Items:      []domain.BulkSelection{{ResidentConsentID: consent.ID.String(), PriceItemID: priceItem.ID.String()}},
	})
	assert.ErrorIs(t, err, domain.ErrResidentNotLinked)
}

func TestBulkReconcileInactivePriceItem(t *testing.T) {
	f := setupSaleService(t)
	resident := f.seedRosterResident(t, "3", "Ada Byron", "")
	consent := f.seedConsent(t, &resident.ID, "")
	priceItem := f.seedPriceItem(t, "Discontinued", 4, false)

	_, err := f.svc.BulkReconcile(context.Background(), domain.BulkReconcileRequest{
		CareHomeID: f.home.ID.String(),
		VendorID:   f.vendor.ID.String(),
		Date:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Items:      []domain.BulkSelection{{ResidentConsentID: consent.ID.String(), PriceItemID: priceItem.ID.String()}},
	})
	assert.ErrorIs(t, err, domain.ErrPriceItemInactive)
}

func (f *saleFixture) createSale(t *testing.T, residentID snowflake.ID, description string, price int64, date time.Time) domain.SaleItem {
	t.Helper()
	item, err := f.svc.Create(context.Background(), domain.CreateSaleRequest{
		CareHomeID:       f.home.ID.String(),
		RosterResidentID: residentID.String(),
		VendorID:         f.vendor.ID.String(),
		Description:      description,
		Price:            decimal.NewFromInt(price),
		Date:             date,
	})
	require.NoError(t, err)
	return item
}

func TestInvoiceSalesMarksItems(t *testing.T) {
	f := setupSaleService(t)
	ctx := context.Background()
	resident := f.seedRosterResident(t, "12", "Ada Byron", "AC100")
	f.createSale(t, resident.ID, "Toiletries", 3, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	f.createSale(t, resident.ID, "Sweets", 2, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC))

	req := domain.InvoiceSalesRequest{
		CareHomeID: f.home.ID.String(),
		VendorID:   f.vendor.ID.String(),
		ToEmail:    "billing@oakhouse.example",
	}
	result, err := f.svc.InvoiceSales(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "SHOP01-20240315", result.InvoiceNo)
	assert.Equal(t, 2, result.ItemCount)

	var items []domain.SaleItem
	require.NoError(t, f.db.Find(&items).Error)
	for _, item := range items {
		assert.True(t, item.Invoiced)
		require.NotNil(t, item.InvoiceNumber)
		assert.Equal(t, result.InvoiceNo, *item.InvoiceNumber)
	}

	_, err = f.svc.InvoiceSales(ctx, req)
	assert.ErrorIs(t, err, domain.ErrNoItemsToInvoice)
}

func TestPreviewInvoiceLeavesItemsUninvoiced(t *testing.T) {
	f := setupSaleService(t)
	resident := f.seedRosterResident(t, "12", "Ada Byron", "AC100")
	f.createSale(t, resident.ID, "Toiletries", 3, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))

	_, invoiceNo, err := f.svc.PreviewInvoice(context.Background(), domain.InvoiceSalesRequest{
		CareHomeID: f.home.ID.String(),
		VendorID:   f.vendor.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, "SHOP01-20240315", invoiceNo)

	var items []domain.SaleItem
	require.NoError(t, f.db.Find(&items).Error)
	require.Len(t, items, 1)
	assert.False(t, items[0].Invoiced)
}

func TestInvoiceSalesUnknownVendor(t *testing.T) {
	f := setupSaleService(t)
	_, err := f.svc.InvoiceSales(context.Background(), domain.InvoiceSalesRequest{
		CareHomeID: f.home.ID.String(),
		VendorID:   "9999999999",
		ToEmail:    "billing@oakhouse.example",
	})
	assert.ErrorIs(t, err, domain.ErrHomeOrVendor)
}

func TestDeleteInvoicedItem(t *testing.T) {
	f := setupSaleService(t)
	resident := f.seedRosterResident(t, "12", "Ada Byron", "AC100")
	item := f.createSale(t, resident.ID, "Toiletries", 3, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))

	invoiceNo := "SHOP01-20240315"
	require.NoError(t, f.db.Model(&domain.SaleItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{"invoiced": true, "invoice_number": invoiceNo}).Error)

	err := f.svc.Delete(context.Background(), item.ID.String())
	assert.ErrorIs(t, err, domain.ErrItemInvoiced)
}

func TestListInvoicesGroupsByNumber(t *testing.T) {
	f := setupSaleService(t)
	ctx := context.Background()
	resident := f.seedRosterResident(t, "12", "Ada Byron", "AC100")

	f.createSale(t, resident.ID, "Toiletries", 3, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))
	f.createSale(t, resident.ID, "Sweets", 2, time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC))
	_, err := f.svc.InvoiceSales(ctx, domain.InvoiceSalesRequest{
		CareHomeID: f.home.ID.String(),
		VendorID:   f.vendor.ID.String(),
		ToEmail:    "billing@oakhouse.example",
	})
	require.NoError(t, err)

	f.clock.Advance(24 * time.Hour)
	f.createSale(t, resident.ID, "Papers", 5, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	_, err = f.svc.InvoiceSales(ctx, domain.InvoiceSalesRequest{
		CareHomeID: f.home.ID.String(),
		VendorID:   f.vendor.ID.String(),
		ToEmail:    "billing@oakhouse.example",
	})
	require.NoError(t, err)

	invoices, err := f.svc.ListInvoices(ctx, f.home.ID.String(), f.vendor.ID.String())
	require.NoError(t, err)
	require.Len(t, invoices, 2)

	byNumber := make(map[string]domain.SalesInvoice, len(invoices))
	for _, invoice := range invoices {
		byNumber[invoice.InvoiceNumber] = invoice
	}

	first, ok := byNumber["SHOP01-20240315"]
	require.True(t, ok)
	assert.Equal(t, 2, first.ItemCount)
	assert.True(t, first.Total.Equal(decimal.NewFromInt(5)), "total %s", first.Total)
	assert.Equal(t, time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC), first.IssuedAt.UTC())
	assert.Equal(t, "Draft", first.Status)

	second, ok := byNumber["SHOP01-20240316"]
	require.True(t, ok)
	assert.Equal(t, 1, second.ItemCount)
	assert.True(t, second.Total.Equal(decimal.NewFromInt(5)), "total %s", second.Total)
}

func TestListInvoicesResolvesSheetStatus(t *testing.T) {
	f := setupSaleService(t)
	ctx := context.Background()
	resident := f.seedRosterResident(t, "12", "Ada Byron", "AC100")

	f.createSale(t, resident.ID, "Toiletries", 3, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	_, err := f.svc.InvoiceSales(ctx, domain.InvoiceSalesRequest{
		CareHomeID: f.home.ID.String(),
		VendorID:   f.vendor.ID.String(),
		ToEmail:    "billing@oakhouse.example",
	})
	require.NoError(t, err)

	signedAt := f.clock.Now()
	sheet := visitsheetdomain.VisitSheet{
		ID:         f.node.Generate(),
		CareHomeID: f.home.ID,
		VendorID:   f.vendor.ID,
		VisitDate:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Status:     visitsheetdomain.StatusSigned,
		SignedAt:   &signedAt,
		CreatedBy:  "system",
		CreatedAt:  f.clock.Now(),
		UpdatedAt:  f.clock.Now(),
	}
	require.NoError(t, f.db.Create(&sheet).Error)

	invoices, err := f.svc.ListInvoices(ctx, f.home.ID.String(), f.vendor.ID.String())
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, "Signed", invoices[0].Status)
}

func TestMiscExpense(t *testing.T) {
	f := setupSaleService(t)
	ctx := context.Background()
	resident := f.seedRosterResident(t, "12", "Ada Byron", "AC100")
	consent := f.seedConsent(t, &resident.ID, "")

	result, err := f.svc.CreateMiscExpense(ctx, domain.MiscExpenseRequest{
		CareHomeID:        f.home.ID.String(),
		ResidentConsentID: consent.ID.String(),
		Type:              "Escort",
		Date:              time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
		Description:       "Hospital appointment",
		Amount:            decimal.NewFromInt(25),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.InvoiceNo, "MISC-"), "invoice no %s", result.InvoiceNo)

	var items []domain.SaleItem
	require.NoError(t, f.db.Find(&items).Error)
	require.Len(t, items, 1)
	assert.True(t, items[0].Invoiced)
	assert.Equal(t, "Escort: Hospital appointment", items[0].Description)
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(25)), "price %s", items[0].Price)
}

func TestMiscExpenseRejectsBadType(t *testing.T) {
	f := setupSaleService(t)
	resident := f.seedRosterResident(t, "12", "Ada Byron", "AC100")
	consent := f.seedConsent(t, &resident.ID, "")

	_, err := f.svc.CreateMiscExpense(context.Background(), domain.MiscExpenseRequest{
		CareHomeID:        f.home.ID.String(),
		ResidentConsentID: consent.ID.String(),
		Type:              "Taxi",
		Date:              time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
		Description:       "Hospital appointment",
		Amount:            decimal.NewFromInt(25),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidExpenseType)
}

func TestMiscResidentsFiltersConsent(t *testing.T) {
	f := setupSaleService(t)
	resident := f.seedRosterResident(t, "12", "Ada Byron", "AC100")
	eligible := f.seedConsent(t, &resident.ID, "")

	other := f.seedRosterResident(t, "13", "Mary Shelley", "AC200")
	declined := residentdomain.ResidentConsent{
		ID:               f.node.Generate(),
		CareHomeID:       f.home.ID,
		RosterResidentID: &other.ID,
		OtherConsent:     false,
		CurrentResident:  true,
		CreatedAt:        f.clock.Now(),
		UpdatedAt:        f.clock.Now(),
	}
	require.NoError(t, f.db.Create(&declined).Error)

	consents, err := f.svc.MiscResidents(context.Background(), f.home.ID.String())
	require.NoError(t, err)
	require.Len(t, consents, 1)
	assert.Equal(t, eligible.ID, consents[0].ID)
}
