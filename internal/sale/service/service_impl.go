package service

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	auditdomain "github.com/sundries-services/sundries/internal/audit/domain"
	carehomedomain "github.com/sundries-services/sundries/internal/carehome/domain"
	"github.com/sundries-services/sundries/internal/clock"
	priceitemdomain "github.com/sundries-services/sundries/internal/priceitem/domain"
	"github.com/sundries-services/sundries/internal/providers/email"
	"github.com/sundries-services/sundries/internal/providers/pdf"
	residentdomain "github.com/sundries-services/sundries/internal/resident/domain"
	"github.com/sundries-services/sundries/internal/sale/domain"
	vendordomain "github.com/sundries-services/sundries/internal/vendors/domain"
	visitsheetdomain "github.com/sundries-services/sundries/internal/visitsheet/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Repo       domain.Repository
	Residents  residentdomain.Repository
	Vendors    vendordomain.Repository
	VendorSvc  vendordomain.Service
	PriceItems priceitemdomain.Repository
	CareHomes  carehomedomain.Repository
	Sheets     visitsheetdomain.Repository
	Pdf        pdf.Provider
	Email      email.Provider
	Audit      auditdomain.Recorder
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	repo       domain.Repository
	residents  residentdomain.Repository
	vendors    vendordomain.Repository
	vendorSvc  vendordomain.Service
	priceItems priceitemdomain.Repository
	careHomes  carehomedomain.Repository
	sheets     visitsheetdomain.Repository
	pdf        pdf.Provider
	email      email.Provider
	audit      auditdomain.Recorder
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("sale.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		repo:       p.Repo,
		residents:  p.Residents,
		vendors:    p.Vendors,
		vendorSvc:  p.VendorSvc,
		priceItems: p.PriceItems,
		careHomes:  p.CareHomes,
		sheets:     p.Sheets,
		pdf:        p.Pdf,
		email:      p.Email,
		audit:      p.Audit,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListSalesRequest) ([]domain.SaleItemDetail, error) {
	homeID, err := s.parseID(req.CareHomeID)
	if err != nil {
		return nil, domain.ErrInvalidCareHome
	}
	filter := domain.SaleFilter{CareHomeID: homeID, Invoiced: req.Invoiced}
	if req.VendorID != "" {
		vendorID, err := s.parseID(req.VendorID)
		if err != nil {
			return nil, domain.ErrInvalidVendor
		}
		filter.VendorID = vendorID
	}

	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, items)
}

func (s *Service) Create(ctx context.Context, req domain.CreateSaleRequest) (domain.SaleItem, error) {
	homeID, err := s.parseID(req.CareHomeID)
	if err != nil {
		return domain.SaleItem{}, domain.ErrInvalidCareHome
	}
	residentID, err := s.parseID(req.RosterResidentID)
	if err != nil {
		return domain.SaleItem{}, domain.ErrInvalidResident
	}
	vendorID, err := s.parseID(req.VendorID)
	if err != nil {
		return domain.SaleItem{}, domain.ErrInvalidVendor
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return domain.SaleItem{}, domain.ErrInvalidDescription
	}
	if req.Date.IsZero() {
		return domain.SaleItem{}, domain.ErrInvalidDate
	}

	item := domain.SaleItem{
		ID:               s.genID.Generate(),
		CareHomeID:       homeID,
		RosterResidentID: residentID,
		VendorID:         vendorID,
		Description:      description,
		Price:            req.Price,
		Date:             req.Date.UTC(),
		CreatedAt:        s.clock.Now().UTC(),
	}
	if req.PriceItemID != "" {
		priceItemID, err := s.parseID(req.PriceItemID)
		if err != nil {
			return domain.SaleItem{}, domain.ErrInvalidID
		}
		item.PriceItemID = &priceItemID
	}

	if err := s.repo.Insert(ctx, s.db, &item); err != nil {
		return domain.SaleItem{}, err
	}
	return item, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	itemID, err := s.parseID(id)
	if err != nil {
		return err
	}
	item, err := s.repo.FindByID(ctx, s.db, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if item.Invoiced {
		return domain.ErrItemInvoiced
	}
	return s.repo.Delete(ctx, s.db, itemID)
}

func (s *Service) BulkReconcile(ctx context.Context, req domain.BulkReconcileRequest) (int, error) {
	homeID, err := s.parseID(req.CareHomeID)
	if err != nil {
		return 0, domain.ErrInvalidCareHome
	}
	vendorID, err := s.parseID(req.VendorID)
	if err != nil {
		return 0, domain.ErrInvalidVendor
	}
	if req.Date.IsZero() {
		return 0, domain.ErrInvalidDate
	}

	vendor, err := s.vendors.FindByID(ctx, s.db, vendorID)
	if err != nil {
		return 0, err
	}
	home, err := s.careHomes.FindByID(ctx, s.db, homeID)
	if err != nil {
		return 0, err
	}
	if vendor == nil || home == nil {
		return 0, domain.ErrHomeOrVendor
	}

	type resolved struct {
		residentID  snowflake.ID
		description string
		price       decimal.Decimal
	}

	consentIDs := make([]snowflake.ID, 0, len(req.Items))
	priceItemIDs := make([]snowflake.ID, 0, len(req.Items))
	for _, selection := range req.Items {
		consentID, err := s.parseID(selection.ResidentConsentID)
		if err != nil {
			return 0, domain.ErrInvalidResident
		}
		priceItemID, err := s.parseID(selection.PriceItemID)
		if err != nil {
			return 0, domain.ErrInvalidID
		}
		consentIDs = append(consentIDs, consentID)
		priceItemIDs = append(priceItemIDs, priceItemID)
	}

	consents, err := s.residents.FindConsentsByIDs(ctx, s.db, consentIDs)
	if err != nil {
		return 0, err
	}
	consentByID := make(map[snowflake.ID]residentdomain.ResidentConsent, len(consents))
	for _, consent := range consents {
		consentByID[consent.ID] = consent
	}
	priceItems, err := s.priceItems.FindByIDs(ctx, s.db, priceItemIDs)
	if err != nil {
		return 0, err
	}
	priceItemByID := make(map[snowflake.ID]priceitemdomain.PriceItem, len(priceItems))
	for _, item := range priceItems {
		priceItemByID[item.ID] = item
	}

	selections := make([]resolved, 0, len(req.Items))
	selectionPriceItem := make([]snowflake.ID, 0, len(req.Items))
	residentSet := make(map[snowflake.ID]bool)
	for i := range req.Items {
		consent, ok := consentByID[consentIDs[i]]
		if !ok {
			return 0, residentdomain.ErrConsentNotFound
		}
		residentID, err := s.resolveRosterResident(ctx, consent, homeID)
		if err != nil {
			return 0, err
		}

		priceItem, ok := priceItemByID[priceItemIDs[i]]
		if !ok {
			return 0, priceitemdomain.ErrNotFound
		}
		if !priceItem.IsActive {
			return 0, domain.ErrPriceItemInactive
		}

		residentSet[residentID] = true
		selections = append(selections, resolved{
			residentID:  residentID,
			description: priceItem.Description,
			price:       priceItem.Price,
		})
		selectionPriceItem = append(selectionPriceItem, priceItem.ID)
	}

	day := req.Date.UTC().Truncate(24 * time.Hour)
	dayEnd := day.Add(24 * time.Hour)
	residentIDs := make([]snowflake.ID, 0, len(residentSet))
	for id := range residentSet {
		residentIDs = append(residentIDs, id)
	}

	now := s.clock.Now().UTC()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.DeleteForSheet(ctx, tx, homeID, vendorID, day, dayEnd, residentIDs); err != nil {
			return err
		}
		for i, selection := range selections {
			priceItemID := selectionPriceItem[i]
			item := domain.SaleItem{
				ID:               s.genID.Generate(),
				CareHomeID:       homeID,
				RosterResidentID: selection.residentID,
				VendorID:         vendorID,
				PriceItemID:      &priceItemID,
				Description:      selection.description,
				Price:            selection.price,
				Date:             day,
				CreatedAt:        now,
			}
			if err := s.repo.Insert(ctx, tx, &item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.audit.Record(ctx, "sales.bulk_reconcile", "care_home", homeID.String(), map[string]any{
		"vendor_id": vendorID.String(),
		"date":      day.Format("2006-01-02"),
		"count":     len(selections),
	})
	return len(selections), nil
}

// resolveRosterResident follows the consent's direct roster link, then
// falls back to the account code within the same home.
func (s *Service) resolveRosterResident(ctx context.Context, consent residentdomain.ResidentConsent, homeID snowflake.ID) (snowflake.ID, error) {
	if consent.RosterResidentID != nil {
		return *consent.RosterResidentID, nil
	}
	if consent.AccountCode != "" {
		resident, err := s.residents.FindRosterByAccountCode(ctx, s.db, homeID, consent.AccountCode)
		if err != nil {
			return 0, err
		}
		if resident != nil {
			return resident.ID, nil
		}
	}
	return 0, domain.ErrResidentNotLinked
}

func (s *Service) InvoiceSales(ctx context.Context, req domain.InvoiceSalesRequest) (domain.InvoiceSalesResult, error) {
	toEmail := strings.TrimSpace(req.ToEmail)
	if toEmail == "" || !strings.Contains(toEmail, "@") {
		return domain.InvoiceSalesResult{}, domain.ErrInvalidEmail
	}

	vendor, home, items, invoiceNo, pdfBytes, err := s.renderInvoice(ctx, req)
	if err != nil {
		return domain.InvoiceSalesResult{}, err
	}

	err = s.email.SendWithAttachment(ctx, []string{toEmail},
		fmt.Sprintf("Invoice %s", invoiceNo),
		fmt.Sprintf("Invoice %s attached.", invoiceNo),
		email.Attachment{
			Filename:    invoiceNo + ".pdf",
			ContentType: "application/pdf",
			Data:        pdfBytes,
		})
	if err != nil {
		return domain.InvoiceSalesResult{}, err
	}

	// The mark step follows the send; a crash in between leaves the
	// items uninvoiced and the next run re-sends them.
	ids := make([]snowflake.ID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	if err := s.repo.MarkInvoiced(ctx, s.db, ids, invoiceNo); err != nil {
		return domain.InvoiceSalesResult{}, err
	}

	s.audit.Record(ctx, "sales.invoice", "vendor", vendor.ID.String(), map[string]any{
		"invoice_no":   invoiceNo,
		"care_home_id": home.ID.String(),
		"item_count":   len(items),
	})
	s.log.Info("sales invoice issued",
		zap.String("invoice_no", invoiceNo),
		zap.Int("item_count", len(items)),
	)
	return domain.InvoiceSalesResult{InvoiceNo: invoiceNo, ItemCount: len(items)}, nil
}

func (s *Service) PreviewInvoice(ctx context.Context, req domain.InvoiceSalesRequest) ([]byte, string, error) {
	_, _, _, invoiceNo, pdfBytes, err := s.renderInvoice(ctx, req)
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, invoiceNo, nil
}

func (s *Service) renderInvoice(ctx context.Context, req domain.InvoiceSalesRequest) (*vendordomain.Vendor, *carehomedomain.CareHome, []domain.SaleItem, string, []byte, error) {
	homeID, err := s.parseID(req.CareHomeID)
	if err != nil {
		return nil, nil, nil, "", nil, domain.ErrInvalidCareHome
	}
	vendorID, err := s.parseID(req.VendorID)
	if err != nil {
		return nil, nil, nil, "", nil, domain.ErrInvalidVendor
	}

	vendor, err := s.vendors.FindByID(ctx, s.db, vendorID)
	if err != nil {
		return nil, nil, nil, "", nil, err
	}
	home, err := s.careHomes.FindByID(ctx, s.db, homeID)
	if err != nil {
		return nil, nil, nil, "", nil, err
	}
	if vendor == nil || home == nil {
		return nil, nil, nil, "", nil, domain.ErrHomeOrVendor
	}

	uninvoiced := false
	items, err := s.repo.List(ctx, s.db, domain.SaleFilter{
		CareHomeID: homeID,
		VendorID:   vendorID,
		Invoiced:   &uninvoiced,
		From:       req.From,
		To:         req.To,
	})
	if err != nil {
		return nil, nil, nil, "", nil, err
	}
	if len(items) == 0 {
		return nil, nil, nil, "", nil, domain.ErrNoItemsToInvoice
	}

	issuedAt := s.clock.Now().UTC()
	invoiceNo := fmt.Sprintf("%s-%s", vendor.AccountRef, issuedAt.Format("20060102"))

	total := decimal.Zero
	data := pdf.SalesInvoiceData{
		InvoiceNo:    invoiceNo,
		VendorName:   vendor.Name,
		CareHomeName: home.Name,
		IssueDate:    issuedAt.Format("2006-01-02"),
	}
	for _, item := range items {
		data.Items = append(data.Items, pdf.SalesInvoiceItem{
			ResidentName: s.residentLabel(ctx, item.RosterResidentID),
			Description:  item.Description,
			Price:        item.Price.StringFixed(2),
		})
		total = total.Add(item.Price)
	}
	data.Total = "£" + total.StringFixed(2)

	reader, err := s.pdf.GenerateSalesInvoice(ctx, data)
	if err != nil {
		return nil, nil, nil, "", nil, err
	}
	pdfBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, nil, nil, "", nil, err
	}
	return vendor, home, items, invoiceNo, pdfBytes, nil
}

func (s *Service) residentLabel(ctx context.Context, residentID snowflake.ID) string {
	resident, err := s.residents.FindRosterByID(ctx, s.db, residentID)
	if err != nil || resident == nil {
		return "Resident"
	}
	if resident.FullName != "" {
		return resident.FullName
	}
	if resident.RoomNumber != "" {
		return resident.RoomNumber
	}
	return "Resident"
}

func (s *Service) ListInvoices(ctx context.Context, careHomeID, vendorID string) ([]domain.SalesInvoice, error) {
	homeID, err := s.parseID(careHomeID)
	if err != nil {
		return nil, domain.ErrInvalidCareHome
	}
	var vid snowflake.ID
	if vendorID != "" {
		vid, err = s.parseID(vendorID)
		if err != nil {
			return nil, domain.ErrInvalidVendor
		}
	}

	items, err := s.repo.ListInvoiced(ctx, s.db, homeID, vid)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string]*domain.SalesInvoice)
	order := make([]string, 0)
	for _, item := range items {
		if item.InvoiceNumber == nil {
			continue
		}
		number := *item.InvoiceNumber
		invoice, ok := grouped[number]
		if !ok {
			invoice = &domain.SalesInvoice{
				InvoiceNumber: number,
				VendorID:      item.VendorID,
				CareHomeID:    item.CareHomeID,
				Total:         decimal.Zero,
				IssuedAt:      item.Date,
				Status:        visitsheetdomain.StatusDraft,
			}
			grouped[number] = invoice
			order = append(order, number)
		}
		invoice.Total = invoice.Total.Add(item.Price)
		invoice.ItemCount++
		if item.Date.After(invoice.IssuedAt) {
			invoice.IssuedAt = item.Date
		}
	}

	invoices := make([]domain.SalesInvoice, 0, len(order))
	for _, number := range order {
		invoice := grouped[number]
		// A matching visit sheet carries the group's signing state.
		// Groups whose sheet was never created, or has since been
		// deleted, stay Draft.
		day := invoice.IssuedAt.UTC().Truncate(24 * time.Hour)
		sheet, err := s.sheets.FindForVisit(ctx, s.db, invoice.CareHomeID, invoice.VendorID, day)
		if err != nil {
			return nil, err
		}
		if sheet != nil {
			invoice.Status = sheet.Status
		}
		invoices = append(invoices, *invoice)
	}
	return invoices, nil
}

func (s *Service) MiscResidents(ctx context.Context, careHomeID string) ([]residentdomain.ResidentConsent, error) {
	homeID, err := s.parseID(careHomeID)
	if err != nil {
		return nil, domain.ErrInvalidCareHome
	}
	consents, err := s.residents.ListConsentsByHome(ctx, s.db, homeID)
	if err != nil {
		return nil, err
	}
	eligible := make([]residentdomain.ResidentConsent, 0, len(consents))
	for _, consent := range consents {
		if consent.CurrentResident && consent.OtherConsent {
			eligible = append(eligible, consent)
		}
	}
	return eligible, nil
}

func (s *Service) CreateMiscExpense(ctx context.Context, req domain.MiscExpenseRequest) (domain.MiscExpenseResult, error) {
	homeID, err := s.parseID(req.CareHomeID)
	if err != nil {
		return domain.MiscExpenseResult{}, domain.ErrInvalidCareHome
	}
	consentID, err := s.parseID(req.ResidentConsentID)
	if err != nil {
		return domain.MiscExpenseResult{}, domain.ErrInvalidResident
	}
	if req.Type != "Escort" && req.Type != "Other" {
		return domain.MiscExpenseResult{}, domain.ErrInvalidExpenseType
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return domain.MiscExpenseResult{}, domain.ErrInvalidDescription
	}
	if !req.Amount.IsPositive() {
		return domain.MiscExpenseResult{}, domain.ErrInvalidAmount
	}
	if req.Date.IsZero() {
		return domain.MiscExpenseResult{}, domain.ErrInvalidDate
	}

	consent, err := s.residents.FindConsentByID(ctx, s.db, consentID)
	if err != nil {
		return domain.MiscExpenseResult{}, err
	}
	if consent == nil {
		return domain.MiscExpenseResult{}, residentdomain.ErrConsentNotFound
	}
	residentID, err := s.resolveRosterResident(ctx, *consent, homeID)
	if err != nil {
		return domain.MiscExpenseResult{}, err
	}

	vendor, err := s.vendorSvc.EnsureMiscVendor(ctx)
	if err != nil {
		return domain.MiscExpenseResult{}, err
	}

	date := req.Date.UTC()
	invoiceNo := fmt.Sprintf("MISC-%s-%s-%s",
		miscHomePrefix(homeID), date.Format("20060102"), miscSuffix())

	item := domain.SaleItem{
		ID:               s.genID.Generate(),
		CareHomeID:       homeID,
		RosterResidentID: residentID,
		VendorID:         vendor.ID,
		Description:      fmt.Sprintf("%s: %s", req.Type, description),
		Price:            req.Amount,
		Date:             date,
		Invoiced:         true,
		InvoiceNumber:    &invoiceNo,
		CreatedAt:        s.clock.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, &item); err != nil {
		return domain.MiscExpenseResult{}, err
	}

	s.audit.Record(ctx, "sales.misc_expense", "sale_item", item.ID.String(), map[string]any{
		"invoice_no": invoiceNo,
		"amount":     req.Amount.StringFixed(2),
	})
	return domain.MiscExpenseResult{InvoiceNo: invoiceNo, SaleItemID: item.ID.String()}, nil
}

func miscHomePrefix(homeID snowflake.ID) string {
	id := homeID.String()
	if len(id) > 6 {
		return id[:6]
	}
	return id
}

const miscAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func miscSuffix() string {
	b := make([]byte, 4)
	for i := range b {
		b[i] = miscAlphabet[rand.Intn(len(miscAlphabet))]
	}
	return string(b)
}

func (s *Service) hydrate(ctx context.Context, items []domain.SaleItem) ([]domain.SaleItemDetail, error) {
	residentCache := make(map[snowflake.ID]*residentdomain.RosterResident)
	vendorCache := make(map[snowflake.ID]*vendordomain.Vendor)

	details := make([]domain.SaleItemDetail, 0, len(items))
	for _, item := range items {
		detail := domain.SaleItemDetail{SaleItem: item}

		resident, ok := residentCache[item.RosterResidentID]
		if !ok {
			var err error
			resident, err = s.residents.FindRosterByID(ctx, s.db, item.RosterResidentID)
			if err != nil {
				return nil, err
			}
			residentCache[item.RosterResidentID] = resident
		}
		detail.Resident = resident

		vendor, ok := vendorCache[item.VendorID]
		if !ok {
			var err error
			vendor, err = s.vendors.FindByID(ctx, s.db, item.VendorID)
			if err != nil {
				return nil, err
			}
			vendorCache[item.VendorID] = vendor
		}
		detail.Vendor = vendor

		if item.PriceItemID != nil {
			priceItem, err := s.priceItems.FindByID(ctx, s.db, *item.PriceItemID)
			if err != nil {
				return nil, err
			}
			detail.PriceItem = priceItem
		}
		details = append(details, detail)
	}
	return details, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
