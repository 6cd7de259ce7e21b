package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/sundries-services/sundries/internal/audit/domain"
	carehomedomain "github.com/sundries-services/sundries/internal/carehome/domain"
	"github.com/sundries-services/sundries/internal/clock"
	"github.com/sundries-services/sundries/internal/invoice/domain"
	"github.com/sundries-services/sundries/internal/providers/pdf"
	supplierdomain "github.com/sundries-services/sundries/internal/supplier/domain"
	visitdomain "github.com/sundries-services/sundries/internal/visit/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Repo      domain.Repository
	Visits    visitdomain.Repository
	Suppliers supplierdomain.Repository
	CareHomes carehomedomain.Repository
	Pdf       pdf.Provider
	Audit     auditdomain.Recorder
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	repo      domain.Repository
	visits    visitdomain.Repository
	suppliers supplierdomain.Repository
	careHomes carehomedomain.Repository
	pdf       pdf.Provider
	audit     auditdomain.Recorder
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("invoice.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		repo:      p.Repo,
		visits:    p.Visits,
		suppliers: p.Suppliers,
		careHomes: p.CareHomes,
		pdf:       p.Pdf,
		audit:     p.Audit,
	}
}

func (s *Service) Generate(ctx context.Context, req domain.GenerateRequest) (domain.GenerateResult, error) {
	supplierID, err := s.parseID(req.SupplierID)
	if err != nil {
		return domain.GenerateResult{}, domain.ErrInvalidSupplier
	}
	homeID, err := s.parseID(req.CareHomeID)
	if err != nil {
		return domain.GenerateResult{}, domain.ErrInvalidCareHome
	}
	if req.From.IsZero() || req.To.IsZero() || req.To.Before(req.From) {
		return domain.GenerateResult{}, domain.ErrInvalidPeriod
	}

	supplier, err := s.suppliers.FindByID(ctx, s.db, supplierID)
	if err != nil {
		return domain.GenerateResult{}, err
	}
	if supplier == nil {
		return domain.GenerateResult{}, supplierdomain.ErrNotFound
	}

	periodStart := req.From.UTC()
	periodEnd := req.To.UTC()
	now := s.clock.Now().UTC()

	var result domain.GenerateResult
	err = s.db.Transaction(func(tx *gorm.DB) error {
		visits, err := s.visits.List(ctx, tx, visitdomain.VisitFilter{
			SupplierID: supplierID,
			CareHomeID: homeID,
			From:       &periodStart,
			To:         &periodEnd,
			Status:     visitdomain.StatusConfirmed,
		})
		if err != nil {
			return err
		}

		visitIDs := make([]snowflake.ID, 0, len(visits))
		for _, v := range visits {
			visitIDs = append(visitIDs, v.ID)
		}
		items, err := s.visits.ListItemsByVisits(ctx, tx, visitIDs)
		if err != nil {
			return err
		}
		itemIDs := make([]snowflake.ID, 0, len(items))
		for _, item := range items {
			itemIDs = append(itemIDs, item.ID)
		}
		alreadyInvoiced, err := s.repo.InvoicedVisitItemIDs(ctx, tx, itemIDs)
		if err != nil {
			return err
		}

		eligible := make([]visitdomain.VisitItem, 0, len(items))
		billedVisits := make(map[snowflake.ID]bool)
		for _, item := range items {
			if alreadyInvoiced[item.ID] {
				continue
			}
			eligible = append(eligible, item)
			billedVisits[item.VisitID] = true
		}
		if len(eligible) == 0 {
			return domain.ErrNoEligibleItems
		}

		invoiceNo, err := s.nextInvoiceNumber(ctx, tx, supplier, periodStart)
		if err != nil {
			return err
		}

		lines := make([]domain.TotalsLine, 0, len(eligible))
		for _, item := range eligible {
			lines = append(lines, domain.TotalsLine{
				Qty:       item.Qty,
				UnitPrice: item.UnitPrice,
				VatRate:   item.VatRate,
			})
		}
		totals := domain.ComputeTotals(lines)

		issuedAt := now
		invoice := domain.Invoice{
			ID:          s.genID.Generate(),
			SupplierID:  supplierID,
			CareHomeID:  homeID,
			InvoiceNo:   invoiceNo,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
			IssuedAt:    &issuedAt,
			Subtotal:    totals.Subtotal,
			VatTotal:    totals.VatTotal,
			Total:       totals.Total,
			Status:      domain.StatusIssued,
			CreatedAt:   now,
		}
		if err := s.repo.Insert(ctx, tx, &invoice); err != nil {
			return err
		}

		invoiceItems := make([]domain.InvoiceItem, 0, len(eligible))
		for _, item := range eligible {
			invoiceItem := domain.InvoiceItem{
				ID:          s.genID.Generate(),
				InvoiceID:   invoice.ID,
				VisitItemID: item.ID,
				Description: item.Description,
				Qty:         item.Qty,
				UnitPrice:   item.UnitPrice,
				VatRate:     item.VatRate,
				LineTotal:   item.LineTotal,
				CreatedAt:   now,
			}
			if err := s.repo.InsertItem(ctx, tx, &invoiceItem); err != nil {
				return err
			}
			invoiceItems = append(invoiceItems, invoiceItem)
		}

		for _, v := range visits {
			if !billedVisits[v.ID] {
				continue
			}
			v.Status = visitdomain.StatusInvoiced
			lockedAt := now
			v.LockedAt = &lockedAt
			invoiceID := invoice.ID
			v.InvoiceID = &invoiceID
			if err := s.visits.Update(ctx, tx, &v); err != nil {
				return err
			}
		}

		result = domain.GenerateResult{Invoice: invoice, Items: invoiceItems}
		return nil
	})
	if err != nil {
		return domain.GenerateResult{}, err
	}

	s.audit.Record(ctx, "invoice.generate", "invoice", result.Invoice.ID.String(), map[string]any{
		"invoice_no": result.Invoice.InvoiceNo,
		"items":      len(result.Items),
	})
	s.log.Info("invoice generated",
		zap.String("invoice_no", result.Invoice.InvoiceNo),
		zap.Int("items", len(result.Items)),
	)
	return result, nil
}

// nextInvoiceNumber is count-then-insert within the generation
// transaction. Two generations for the same supplier and month racing
// each other can still collide; callers retry on the rare conflict.
func (s *Service) nextInvoiceNumber(ctx context.Context, tx *gorm.DB, supplier *supplierdomain.Supplier, periodStart time.Time) (string, error) {
	prefix := domain.SupplierPrefix(supplier.Name)
	month := periodStart.UTC().Format("200601")
	count, err := s.repo.CountByPrefix(ctx, tx, supplier.ID, fmt.Sprintf("%s-%s", prefix, month))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%04d", prefix, month, count+1), nil
}

func (s *Service) List(ctx context.Context, req domain.ListInvoicesRequest) ([]domain.InvoiceDetail, error) {
	filter := domain.InvoiceFilter{From: req.From, To: req.To}
	if req.SupplierID != "" {
		id, err := s.parseID(req.SupplierID)
		if err != nil {
			return nil, domain.ErrInvalidSupplier
		}
		filter.SupplierID = id
	}
	if req.CareHomeID != "" {
		id, err := s.parseID(req.CareHomeID)
		if err != nil {
			return nil, domain.ErrInvalidCareHome
		}
		filter.CareHomeID = id
	}
	if req.Status != "" {
		filter.Status = domain.Status(req.Status)
	}

	invoices, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	details := make([]domain.InvoiceDetail, 0, len(invoices))
	for _, invoice := range invoices {
		detail, err := s.decorate(ctx, invoice, false)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.InvoiceDetail, error) {
	invoiceID, err := s.parseID(id)
	if err != nil {
		return domain.InvoiceDetail{}, err
	}
	invoice, err := s.repo.FindByID(ctx, s.db, invoiceID)
	if err != nil {
		return domain.InvoiceDetail{}, err
	}
	if invoice == nil {
		return domain.InvoiceDetail{}, domain.ErrNotFound
	}
	return s.decorate(ctx, *invoice, true)
}

func (s *Service) Pdf(ctx context.Context, id string) ([]byte, error) {
	detail, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	data := pdf.SupplierInvoiceData{
		InvoiceNo:   detail.InvoiceNo,
		PeriodStart: detail.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   detail.PeriodEnd.Format("2006-01-02"),
		Subtotal:    "£" + detail.Subtotal.StringFixed(2),
		VatTotal:    "£" + detail.VatTotal.StringFixed(2),
		Total:       "£" + detail.Total.StringFixed(2),
	}
	if detail.IssuedAt != nil {
		data.IssuedAt = detail.IssuedAt.Format("2006-01-02")
	}
	if detail.Supplier != nil {
		data.SupplierName = detail.Supplier.Name
	}
	if detail.CareHome != nil {
		data.CareHomeName = detail.CareHome.Name
	}
	for _, item := range detail.Items {
		data.Items = append(data.Items, pdf.SupplierInvoiceItem{
			Description: item.Description,
			Qty:         item.Qty.StringFixed(2),
			UnitPrice:   item.UnitPrice.StringFixed(2),
			VatRate:     item.VatRate.StringFixed(2),
			LineTotal:   item.LineTotal.StringFixed(2),
		})
	}

	reader, err := s.pdf.GenerateSupplierInvoice(ctx, data)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(reader)
}

func (s *Service) decorate(ctx context.Context, invoice domain.Invoice, withItems bool) (domain.InvoiceDetail, error) {
	detail := domain.InvoiceDetail{Invoice: invoice}

	supplier, err := s.suppliers.FindByID(ctx, s.db, invoice.SupplierID)
	if err != nil {
		return domain.InvoiceDetail{}, err
	}
	detail.Supplier = supplier

	home, err := s.careHomes.FindByID(ctx, s.db, invoice.CareHomeID)
	if err != nil {
		return domain.InvoiceDetail{}, err
	}
	detail.CareHome = home

	if !withItems {
		return detail, nil
	}

	items, err := s.repo.ListItems(ctx, s.db, invoice.ID)
	if err != nil {
		return domain.InvoiceDetail{}, err
	}
	detail.Items = make([]domain.ItemWithVisitItem, 0, len(items))
	for _, item := range items {
		visitItem, err := s.visits.FindItemByID(ctx, s.db, item.VisitItemID)
		if err != nil {
			return domain.InvoiceDetail{}, err
		}
		detail.Items = append(detail.Items, domain.ItemWithVisitItem{
			InvoiceItem: item,
			VisitItem:   visitItem,
		})
	}
	return detail, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
