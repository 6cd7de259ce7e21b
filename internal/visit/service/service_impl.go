package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/sundries-services/sundries/internal/auth"
	carehomedomain "github.com/sundries-services/sundries/internal/carehome/domain"
	"github.com/sundries-services/sundries/internal/clock"
	consentdomain "github.com/sundries-services/sundries/internal/consent/domain"
	residentdomain "github.com/sundries-services/sundries/internal/resident/domain"
	supplierdomain "github.com/sundries-services/sundries/internal/supplier/domain"
	"github.com/sundries-services/sundries/internal/visit/domain"
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
	Suppliers supplierdomain.Repository
	Residents residentdomain.Repository
	CareHomes carehomedomain.Repository
	Consents  consentdomain.Service
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	repo      domain.Repository
	suppliers supplierdomain.Repository
	residents residentdomain.Repository
	careHomes carehomedomain.Repository
	consents  consentdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("visit.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		repo:      p.Repo,
		suppliers: p.Suppliers,
		residents: p.Residents,
		careHomes: p.CareHomes,
		consents:  p.Consents,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateVisitRequest) (domain.Visit, error) {
	homeID, err := s.parseID(req.CareHomeID)
	if err != nil {
		return domain.Visit{}, domain.ErrInvalidCareHome
	}
	supplierID, err := s.parseID(req.SupplierID)
	if err != nil {
		return domain.Visit{}, domain.ErrInvalidSupplier
	}
	if req.VisitedAt.IsZero() {
		return domain.Visit{}, domain.ErrInvalidVisitedAt
	}

	supplier, err := s.suppliers.FindByID(ctx, s.db, supplierID)
	if err != nil {
		return domain.Visit{}, err
	}
	if supplier == nil {
		return domain.Visit{}, supplierdomain.ErrNotFound
	}

	createdBy := "system"
	if principal, ok := auth.PrincipalFromContext(ctx); ok && principal.UPN != "" {
		createdBy = principal.UPN
	}

	visit := domain.Visit{
		ID:         s.genID.Generate(),
		CareHomeID: homeID,
		SupplierID: supplierID,
		VisitedAt:  req.VisitedAt.UTC(),
		Notes:      strings.TrimSpace(req.Notes),
		Status:     domain.StatusDraft,
		CreatedBy:  createdBy,
		CreatedAt:  s.clock.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, &visit); err != nil {
		return domain.Visit{}, err
	}
	return visit, nil
}

func (s *Service) List(ctx context.Context, req domain.ListVisitsRequest) ([]domain.VisitDetail, error) {
	filter := domain.VisitFilter{From: req.From, To: req.To}
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

	visits, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, visits)
}

func (s *Service) Confirm(ctx context.Context, id string) (domain.Visit, error) {
	visitID, err := s.parseID(id)
	if err != nil {
		return domain.Visit{}, err
	}
	visit, err := s.repo.FindByID(ctx, s.db, visitID)
	if err != nil {
		return domain.Visit{}, err
	}
	if visit == nil {
		return domain.Visit{}, domain.ErrNotFound
	}
	if !visit.Editable() {
		return domain.Visit{}, domain.ErrVisitLocked
	}

	visit.Status = domain.StatusConfirmed
	if err := s.repo.Update(ctx, s.db, visit); err != nil {
		return domain.Visit{}, err
	}
	return *visit, nil
}

func (s *Service) AddItem(ctx context.Context, visitID string, req domain.AddItemRequest) (domain.VisitItem, error) {
	id, err := s.parseID(visitID)
	if err != nil {
		return domain.VisitItem{}, err
	}
	visit, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.VisitItem{}, err
	}
	if visit == nil {
		return domain.VisitItem{}, domain.ErrNotFound
	}
	if !visit.Editable() {
		return domain.VisitItem{}, domain.ErrVisitLocked
	}

	residentID, err := s.parseID(req.ResidentID)
	if err != nil {
		return domain.VisitItem{}, domain.ErrInvalidID
	}
	description := strings.TrimSpace(req.Description)
	if len(description) < 3 {
		return domain.VisitItem{}, domain.ErrInvalidDescription
	}
	if !req.Qty.IsPositive() {
		return domain.VisitItem{}, domain.ErrInvalidQty
	}
	if !req.UnitPrice.IsPositive() {
		return domain.VisitItem{}, domain.ErrInvalidUnitPrice
	}
	if req.VatRate.IsNegative() {
		return domain.VisitItem{}, domain.ErrInvalidVatRate
	}

	supplier, err := s.suppliers.FindByID(ctx, s.db, visit.SupplierID)
	if err != nil {
		return domain.VisitItem{}, err
	}
	if supplier == nil {
		return domain.VisitItem{}, supplierdomain.ErrNotFound
	}
	if err := s.consents.RequireActive(ctx, residentID, visit.SupplierID, supplier.ServiceType, visit.VisitedAt); err != nil {
		return domain.VisitItem{}, err
	}

	item := domain.VisitItem{
		ID:          s.genID.Generate(),
		VisitID:     visit.ID,
		ResidentID:  residentID,
		Description: description,
		Qty:         req.Qty,
		UnitPrice:   req.UnitPrice,
		VatRate:     req.VatRate,
		LineTotal:   domain.ComputeLineTotal(req.Qty, req.UnitPrice, req.VatRate),
		CreatedAt:   s.clock.Now().UTC(),
	}
	if err := s.repo.InsertItem(ctx, s.db, &item); err != nil {
		return domain.VisitItem{}, err
	}
	return item, nil
}

func (s *Service) PatchItem(ctx context.Context, itemID string, req domain.PatchItemRequest) (domain.VisitItem, error) {
	id, err := s.parseID(itemID)
	if err != nil {
		return domain.VisitItem{}, err
	}
	item, err := s.repo.FindItemByID(ctx, s.db, id)
	if err != nil {
		return domain.VisitItem{}, err
	}
	if item == nil {
		return domain.VisitItem{}, domain.ErrItemNotFound
	}
	visit, err := s.repo.FindByID(ctx, s.db, item.VisitID)
	if err != nil {
		return domain.VisitItem{}, err
	}
	if visit == nil {
		return domain.VisitItem{}, domain.ErrNotFound
	}
	if !visit.Editable() {
		return domain.VisitItem{}, domain.ErrVisitLocked
	}

	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if len(description) < 3 {
			return domain.VisitItem{}, domain.ErrInvalidDescription
		}
		item.Description = description
	}
	if req.Qty != nil {
		if !req.Qty.IsPositive() {
			return domain.VisitItem{}, domain.ErrInvalidQty
		}
		item.Qty = *req.Qty
	}
	if req.UnitPrice != nil {
		if !req.UnitPrice.IsPositive() {
			return domain.VisitItem{}, domain.ErrInvalidUnitPrice
		}
		item.UnitPrice = *req.UnitPrice
	}
	if req.VatRate != nil {
		if req.VatRate.IsNegative() {
			return domain.VisitItem{}, domain.ErrInvalidVatRate
		}
		item.VatRate = *req.VatRate
	}
	item.LineTotal = domain.ComputeLineTotal(item.Qty, item.UnitPrice, item.VatRate)

	if err := s.repo.UpdateItem(ctx, s.db, item); err != nil {
		return domain.VisitItem{}, err
	}
	return *item, nil
}

func (s *Service) ClientList(ctx context.Context, supplierID, visitID string) (domain.ClientList, error) {
	sid, err := s.parseID(supplierID)
	if err != nil {
		return domain.ClientList{}, domain.ErrInvalidSupplier
	}
	filter := domain.VisitFilter{SupplierID: sid}
	if visitID != "" {
		vid, err := s.parseID(visitID)
		if err != nil {
			return domain.ClientList{}, domain.ErrInvalidID
		}
		filter.VisitID = vid
	}

	visits, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return domain.ClientList{}, err
	}
	details, err := s.hydrate(ctx, visits)
	if err != nil {
		return domain.ClientList{}, err
	}

	list := domain.ClientList{
		SupplierID:  sid.String(),
		GeneratedAt: s.clock.Now().UTC(),
		Visits:      make([]domain.ClientListVisit, 0, len(details)),
	}
	for _, detail := range details {
		home, err := s.careHomes.FindByID(ctx, s.db, detail.CareHomeID)
		if err != nil {
			return domain.ClientList{}, err
		}
		list.Visits = append(list.Visits, domain.ClientListVisit{
			VisitID:   detail.ID.String(),
			CareHome:  home,
			VisitedAt: detail.VisitedAt,
			Items:     detail.Items,
		})
	}
	return list, nil
}

// hydrate joins items, residents and suppliers onto the visit rows.
func (s *Service) hydrate(ctx context.Context, visits []domain.Visit) ([]domain.VisitDetail, error) {
	ids := make([]snowflake.ID, 0, len(visits))
	for _, v := range visits {
		ids = append(ids, v.ID)
	}
	items, err := s.repo.ListItemsByVisits(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}

	itemsByVisit := make(map[snowflake.ID][]domain.ItemWithResident, len(visits))
	residentCache := make(map[snowflake.ID]*residentdomain.Resident)
	for _, item := range items {
		resident, ok := residentCache[item.ResidentID]
		if !ok {
			resident, err = s.residents.FindResidentByID(ctx, s.db, item.ResidentID)
			if err != nil {
				return nil, err
			}
			residentCache[item.ResidentID] = resident
		}
		itemsByVisit[item.VisitID] = append(itemsByVisit[item.VisitID], domain.ItemWithResident{
			VisitItem: item,
			Resident:  resident,
		})
	}

	supplierCache := make(map[snowflake.ID]*supplierdomain.Supplier)
	details := make([]domain.VisitDetail, 0, len(visits))
	for _, v := range visits {
		supplier, ok := supplierCache[v.SupplierID]
		if !ok {
			supplier, err = s.suppliers.FindByID(ctx, s.db, v.SupplierID)
			if err != nil {
				return nil, err
			}
			supplierCache[v.SupplierID] = supplier
		}
		detail := domain.VisitDetail{
			Visit:    v,
			Supplier: supplier,
			Items:    itemsByVisit[v.ID],
		}
		if detail.Items == nil {
			detail.Items = []domain.ItemWithResident{}
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
