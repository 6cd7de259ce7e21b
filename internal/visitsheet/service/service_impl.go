package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/sundries-services/sundries/internal/auth"
	carehomedomain "github.com/sundries-services/sundries/internal/carehome/domain"
	"github.com/sundries-services/sundries/internal/clock"
	priceitemdomain "github.com/sundries-services/sundries/internal/priceitem/domain"
	residentdomain "github.com/sundries-services/sundries/internal/resident/domain"
	saledomain "github.com/sundries-services/sundries/internal/sale/domain"
	vendordomain "github.com/sundries-services/sundries/internal/vendors/domain"
	"github.com/sundries-services/sundries/internal/visitsheet/domain"
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
	CareHomes  carehomedomain.Repository
	Vendors    vendordomain.Repository
	Residents  residentdomain.Repository
	PriceItems priceitemdomain.Repository
	Sales      saledomain.Repository
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	repo       domain.Repository
	careHomes  carehomedomain.Repository
	vendors    vendordomain.Repository
	residents  residentdomain.Repository
	priceItems priceitemdomain.Repository
	sales      saledomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("visitsheet.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		repo:       p.Repo,
		careHomes:  p.CareHomes,
		vendors:    p.Vendors,
		residents:  p.Residents,
		priceItems: p.PriceItems,
		sales:      p.Sales,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateSheetRequest) (domain.VisitSheet, error) {
	homeID, err := snowflake.ParseString(req.CareHomeID)
	if err != nil {
		return domain.VisitSheet{}, domain.ErrInvalidCareHome
	}
	vendorID, err := snowflake.ParseString(req.VendorID)
	if err != nil {
		return domain.VisitSheet{}, domain.ErrInvalidVendor
	}
	if req.VisitDate.IsZero() {
		return domain.VisitSheet{}, domain.ErrInvalidVisitDate
	}

	home, err := s.careHomes.FindByID(ctx, s.db, homeID)
	if err != nil {
		return domain.VisitSheet{}, err
	}
	if home == nil {
		return domain.VisitSheet{}, carehomedomain.ErrNotFound
	}
	vendor, err := s.vendors.FindByID(ctx, s.db, vendorID)
	if err != nil {
		return domain.VisitSheet{}, err
	}
	if vendor == nil {
		return domain.VisitSheet{}, vendordomain.ErrNotFound
	}

	day := req.VisitDate.UTC().Truncate(24 * time.Hour)
	existing, err := s.repo.FindForVisit(ctx, s.db, homeID, vendorID, day)
	if err != nil {
		return domain.VisitSheet{}, err
	}
	if existing != nil {
		return *existing, nil
	}

	createdBy := "system"
	if principal, ok := auth.PrincipalFromContext(ctx); ok && principal.UPN != "" {
		createdBy = principal.UPN
	}

	now := s.clock.Now().UTC()
	sheet := domain.VisitSheet{
		ID:         s.genID.Generate(),
		CareHomeID: homeID,
		VendorID:   vendorID,
		VisitDate:  day,
		Status:     domain.StatusDraft,
		CreatedBy:  createdBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Insert(ctx, s.db, &sheet); err != nil {
		return domain.VisitSheet{}, err
	}
	return sheet, nil
}

func (s *Service) List(ctx context.Context, req domain.ListSheetsRequest) ([]domain.VisitSheet, error) {
	filter := domain.SheetFilter{}
	if req.CareHomeID != "" {
		id, err := snowflake.ParseString(req.CareHomeID)
		if err != nil {
			return nil, domain.ErrInvalidCareHome
		}
		filter.CareHomeID = id
	}
	if req.VendorID != "" {
		id, err := snowflake.ParseString(req.VendorID)
		if err != nil {
			return nil, domain.ErrInvalidVendor
		}
		filter.VendorID = id
	}
	return s.repo.List(ctx, s.db, filter)
}

func (s *Service) Get(ctx context.Context, id string) (domain.SheetDetail, error) {
	sheetID, err := snowflake.ParseString(id)
	if err != nil {
		return domain.SheetDetail{}, domain.ErrInvalidID
	}
	sheet, err := s.repo.FindByID(ctx, s.db, sheetID)
	if err != nil {
		return domain.SheetDetail{}, err
	}
	if sheet == nil {
		return domain.SheetDetail{}, domain.ErrNotFound
	}

	home, err := s.careHomes.FindByID(ctx, s.db, sheet.CareHomeID)
	if err != nil {
		return domain.SheetDetail{}, err
	}
	if home == nil {
		return domain.SheetDetail{}, carehomedomain.ErrNotFound
	}
	vendor, err := s.vendors.FindByID(ctx, s.db, sheet.VendorID)
	if err != nil {
		return domain.SheetDetail{}, err
	}
	if vendor == nil {
		return domain.SheetDetail{}, vendordomain.ErrNotFound
	}

	category := vendordomain.CategoryFor(vendor.TradeContact)

	consents, err := s.residents.ListConsentsByHome(ctx, s.db, sheet.CareHomeID)
	if err != nil {
		return domain.SheetDetail{}, err
	}
	sheetResidents := make([]domain.SheetResident, 0, len(consents))
	consentByRoster := make(map[snowflake.ID]snowflake.ID)
	for _, consent := range consents {
		if !consent.CurrentResident || !consentsTo(consent, category) {
			continue
		}
		sheetResidents = append(sheetResidents, domain.SheetResident{
			ID:               consent.ID,
			RosterResidentID: consent.RosterResidentID,
			RoomNumber:       consent.RoomNumber,
			FullName:         consent.FullName,
			AccountCode:      consent.AccountCode,
		})
		if consent.RosterResidentID != nil {
			consentByRoster[*consent.RosterResidentID] = consent.ID
		}
	}

	allItems, err := s.priceItems.ListByVendor(ctx, s.db, sheet.VendorID)
	if err != nil {
		return domain.SheetDetail{}, err
	}
	priceItems := make([]priceitemdomain.PriceItem, 0, len(allItems))
	priceItemSet := make(map[snowflake.ID]bool, len(allItems))
	for _, item := range allItems {
		if !item.IsActive {
			continue
		}
		priceItems = append(priceItems, item)
		priceItemSet[item.ID] = true
	}

	selections, err := s.daySelections(ctx, sheet, consentByRoster, priceItemSet)
	if err != nil {
		return domain.SheetDetail{}, err
	}

	return domain.SheetDetail{
		ID:        sheet.ID,
		VisitedAt: sheet.VisitDate,
		CareHome:  domain.SheetParty{ID: home.ID, Name: home.Name},
		Vendor: domain.SheetVendor{
			ID:           vendor.ID,
			Name:         vendor.Name,
			AccountRef:   vendor.AccountRef,
			TradeContact: vendor.TradeContact,
		},
		ConsentField: consentFieldName(category),
		Status:       sheet.Status,
		SignedAt:     sheet.SignedAt,
		Residents:    sheetResidents,
		PriceItems:   priceItems,
		Selections:   selections,
	}, nil
}

// daySelections rebuilds the ticked cells from the sale items already
// saved for the sheet's day. Items whose resident or price item no
// longer appears on the sheet are left out rather than erroring.
func (s *Service) daySelections(ctx context.Context, sheet *domain.VisitSheet, consentByRoster map[snowflake.ID]snowflake.ID, priceItemSet map[snowflake.ID]bool) ([]domain.SheetSelection, error) {
	dayStart := sheet.VisitDate
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)
	items, err := s.sales.List(ctx, s.db, saledomain.SaleFilter{
		CareHomeID: sheet.CareHomeID,
		VendorID:   sheet.VendorID,
		From:       &dayStart,
		To:         &dayEnd,
	})
	if err != nil {
		return nil, err
	}

	selections := make([]domain.SheetSelection, 0, len(items))
	for _, item := range items {
		if item.PriceItemID == nil || !priceItemSet[*item.PriceItemID] {
			continue
		}
		consentID, ok := consentByRoster[item.RosterResidentID]
		if !ok {
			continue
		}
		selections = append(selections, domain.SheetSelection{
			ResidentConsentID: consentID,
			PriceItemID:       *item.PriceItemID,
		})
	}
	return selections, nil
}

func (s *Service) Sign(ctx context.Context, id string) (domain.VisitSheet, error) {
	sheetID, err := snowflake.ParseString(id)
	if err != nil {
		return domain.VisitSheet{}, domain.ErrInvalidID
	}
	sheet, err := s.repo.FindByID(ctx, s.db, sheetID)
	if err != nil {
		return domain.VisitSheet{}, err
	}
	if sheet == nil {
		return domain.VisitSheet{}, domain.ErrNotFound
	}
	if sheet.Status == domain.StatusSigned {
		return *sheet, nil
	}

	now := s.clock.Now().UTC()
	sheet.Status = domain.StatusSigned
	sheet.SignedAt = &now
	sheet.UpdatedAt = now
	if err := s.repo.Update(ctx, s.db, sheet); err != nil {
		return domain.VisitSheet{}, err
	}
	s.log.Info("visit sheet signed",
		zap.String("sheet_id", sheet.ID.String()),
		zap.String("vendor_id", sheet.VendorID.String()))
	return *sheet, nil
}

// consentsTo reads the consent flag a vendor's category is gated on.
func consentsTo(consent residentdomain.ResidentConsent, category vendordomain.ConsentCategory) bool {
	switch category {
	case vendordomain.CategoryHairdressing:
		return consent.HairdressersConsent
	case vendordomain.CategoryChiropody:
		return consent.ChiropodyConsent
	case vendordomain.CategoryNewspapers:
		return consent.NewspapersConsent
	case vendordomain.CategoryShop:
		return consent.ShopConsent
	default:
		return consent.SundryConsentReceived
	}
}

// consentFieldName names the consent column for the front end's sheet
// header, matching the resident-consent JSON field names.
func consentFieldName(category vendordomain.ConsentCategory) string {
	switch category {
	case vendordomain.CategoryHairdressing:
		return "hairdressersConsent"
	case vendordomain.CategoryChiropody:
		return "chiropodyConsent"
	case vendordomain.CategoryNewspapers:
		return "newspapersConsent"
	case vendordomain.CategoryShop:
		return "shopConsent"
	default:
		return "sundryConsentReceived"
	}
}
