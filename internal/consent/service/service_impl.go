package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/sundries-services/sundries/internal/auth"
	"github.com/sundries-services/sundries/internal/clock"
	"github.com/sundries-services/sundries/internal/consent/domain"
	residentdomain "github.com/sundries-services/sundries/internal/resident/domain"
	supplierdomain "github.com/sundries-services/sundries/internal/supplier/domain"
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
	Residents residentdomain.Repository
	Suppliers supplierdomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	repo      domain.Repository
	residents residentdomain.Repository
	suppliers supplierdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("consent.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		repo:      p.Repo,
		residents: p.Residents,
		suppliers: p.Suppliers,
	}
}

func (s *Service) ListByResident(ctx context.Context, residentID string) ([]domain.Consent, error) {
	parsed, err := s.parseID(residentID)
	if err != nil {
		return nil, domain.ErrInvalidResident
	}
	return s.repo.ListByResident(ctx, s.db, parsed)
}

func (s *Service) Create(ctx context.Context, req domain.CreateConsentRequest) (domain.Consent, error) {
	residentID, err := s.parseID(req.ResidentID)
	if err != nil {
		return domain.Consent{}, domain.ErrInvalidResident
	}
	supplierID, err := s.parseID(req.SupplierID)
	if err != nil {
		return domain.Consent{}, domain.ErrInvalidSupplier
	}
	if req.ConsentGivenAt.IsZero() {
		return domain.Consent{}, domain.ErrInvalidGivenDate
	}

	resident, err := s.residents.FindResidentByID(ctx, s.db, residentID)
	if err != nil {
		return domain.Consent{}, err
	}
	if resident == nil {
		return domain.Consent{}, residentdomain.ErrNotFound
	}
	supplier, err := s.suppliers.FindByID(ctx, s.db, supplierID)
	if err != nil {
		return domain.Consent{}, err
	}
	if supplier == nil {
		return domain.Consent{}, supplierdomain.ErrNotFound
	}

	serviceType := strings.TrimSpace(req.ServiceType)
	if serviceType == "" {
		serviceType = supplier.ServiceType
	}

	createdBy := ""
	if principal, ok := auth.PrincipalFromContext(ctx); ok {
		createdBy = principal.UPN
	}

	consent := domain.Consent{
		ID:               s.genID.Generate(),
		ResidentID:       residentID,
		SupplierID:       supplierID,
		ServiceType:      serviceType,
		Status:           domain.StatusActive,
		ConsentGivenAt:   req.ConsentGivenAt.UTC(),
		ConsentExpiresAt: req.ConsentExpiresAt,
		Notes:            strings.TrimSpace(req.Notes),
		CreatedBy:        createdBy,
		CreatedAt:        s.clock.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, &consent); err != nil {
		return domain.Consent{}, err
	}
	return consent, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateConsentRequest) (domain.Consent, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return domain.Consent{}, err
	}

	consent, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Consent{}, err
	}
	if consent == nil {
		return domain.Consent{}, domain.ErrNotFound
	}

	if req.Status != nil {
		switch *req.Status {
		case domain.StatusActive, domain.StatusPaused, domain.StatusRevoked:
			consent.Status = *req.Status
		default:
			return domain.Consent{}, domain.ErrInvalidStatus
		}
	}
	if req.ConsentExpiresAt != nil {
		consent.ConsentExpiresAt = req.ConsentExpiresAt
	}
	if req.Notes != nil {
		consent.Notes = strings.TrimSpace(*req.Notes)
	}

	if err := s.repo.Update(ctx, s.db, consent); err != nil {
		return domain.Consent{}, err
	}
	return *consent, nil
}

func (s *Service) RequireActive(ctx context.Context, residentID, supplierID snowflake.ID, serviceType string, visitedAt time.Time) error {
	consents, err := s.repo.ListForPair(ctx, s.db, residentID, supplierID, serviceType)
	if err != nil {
		return err
	}
	for _, consent := range consents {
		if consent.Covers(visitedAt) {
			return nil
		}
	}
	return domain.ErrNoActiveConsent
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
