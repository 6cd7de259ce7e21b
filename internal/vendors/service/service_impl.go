package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/sundries-services/sundries/internal/clock"
	"github.com/sundries-services/sundries/internal/vendors/domain"
	"github.com/sundries-services/sundries/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("vendor.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Vendor, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Vendor, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return domain.Vendor{}, err
	}
	vendor, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Vendor{}, err
	}
	if vendor == nil {
		return domain.Vendor{}, domain.ErrNotFound
	}
	return *vendor, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateVendorRequest) (domain.Vendor, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Vendor{}, domain.ErrInvalidName
	}
	accountRef := strings.ToUpper(strings.TrimSpace(req.AccountRef))
	if accountRef == "" {
		return domain.Vendor{}, domain.ErrInvalidAccountRef
	}

	now := s.clock.Now().UTC()
	vendor := domain.Vendor{
		ID:           s.genID.Generate(),
		Name:         name,
		AccountRef:   accountRef,
		DefNomCode:   strings.TrimSpace(req.DefNomCode),
		TradeContact: strings.TrimSpace(req.TradeContact),
		Address1:     strings.TrimSpace(req.Address1),
		Address2:     strings.TrimSpace(req.Address2),
		Address3:     strings.TrimSpace(req.Address3),
		Address4:     strings.TrimSpace(req.Address4),
		Address5:     strings.TrimSpace(req.Address5),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &vendor); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Vendor{}, domain.ErrDuplicateAccount
		}
		return domain.Vendor{}, err
	}
	return vendor, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateVendorRequest) (domain.Vendor, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return domain.Vendor{}, err
	}

	vendor, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Vendor{}, err
	}
	if vendor == nil {
		return domain.Vendor{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Vendor{}, domain.ErrInvalidName
		}
		vendor.Name = name
	}
	if req.AccountRef != nil {
		accountRef := strings.ToUpper(strings.TrimSpace(*req.AccountRef))
		if accountRef == "" {
			return domain.Vendor{}, domain.ErrInvalidAccountRef
		}
		vendor.AccountRef = accountRef
	}
	if req.DefNomCode != nil {
		vendor.DefNomCode = strings.TrimSpace(*req.DefNomCode)
	}
	if req.TradeContact != nil {
		vendor.TradeContact = strings.TrimSpace(*req.TradeContact)
	}
	if req.Address1 != nil {
		vendor.Address1 = strings.TrimSpace(*req.Address1)
	}
	if req.Address2 != nil {
		vendor.Address2 = strings.TrimSpace(*req.Address2)
	}
	if req.Address3 != nil {
		vendor.Address3 = strings.TrimSpace(*req.Address3)
	}
	if req.Address4 != nil {
		vendor.Address4 = strings.TrimSpace(*req.Address4)
	}
	if req.Address5 != nil {
		vendor.Address5 = strings.TrimSpace(*req.Address5)
	}
	if req.IsActive != nil {
		vendor.IsActive = *req.IsActive
	}
	vendor.UpdatedAt = s.clock.Now().UTC()

	if err := s.repo.Update(ctx, s.db, vendor); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Vendor{}, domain.ErrDuplicateAccount
		}
		return domain.Vendor{}, err
	}
	return *vendor, nil
}

func (s *Service) EnsureMiscVendor(ctx context.Context) (domain.Vendor, error) {
	existing, err := s.repo.FindByAccountRef(ctx, s.db, domain.MiscAccountRef)
	if err != nil {
		return domain.Vendor{}, err
	}
	if existing != nil {
		return *existing, nil
	}

	now := s.clock.Now().UTC()
	vendor := domain.Vendor{
		ID:         s.genID.Generate(),
		Name:       "Misc Expenses",
		AccountRef: domain.MiscAccountRef,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Insert(ctx, s.db, &vendor); err != nil {
		// Lost the race with a concurrent first use; read it back.
		if db.IsDuplicateKeyErr(err) {
			existing, ferr := s.repo.FindByAccountRef(ctx, s.db, domain.MiscAccountRef)
			if ferr == nil && existing != nil {
				return *existing, nil
			}
		}
		return domain.Vendor{}, err
	}

	s.log.Info("created reserved misc vendor", zap.String("vendor_id", vendor.ID.String()))
	return vendor, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
