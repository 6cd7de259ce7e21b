package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/sundries-services/sundries/internal/clock"
	"github.com/sundries-services/sundries/internal/supplier/domain"
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
		log:   p.Log.Named("supplier.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Supplier, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Supplier, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.Supplier{}, domain.ErrInvalidID
	}
	supplier, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Supplier{}, err
	}
	if supplier == nil {
		return domain.Supplier{}, domain.ErrNotFound
	}
	return *supplier, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateSupplierRequest) (domain.Supplier, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Supplier{}, domain.ErrInvalidName
	}
	serviceType := strings.TrimSpace(req.ServiceType)
	if serviceType == "" {
		return domain.Supplier{}, domain.ErrInvalidServiceType
	}

	supplier := domain.Supplier{
		ID:           s.genID.Generate(),
		Name:         name,
		ServiceType:  serviceType,
		ContactEmail: strings.TrimSpace(req.ContactEmail),
		IsActive:     true,
		CreatedAt:    s.clock.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, &supplier); err != nil {
		return domain.Supplier{}, err
	}
	return supplier, nil
}
