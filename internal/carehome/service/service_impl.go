package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/sundries-services/sundries/internal/carehome/domain"
	"github.com/sundries-services/sundries/internal/clock"
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
		log:   p.Log.Named("carehome.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.CareHome, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.CareHome, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.CareHome{}, domain.ErrInvalidID
	}

	home, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.CareHome{}, err
	}
	if home == nil {
		return domain.CareHome{}, domain.ErrNotFound
	}
	return *home, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateCareHomeRequest) (domain.CareHome, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.CareHome{}, domain.ErrInvalidName
	}

	region := strings.TrimSpace(req.Region)
	if region == "" {
		region = "UK South"
	}

	now := s.clock.Now().UTC()
	home := domain.CareHome{
		ID:        s.genID.Generate(),
		Name:      name,
		Region:    region,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &home); err != nil {
		return domain.CareHome{}, err
	}
	return home, nil
}
