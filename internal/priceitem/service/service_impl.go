package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/sundries-services/sundries/internal/clock"
	"github.com/sundries-services/sundries/internal/priceitem/domain"
	vendordomain "github.com/sundries-services/sundries/internal/vendors/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    domain.Repository
	Vendors vendordomain.Repository
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    domain.Repository
	vendors vendordomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("priceitem.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		vendors: p.Vendors,
	}
}

func (s *Service) ListByVendor(ctx context.Context, vendorID string) ([]domain.PriceItem, error) {
	parsed, err := s.parseID(vendorID)
	if err != nil {
		return nil, domain.ErrInvalidVendor
	}
	return s.repo.ListByVendor(ctx, s.db, parsed)
}

func (s *Service) Create(ctx context.Context, req domain.CreatePriceItemRequest) (domain.PriceItem, error) {
	vendorID, err := s.parseID(req.VendorID)
	if err != nil {
		return domain.PriceItem{}, domain.ErrInvalidVendor
	}
	vendor, err := s.vendors.FindByID(ctx, s.db, vendorID)
	if err != nil {
		return domain.PriceItem{}, err
	}
	if vendor == nil {
		return domain.PriceItem{}, vendordomain.ErrNotFound
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return domain.PriceItem{}, domain.ErrInvalidDescription
	}
	if req.Price.IsNegative() {
		return domain.PriceItem{}, domain.ErrInvalidPrice
	}

	now := s.clock.Now().UTC()
	item := domain.PriceItem{
		ID:          s.genID.Generate(),
		VendorID:    vendorID,
		Description: description,
		Price:       req.Price,
		ValidFrom:   req.ValidFrom,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, s.db, &item); err != nil {
		return domain.PriceItem{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdatePriceItemRequest) (domain.PriceItem, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return domain.PriceItem{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.PriceItem{}, err
	}
	if item == nil {
		return domain.PriceItem{}, domain.ErrNotFound
	}

	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return domain.PriceItem{}, domain.ErrInvalidDescription
		}
		item.Description = description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return domain.PriceItem{}, domain.ErrInvalidPrice
		}
		item.Price = *req.Price
	}
	if req.ValidFrom != nil {
		item.ValidFrom = req.ValidFrom
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	item.UpdatedAt = s.clock.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.PriceItem{}, err
	}
	return *item, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
