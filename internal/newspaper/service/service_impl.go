package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/sundries-services/sundries/internal/clock"
	"github.com/sundries-services/sundries/internal/newspaper/domain"
	residentdomain "github.com/sundries-services/sundries/internal/resident/domain"
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
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	repo      domain.Repository
	residents residentdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("newspaper.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		repo:      p.Repo,
		residents: p.Residents,
	}
}

func (s *Service) ListTitles(ctx context.Context) ([]domain.Newspaper, error) {
	return s.repo.ListTitles(ctx, s.db)
}

func (s *Service) ListOrders(ctx context.Context, req domain.ListOrdersRequest) ([]domain.OrderDetail, error) {
	var filter domain.OrderFilter
	if req.CareHomeID != "" {
		id, err := s.parseID(req.CareHomeID)
		if err != nil {
			return nil, domain.ErrInvalidCareHome
		}
		filter.CareHomeID = id
	}
	if req.RosterResidentID != "" {
		id, err := s.parseID(req.RosterResidentID)
		if err != nil {
			return nil, domain.ErrInvalidResident
		}
		filter.RosterResidentID = id
	}

	orders, err := s.repo.ListOrders(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, orders)
}

func (s *Service) TodayOrders(ctx context.Context, careHomeID string) ([]domain.OrderDetail, error) {
	if strings.TrimSpace(careHomeID) == "" {
		return nil, domain.ErrCareHomeNeeded
	}
	homeID, err := s.parseID(careHomeID)
	if err != nil {
		return nil, domain.ErrInvalidCareHome
	}

	weekday := strings.ToLower(s.clock.Now().UTC().Weekday().String())
	orders, err := s.repo.ListOrders(ctx, s.db, domain.OrderFilter{
		CareHomeID: homeID,
		Weekday:    weekday,
	})
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, orders)
}

func (s *Service) UpsertOrder(ctx context.Context, req domain.UpsertOrderRequest) (domain.NewspaperOrder, error) {
	homeID, err := s.parseID(req.CareHomeID)
	if err != nil {
		return domain.NewspaperOrder{}, domain.ErrInvalidCareHome
	}
	residentID, err := s.parseID(req.RosterResidentID)
	if err != nil {
		return domain.NewspaperOrder{}, domain.ErrInvalidResident
	}
	newspaperID, err := s.parseID(req.NewspaperID)
	if err != nil {
		return domain.NewspaperOrder{}, domain.ErrInvalidID
	}
	title := strings.TrimSpace(req.ItemTitle)
	if title == "" {
		return domain.NewspaperOrder{}, domain.ErrInvalidTitle
	}

	now := s.clock.Now().UTC()
	existing, err := s.repo.FindOrder(ctx, s.db, residentID, newspaperID)
	if err != nil {
		return domain.NewspaperOrder{}, err
	}

	if existing == nil {
		order := domain.NewspaperOrder{
			ID:               s.genID.Generate(),
			CareHomeID:       homeID,
			RosterResidentID: residentID,
			NewspaperID:      newspaperID,
			ItemTitle:        title,
			Price:            req.Price,
			Monday:           boolValue(req.Monday),
			Tuesday:          boolValue(req.Tuesday),
			Wednesday:        boolValue(req.Wednesday),
			Thursday:         boolValue(req.Thursday),
			Friday:           boolValue(req.Friday),
			Saturday:         boolValue(req.Saturday),
			Sunday:           boolValue(req.Sunday),
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := s.repo.InsertOrder(ctx, s.db, &order); err != nil {
			return domain.NewspaperOrder{}, err
		}
		return order, nil
	}

	existing.ItemTitle = title
	existing.Price = req.Price
	if req.Monday != nil {
		existing.Monday = *req.Monday
	}
	if req.Tuesday != nil {
		existing.Tuesday = *req.Tuesday
	}
	if req.Wednesday != nil {
		existing.Wednesday = *req.Wednesday
	}
	if req.Thursday != nil {
		existing.Thursday = *req.Thursday
	}
	if req.Friday != nil {
		existing.Friday = *req.Friday
	}
	if req.Saturday != nil {
		existing.Saturday = *req.Saturday
	}
	if req.Sunday != nil {
		existing.Sunday = *req.Sunday
	}
	existing.UpdatedAt = now

	if err := s.repo.UpdateOrder(ctx, s.db, existing); err != nil {
		return domain.NewspaperOrder{}, err
	}
	return *existing, nil
}

func (s *Service) hydrate(ctx context.Context, orders []domain.NewspaperOrder) ([]domain.OrderDetail, error) {
	residentCache := make(map[snowflake.ID]*residentdomain.RosterResident)
	titleCache := make(map[snowflake.ID]*domain.Newspaper)

	details := make([]domain.OrderDetail, 0, len(orders))
	for _, order := range orders {
		detail := domain.OrderDetail{NewspaperOrder: order}

		resident, ok := residentCache[order.RosterResidentID]
		if !ok {
			var err error
			resident, err = s.residents.FindRosterByID(ctx, s.db, order.RosterResidentID)
			if err != nil {
				return nil, err
			}
			residentCache[order.RosterResidentID] = resident
		}
		detail.Resident = resident

		title, ok := titleCache[order.NewspaperID]
		if !ok {
			var err error
			title, err = s.repo.FindTitleByID(ctx, s.db, order.NewspaperID)
			if err != nil {
				return nil, err
			}
			titleCache[order.NewspaperID] = title
		}
		detail.Newspaper = title

		details = append(details, detail)
	}
	return details, nil
}

func boolValue(v *bool) bool {
	return v != nil && *v
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
