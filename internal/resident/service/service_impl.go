package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/sundries-services/sundries/internal/audit/domain"
	"github.com/sundries-services/sundries/internal/clock"
	"github.com/sundries-services/sundries/internal/resident/domain"
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
	Audit auditdomain.Recorder
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
	audit auditdomain.Recorder
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("resident.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
		audit: p.Audit,
	}
}

func (s *Service) ListRosterResidents(ctx context.Context, careHomeID string) ([]domain.RosterResident, error) {
	homeID, err := s.parseID(careHomeID)
	if err != nil {
		return nil, domain.ErrInvalidCareHome
	}
	return s.repo.ListRosterByHome(ctx, s.db, homeID)
}

func (s *Service) ListConsents(ctx context.Context, careHomeID string) ([]domain.ResidentConsent, error) {
	homeID, err := s.parseID(careHomeID)
	if err != nil {
		return nil, domain.ErrInvalidCareHome
	}
	return s.repo.ListConsentsByHome(ctx, s.db, homeID)
}

func (s *Service) PatchConsent(ctx context.Context, id string, req domain.PatchConsentRequest) (domain.ResidentConsent, error) {
	consentID, err := s.parseID(id)
	if err != nil {
		return domain.ResidentConsent{}, err
	}

	consent, err := s.repo.FindConsentByID(ctx, s.db, consentID)
	if err != nil {
		return domain.ResidentConsent{}, err
	}
	if consent == nil {
		return domain.ResidentConsent{}, domain.ErrConsentNotFound
	}

	if req.SundryConsentReceived != nil {
		consent.SundryConsentReceived = *req.SundryConsentReceived
	}
	if req.NewspapersConsent != nil {
		consent.NewspapersConsent = *req.NewspapersConsent
	}
	if req.ChiropodyConsent != nil {
		consent.ChiropodyConsent = *req.ChiropodyConsent
	}
	if req.HairdressersConsent != nil {
		consent.HairdressersConsent = *req.HairdressersConsent
	}
	if req.ShopConsent != nil {
		consent.ShopConsent = *req.ShopConsent
	}
	if req.OtherConsent != nil {
		consent.OtherConsent = *req.OtherConsent
	}
	if req.Comments != nil {
		consent.Comments = strings.TrimSpace(*req.Comments)
	}
	if req.ChiropodyNote != nil {
		consent.ChiropodyNote = strings.TrimSpace(*req.ChiropodyNote)
	}
	if req.ShopNote != nil {
		consent.ShopNote = strings.TrimSpace(*req.ShopNote)
	}
	if req.CurrentResident != nil {
		consent.CurrentResident = *req.CurrentResident
	}
	consent.UpdatedAt = s.clock.Now().UTC()

	if err := s.repo.UpdateConsent(ctx, s.db, consent); err != nil {
		return domain.ResidentConsent{}, err
	}
	return *consent, nil
}

func (s *Service) BootstrapConsents(ctx context.Context, careHomeID string) (domain.BootstrapResult, error) {
	homeID, err := s.parseID(careHomeID)
	if err != nil {
		return domain.BootstrapResult{}, domain.ErrInvalidCareHome
	}

	var result domain.BootstrapResult
	now := s.clock.Now().UTC()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		roster, err := s.repo.ListRosterByHome(ctx, tx, homeID)
		if err != nil {
			return err
		}
		consents, err := s.repo.ListConsentsByHome(ctx, tx, homeID)
		if err != nil {
			return err
		}

		byRosterID := make(map[snowflake.ID]*domain.ResidentConsent, len(consents))
		for i := range consents {
			if consents[i].RosterResidentID != nil {
				byRosterID[*consents[i].RosterResidentID] = &consents[i]
			}
		}

		occupied := make(map[snowflake.ID]bool, len(roster))
		for _, rr := range roster {
			if rr.IsVacant {
				continue
			}
			occupied[rr.ID] = true

			if existing, ok := byRosterID[rr.ID]; ok {
				existing.RoomNumber = rr.RoomNumber
				existing.FullName = rr.FullName
				existing.AccountCode = rr.AccountCode
				existing.ServiceUserID = rr.ServiceUserID
				existing.CurrentResident = true
				existing.UpdatedAt = now
				if err := s.repo.UpdateConsent(ctx, tx, existing); err != nil {
					return err
				}
				result.Updated++
				continue
			}

			rosterID := rr.ID
			consent := domain.ResidentConsent{
				ID:               s.genID.Generate(),
				CareHomeID:       homeID,
				RosterResidentID: &rosterID,
				RoomNumber:       rr.RoomNumber,
				FullName:         rr.FullName,
				AccountCode:      rr.AccountCode,
				ServiceUserID:    rr.ServiceUserID,
				CurrentResident:  true,
				CreatedAt:        now,
				UpdatedAt:        now,
			}
			if err := s.repo.InsertConsent(ctx, tx, &consent); err != nil {
				return err
			}
			result.Created++
		}

		// Departed residents keep their row and its consent history.
		for i := range consents {
			c := &consents[i]
			if c.RosterResidentID == nil || !c.CurrentResident {
				continue
			}
			if occupied[*c.RosterResidentID] {
				continue
			}
			c.CurrentResident = false
			c.UpdatedAt = now
			if err := s.repo.UpdateConsent(ctx, tx, c); err != nil {
				return err
			}
			result.Deactivated++
		}

		return nil
	})
	if err != nil {
		return domain.BootstrapResult{}, err
	}

	s.audit.Record(ctx, "resident_consents.bootstrap", "care_home", homeID.String(), map[string]any{
		"created":     result.Created,
		"updated":     result.Updated,
		"deactivated": result.Deactivated,
	})
	s.log.Info("consent bootstrap finished",
		zap.String("care_home_id", homeID.String()),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("deactivated", result.Deactivated),
	)
	return result, nil
}

func (s *Service) ListResidents(ctx context.Context, careHomeID string) ([]domain.Resident, error) {
	homeID, err := s.parseID(careHomeID)
	if err != nil {
		return nil, domain.ErrInvalidCareHome
	}
	return s.repo.ListResidentsByHome(ctx, s.db, homeID)
}

func (s *Service) CreateResident(ctx context.Context, req domain.CreateResidentRequest) (domain.Resident, error) {
	homeID, err := s.parseID(req.CareHomeID)
	if err != nil {
		return domain.Resident{}, domain.ErrInvalidCareHome
	}
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	if firstName == "" || lastName == "" {
		return domain.Resident{}, domain.ErrInvalidName
	}

	resident := domain.Resident{
		ID:         s.genID.Generate(),
		CareHomeID: homeID,
		FirstName:  firstName,
		LastName:   lastName,
		DOB:        req.DOB,
		IsActive:   true,
		CreatedAt:  s.clock.Now().UTC(),
	}
	if err := s.repo.InsertResident(ctx, s.db, &resident); err != nil {
		return domain.Resident{}, err
	}
	return resident, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
