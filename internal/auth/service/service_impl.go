package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/sundries-services/sundries/internal/auth/domain"
	carehomedomain "github.com/sundries-services/sundries/internal/carehome/domain"
	"github.com/sundries-services/sundries/internal/clock"
	"github.com/sundries-services/sundries/pkg/db"
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
	CareHomes carehomedomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	repo      domain.Repository
	careHomes carehomedomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("auth.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		repo:      p.Repo,
		careHomes: p.CareHomes,
	}
}

func (s *Service) EnsureUser(ctx context.Context, principal domain.Principal) (domain.AppUser, error) {
	if principal.Subject == "" {
		return domain.AppUser{}, domain.ErrInvalidOID
	}

	existing, err := s.repo.FindByOID(ctx, s.db, principal.Subject)
	if err != nil {
		return domain.AppUser{}, err
	}
	if existing != nil {
		changed := false
		if principal.UPN != "" && principal.UPN != existing.UPN {
			existing.UPN = principal.UPN
			changed = true
		}
		if principal.Name != "" && principal.Name != existing.DisplayName {
			existing.DisplayName = principal.Name
			changed = true
		}
		if changed {
			existing.UpdatedAt = s.clock.Now().UTC()
			if err := s.repo.Update(ctx, s.db, existing); err != nil {
				return domain.AppUser{}, err
			}
		}
		return *existing, nil
	}

	now := s.clock.Now().UTC()
	user := domain.AppUser{
		ID:          s.genID.Generate(),
		OID:         principal.Subject,
		UPN:         principal.UPN,
		DisplayName: principal.Name,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, s.db, &user); err != nil {
		// Concurrent first requests for the same user race on the oid
		// index. Read the winner back.
		if db.IsDuplicateKeyErr(err) {
			winner, findErr := s.repo.FindByOID(ctx, s.db, principal.Subject)
			if findErr == nil && winner != nil {
				return *winner, nil
			}
		}
		return domain.AppUser{}, err
	}
	return user, nil
}

func (s *Service) HasHomeAccess(ctx context.Context, userID, careHomeID snowflake.ID) (bool, error) {
	return s.repo.HasHomeRole(ctx, s.db, userID, careHomeID)
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.UserWithRoles, error) {
	users, err := s.repo.ListUsers(ctx, s.db)
	if err != nil {
		return nil, err
	}

	userIDs := make([]snowflake.ID, 0, len(users))
	for _, user := range users {
		userIDs = append(userIDs, user.ID)
	}
	roles, err := s.repo.ListRolesByUsers(ctx, s.db, userIDs)
	if err != nil {
		return nil, err
	}
	homes, err := s.homesByID(ctx)
	if err != nil {
		return nil, err
	}

	rolesByUser := make(map[snowflake.ID][]domain.RoleWithHome, len(users))
	for _, role := range roles {
		rolesByUser[role.UserID] = append(rolesByUser[role.UserID], domain.RoleWithHome{
			UserHomeRole: role,
			CareHome:     homes[role.CareHomeID],
		})
	}

	result := make([]domain.UserWithRoles, 0, len(users))
	for _, user := range users {
		result = append(result, domain.UserWithRoles{
			AppUser:   user,
			HomeRoles: rolesByUser[user.ID],
		})
	}
	return result, nil
}

func (s *Service) CreateUser(ctx context.Context, req domain.CreateUserRequest) (domain.UserWithRoles, error) {
	oid := strings.TrimSpace(req.OID)
	if oid == "" {
		return domain.UserWithRoles{}, domain.ErrInvalidOID
	}
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = domain.DefaultRole
	}

	user, err := s.EnsureUser(ctx, domain.Principal{Subject: oid, UPN: strings.TrimSpace(req.UPN)})
	if err != nil {
		return domain.UserWithRoles{}, err
	}

	assignments := make([]domain.HomeAssignment, 0, len(req.HomeIDs))
	for _, homeID := range req.HomeIDs {
		assignments = append(assignments, domain.HomeAssignment{CareHomeID: homeID, Role: role})
	}
	roles, err := s.ReplaceHomeRoles(ctx, user.ID.String(), assignments)
	if err != nil {
		return domain.UserWithRoles{}, err
	}

	return domain.UserWithRoles{AppUser: user, HomeRoles: roles}, nil
}

func (s *Service) ReplaceHomeRoles(ctx context.Context, userID string, assignments []domain.HomeAssignment) ([]domain.RoleWithHome, error) {
	parsed, err := s.parseID(userID)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	homes, err := s.homesByID(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	roles := make([]domain.UserHomeRole, 0, len(assignments))
	for _, assignment := range assignments {
		homeID, err := s.parseID(assignment.CareHomeID)
		if err != nil {
			return nil, domain.ErrInvalidHome
		}
		if _, ok := homes[homeID]; !ok {
			return nil, domain.ErrInvalidHome
		}
		role := strings.TrimSpace(assignment.Role)
		if role == "" {
			return nil, domain.ErrInvalidRole
		}
		roles = append(roles, domain.UserHomeRole{
			ID:         s.genID.Generate(),
			UserID:     user.ID,
			CareHomeID: homeID,
			Role:       role,
			CreatedAt:  now,
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.DeleteRolesByUser(ctx, tx, user.ID); err != nil {
			return err
		}
		return s.repo.InsertRoles(ctx, tx, roles)
	})
	if err != nil {
		return nil, err
	}

	result := make([]domain.RoleWithHome, 0, len(roles))
	for _, role := range roles {
		result = append(result, domain.RoleWithHome{
			UserHomeRole: role,
			CareHome:     homes[role.CareHomeID],
		})
	}
	return result, nil
}

func (s *Service) homesByID(ctx context.Context) (map[snowflake.ID]*carehomedomain.CareHome, error) {
	homes, err := s.careHomes.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	byID := make(map[snowflake.ID]*carehomedomain.CareHome, len(homes))
	for i := range homes {
		byID[homes[i].ID] = &homes[i]
	}
	return byID, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
