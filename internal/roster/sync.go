package roster

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/sundries-services/sundries/internal/audit/domain"
	carehomedomain "github.com/sundries-services/sundries/internal/carehome/domain"
	"github.com/sundries-services/sundries/internal/clock"
	residentdomain "github.com/sundries-services/sundries/internal/resident/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SyncResult mirrors what the sync endpoint returns.
type SyncResult struct {
	Synced       int       `json:"synced"`
	Skipped      int       `json:"skipped"`
	Total        int       `json:"total"`
	LastSyncedAt time.Time `json:"lastSyncedAt"`
}

type Syncer interface {
	Sync(ctx context.Context) (SyncResult, error)
}

type SyncParams struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Client    Client
	Residents residentdomain.Repository
	CareHomes carehomedomain.Repository
	Audit     auditdomain.Recorder
}

type syncService struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	client    Client
	residents residentdomain.Repository
	careHomes carehomedomain.Repository
	audit     auditdomain.Recorder
}

func NewSyncer(p SyncParams) Syncer {
	return &syncService{
		db:        p.DB,
		log:       p.Log.Named("roster.sync"),
		genID:     p.GenID,
		clock:     p.Clock,
		client:    p.Client,
		residents: p.Residents,
		careHomes: p.CareHomes,
		audit:     p.Audit,
	}
}

// Sync pulls the full roster and upserts one row per room, keyed on the
// provider's room id. Rooms under locations that match no care home by
// name are counted as skipped. The upserts share one transaction; the
// provider fetch itself happens outside it.
func (s *syncService) Sync(ctx context.Context) (SyncResult, error) {
	items, err := s.client.FetchResidents(ctx)
	if err != nil {
		return SyncResult{}, err
	}

	homes, err := s.careHomes.List(ctx, s.db)
	if err != nil {
		return SyncResult{}, err
	}
	homeByName := make(map[string]snowflake.ID, len(homes))
	for _, home := range homes {
		homeByName[strings.ToLower(home.Name)] = home.ID
	}

	now := s.clock.Now().UTC()
	result := SyncResult{Total: len(items), LastSyncedAt: now}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			homeID, ok := homeByName[strings.ToLower(item.CareHomeName)]
			if !ok {
				result.Skipped++
				continue
			}

			resident := residentdomain.RosterResident{
				ID:               s.genID.Generate(),
				CareHomeID:       homeID,
				RosterLocationID: item.RosterLocationID,
				RosterRoomID:     item.RosterRoomID,
				RoomNumber:       item.RoomNumber,
				FullName:         item.FullName,
				AccountCode:      item.AccountCode,
				ServiceUserID:    item.ServiceUserID,
				IsVacant:         item.IsVacant,
				LastSyncedAt:     &now,
				CreatedAt:        now,
				UpdatedAt:        now,
			}
			if err := s.residents.UpsertRoster(ctx, tx, &resident); err != nil {
				return err
			}
			result.Synced++
		}
		return nil
	})
	if err != nil {
		return SyncResult{}, err
	}

	s.audit.Record(ctx, "roster.sync", "roster", "", map[string]any{
		"synced":  result.Synced,
		"skipped": result.Skipped,
		"total":   result.Total,
	})
	s.log.Info("roster sync finished",
		zap.Int("synced", result.Synced),
		zap.Int("skipped", result.Skipped),
		zap.Int("total", result.Total),
	)
	return result, nil
}
