package resident

import (
	"github.com/sundries-services/sundries/internal/resident/repository"
	"github.com/sundries-services/sundries/internal/resident/service"
	"go.uber.org/fx"
)

var Module = fx.Module("resident.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
