package visit

import (
	"github.com/sundries-services/sundries/internal/visit/repository"
	"github.com/sundries-services/sundries/internal/visit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("visit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
