package newspaper

import (
	"github.com/sundries-services/sundries/internal/newspaper/repository"
	"github.com/sundries-services/sundries/internal/newspaper/service"
	"go.uber.org/fx"
)

var Module = fx.Module("newspaper.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
