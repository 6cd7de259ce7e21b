package visitsheet

import (
	"github.com/sundries-services/sundries/internal/visitsheet/repository"
	"github.com/sundries-services/sundries/internal/visitsheet/service"
	"go.uber.org/fx"
)

var Module = fx.Module("visitsheet.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
