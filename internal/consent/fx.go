package consent

import (
	"github.com/sundries-services/sundries/internal/consent/repository"
	"github.com/sundries-services/sundries/internal/consent/service"
	"go.uber.org/fx"
)

var Module = fx.Module("consent.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
