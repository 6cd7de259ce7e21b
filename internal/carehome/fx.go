package carehome

import (
	"github.com/sundries-services/sundries/internal/carehome/repository"
	"github.com/sundries-services/sundries/internal/carehome/service"
	"go.uber.org/fx"
)

var Module = fx.Module("carehome.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
