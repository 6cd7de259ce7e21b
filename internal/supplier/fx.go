package supplier

import (
	"github.com/sundries-services/sundries/internal/supplier/repository"
	"github.com/sundries-services/sundries/internal/supplier/service"
	"go.uber.org/fx"
)

var Module = fx.Module("supplier.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
