package vendors

import (
	"github.com/sundries-services/sundries/internal/vendors/repository"
	"github.com/sundries-services/sundries/internal/vendors/service"
	"go.uber.org/fx"
)

var Module = fx.Module("vendor.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
