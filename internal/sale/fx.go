package sale

import (
	"github.com/sundries-services/sundries/internal/sale/repository"
	"github.com/sundries-services/sundries/internal/sale/service"
	"go.uber.org/fx"
)

var Module = fx.Module("sale.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
