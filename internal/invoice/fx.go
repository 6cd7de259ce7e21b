package invoice

import (
	"github.com/sundries-services/sundries/internal/invoice/repository"
	"github.com/sundries-services/sundries/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
