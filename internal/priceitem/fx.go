package priceitem

import (
	"github.com/sundries-services/sundries/internal/priceitem/repository"
	"github.com/sundries-services/sundries/internal/priceitem/service"
	"go.uber.org/fx"
)

var Module = fx.Module("priceitem.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
