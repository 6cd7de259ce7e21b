package auth

import (
	"github.com/sundries-services/sundries/internal/auth/repository"
	"github.com/sundries-services/sundries/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(NewVerifier),
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
