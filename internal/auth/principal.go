package auth

import (
	"context"

	"github.com/sundries-services/sundries/internal/auth/domain"
)

type Principal = domain.Principal

const RoleAdmin = domain.RoleAdmin

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
