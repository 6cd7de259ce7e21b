package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sundries-services/sundries/internal/clock"
	"github.com/sundries-services/sundries/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Verifier validates bearer tokens issued by the configured Entra ID
// tenant and extracts the caller's Principal from the claims.
type Verifier struct {
	issuer   string
	audience string
	keys     *keyCache
	parser   *jwt.Parser
	clock    clock.Clock
}

type VerifierParams struct {
	fx.In

	Config config.Config
	Log    *zap.Logger
	Clock  clock.Clock
}

func NewVerifier(p VerifierParams) *Verifier {
	issuer := fmt.Sprintf("https://login.microsoftonline.com/%s/v2.0", p.Config.Auth.TenantID)
	jwksURL := issuer + "/discovery/v2.0/keys"

	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2)

	return &Verifier{
		issuer:   issuer,
		audience: p.Config.Auth.Audience,
		keys:     newKeyCache(client, jwksURL, p.Log.Named("auth.jwks"), p.Clock),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{"RS256"}),
			jwt.WithIssuer(issuer),
			jwt.WithAudience(p.Config.Auth.Audience),
			jwt.WithTimeFunc(p.Clock.Now),
		),
		clock: p.Clock,
	}
}

// Verify checks the token signature and standard claims and returns the
// Principal carried in it. The object id (oid) claim is mandatory.
func (v *Verifier) Verify(ctx context.Context, tokenString string) (Principal, error) {
	claims := jwt.MapClaims{}
	_, err := v.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("token has no kid header")
		}
		return v.keys.Key(ctx, kid)
	})
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	oid := stringClaim(claims, "oid")
	if oid == "" {
		return Principal{}, ErrMissingObjectID
	}

	upn := stringClaim(claims, "preferred_username")
	if upn == "" {
		upn = stringClaim(claims, "upn")
	}

	roles := stringsClaim(claims, "roles")
	if len(roles) == 0 {
		roles = stringsClaim(claims, "groups")
	}

	return Principal{
		Subject: oid,
		UPN:     upn,
		Name:    stringClaim(claims, "name"),
		Roles:   roles,
	}, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", ErrMissingToken
	}
	return strings.TrimSpace(parts[1]), nil
}

func stringClaim(claims jwt.MapClaims, name string) string {
	value, _ := claims[name].(string)
	return value
}

func stringsClaim(claims jwt.MapClaims, name string) []string {
	raw, ok := claims[name].([]any)
	if !ok {
		return nil
	}
	values := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok && s != "" {
			values = append(values, s)
		}
	}
	return values
}
