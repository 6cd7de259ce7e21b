package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sundries-services/sundries/internal/clock"
	"go.uber.org/zap"
)

const keyCacheTTL = 5 * time.Minute

type jwksDocument struct {
	Keys []jwksKey `json:"keys"`
}

type jwksKey struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// keyCache holds the identity provider's signing keys, refreshed at most
// once per TTL. Token verification happens on every request, so the keys
// are served from memory between refreshes.
type keyCache struct {
	client *resty.Client
	url    string
	log    *zap.Logger
	clock  clock.Clock

	mu      sync.Mutex
	keys    map[string]*rsa.PublicKey
	refresh time.Time
}

func newKeyCache(client *resty.Client, url string, log *zap.Logger, clk clock.Clock) *keyCache {
	return &keyCache{
		client: client,
		url:    url,
		log:    log,
		clock:  clk,
	}
}

// Key returns the RSA public key for the given key id, fetching the JWKS
// document when the cache is stale or the kid is unknown.
func (c *keyCache) Key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if c.keys == nil || now.After(c.refresh) {
		if err := c.fetchLocked(ctx); err != nil {
			return nil, err
		}
		c.refresh = now.Add(keyCacheTTL)
	}

	key, ok := c.keys[kid]
	if !ok {
		return nil, fmt.Errorf("signing key %q not found", kid)
	}
	return key, nil
}

func (c *keyCache) fetchLocked(ctx context.Context) error {
	resp, err := c.client.R().SetContext(ctx).Get(c.url)
	if err != nil {
		return fmt.Errorf("fetch jwks: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("fetch jwks: status %d", resp.StatusCode())
	}

	var doc jwksDocument
	if err := json.Unmarshal(resp.Body(), &doc); err != nil {
		return fmt.Errorf("decode jwks: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kty != "RSA" {
			continue
		}
		pub, err := parseRSAKey(k)
		if err != nil {
			c.log.Warn("skipping unparsable jwks key", zap.String("kid", k.Kid), zap.Error(err))
			continue
		}
		keys[k.Kid] = pub
	}
	if len(keys) == 0 {
		return fmt.Errorf("jwks document at %s contained no usable keys", c.url)
	}

	c.keys = keys
	return nil
}

func parseRSAKey(k jwksKey) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("exponent: %w", err)
	}

	e := 0
	for _, b := range eBytes {
		e = e<<8 | int(b)
	}
	if e <= 0 {
		return nil, fmt.Errorf("exponent %d out of range", e)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: e,
	}, nil
}
