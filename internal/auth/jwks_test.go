package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sundries-services/sundries/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func jwksHandler(t *testing.T, key *rsa.PublicKey, kid string, hits *int) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		*hits++
		doc := jwksDocument{Keys: []jwksKey{
			{
				Kty: "RSA",
				Kid: kid,
				Use: "sig",
				N:   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
				E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
			},
			// Non-RSA entries are ignored.
			{Kty: "EC", Kid: "ec-key"},
		}}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(doc))
	}
}

func TestKeyCacheFetchesAndCaches(t *testing.T) {
	private, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	hits := 0
	server := httptest.NewServer(jwksHandler(t, &private.PublicKey, "kid-1", &hits))
	defer server.Close()

	fake := clock.NewFakeClock(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC))
	cache := newKeyCache(resty.New(), server.URL, zap.NewNop(), fake)

	key, err := cache.Key(context.Background(), "kid-1")
	require.NoError(t, err)
	assert.Equal(t, 0, key.N.Cmp(private.PublicKey.N))
	assert.Equal(t, private.PublicKey.E, key.E)
	assert.Equal(t, 1, hits)

	// A second lookup inside the TTL is served from memory.
	_, err = cache.Key(context.Background(), "kid-1")
	require.NoError(t, err)
	assert.Equal(t, 1, hits)

	fake.Advance(keyCacheTTL + time.Second)
	_, err = cache.Key(context.Background(), "kid-1")
	require.NoError(t, err)
	assert.Equal(t, 2, hits)
}

func TestKeyCacheUnknownKid(t *testing.T) {
	private, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	hits := 0
	server := httptest.NewServer(jwksHandler(t, &private.PublicKey, "kid-1", &hits))
	defer server.Close()

	fake := clock.NewFakeClock(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC))
	cache := newKeyCache(resty.New(), server.URL, zap.NewNop(), fake)

	_, err = cache.Key(context.Background(), "kid-missing")
	assert.Error(t, err)
	assert.Equal(t, 1, hits)
}

func TestKeyCacheServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	fake := clock.NewFakeClock(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC))
	cache := newKeyCache(resty.New(), server.URL, zap.NewNop(), fake)

	_, err := cache.Key(context.Background(), "kid-1")
	assert.Error(t, err)
}

func TestParseRSAKeyRejectsBadModulus(t *testing.T) {
	_, err := parseRSAKey(jwksKey{Kty: "RSA", Kid: "bad", N: "!!!", E: "AQAB"})
	assert.Error(t, err)
}
