package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sundries-services/sundries/internal/auth"
	consentdomain "github.com/sundries-services/sundries/internal/consent/domain"
	invoicedomain "github.com/sundries-services/sundries/internal/invoice/domain"
	saledomain "github.com/sundries-services/sundries/internal/sale/domain"
	visitdomain "github.com/sundries-services/sundries/internal/visit/domain"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"invalid request", ErrInvalidRequest, http.StatusBadRequest, "validation_error"},
		{"consent gate", consentdomain.ErrNoActiveConsent, http.StatusBadRequest, "validation_error"},
		{"locked visit", visitdomain.ErrVisitLocked, http.StatusBadRequest, "validation_error"},
		{"nothing to invoice", invoicedomain.ErrNoEligibleItems, http.StatusBadRequest, "validation_error"},
		{"sales nothing to invoice", saledomain.ErrNoItemsToInvoice, http.StatusBadRequest, "validation_error"},
		{"unlinked resident", saledomain.ErrResidentNotLinked, http.StatusBadRequest, "validation_error"},
		{"invalid id sentinel", visitdomain.ErrInvalidQty, http.StatusBadRequest, "validation_error"},
		{"missing token", auth.ErrMissingToken, http.StatusUnauthorized, "unauthorized"},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized, "unauthorized"},
		{"wrapped invalid token", fmt.Errorf("verify bearer: %w", auth.ErrInvalidToken), http.StatusUnauthorized, "unauthorized"},
		{"lookalike message", errors.New("invalid_signature"), http.StatusInternalServerError, "internal_error"},
		{"admin required", auth.ErrAdminRequired, http.StatusForbidden, "forbidden"},
		{"no home access", auth.ErrNoHomeAccess, http.StatusForbidden, "forbidden"},
		{"visit not found", visitdomain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"home or vendor", saledomain.ErrHomeOrVendor, http.StatusNotFound, "not_found"},
		{"invoice not found", invoicedomain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"already invoiced", saledomain.ErrItemInvoiced, http.StatusConflict, "conflict"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := mapError(tc.err)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantType, payload.Type)
		})
	}
}

func TestMapErrorKeepsReadableMessages(t *testing.T) {
	_, payload := mapError(visitdomain.ErrVisitLocked)
	assert.Equal(t, "Visit is locked after invoicing", payload.Message)

	// Token-style sentinels stay off the wire.
	_, payload = mapError(visitdomain.ErrInvalidQty)
	assert.Equal(t, "validation error", payload.Message)
}

func TestErrorHandlingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())
	engine.GET("/locked", func(c *gin.Context) {
		AbortWithError(c, visitdomain.ErrVisitLocked)
	})
	engine.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": "fine"})
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/locked", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Visit is locked after invoicing")

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
