package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sundries-services/sundries/internal/auth"
	authdomain "github.com/sundries-services/sundries/internal/auth/domain"
	carehomedomain "github.com/sundries-services/sundries/internal/carehome/domain"
	consentdomain "github.com/sundries-services/sundries/internal/consent/domain"
	invoicedomain "github.com/sundries-services/sundries/internal/invoice/domain"
	newspaperdomain "github.com/sundries-services/sundries/internal/newspaper/domain"
	priceitemdomain "github.com/sundries-services/sundries/internal/priceitem/domain"
	residentdomain "github.com/sundries-services/sundries/internal/resident/domain"
	saledomain "github.com/sundries-services/sundries/internal/sale/domain"
	supplierdomain "github.com/sundries-services/sundries/internal/supplier/domain"
	vendordomain "github.com/sundries-services/sundries/internal/vendors/domain"
	visitdomain "github.com/sundries-services/sundries/internal/visit/domain"
	visitsheetdomain "github.com/sundries-services/sundries/internal/visitsheet/domain"
	"gorm.io/gorm"
)

var ErrInvalidRequest = errors.New("invalid_request")

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingObjectID):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: errorMessage(err, "unauthorized"),
		}

	case errors.Is(err, auth.ErrAdminRequired),
		errors.Is(err, auth.ErrNoHomeAccess):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: err.Error(),
		}

	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: errorMessage(err, "validation error"),
		}

	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: errorMessage(err, "not found"),
		}

	case errors.Is(err, vendordomain.ErrDuplicateAccount),
		errors.Is(err, saledomain.ErrItemInvoiced):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}

	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

// validationErrors enumerates every sentinel that maps to a 400. Each
// domain's invalid_* errors are listed explicitly rather than matched by
// message, so auth sentinels can never be misread as input problems.
var validationErrors = []error{
	ErrInvalidRequest,

	consentdomain.ErrNoActiveConsent,
	visitdomain.ErrVisitLocked,
	invoicedomain.ErrNoEligibleItems,
	saledomain.ErrNoItemsToInvoice,
	saledomain.ErrResidentNotLinked,
	saledomain.ErrPriceItemInactive,
	newspaperdomain.ErrCareHomeNeeded,

	carehomedomain.ErrInvalidID,
	carehomedomain.ErrInvalidName,

	supplierdomain.ErrInvalidID,
	supplierdomain.ErrInvalidName,
	supplierdomain.ErrInvalidServiceType,

	vendordomain.ErrInvalidID,
	vendordomain.ErrInvalidName,
	vendordomain.ErrInvalidAccountRef,

	priceitemdomain.ErrInvalidID,
	priceitemdomain.ErrInvalidVendor,
	priceitemdomain.ErrInvalidDescription,
	priceitemdomain.ErrInvalidPrice,

	residentdomain.ErrInvalidID,
	residentdomain.ErrInvalidCareHome,
	residentdomain.ErrInvalidName,

	consentdomain.ErrInvalidID,
	consentdomain.ErrInvalidResident,
	consentdomain.ErrInvalidSupplier,
	consentdomain.ErrInvalidStatus,
	consentdomain.ErrInvalidGivenDate,

	visitdomain.ErrInvalidID,
	visitdomain.ErrInvalidCareHome,
	visitdomain.ErrInvalidSupplier,
	visitdomain.ErrInvalidVisitedAt,
	visitdomain.ErrInvalidDescription,
	visitdomain.ErrInvalidQty,
	visitdomain.ErrInvalidUnitPrice,
	visitdomain.ErrInvalidVatRate,

	visitsheetdomain.ErrInvalidID,
	visitsheetdomain.ErrInvalidCareHome,
	visitsheetdomain.ErrInvalidVendor,
	visitsheetdomain.ErrInvalidVisitDate,

	invoicedomain.ErrInvalidID,
	invoicedomain.ErrInvalidSupplier,
	invoicedomain.ErrInvalidCareHome,
	invoicedomain.ErrInvalidPeriod,

	saledomain.ErrInvalidID,
	saledomain.ErrInvalidCareHome,
	saledomain.ErrInvalidVendor,
	saledomain.ErrInvalidResident,
	saledomain.ErrInvalidDescription,
	saledomain.ErrInvalidDate,
	saledomain.ErrInvalidAmount,
	saledomain.ErrInvalidExpenseType,
	saledomain.ErrInvalidEmail,

	newspaperdomain.ErrInvalidID,
	newspaperdomain.ErrInvalidCareHome,
	newspaperdomain.ErrInvalidResident,
	newspaperdomain.ErrInvalidTitle,

	authdomain.ErrInvalidID,
	authdomain.ErrInvalidOID,
	authdomain.ErrInvalidRole,
	authdomain.ErrInvalidHome,
}

func isValidationError(err error) bool {
	for _, sentinel := range validationErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, carehomedomain.ErrNotFound),
		errors.Is(err, vendordomain.ErrNotFound),
		errors.Is(err, priceitemdomain.ErrNotFound),
		errors.Is(err, residentdomain.ErrNotFound),
		errors.Is(err, residentdomain.ErrConsentNotFound),
		errors.Is(err, supplierdomain.ErrNotFound),
		errors.Is(err, consentdomain.ErrNotFound),
		errors.Is(err, visitdomain.ErrNotFound),
		errors.Is(err, visitdomain.ErrItemNotFound),
		errors.Is(err, visitsheetdomain.ErrNotFound),
		errors.Is(err, invoicedomain.ErrNotFound),
		errors.Is(err, saledomain.ErrNotFound),
		errors.Is(err, saledomain.ErrHomeOrVendor),
		errors.Is(err, authdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	}
	return false
}

// errorMessage keeps the handful of human-readable sentinel messages on
// the wire and hides the token-style ones behind a generic message.
func errorMessage(err error, fallback string) string {
	msg := err.Error()
	if strings.Contains(msg, "_") && !strings.Contains(msg, " ") {
		return fallback
	}
	return msg
}
