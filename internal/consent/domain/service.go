package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type CreateConsentRequest struct {
	ResidentID       string
	SupplierID       string
	ServiceType      string
	ConsentGivenAt   time.Time
	ConsentExpiresAt *time.Time
	Notes            string
}

type UpdateConsentRequest struct {
	Status           *Status
	ConsentExpiresAt *time.Time
	Notes            *string
}

type Service interface {
	ListByResident(ctx context.Context, residentID string) ([]Consent, error)
	Create(ctx context.Context, req CreateConsentRequest) (Consent, error)
	Update(ctx context.Context, id string, req UpdateConsentRequest) (Consent, error)
	// RequireActive fails unless some consent for (resident, supplier,
	// serviceType) covers visitedAt.
	RequireActive(ctx context.Context, residentID, supplierID snowflake.ID, serviceType string, visitedAt time.Time) error
}

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidResident  = errors.New("invalid_resident")
	ErrInvalidSupplier  = errors.New("invalid_supplier")
	ErrInvalidStatus    = errors.New("invalid_status")
	ErrNotFound         = errors.New("consent_not_found")
	ErrNoActiveConsent  = errors.New("Active consent not found for resident and supplier")
	ErrInvalidGivenDate = errors.New("invalid_consent_given_at")
)
