package domain

import (
	"context"
	"errors"
	"time"
)

type PatchConsentRequest struct {
	SundryConsentReceived *bool
	NewspapersConsent     *bool
	ChiropodyConsent      *bool
	HairdressersConsent   *bool
	ShopConsent           *bool
	OtherConsent          *bool
	Comments              *string
	ChiropodyNote         *string
	ShopNote              *string
	CurrentResident       *bool
}

// BootstrapResult reports what the consent bootstrap touched.
type BootstrapResult struct {
	Created     int `json:"created"`
	Updated     int `json:"updated"`
	Deactivated int `json:"deactivated"`
}

type CreateResidentRequest struct {
	CareHomeID string
	FirstName  string
	LastName   string
	DOB        *time.Time
}

type Service interface {
	ListRosterResidents(ctx context.Context, careHomeID string) ([]RosterResident, error)
	ListConsents(ctx context.Context, careHomeID string) ([]ResidentConsent, error)
	PatchConsent(ctx context.Context, id string, req PatchConsentRequest) (ResidentConsent, error)
	// BootstrapConsents upserts a consent row for every occupied roster room
	// of the home and marks rows for departed residents as no longer
	// current. Runs in one transaction.
	BootstrapConsents(ctx context.Context, careHomeID string) (BootstrapResult, error)

	ListResidents(ctx context.Context, careHomeID string) ([]Resident, error)
	CreateResident(ctx context.Context, req CreateResidentRequest) (Resident, error)
}

var (
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidCareHome = errors.New("invalid_care_home")
	ErrInvalidName     = errors.New("invalid_name")
	ErrNotFound        = errors.New("resident_not_found")
	ErrConsentNotFound = errors.New("resident_consent_not_found")
)
