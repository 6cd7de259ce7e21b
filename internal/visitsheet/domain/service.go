package domain

import (
	"context"
	"errors"
	"time"
)

type CreateSheetRequest struct {
	CareHomeID string
	VendorID   string
	VisitDate  time.Time
}

type ListSheetsRequest struct {
	CareHomeID string
	VendorID   string
}

type Service interface {
	// Create opens the sheet for a (home, vendor, day) triple. Creating
	// the same triple again returns the existing sheet.
	Create(ctx context.Context, req CreateSheetRequest) (VisitSheet, error)
	List(ctx context.Context, req ListSheetsRequest) ([]VisitSheet, error)
	Get(ctx context.Context, id string) (SheetDetail, error)
	// Sign moves a draft sheet to Signed. Signed is terminal; signing
	// again keeps the original timestamp.
	Sign(ctx context.Context, id string) (VisitSheet, error)
}

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidCareHome  = errors.New("invalid_care_home")
	ErrInvalidVendor    = errors.New("invalid_vendor")
	ErrInvalidVisitDate = errors.New("invalid_visit_date")
	ErrNotFound         = errors.New("Visit sheet not found")
)
