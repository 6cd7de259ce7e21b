package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	carehomedomain "github.com/sundries-services/sundries/internal/carehome/domain"
)

type CreateVisitRequest struct {
	CareHomeID string
	SupplierID string
	VisitedAt  time.Time
	Notes      string
}

type ListVisitsRequest struct {
	From       *time.Time
	To         *time.Time
	SupplierID string
	CareHomeID string
	Status     string
}

type AddItemRequest struct {
	ResidentID  string
	Description string
	Qty         decimal.Decimal
	UnitPrice   decimal.Decimal
	VatRate     decimal.Decimal
}

type PatchItemRequest struct {
	Description *string
	Qty         *decimal.Decimal
	UnitPrice   *decimal.Decimal
	VatRate     *decimal.Decimal
}

// ClientList is the per-supplier read model handed to providers.
type ClientList struct {
	SupplierID  string            `json:"supplierId"`
	GeneratedAt time.Time         `json:"generatedAt"`
	Visits      []ClientListVisit `json:"visits"`
}

type ClientListVisit struct {
	VisitID   string                   `json:"visitId"`
	CareHome  *carehomedomain.CareHome `json:"careHome"`
	VisitedAt time.Time                `json:"visitedAt"`
	Items     []ItemWithResident       `json:"items"`
}

type Service interface {
	Create(ctx context.Context, req CreateVisitRequest) (Visit, error)
	List(ctx context.Context, req ListVisitsRequest) ([]VisitDetail, error)
	Confirm(ctx context.Context, id string) (Visit, error)
	AddItem(ctx context.Context, visitID string, req AddItemRequest) (VisitItem, error)
	PatchItem(ctx context.Context, itemID string, req PatchItemRequest) (VisitItem, error)
	ClientList(ctx context.Context, supplierID, visitID string) (ClientList, error)
}

var (
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidCareHome    = errors.New("invalid_care_home")
	ErrInvalidSupplier    = errors.New("invalid_supplier")
	ErrInvalidVisitedAt   = errors.New("invalid_visited_at")
	ErrInvalidDescription = errors.New("invalid_description")
	ErrInvalidQty         = errors.New("invalid_qty")
	ErrInvalidUnitPrice   = errors.New("invalid_unit_price")
	ErrInvalidVatRate     = errors.New("invalid_vat_rate")
	ErrNotFound           = errors.New("visit_not_found")
	ErrItemNotFound       = errors.New("visit_item_not_found")
	ErrVisitLocked        = errors.New("Visit is locked after invoicing")
)
