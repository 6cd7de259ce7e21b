package domain

import (
	"context"
	"errors"
)

type CreateVendorRequest struct {
	Name         string
	AccountRef   string
	DefNomCode   string
	TradeContact string
	Address1     string
	Address2     string
	Address3     string
	Address4     string
	Address5     string
}

type UpdateVendorRequest struct {
	Name         *string
	AccountRef   *string
	DefNomCode   *string
	TradeContact *string
	Address1     *string
	Address2     *string
	Address3     *string
	Address4     *string
	Address5     *string
	IsActive     *bool
}

type Service interface {
	List(ctx context.Context) ([]Vendor, error)
	GetByID(ctx context.Context, id string) (Vendor, error)
	Create(ctx context.Context, req CreateVendorRequest) (Vendor, error)
	Update(ctx context.Context, id string, req UpdateVendorRequest) (Vendor, error)
	// EnsureMiscVendor returns the reserved MISC vendor, creating it on
	// first use.
	EnsureMiscVendor(ctx context.Context) (Vendor, error)
}

var (
	ErrInvalidName       = errors.New("invalid_name")
	ErrInvalidAccountRef = errors.New("invalid_account_ref")
	ErrInvalidID         = errors.New("invalid_id")
	ErrNotFound          = errors.New("vendor_not_found")
	ErrDuplicateAccount  = errors.New("duplicate_account_ref")
)
