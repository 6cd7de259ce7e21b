package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type CreatePriceItemRequest struct {
	VendorID    string
	Description string
	Price       decimal.Decimal
	ValidFrom   *time.Time
}

type UpdatePriceItemRequest struct {
	Description *string
	Price       *decimal.Decimal
	ValidFrom   *time.Time
	IsActive    *bool
}

type Service interface {
	ListByVendor(ctx context.Context, vendorID string) ([]PriceItem, error)
	Create(ctx context.Context, req CreatePriceItemRequest) (PriceItem, error)
	Update(ctx context.Context, id string, req UpdatePriceItemRequest) (PriceItem, error)
}

var (
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidVendor      = errors.New("invalid_vendor")
	ErrInvalidDescription = errors.New("invalid_description")
	ErrInvalidPrice       = errors.New("invalid_price")
	ErrNotFound           = errors.New("price_item_not_found")
)
