package domain

import (
	"context"
	"errors"
)

type CreateSupplierRequest struct {
	Name         string
	ServiceType  string
	ContactEmail string
}

type Service interface {
	List(ctx context.Context) ([]Supplier, error)
	GetByID(ctx context.Context, id string) (Supplier, error)
	Create(ctx context.Context, req CreateSupplierRequest) (Supplier, error)
}

var (
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidServiceType = errors.New("invalid_service_type")
	ErrNotFound           = errors.New("supplier_not_found")
)
