package domain

import (
	"context"
	"errors"
	"time"
)

type GenerateRequest struct {
	SupplierID string
	CareHomeID string
	From       time.Time
	To         time.Time
}

type ListInvoicesRequest struct {
	SupplierID string
	CareHomeID string
	Status     string
	From       *time.Time
	To         *time.Time
}

type GenerateResult struct {
	Invoice Invoice       `json:"invoice"`
	Items   []InvoiceItem `json:"items"`
}

type Service interface {
	// Generate bills every confirmed visit item in the period that has no
	// invoice item yet, and locks the visits it billed.
	Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error)
	List(ctx context.Context, req ListInvoicesRequest) ([]InvoiceDetail, error)
	GetByID(ctx context.Context, id string) (InvoiceDetail, error)
	Pdf(ctx context.Context, id string) ([]byte, error)
}

var (
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidSupplier = errors.New("invalid_supplier")
	ErrInvalidCareHome = errors.New("invalid_care_home")
	ErrInvalidPeriod   = errors.New("invalid_period")
	ErrNotFound        = errors.New("invoice_not_found")
	ErrNoEligibleItems = errors.New("No visit items available for invoicing")
)
