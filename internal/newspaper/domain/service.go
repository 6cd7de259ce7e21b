package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

type ListOrdersRequest struct {
	CareHomeID       string
	RosterResidentID string
}

type UpsertOrderRequest struct {
	CareHomeID       string
	RosterResidentID string
	NewspaperID      string
	ItemTitle        string
	Price            decimal.Decimal
	Monday           *bool
	Tuesday          *bool
	Wednesday        *bool
	Thursday         *bool
	Friday           *bool
	Saturday         *bool
	Sunday           *bool
}

type Service interface {
	ListTitles(ctx context.Context) ([]Newspaper, error)
	ListOrders(ctx context.Context, req ListOrdersRequest) ([]OrderDetail, error)
	// TodayOrders returns the orders flagged for the current weekday.
	TodayOrders(ctx context.Context, careHomeID string) ([]OrderDetail, error)
	UpsertOrder(ctx context.Context, req UpsertOrderRequest) (NewspaperOrder, error)
}

var (
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidCareHome = errors.New("invalid_care_home")
	ErrInvalidResident = errors.New("invalid_resident")
	ErrInvalidTitle    = errors.New("invalid_title")
	ErrCareHomeNeeded  = errors.New("careHomeId is required")
)
