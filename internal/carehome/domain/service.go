package domain

import (
	"context"
	"errors"
)

type CreateCareHomeRequest struct {
	Name   string
	Region string
}

type Service interface {
	List(ctx context.Context) ([]CareHome, error)
	GetByID(ctx context.Context, id string) (CareHome, error)
	Create(ctx context.Context, req CreateCareHomeRequest) (CareHome, error)
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidID   = errors.New("invalid_id")
	ErrNotFound    = errors.New("care_home_not_found")
)
