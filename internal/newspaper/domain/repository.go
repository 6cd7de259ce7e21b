package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type OrderFilter struct {
	CareHomeID       snowflake.ID
	RosterResidentID snowflake.ID
	// Weekday limits results to orders flagged for that day; empty means
	// no day filter. Lowercase column name (monday..sunday).
	Weekday string
}

type Repository interface {
	ListTitles(ctx context.Context, db *gorm.DB) ([]Newspaper, error)
	FindTitleByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Newspaper, error)
	ListOrders(ctx context.Context, db *gorm.DB, filter OrderFilter) ([]NewspaperOrder, error)
	FindOrder(ctx context.Context, db *gorm.DB, rosterResidentID, newspaperID snowflake.ID) (*NewspaperOrder, error)
	InsertOrder(ctx context.Context, db *gorm.DB, order *NewspaperOrder) error
	UpdateOrder(ctx context.Context, db *gorm.DB, order *NewspaperOrder) error
}
