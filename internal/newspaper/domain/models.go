package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	residentdomain "github.com/sundries-services/sundries/internal/resident/domain"
)

type Newspaper struct {
	ID        snowflake.ID    `gorm:"primaryKey" json:"id"`
	Title     string          `gorm:"not null" json:"title"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Sort      int             `gorm:"not null;default:0" json:"sort"`
	IsActive  bool            `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (Newspaper) TableName() string { return "newspapers" }

// NewspaperOrder is a resident's standing order, one row per
// (resident, title) with a flag per delivery day. Title and price are
// copied so later catalog edits leave existing orders alone.
type NewspaperOrder struct {
	ID               snowflake.ID    `gorm:"primaryKey" json:"id"`
	CareHomeID       snowflake.ID    `gorm:"not null" json:"careHomeId"`
	RosterResidentID snowflake.ID    `gorm:"not null;uniqueIndex:ux_newspaper_orders_resident_paper" json:"rosterResidentId"`
	NewspaperID      snowflake.ID    `gorm:"not null;uniqueIndex:ux_newspaper_orders_resident_paper" json:"newspaperId"`
	ItemTitle        string          `gorm:"not null" json:"itemTitle"`
	Price            decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Monday           bool            `gorm:"not null;default:false" json:"monday"`
	Tuesday          bool            `gorm:"not null;default:false" json:"tuesday"`
	Wednesday        bool            `gorm:"not null;default:false" json:"wednesday"`
	Thursday         bool            `gorm:"not null;default:false" json:"thursday"`
	Friday           bool            `gorm:"not null;default:false" json:"friday"`
	Saturday         bool            `gorm:"not null;default:false" json:"saturday"`
	Sunday           bool            `gorm:"not null;default:false" json:"sunday"`
	CreatedAt        time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt        time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (NewspaperOrder) TableName() string { return "newspaper_orders" }

type OrderDetail struct {
	NewspaperOrder
	Resident  *residentdomain.RosterResident `json:"resident"`
	Newspaper *Newspaper                     `json:"newspaper"`
}
