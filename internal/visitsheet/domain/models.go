package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	priceitemdomain "github.com/sundries-services/sundries/internal/priceitem/domain"
)

const (
	StatusDraft  = "Draft"
	StatusSigned = "Signed"
)

// VisitSheet is the per-day sheet an operator ticks during a vendor
// visit. VisitDate is stored at day granularity; at most one sheet
// exists per (care home, vendor, day).
type VisitSheet struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	CareHomeID snowflake.ID `gorm:"not null;uniqueIndex:ux_visit_sheets_day" json:"careHomeId"`
	VendorID   snowflake.ID `gorm:"not null;uniqueIndex:ux_visit_sheets_day" json:"vendorId"`
	VisitDate  time.Time    `gorm:"not null;uniqueIndex:ux_visit_sheets_day" json:"visitDate"`
	Status     string       `gorm:"not null;default:'Draft'" json:"status"`
	SignedAt   *time.Time   `json:"signedAt"`
	CreatedBy  string       `json:"createdBy"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (VisitSheet) TableName() string { return "visit_sheets" }

// SheetParty is the care-home reference on a printed sheet.
type SheetParty struct {
	ID   snowflake.ID `json:"id"`
	Name string       `json:"name"`
}

// SheetVendor is the vendor reference on a printed sheet.
type SheetVendor struct {
	ID           snowflake.ID `json:"id"`
	Name         string       `json:"name"`
	AccountRef   string       `json:"accountRef"`
	TradeContact string       `json:"tradeContact"`
}

// SheetResident is one row of the sheet grid. ID is the resident
// consent id, which is also the key the bulk-sales endpoint expects.
type SheetResident struct {
	ID               snowflake.ID  `json:"id"`
	RosterResidentID *snowflake.ID `json:"rosterResidentId"`
	RoomNumber       string        `json:"roomNumber"`
	FullName         string        `json:"fullName"`
	AccountCode      string        `json:"accountCode"`
}

// SheetSelection marks a ticked (resident, price item) cell,
// reconstructed from the sale items already saved for the day.
type SheetSelection struct {
	ResidentConsentID snowflake.ID `json:"residentId"`
	PriceItemID       snowflake.ID `json:"priceItemId"`
}

// SheetDetail is the full payload behind the printable sheet view.
type SheetDetail struct {
	ID           snowflake.ID                `json:"id"`
	VisitedAt    time.Time                   `json:"visitedAt"`
	CareHome     SheetParty                  `json:"careHome"`
	Vendor       SheetVendor                 `json:"vendor"`
	ConsentField string                      `json:"consentField"`
	Status       string                      `json:"status"`
	SignedAt     *time.Time                  `json:"signedAt"`
	Residents    []SheetResident             `json:"residents"`
	PriceItems   []priceitemdomain.PriceItem `json:"priceItems"`
	Selections   []SheetSelection            `json:"selections"`
}
