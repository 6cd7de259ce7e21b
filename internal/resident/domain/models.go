package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// RosterResident mirrors one room of the external roster. RosterRoomID is
// the upsert key during sync; a vacant room keeps its row with IsVacant set.
type RosterResident struct {
	ID               snowflake.ID `gorm:"primaryKey" json:"id"`
	CareHomeID       snowflake.ID `gorm:"not null" json:"careHomeId"`
	RosterLocationID string       `gorm:"not null" json:"rosterLocationId"`
	RosterRoomID     string       `gorm:"not null;uniqueIndex:ux_roster_residents_room" json:"rosterRoomId"`
	RoomNumber       string       `gorm:"not null" json:"roomNumber"`
	FullName         string       `json:"fullName"`
	AccountCode      string       `json:"accountCode"`
	ServiceUserID    string       `json:"serviceUserId"`
	IsVacant         bool         `gorm:"not null;default:false" json:"isVacant"`
	LastSyncedAt     *time.Time   `json:"lastSyncedAt"`
	CreatedAt        time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt        time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (RosterResident) TableName() string { return "roster_residents" }

// ResidentConsent is the per-resident consent sheet for vendor sales.
// RosterResidentID may be nil for rows created before the roster link
// existed; reconciliation then falls back to AccountCode.
type ResidentConsent struct {
	ID                    snowflake.ID  `gorm:"primaryKey" json:"id"`
	CareHomeID            snowflake.ID  `gorm:"not null" json:"careHomeId"`
	RosterResidentID      *snowflake.ID `gorm:"uniqueIndex:ux_resident_consents_roster" json:"rosterResidentId"`
	RoomNumber            string        `json:"roomNumber"`
	FullName              string        `json:"fullName"`
	AccountCode           string        `json:"accountCode"`
	ServiceUserID         string        `json:"serviceUserId"`
	SundryConsentReceived bool          `gorm:"not null;default:false" json:"sundryConsentReceived"`
	NewspapersConsent     bool          `gorm:"not null;default:false" json:"newspapersConsent"`
	ChiropodyConsent      bool          `gorm:"not null;default:false" json:"chiropodyConsent"`
	HairdressersConsent   bool          `gorm:"not null;default:false" json:"hairdressersConsent"`
	ShopConsent           bool          `gorm:"not null;default:false" json:"shopConsent"`
	OtherConsent          bool          `gorm:"not null;default:false" json:"otherConsent"`
	Comments              string        `json:"comments"`
	ChiropodyNote         string        `json:"chiropodyNote"`
	ShopNote              string        `json:"shopNote"`
	CurrentResident       bool          `gorm:"not null;default:true" json:"currentResident"`
	CreatedAt             time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt             time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (ResidentConsent) TableName() string { return "resident_consents" }

// Resident is the simple roster used by supplier visits.
type Resident struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	CareHomeID snowflake.ID `gorm:"not null" json:"careHomeId"`
	FirstName  string       `gorm:"not null" json:"firstName"`
	LastName   string       `gorm:"not null" json:"lastName"`
	DOB        *time.Time   `gorm:"column:dob" json:"dob"`
	IsActive   bool         `gorm:"not null;default:true" json:"isActive"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (Resident) TableName() string { return "residents" }
