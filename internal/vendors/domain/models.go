package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Vendor is a supplier invoiced under the account-ref scheme. AccountRef is
// the ledger account reference and is unique across vendors.
type Vendor struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	Name         string       `gorm:"not null" json:"name"`
	AccountRef   string       `gorm:"not null;uniqueIndex:ux_vendors_account_ref" json:"accountRef"`
	DefNomCode   string       `json:"defNomCode"`
	TradeContact string       `json:"tradeContact"`
	Address1     string       `json:"address1"`
	Address2     string       `json:"address2"`
	Address3     string       `json:"address3"`
	Address4     string       `json:"address4"`
	Address5     string       `json:"address5"`
	IsActive     bool         `gorm:"not null;default:true" json:"isActive"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Vendor) TableName() string { return "vendors" }

// MiscAccountRef is reserved for ad-hoc expenses that have no trade vendor.
const MiscAccountRef = "MISC"
