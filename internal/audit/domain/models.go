package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type AuditLog struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	Actor      string       `json:"actor"`
	Action     string       `gorm:"not null" json:"action"`
	TargetType string       `gorm:"not null" json:"targetType"`
	TargetID   string       `json:"targetId"`
	Metadata   string       `json:"metadata"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (AuditLog) TableName() string { return "audit_logs" }
