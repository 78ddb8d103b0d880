package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PartnerStatusPending   = "pending"
	PartnerStatusApproved  = "approved"
	PartnerStatusSuspended = "suspended"
)

type DropshippingPartner struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"column:name;not null" json:"name"`
	Status    string         `gorm:"column:status;not null;default:'pending';index" json:"status"`
	Country   string         `gorm:"column:country" json:"country"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (DropshippingPartner) TableName() string { return "dropshipping_partner" }
