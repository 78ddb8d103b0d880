package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DropshippingProduct struct {
	ID          uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	PartnerID   uuid.UUID            `gorm:"type:uuid;not null;index" json:"partner_id"`
	Partner     *DropshippingPartner `gorm:"constraint:OnDelete:CASCADE;foreignKey:PartnerID;references:ID" json:"partner,omitempty"`
	Name        string               `gorm:"column:name;not null" json:"name"`
	Description string               `gorm:"column:description" json:"description"`
	Price       int64                `gorm:"column:price;not null;default:0" json:"price"`
	Category    string               `gorm:"column:category;index" json:"category"`
	Images      datatypes.JSON       `gorm:"type:jsonb;column:images" json:"images"`
	IsActive    bool                 `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt   time.Time            `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time            `gorm:"not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt       `gorm:"index" json:"deleted_at,omitempty"`
}

func (DropshippingProduct) TableName() string { return "dropshipping_product" }
