package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreatorProduct struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatorID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"creator_id"`
	Creator     *Creator       `gorm:"constraint:OnDelete:CASCADE;foreignKey:CreatorID;references:ID" json:"creator,omitempty"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	Description string         `gorm:"column:description" json:"description"`
	Price       int64          `gorm:"column:price;not null;default:0" json:"price"`
	Category    string         `gorm:"column:category;index" json:"category"`
	Images      datatypes.JSON `gorm:"type:jsonb;column:images" json:"images"`
	IsActive    bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (CreatorProduct) TableName() string { return "creator_product" }
