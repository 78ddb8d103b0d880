package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Creator struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	StoreName string         `gorm:"column:store_name;not null" json:"store_name"`
	Email     string         `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Location  string         `gorm:"column:location" json:"location"`
	IsActive  bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Creator) TableName() string { return "creator" }
