package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	BehaviorActionViewProduct     = "view_product"
	BehaviorActionAddToStore      = "add_to_store"
	BehaviorActionRemoveFromStore = "remove_from_store"
	BehaviorActionSearch          = "search"
	BehaviorActionViewStorefront  = "view_storefront"
)

const (
	BehaviorEntityCreatorProduct      = "creator_product"
	BehaviorEntityDropshippingProduct = "dropshipping_product"
	BehaviorEntityStorefront          = "storefront"
)

// BehaviorEvent is append-only; the engine never updates or deletes rows.
type BehaviorEvent struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatorID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"creator_id"`
	Creator    *Creator       `gorm:"constraint:OnDelete:CASCADE;foreignKey:CreatorID;references:ID" json:"creator,omitempty"`
	Action     string         `gorm:"column:action;not null;index" json:"action"`
	EntityType string         `gorm:"column:entity_type;not null;index" json:"entity_type"`
	EntityID   uuid.UUID      `gorm:"type:uuid;column:entity_id;index" json:"entity_id"`
	Metadata   datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata"`
	SessionID  *string        `gorm:"column:session_id" json:"session_id,omitempty"`
	IPAddress  string         `gorm:"column:ip_address" json:"ip_address,omitempty"`
	UserAgent  string         `gorm:"column:user_agent" json:"user_agent,omitempty"`
	CreatedAt  time.Time      `gorm:"not null;index" json:"created_at"`
}

func (BehaviorEvent) TableName() string { return "behavior_event" }
