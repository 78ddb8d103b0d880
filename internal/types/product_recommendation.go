package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RecommendationTypeTrending        = "trending"
	RecommendationTypePersonalized    = "personalized"
	RecommendationTypeSimilarCreators = "similar_creators"
	RecommendationTypeSeasonal        = "seasonal"
)

const (
	RecProductTypeOwn          = "own_product"
	RecProductTypeDropshipping = "dropshipping_product"
)

// ProductRecommendation holds the creator's current ranked snapshot. It is not
// a history: every recompute deletes the creator's previous rows and inserts
// the fresh set inside one transaction. Exactly one of ProductID and
// DropshippingProductID is set, matching ProductType.
type ProductRecommendation struct {
	ID                    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatorID             uuid.UUID      `gorm:"type:uuid;not null;index" json:"creator_id"`
	Creator               *Creator       `gorm:"constraint:OnDelete:CASCADE;foreignKey:CreatorID;references:ID" json:"creator,omitempty"`
	RecommendationType    string         `gorm:"column:recommendation_type;not null;index" json:"recommendation_type"`
	ProductType           string         `gorm:"column:product_type;not null" json:"product_type"`
	ProductID             *uuid.UUID     `gorm:"type:uuid;column:product_id;index" json:"product_id,omitempty"`
	DropshippingProductID *uuid.UUID     `gorm:"type:uuid;column:dropshipping_product_id;index" json:"dropshipping_product_id,omitempty"`
	Score                 string         `gorm:"column:score;type:decimal(5,2);not null;default:0" json:"score"`
	Reason                string         `gorm:"column:reason" json:"reason"`
	Metadata              datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata"`
	IsActive              bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt             time.Time      `gorm:"not null" json:"created_at"`
}

func (ProductRecommendation) TableName() string { return "product_recommendation" }
