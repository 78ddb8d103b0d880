package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SimilarCreator is a directed edge: computing similarity for creator A inserts
// A→B rows only. Edges for a creator are replaced wholesale on recalculation.
type SimilarCreator struct {
	ID                uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	CreatorID         uuid.UUID                   `gorm:"type:uuid;not null;index" json:"creator_id"`
	Creator           *Creator                    `gorm:"constraint:OnDelete:CASCADE;foreignKey:CreatorID;references:ID" json:"creator,omitempty"`
	SimilarCreatorID  uuid.UUID                   `gorm:"type:uuid;not null;index" json:"similar_creator_id"`
	SimilarityScore   float64                     `gorm:"column:similarity_score;not null;default:0" json:"similarity_score"`
	SimilarityFactors datatypes.JSONSlice[string] `gorm:"type:jsonb;column:similarity_factors" json:"similarity_factors"`
	CalculatedAt      time.Time                   `gorm:"column:calculated_at;not null" json:"calculated_at"`
}

func (SimilarCreator) TableName() string { return "similar_creator" }
