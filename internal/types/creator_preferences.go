package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CreatorPreferences struct {
	ID                  uuid.UUID                  `gorm:"type:uuid;primaryKey" json:"id"`
	CreatorID           uuid.UUID                  `gorm:"type:uuid;not null;uniqueIndex" json:"creator_id"`
	Creator             *Creator                   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CreatorID;references:ID" json:"creator,omitempty"`
	PreferredCategories datatypes.JSONSlice[string] `gorm:"type:jsonb;column:preferred_categories" json:"preferred_categories"`
	BudgetMin           int64                      `gorm:"column:budget_min;not null;default:0" json:"budget_min"`
	BudgetMax           int64                      `gorm:"column:budget_max;not null;default:0" json:"budget_max"`
	BudgetAverage       int64                      `gorm:"column:budget_average;not null;default:0" json:"budget_average"`
	TargetAudience      string                     `gorm:"column:target_audience" json:"target_audience"`
	Location            string                     `gorm:"column:location" json:"location"`
	Interests           datatypes.JSONSlice[string] `gorm:"type:jsonb;column:interests" json:"interests"`
	BrandStyle          string                     `gorm:"column:brand_style" json:"brand_style"`
	CreatedAt           time.Time                  `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time                  `gorm:"not null" json:"updated_at"`
}

func (CreatorPreferences) TableName() string { return "creator_preferences" }

// HasPreferredCategory reports whether category is in the creator's explicit list.
func (p *CreatorPreferences) HasPreferredCategory(category string) bool {
	for _, c := range p.PreferredCategories {
		if c == category {
			return true
		}
	}
	return false
}

// InBudget reports whether price falls inside [BudgetMin, BudgetMax] inclusive.
// A zero-valued range never matches.
func (p *CreatorPreferences) InBudget(price int64) bool {
	if p.BudgetMax <= 0 {
		return false
	}
	return price >= p.BudgetMin && price <= p.BudgetMax
}
