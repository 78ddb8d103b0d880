package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Seasonality describes in which calendar months (1-12) a category peaks or dips.
type Seasonality struct {
	PeakMonths []int `json:"peak_months"`
	LowMonths  []int `json:"low_months"`
}

// MarketTrend rows are maintained by an external sync job; the engine only reads them.
type MarketTrend struct {
	ID           uuid.UUID                        `gorm:"type:uuid;primaryKey" json:"id"`
	Category     string                           `gorm:"column:category;not null;index" json:"category"`
	Region       string                           `gorm:"column:region;index" json:"region"`
	Period       string                           `gorm:"column:period;not null;index" json:"period"`
	TrendScore   float64                          `gorm:"column:trend_score;not null;default:0" json:"trend_score"`
	SearchVolume int64                            `gorm:"column:search_volume;not null;default:0" json:"search_volume"`
	Seasonality  datatypes.JSONType[Seasonality]  `gorm:"type:jsonb;column:seasonality" json:"seasonality"`
	Keywords     datatypes.JSONSlice[string]      `gorm:"type:jsonb;column:keywords" json:"keywords"`
	CreatedAt    time.Time                        `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time                        `gorm:"not null" json:"updated_at"`
}

func (MarketTrend) TableName() string { return "market_trend" }

// PeaksIn reports whether month (1-12) is one of the trend's peak months.
func (t *MarketTrend) PeaksIn(month int) bool {
	for _, m := range t.Seasonality.Data().PeakMonths {
		if m == month {
			return true
		}
	}
	return false
}
