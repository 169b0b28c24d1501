package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/nayeemjohny/pcbuilder-backend/pkg/enums"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/types"
)

// Product is a catalog entry for one PC component, with retailer listings
// nested underneath. MinPriceBDT mirrors the cheapest live retailer price;
// BasePriceBDT is the highest price observed at import time and is kept as
// the "was" anchor even after later edits.
type Product struct {
	ID             uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string                  `gorm:"column:name;not null"`
	Brand          string                  `gorm:"column:brand;not null"`
	Image          *string                 `gorm:"column:image"`
	Category       enums.ComponentCategory `gorm:"column:category;not null;index"`
	Specifications types.SpecMap           `gorm:"column:specifications;type:jsonb;not null;default:'{}'"`
	Highlights     pq.StringArray          `gorm:"column:highlights;type:text[];not null;default:ARRAY[]::text[]"`
	MinPriceBDT    int                     `gorm:"column:min_price_bdt;not null;default:0"`
	BasePriceBDT   int                     `gorm:"column:base_price_bdt;not null;default:0"`
	Prices         []RetailerPrice         `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
