package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/nayeemjohny/pcbuilder-backend/pkg/enums"
)

// RetailerPrice is one retailer's listing for a product. Shop names arrive
// from scraped imports with inconsistent spelling ("Tech Land" vs
// "Techland"), so matching against them is always fuzzy, never keyed.
type RetailerPrice struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID    uuid.UUID          `gorm:"column:product_id;type:uuid;not null;index"`
	Shop         string             `gorm:"column:shop;not null"`
	PriceBDT     int                `gorm:"column:price_bdt;not null"`
	Availability enums.Availability `gorm:"column:availability;not null;default:'in_stock'"`
	URL          *string            `gorm:"column:url"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
