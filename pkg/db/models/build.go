package models

import (
	"time"

	"github.com/google/uuid"
)

// Build is a published community build: a durable snapshot of a builder
// session at publish time. Slots copy product name and resolved prices so
// the feed stays stable when catalog prices move.
type Build struct {
	ID          uuid.UUID   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string      `gorm:"column:title;not null"`
	Author      string      `gorm:"column:author;not null"`
	MinTotalBDT int         `gorm:"column:min_total_bdt;not null"`
	Slots       []BuildSlot `gorm:"foreignKey:BuildID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time   `gorm:"column:created_at;autoCreateTime"`
}

// BuildSlot is one component line in a published build.
type BuildSlot struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BuildID      uuid.UUID `gorm:"column:build_id;type:uuid;not null;index"`
	Category     string    `gorm:"column:category;not null"`
	ProductID    uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	ProductName  string    `gorm:"column:product_name;not null"`
	Quantity     int       `gorm:"column:quantity;not null;default:1"`
	Retailer     *string   `gorm:"column:retailer"`
	UnitPriceBDT int       `gorm:"column:unit_price_bdt;not null"`
	Position     int       `gorm:"column:position;not null;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
