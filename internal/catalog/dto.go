package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nayeemjohny/pcbuilder-backend/pkg/db/models"
)

// ProductDTO is the catalog payload returned to clients, with retailer
// listings nested when the grouped read path is used.
type ProductDTO struct {
	ID              uuid.UUID          `json:"id"`
	Name            string             `json:"name"`
	Brand           string             `json:"brand"`
	Image           *string            `json:"image,omitempty"`
	Category        string             `json:"category"`
	CategorySlug    string             `json:"category_slug"`
	Specifications  map[string]string  `json:"specifications"`
	Highlights      []string           `json:"highlights"`
	MinPriceBDT     int                `json:"min_price_bdt"`
	BasePriceBDT    int                `json:"base_price_bdt"`
	DiscountPercent decimal.Decimal    `json:"discount_percent"`
	Prices          []RetailerPriceDTO `json:"prices,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// RetailerPriceDTO is one retailer listing inside a grouped product payload.
type RetailerPriceDTO struct {
	Shop         string  `json:"shop"`
	PriceBDT     int     `json:"price_bdt"`
	Availability string  `json:"availability"`
	URL          *string `json:"url,omitempty"`
}

// ProductPagination carries cursor metadata for list responses.
type ProductPagination struct {
	NextCursor *string `json:"next_cursor,omitempty"`
	HasMore    bool    `json:"has_more"`
	Limit      int     `json:"limit"`
}

// ProductListResult is a page of catalog products.
type ProductListResult struct {
	Items      []ProductDTO      `json:"items"`
	Pagination ProductPagination `json:"pagination"`
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(product *models.Product, grouped bool) *ProductDTO {
	dto := &ProductDTO{
		ID:              product.ID,
		Name:            product.Name,
		Brand:           product.Brand,
		Image:           product.Image,
		Category:        string(product.Category),
		Specifications:  map[string]string(product.Specifications),
		Highlights:      append([]string{}, product.Highlights...),
		MinPriceBDT:     product.MinPriceBDT,
		BasePriceBDT:    product.BasePriceBDT,
		DiscountPercent: discountPercent(product.BasePriceBDT, product.MinPriceBDT),
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}
	if dto.Specifications == nil {
		dto.Specifications = map[string]string{}
	}
	if slug, ok := SlugForCategory(product.Category); ok {
		dto.CategorySlug = slug
	}
	if grouped {
		dto.Prices = make([]RetailerPriceDTO, 0, len(product.Prices))
		for _, price := range product.Prices {
			dto.Prices = append(dto.Prices, RetailerPriceDTO{
				Shop:         price.Shop,
				PriceBDT:     price.PriceBDT,
				Availability: string(price.Availability),
				URL:          price.URL,
			})
		}
	}
	return dto
}

// discountPercent reports the "was" saving against the import-time base
// price, rounded to one decimal place. Zero when there is nothing to save.
func discountPercent(baseBDT, minBDT int) decimal.Decimal {
	if baseBDT <= 0 || minBDT <= 0 || minBDT >= baseBDT {
		return decimal.Zero
	}
	base := decimal.NewFromInt(int64(baseBDT))
	min := decimal.NewFromInt(int64(minBDT))
	return base.Sub(min).
		Div(base).
		Mul(decimal.NewFromInt(100)).
		Round(1)
}
