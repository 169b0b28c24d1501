package builder

import (
	"github.com/google/uuid"

	"github.com/nayeemjohny/pcbuilder-backend/internal/catalog"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/db/models"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/enums"
)

// Summary is the priced view of a session: the floor price, the price of
// the current picks, and optionally a single-retailer quote.
type Summary struct {
	SessionID        uuid.UUID  `json:"session_id"`
	MinTotalBDT      int        `json:"min_total_bdt"`
	SelectedTotalBDT int        `json:"selected_total_bdt"`
	ShopTotal        *ShopTotal `json:"shop_total,omitempty"`
	SelectedSlots    int        `json:"selected_slots"`
	TotalSlots       int        `json:"total_slots"`
}

// Candidate is a catalog product offered for a slot, flagged when its
// compatibility could not be established from spec data.
type Candidate struct {
	catalog.ProductDTO
	CompatUnknown bool `json:"compat_unknown,omitempty"`
}

// CandidatesInput selects which category page of candidates to fetch.
type CandidatesInput struct {
	Category enums.ComponentCategory
	Query    string
	Cursor   string
	Limit    int
}

// CandidatesResult is one page of candidates, possibly narrowed by the
// session's compatibility filter. Notice explains why the page was not
// narrowed when Filtered is false and a rule exists for the category.
type CandidatesResult struct {
	Category   enums.ComponentCategory   `json:"category"`
	Mode       enums.CompatMode          `json:"mode"`
	Filtered   bool                      `json:"filtered"`
	Notice     string                    `json:"notice,omitempty"`
	Items      []Candidate               `json:"items"`
	Pagination catalog.ProductPagination `json:"pagination"`
}

// snapshotFromModel freezes the catalog row into the session snapshot
// shape.
func snapshotFromModel(product *models.Product) *ProductSnapshot {
	snapshot := &ProductSnapshot{
		ID:          product.ID,
		Name:        product.Name,
		Brand:       product.Brand,
		Image:       product.Image,
		Category:    product.Category,
		MinPriceBDT: product.MinPriceBDT,
	}
	for _, price := range product.Prices {
		snapshot.Prices = append(snapshot.Prices, PriceOption{
			Shop:         price.Shop,
			PriceBDT:     price.PriceBDT,
			Availability: price.Availability,
			URL:          price.URL,
		})
	}
	return snapshot
}
