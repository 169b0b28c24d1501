package builds

import (
	"time"

	"github.com/google/uuid"

	"github.com/nayeemjohny/pcbuilder-backend/pkg/db/models"
)

// BuildDTO is one published build in the feed.
type BuildDTO struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Author      string         `json:"author"`
	MinTotalBDT int            `json:"min_total_bdt"`
	Slots       []BuildSlotDTO `json:"slots"`
	CreatedAt   time.Time      `json:"created_at"`
}

// BuildSlotDTO is one component line of a published build.
type BuildSlotDTO struct {
	Category     string    `json:"category"`
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	Quantity     int       `json:"quantity"`
	Retailer     *string   `json:"retailer,omitempty"`
	UnitPriceBDT int       `json:"unit_price_bdt"`
}

// FeedPagination carries cursor metadata for the feed response.
type FeedPagination struct {
	NextCursor *string `json:"next_cursor,omitempty"`
	HasMore    bool    `json:"has_more"`
	Limit      int     `json:"limit"`
}

// FeedResult is one page of the community build feed.
type FeedResult struct {
	Items      []BuildDTO     `json:"items"`
	Pagination FeedPagination `json:"pagination"`
}

// NewBuildDTO maps the persisted build into the feed payload.
func NewBuildDTO(build *models.Build) *BuildDTO {
	dto := &BuildDTO{
		ID:          build.ID,
		Title:       build.Title,
		Author:      build.Author,
		MinTotalBDT: build.MinTotalBDT,
		Slots:       make([]BuildSlotDTO, 0, len(build.Slots)),
		CreatedAt:   build.CreatedAt,
	}
	for _, slot := range build.Slots {
		dto.Slots = append(dto.Slots, BuildSlotDTO{
			Category:     slot.Category,
			ProductID:    slot.ProductID,
			ProductName:  slot.ProductName,
			Quantity:     slot.Quantity,
			Retailer:     slot.Retailer,
			UnitPriceBDT: slot.UnitPriceBDT,
		})
	}
	return dto
}
