package builder

import (
	"time"

	"github.com/google/uuid"

	"github.com/nayeemjohny/pcbuilder-backend/pkg/enums"
)

// PriceOption is one retailer listing captured on a product snapshot.
type PriceOption struct {
	Shop         string             `json:"shop"`
	PriceBDT     int                `json:"price_bdt"`
	Availability enums.Availability `json:"availability"`
	URL          *string            `json:"url,omitempty"`
}

// ProductSnapshot freezes the catalog fields a session needs. Sessions
// never re-read the catalog row, so edits to a product do not ripple
// into builds already in progress.
type ProductSnapshot struct {
	ID          uuid.UUID               `json:"id"`
	Name        string                  `json:"name"`
	Brand       string                  `json:"brand"`
	Image       *string                 `json:"image,omitempty"`
	Category    enums.ComponentCategory `json:"category"`
	MinPriceBDT int                     `json:"min_price_bdt"`
	Prices      []PriceOption           `json:"prices,omitempty"`
}

// Slot is one picked component in a build. A category can hold several
// slots but at most one is selected at a time.
type Slot struct {
	ID       uuid.UUID               `json:"id"`
	Category enums.ComponentCategory `json:"category"`
	Product  *ProductSnapshot        `json:"product,omitempty"`
	Quantity int                     `json:"quantity"`
	Selected bool                    `json:"selected"`
	Retailer string                  `json:"retailer,omitempty"`
}

// Build is the full state of one builder session.
type Build struct {
	ID         uuid.UUID        `json:"id"`
	Name       string           `json:"name,omitempty"`
	CompatMode enums.CompatMode `json:"compat_mode"`
	Slots      []Slot           `json:"slots"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

// NewBuild starts an empty session in the default compatibility mode.
func NewBuild(name string) *Build {
	now := nowUTC()
	return &Build{
		ID:         uuid.New(),
		Name:       name,
		CompatMode: enums.DefaultCompatMode,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// AddProduct appends a new selected slot for the product's category with
// quantity 1, deselecting any sibling slot in that category.
func (b *Build) AddProduct(product *ProductSnapshot) *Slot {
	if product == nil {
		return nil
	}
	b.deselectCategory(product.Category)
	b.Slots = append(b.Slots, Slot{
		ID:       uuid.New(),
		Category: product.Category,
		Product:  product,
		Quantity: 1,
		Selected: true,
	})
	return &b.Slots[len(b.Slots)-1]
}

// RemoveSlot deletes the slot with the given id. When the removed slot
// was the selected one, the first remaining sibling in storage order is
// promoted. Unknown ids are a no-op.
func (b *Build) RemoveSlot(id uuid.UUID) {
	idx := b.indexOf(id)
	if idx < 0 {
		return
	}
	removed := b.Slots[idx]
	b.Slots = append(b.Slots[:idx], b.Slots[idx+1:]...)
	if !removed.Selected {
		return
	}
	for i := range b.Slots {
		if b.Slots[i].Category == removed.Category {
			b.Slots[i].Selected = true
			return
		}
	}
}

// SelectSlot makes the slot the only selected one in its category.
// Unknown ids are a no-op.
func (b *Build) SelectSlot(id uuid.UUID) {
	idx := b.indexOf(id)
	if idx < 0 {
		return
	}
	b.deselectCategory(b.Slots[idx].Category)
	b.Slots[idx].Selected = true
}

// SetQuantity overwrites the slot quantity. Quantities below 1 are
// ignored, leaving the slot unchanged.
func (b *Build) SetQuantity(id uuid.UUID, quantity int) {
	if quantity < 1 {
		return
	}
	if idx := b.indexOf(id); idx >= 0 {
		b.Slots[idx].Quantity = quantity
	}
}

// SetRetailer records a retailer preference on the slot. The value is
// stored as-is; resolution against price rows happens lazily.
func (b *Build) SetRetailer(id uuid.UUID, shop string) {
	if idx := b.indexOf(id); idx >= 0 {
		b.Slots[idx].Retailer = shop
	}
}

// Clear drops every slot.
func (b *Build) Clear() {
	b.Slots = nil
}

// SlotsForCategory returns the slots in a category in storage order.
func (b *Build) SlotsForCategory(category enums.ComponentCategory) []Slot {
	var out []Slot
	for _, slot := range b.Slots {
		if slot.Category == category {
			out = append(out, slot)
		}
	}
	return out
}

// SelectedSlot returns the selected slot of a category, or nil.
func (b *Build) SelectedSlot(category enums.ComponentCategory) *Slot {
	for i := range b.Slots {
		if b.Slots[i].Category == category && b.Slots[i].Selected {
			return &b.Slots[i]
		}
	}
	return nil
}

// SelectedSlots returns every selected slot that carries a product, in
// storage order. Totals are computed over exactly this set.
func (b *Build) SelectedSlots() []Slot {
	var out []Slot
	for _, slot := range b.Slots {
		if slot.Selected && slot.Product != nil {
			out = append(out, slot)
		}
	}
	return out
}

// Slot returns the slot with the given id, or nil.
func (b *Build) Slot(id uuid.UUID) *Slot {
	if idx := b.indexOf(id); idx >= 0 {
		return &b.Slots[idx]
	}
	return nil
}

func (b *Build) indexOf(id uuid.UUID) int {
	for i := range b.Slots {
		if b.Slots[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *Build) deselectCategory(category enums.ComponentCategory) {
	for i := range b.Slots {
		if b.Slots[i].Category == category {
			b.Slots[i].Selected = false
		}
	}
}
