package builder

// ShopTotal reports what a build would cost if every selected component
// were bought from one retailer. Slots without a price row at that shop
// contribute zero; MatchedSlots against TotalSlots tells the caller how
// complete the quote is.
type ShopTotal struct {
	Shop         string `json:"shop"`
	TotalBDT     int    `json:"total_bdt"`
	MatchedSlots int    `json:"matched_slots"`
	TotalSlots   int    `json:"total_slots"`
}

// MinTotal sums the cheapest unit price times quantity over the selected
// slots.
func (b *Build) MinTotal() int {
	total := 0
	for _, slot := range b.SelectedSlots() {
		total += minUnitPrice(slot.Product) * slot.Quantity
	}
	return total
}

// SelectedTotal sums the resolved unit price times quantity over the
// selected slots, honoring per-slot retailer pins.
func (b *Build) SelectedTotal() int {
	total := 0
	for _, slot := range b.SelectedSlots() {
		total += resolveUnitPrice(slot) * slot.Quantity
	}
	return total
}

// RetailerTotal quotes the selected slots against a single shop using
// fuzzy retailer matching.
func (b *Build) RetailerTotal(shop string) ShopTotal {
	result := ShopTotal{Shop: shop}
	for _, slot := range b.SelectedSlots() {
		result.TotalSlots++
		price, ok := matchPrice(slot.Product.Prices, shop)
		if !ok {
			continue
		}
		result.MatchedSlots++
		result.TotalBDT += price.PriceBDT * slot.Quantity
	}
	return result
}
