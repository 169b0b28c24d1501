package builder

import (
	"strings"
	"unicode"
)

// normalizeShop folds a retailer name for fuzzy comparison: lowercase
// with all whitespace stripped, so "Star Tech" and "StarTech" collide.
func normalizeShop(shop string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, shop)
}

// matchPrice finds the price row whose shop best matches the requested
// retailer. Exact normalized equality outranks substring containment in
// either direction; within a rank the earliest row wins.
func matchPrice(prices []PriceOption, shop string) (PriceOption, bool) {
	wanted := normalizeShop(shop)
	if wanted == "" {
		return PriceOption{}, false
	}

	bestIdx := -1
	bestRank := 0
	for i, price := range prices {
		candidate := normalizeShop(price.Shop)
		if candidate == "" {
			continue
		}
		var rank int
		switch {
		case candidate == wanted:
			rank = 2
		case strings.Contains(candidate, wanted) || strings.Contains(wanted, candidate):
			rank = 1
		default:
			continue
		}
		if rank > bestRank {
			bestRank = rank
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return PriceOption{}, false
	}
	return prices[bestIdx], true
}

// minPriceOption returns the cheapest price row, breaking ties by the
// earliest row.
func minPriceOption(prices []PriceOption) (PriceOption, bool) {
	if len(prices) == 0 {
		return PriceOption{}, false
	}
	best := prices[0]
	for _, price := range prices[1:] {
		if price.PriceBDT < best.PriceBDT {
			best = price
		}
	}
	return best, true
}

// minUnitPrice is the cheapest known unit price of a snapshot, falling
// back to the catalog-derived MinPriceBDT when no rows were captured.
func minUnitPrice(product *ProductSnapshot) int {
	if product == nil {
		return 0
	}
	if best, ok := minPriceOption(product.Prices); ok {
		return best.PriceBDT
	}
	return product.MinPriceBDT
}

// UnitPrice resolves the slot's effective unit price: the fuzzy-matched
// pinned retailer row when one matches, otherwise the minimum price.
func (s Slot) UnitPrice() int {
	return resolveUnitPrice(s)
}

// resolveUnitPrice picks the unit price for a slot: the fuzzy-matched
// retailer row when the slot pins a retailer that matches, otherwise the
// minimum price.
func resolveUnitPrice(slot Slot) int {
	if slot.Product == nil {
		return 0
	}
	if slot.Retailer != "" {
		if price, ok := matchPrice(slot.Product.Prices, slot.Retailer); ok {
			return price.PriceBDT
		}
	}
	return minUnitPrice(slot.Product)
}
