package builder

import (
	"testing"

	"github.com/google/uuid"

	"github.com/nayeemjohny/pcbuilder-backend/pkg/enums"
)

func snapshot(category enums.ComponentCategory, name string, prices ...PriceOption) *ProductSnapshot {
	min := 0
	for i, price := range prices {
		if i == 0 || price.PriceBDT < min {
			min = price.PriceBDT
		}
	}
	return &ProductSnapshot{
		ID:          uuid.New(),
		Name:        name,
		Brand:       "Test",
		Category:    category,
		MinPriceBDT: min,
		Prices:      prices,
	}
}

func TestTotalsSumSelectedSlotsTimesQuantity(t *testing.T) {
	build := NewBuild("")
	build.AddProduct(snapshot(enums.ComponentCategoryCPU, "Ryzen 5 7600",
		PriceOption{Shop: "Star Tech", PriceBDT: 25000},
	))
	ram := build.AddProduct(snapshot(enums.ComponentCategoryRAM, "DDR5 16GB",
		PriceOption{Shop: "Star Tech", PriceBDT: 8500},
	))
	build.SetQuantity(ram.ID, 2)

	if got := build.MinTotal(); got != 42000 {
		t.Fatalf("expected 25000 + 8500*2 = 42000, got %d", got)
	}
	if got := build.SelectedTotal(); got != 42000 {
		t.Fatalf("selected total should agree without retailer pins, got %d", got)
	}
}

func TestTotalsSkipUnselectedSiblings(t *testing.T) {
	build := NewBuild("")
	first := build.AddProduct(snapshot(enums.ComponentCategoryGPU, "RTX 4060",
		PriceOption{Shop: "A", PriceBDT: 42000},
	))
	build.AddProduct(snapshot(enums.ComponentCategoryGPU, "RTX 4070",
		PriceOption{Shop: "A", PriceBDT: 78000},
	))

	if got := build.MinTotal(); got != 78000 {
		t.Fatalf("only the selected GPU may be counted, got %d", got)
	}

	build.SelectSlot(first.ID)
	if got := build.MinTotal(); got != 42000 {
		t.Fatalf("totals must follow the selection, got %d", got)
	}
}

func TestSelectedTotalHonorsRetailerPins(t *testing.T) {
	build := NewBuild("")
	gpu := build.AddProduct(snapshot(enums.ComponentCategoryGPU, "RTX 4060",
		PriceOption{Shop: "Techland", PriceBDT: 28500},
		PriceOption{Shop: "Star Tech", PriceBDT: 29000},
	))

	if got := build.SelectedTotal(); got != 28500 {
		t.Fatalf("without a pin the cheapest row applies, got %d", got)
	}

	build.SetRetailer(gpu.ID, "StarTech")
	if got := build.SelectedTotal(); got != 29000 {
		t.Fatalf("the fuzzy-matched pinned retailer must price the slot, got %d", got)
	}
	if got := build.MinTotal(); got != 28500 {
		t.Fatalf("the minimum total must ignore pins, got %d", got)
	}
}

func TestRetailerTotalReportsCoverage(t *testing.T) {
	build := NewBuild("")
	build.AddProduct(snapshot(enums.ComponentCategoryCPU, "Ryzen 5 7600",
		PriceOption{Shop: "Star Tech", PriceBDT: 25000},
		PriceOption{Shop: "Techland", PriceBDT: 25500},
	))
	ram := build.AddProduct(snapshot(enums.ComponentCategoryRAM, "DDR5 16GB",
		PriceOption{Shop: "Star Tech", PriceBDT: 8500},
	))
	build.SetQuantity(ram.ID, 2)
	build.AddProduct(snapshot(enums.ComponentCategoryPSU, "650W Gold",
		PriceOption{Shop: "Techland", PriceBDT: 7800},
	))

	quote := build.RetailerTotal("star tech")
	if quote.TotalSlots != 3 {
		t.Fatalf("expected 3 priced slots, got %d", quote.TotalSlots)
	}
	if quote.MatchedSlots != 2 {
		t.Fatalf("only cpu and ram list at Star Tech, got %d matches", quote.MatchedSlots)
	}
	if quote.TotalBDT != 42000 {
		t.Fatalf("expected 25000 + 8500*2 = 42000, got %d", quote.TotalBDT)
	}
}

func TestTotalsOnEmptyBuildAreZero(t *testing.T) {
	build := NewBuild("")
	if build.MinTotal() != 0 || build.SelectedTotal() != 0 {
		t.Fatal("an empty build costs nothing")
	}
	quote := build.RetailerTotal("Star Tech")
	if quote.TotalBDT != 0 || quote.TotalSlots != 0 || quote.MatchedSlots != 0 {
		t.Fatalf("empty build quote must be zero-valued, got %+v", quote)
	}
}
