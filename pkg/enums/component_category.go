package enums

import "fmt"

// ComponentCategory represents the fixed set of PC component kinds the
// builder knows about. The set is closed and never extended at runtime.
type ComponentCategory string

const (
	ComponentCategoryCPU         ComponentCategory = "cpu"
	ComponentCategoryMotherboard ComponentCategory = "motherboard"
	ComponentCategoryRAM         ComponentCategory = "ram"
	ComponentCategoryStorage     ComponentCategory = "storage"
	ComponentCategoryGPU         ComponentCategory = "gpu"
	ComponentCategoryPSU         ComponentCategory = "psu"
	ComponentCategoryCase        ComponentCategory = "case"
	ComponentCategoryCooler      ComponentCategory = "cooler"
	ComponentCategoryMonitor     ComponentCategory = "monitor"
)

var validComponentCategories = []ComponentCategory{
	ComponentCategoryCPU,
	ComponentCategoryMotherboard,
	ComponentCategoryRAM,
	ComponentCategoryStorage,
	ComponentCategoryGPU,
	ComponentCategoryPSU,
	ComponentCategoryCase,
	ComponentCategoryCooler,
	ComponentCategoryMonitor,
}

// String implements fmt.Stringer.
func (c ComponentCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ComponentCategory.
func (c ComponentCategory) IsValid() bool {
	for _, candidate := range validComponentCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseComponentCategory converts raw input into a ComponentCategory.
func ParseComponentCategory(value string) (ComponentCategory, error) {
	for _, candidate := range validComponentCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid component category %q", value)
}

// ComponentCategories returns the closed category set in display order.
func ComponentCategories() []ComponentCategory {
	out := make([]ComponentCategory, len(validComponentCategories))
	copy(out, validComponentCategories)
	return out
}
