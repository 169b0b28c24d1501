package builder

import "github.com/nayeemjohny/pcbuilder-backend/pkg/enums"

// CategoryPolicy describes how the builder treats one component category:
// display metadata plus the slot and quantity rules enforced on sessions.
type CategoryPolicy struct {
	Category      enums.ComponentCategory `json:"category"`
	Label         string                  `json:"label"`
	Description   string                  `json:"description"`
	Icon          string                  `json:"icon"`
	Required      bool                    `json:"required"`
	MaxSlots      int                     `json:"max_slots"`
	AllowQuantity bool                    `json:"allow_quantity"`
}

var policies = map[enums.ComponentCategory]CategoryPolicy{
	enums.ComponentCategoryCPU: {
		Category:    enums.ComponentCategoryCPU,
		Label:       "Processor",
		Description: "Pick the CPU first; it decides which motherboards fit.",
		Icon:        "cpu",
		Required:    true,
		MaxSlots:    1,
	},
	enums.ComponentCategoryMotherboard: {
		Category:    enums.ComponentCategoryMotherboard,
		Label:       "Motherboard",
		Description: "Must match the CPU socket.",
		Icon:        "motherboard",
		Required:    true,
		MaxSlots:    1,
	},
	enums.ComponentCategoryRAM: {
		Category:      enums.ComponentCategoryRAM,
		Label:         "Memory",
		Description:   "Add one slot per kit; use quantity for matched sticks.",
		Icon:          "ram",
		MaxSlots:      4,
		AllowQuantity: true,
	},
	enums.ComponentCategoryStorage: {
		Category:      enums.ComponentCategoryStorage,
		Label:         "Storage",
		Description:   "SSDs and hard drives; multiple drives are common.",
		Icon:          "storage",
		MaxSlots:      4,
		AllowQuantity: true,
	},
	enums.ComponentCategoryGPU: {
		Category:    enums.ComponentCategoryGPU,
		Label:       "Graphics Card",
		Icon:        "gpu",
		Description: "Optional for builds relying on integrated graphics.",
		MaxSlots:    1,
	},
	enums.ComponentCategoryPSU: {
		Category:    enums.ComponentCategoryPSU,
		Label:       "Power Supply",
		Icon:        "psu",
		Required:    true,
		MaxSlots:    1,
	},
	enums.ComponentCategoryCase: {
		Category: enums.ComponentCategoryCase,
		Label:    "Casing",
		Icon:     "case",
		Required: true,
		MaxSlots: 1,
	},
	enums.ComponentCategoryCooler: {
		Category:    enums.ComponentCategoryCooler,
		Label:       "CPU Cooler",
		Description: "Skip when the processor ships with a stock cooler.",
		Icon:        "cooler",
		MaxSlots:    1,
	},
	enums.ComponentCategoryMonitor: {
		Category: enums.ComponentCategoryMonitor,
		Label:    "Monitor",
		Icon:     "monitor",
		MaxSlots: 2,
	},
}

// PolicyFor returns the policy of a category. Every valid category has
// exactly one.
func PolicyFor(category enums.ComponentCategory) (CategoryPolicy, bool) {
	policy, ok := policies[category]
	return policy, ok
}

// Policies lists every category policy in the canonical category order.
func Policies() []CategoryPolicy {
	categories := enums.ComponentCategories()
	out := make([]CategoryPolicy, 0, len(categories))
	for _, category := range categories {
		out = append(out, policies[category])
	}
	return out
}
