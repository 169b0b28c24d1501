package compat

import (
	"strings"

	"github.com/google/uuid"

	"github.com/nayeemjohny/pcbuilder-backend/pkg/db/models"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/enums"
)

// Specification keys checked by the compatibility rules. These are the
// verbatim keys used in product specification maps.
const (
	SpecSocket     = "Socket"
	SpecMemoryType = "Memory Type"
)

// Rule links a source category to the target category it constrains and
// the specification key both sides must agree on.
type Rule struct {
	Source  enums.ComponentCategory
	Target  enums.ComponentCategory
	SpecKey string
}

var rules = []Rule{
	{Source: enums.ComponentCategoryCPU, Target: enums.ComponentCategoryMotherboard, SpecKey: SpecSocket},
	{Source: enums.ComponentCategoryMotherboard, Target: enums.ComponentCategoryRAM, SpecKey: SpecMemoryType},
}

// RuleForTarget returns the rule constraining the given target category,
// if one exists. Categories without a rule are never narrowed.
func RuleForTarget(target enums.ComponentCategory) (Rule, bool) {
	for _, rule := range rules {
		if rule.Target == target {
			return rule, true
		}
	}
	return Rule{}, false
}

// Result is one computed compatibility set. Products whose spec value
// matched the source land in Compatible; products missing the spec (or
// every product, when the source itself lacks it) land in Unknown.
type Result struct {
	SpecKey    string
	SpecValue  string
	Compatible []uuid.UUID
	Unknown    []uuid.UUID
}

// AllowedIDs returns the ids admitted under the given mode. Strict admits
// Compatible only; lenient admits Compatible plus Unknown. The strict set
// is always a subset of the lenient one.
func (r *Result) AllowedIDs(mode enums.CompatMode) map[uuid.UUID]bool {
	allowed := make(map[uuid.UUID]bool, len(r.Compatible)+len(r.Unknown))
	for _, id := range r.Compatible {
		allowed[id] = true
	}
	if mode == enums.CompatModeLenient {
		for _, id := range r.Unknown {
			allowed[id] = true
		}
	}
	return allowed
}

// IsUnknown reports whether the id sits in the Unknown partition.
func (r *Result) IsUnknown(id uuid.UUID) bool {
	for _, unknown := range r.Unknown {
		if unknown == id {
			return true
		}
	}
	return false
}

// partition splits candidates on whether their spec value matches wanted.
// A blank wanted value means the source side has no data, so everything
// is unknown.
func partition(candidates []models.Product, specKey, wanted string) *Result {
	result := &Result{SpecKey: specKey, SpecValue: wanted}
	for _, candidate := range candidates {
		value, ok := candidate.Specifications.Get(specKey)
		if wanted == "" || !ok {
			result.Unknown = append(result.Unknown, candidate.ID)
			continue
		}
		if specValueEqual(value, wanted) {
			result.Compatible = append(result.Compatible, candidate.ID)
		}
	}
	return result
}

// specValueEqual compares spec values loosely. Catalog data mixes casing
// and padding ("AM5" vs "am5 ") across retailers.
func specValueEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
