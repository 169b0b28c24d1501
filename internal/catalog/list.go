package catalog

import (
	"github.com/nayeemjohny/pcbuilder-backend/pkg/enums"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/pagination"
)

// ListProductsInput captures the inputs needed to paginate/filter a category
// browse. Grouped requests nest every retailer listing under its product;
// ungrouped requests return the product rows only.
type ListProductsInput struct {
	Category   enums.ComponentCategory
	Query      string
	Grouped    bool
	Pagination pagination.Params
}
