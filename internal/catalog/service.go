package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/nayeemjohny/pcbuilder-backend/pkg/db"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/db/models"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/enums"
	pkgerrors "github.com/nayeemjohny/pcbuilder-backend/pkg/errors"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/pagination"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/types"
)

// Service exposes catalog browse and admin management operations.
type Service interface {
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ReplacePrices(ctx context.Context, id uuid.UUID, prices []PriceInput) (*ProductDTO, error)
}

// CreateProductInput holds the validated payload to create a product.
// BasePrice is derived from the highest supplied retailer price at import.
type CreateProductInput struct {
	Name           string
	Brand          string
	Image          *string
	Category       enums.ComponentCategory
	Specifications map[string]string
	Highlights     []string
	MinPriceBDT    int
	Prices         []PriceInput
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name           *string
	Brand          *string
	Image          *string
	Specifications *map[string]string
	Highlights     *[]string
}

// PriceInput is one retailer listing supplied by an import or admin edit.
type PriceInput struct {
	Shop         string
	PriceBDT     int
	Availability enums.Availability
	URL          *string
}

type productRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListByCategory(ctx context.Context, input ListProductsInput) ([]models.Product, bool, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ReplacePrices(ctx context.Context, productID uuid.UUID, prices []models.RetailerPrice, resetBase bool) error
}

type service struct {
	repo productRepo
}

// NewService builds the catalog service backed by the provided repository.
func NewService(repo productRepo) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repository is required")
	}
	return &service{repo: repo}, nil
}

// ListProducts returns one page of a category browse.
func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown category")
	}

	products, hasMore, err := s.repo.ListByCategory(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	result := &ProductListResult{
		Items: make([]ProductDTO, 0, len(products)),
		Pagination: ProductPagination{
			HasMore: hasMore,
			Limit:   pagination.NormalizeLimit(input.Pagination.Limit),
		},
	}
	for i := range products {
		result.Items = append(result.Items, *NewProductDTO(&products[i], input.Grouped))
	}
	if hasMore && len(products) > 0 {
		last := products[len(products)-1]
		cursor := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		result.Pagination.NextCursor = &cursor
	}
	return result, nil
}

// GetProduct loads a single product with its retailer listings.
func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewProductDTO(product, true), nil
}

// CreateProduct validates and persists a new catalog entry. The base price
// anchors to the highest retailer price in the import payload.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if err := validateCoreFields(input.Name, input.Brand, input.Category); err != nil {
		return nil, err
	}
	rows, err := priceRows(input.Prices)
	if err != nil {
		return nil, err
	}

	minPrice := input.MinPriceBDT
	basePrice := 0
	if len(rows) > 0 {
		minPrice, basePrice = priceBounds(rows)
	}
	if minPrice < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "min price must be non-negative")
	}

	product := &models.Product{
		Name:           strings.TrimSpace(input.Name),
		Brand:          strings.TrimSpace(input.Brand),
		Image:          input.Image,
		Category:       input.Category,
		Specifications: types.SpecMap(input.Specifications),
		Highlights:     pq.StringArray(input.Highlights),
		MinPriceBDT:    minPrice,
		BasePriceBDT:   basePrice,
		Prices:         rows,
	}
	if product.Specifications == nil {
		product.Specifications = types.SpecMap{}
	}
	if product.Highlights == nil {
		product.Highlights = pq.StringArray{}
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err, "uq_products_category_name") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a product with this name already exists in the category")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return NewProductDTO(created, true), nil
}

// UpdateProduct applies the optional mutation set to an existing product.
func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Brand != nil {
		if strings.TrimSpace(*input.Brand) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand cannot be empty")
		}
		product.Brand = strings.TrimSpace(*input.Brand)
	}
	if input.Image != nil {
		product.Image = input.Image
	}
	if input.Specifications != nil {
		product.Specifications = types.SpecMap(*input.Specifications)
	}
	if input.Highlights != nil {
		product.Highlights = pq.StringArray(*input.Highlights)
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err, "uq_products_category_name") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a product with this name already exists in the category")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return NewProductDTO(updated, true), nil
}

// DeleteProduct removes a catalog entry and its listings.
func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findProduct(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

// ReplacePrices swaps the retailer price set. MinPrice tracks the new set;
// BasePrice keeps its import-time anchor.
func (s *service) ReplacePrices(ctx context.Context, id uuid.UUID, prices []PriceInput) (*ProductDTO, error) {
	if _, err := s.findProduct(ctx, id); err != nil {
		return nil, err
	}
	rows, err := priceRows(prices)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ReplacePrices(ctx, id, rows, false); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace prices")
	}
	return s.GetProduct(ctx, id)
}

func (s *service) findProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func validateCoreFields(name, brand string, category enums.ComponentCategory) error {
	if strings.TrimSpace(name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if strings.TrimSpace(brand) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "brand is required")
	}
	if !category.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown category")
	}
	return nil
}

func priceRows(prices []PriceInput) ([]models.RetailerPrice, error) {
	rows := make([]models.RetailerPrice, 0, len(prices))
	for _, input := range prices {
		shop := strings.TrimSpace(input.Shop)
		if shop == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "retailer name is required")
		}
		if input.PriceBDT < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "retailer price must be non-negative")
		}
		availability := input.Availability
		if availability == "" {
			availability = enums.AvailabilityInStock
		}
		if !availability.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown availability")
		}
		rows = append(rows, models.RetailerPrice{
			Shop:         shop,
			PriceBDT:     input.PriceBDT,
			Availability: availability,
			URL:          input.URL,
		})
	}
	return rows, nil
}

func priceBounds(rows []models.RetailerPrice) (min, max int) {
	min, max = rows[0].PriceBDT, rows[0].PriceBDT
	for _, row := range rows[1:] {
		if row.PriceBDT < min {
			min = row.PriceBDT
		}
		if row.PriceBDT > max {
			max = row.PriceBDT
		}
	}
	return min, max
}
