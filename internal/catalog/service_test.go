package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nayeemjohny/pcbuilder-backend/pkg/db/models"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/enums"
	pkgerrors "github.com/nayeemjohny/pcbuilder-backend/pkg/errors"
)

type stubRepo struct {
	products map[uuid.UUID]*models.Product
	replaced []models.RetailerPrice
	listed   []models.Product
	hasMore  bool
}

func newStubRepo() *stubRepo {
	return &stubRepo{products: map[uuid.UUID]*models.Product{}}
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, ok := s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return product, nil
}

func (s *stubRepo) ListByCategory(ctx context.Context, input ListProductsInput) ([]models.Product, bool, error) {
	return s.listed, s.hasMore, nil
}

func (s *stubRepo) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	s.products[product.ID] = product
	return product, nil
}

func (s *stubRepo) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	s.products[product.ID] = product
	return product, nil
}

func (s *stubRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.products, id)
	return nil
}

func (s *stubRepo) ReplacePrices(ctx context.Context, productID uuid.UUID, prices []models.RetailerPrice, resetBase bool) error {
	s.replaced = prices
	product := s.products[productID]
	product.Prices = prices
	if len(prices) == 0 {
		product.MinPriceBDT = 0
		return nil
	}
	min, max := prices[0].PriceBDT, prices[0].PriceBDT
	for _, price := range prices[1:] {
		if price.PriceBDT < min {
			min = price.PriceBDT
		}
		if price.PriceBDT > max {
			max = price.PriceBDT
		}
	}
	product.MinPriceBDT = min
	if resetBase {
		product.BasePriceBDT = max
	}
	return nil
}

func newTestService(t *testing.T, repo *stubRepo) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}

func TestCreateProductDerivesPriceBounds(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	svc := newTestService(t, repo)

	dto, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:     "Ryzen 5 7600X",
		Brand:    "AMD",
		Category: enums.ComponentCategoryCPU,
		Specifications: map[string]string{
			"Socket": "AM5",
		},
		Prices: []PriceInput{
			{Shop: "Star Tech", PriceBDT: 26500},
			{Shop: "Techland", PriceBDT: 25000},
			{Shop: "Ryans", PriceBDT: 27000},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dto.MinPriceBDT != 25000 {
		t.Fatalf("expected min price 25000, got %d", dto.MinPriceBDT)
	}
	if dto.BasePriceBDT != 27000 {
		t.Fatalf("expected base price 27000, got %d", dto.BasePriceBDT)
	}
	if len(dto.Prices) != 3 {
		t.Fatalf("expected 3 retailer prices, got %d", len(dto.Prices))
	}
}

func TestCreateProductRejectsBadInput(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newStubRepo())

	cases := []CreateProductInput{
		{Brand: "AMD", Category: enums.ComponentCategoryCPU},
		{Name: "X", Category: enums.ComponentCategoryCPU},
		{Name: "X", Brand: "Y", Category: "floppy"},
		{Name: "X", Brand: "Y", Category: enums.ComponentCategoryCPU, Prices: []PriceInput{{Shop: "", PriceBDT: 100}}},
		{Name: "X", Brand: "Y", Category: enums.ComponentCategoryCPU, Prices: []PriceInput{{Shop: "S", PriceBDT: -1}}},
	}
	for i, input := range cases {
		_, err := svc.CreateProduct(context.Background(), input)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestReplacePricesPreservesBaseAnchor(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	svc := newTestService(t, repo)

	created, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:     "Vengeance 16GB",
		Brand:    "Corsair",
		Category: enums.ComponentCategoryRAM,
		Prices: []PriceInput{
			{Shop: "Star Tech", PriceBDT: 9000},
			{Shop: "Techland", PriceBDT: 8500},
		},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.ReplacePrices(context.Background(), created.ID, []PriceInput{
		{Shop: "Star Tech", PriceBDT: 8200},
	})
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	if updated.MinPriceBDT != 8200 {
		t.Fatalf("expected min price to follow new set, got %d", updated.MinPriceBDT)
	}
	if updated.BasePriceBDT != 9000 {
		t.Fatalf("base price must keep its import anchor, got %d", updated.BasePriceBDT)
	}
}

func TestGetProductNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newStubRepo())

	_, err := svc.GetProduct(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListProductsRejectsUnknownCategory(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newStubRepo())

	_, err := svc.ListProducts(context.Background(), ListProductsInput{Category: "floppy"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDiscountPercent(t *testing.T) {
	t.Parallel()

	if got := discountPercent(0, 100); !got.IsZero() {
		t.Fatalf("zero base must yield zero, got %s", got)
	}
	if got := discountPercent(100, 100); !got.IsZero() {
		t.Fatalf("no saving must yield zero, got %s", got)
	}
	if got := discountPercent(27000, 25000); got.String() != "7.4" {
		t.Fatalf("expected 7.4 percent, got %s", got)
	}
}

func TestSlugTableIsBidirectional(t *testing.T) {
	t.Parallel()

	for _, category := range enums.ComponentCategories() {
		slug, ok := SlugForCategory(category)
		if !ok {
			t.Fatalf("category %q has no slug", category)
		}
		back, ok := CategoryForSlug(slug)
		if !ok || back != category {
			t.Fatalf("slug %q does not round trip to %q", slug, category)
		}
	}

	if _, ok := CategoryForSlug("graphics-cards"); !ok {
		t.Fatal("expected gpu slug to resolve")
	}
}
