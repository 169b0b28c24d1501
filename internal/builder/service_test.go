package builder

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nayeemjohny/pcbuilder-backend/internal/catalog"
	"github.com/nayeemjohny/pcbuilder-backend/internal/compat"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/db/models"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/enums"
	pkgerrors "github.com/nayeemjohny/pcbuilder-backend/pkg/errors"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/types"
)

type stubGateway struct {
	products map[uuid.UUID]*models.Product
}

func newStubGateway(products ...*models.Product) *stubGateway {
	g := &stubGateway{products: make(map[uuid.UUID]*models.Product)}
	for _, p := range products {
		g.products[p.ID] = p
	}
	return g
}

func (g *stubGateway) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	product, ok := g.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return product, nil
}

func (g *stubGateway) ListByCategory(_ context.Context, input catalog.ListProductsInput) ([]models.Product, bool, error) {
	var out []models.Product
	for _, p := range g.products {
		if p.Category == input.Category {
			out = append(out, *p)
		}
	}
	return out, false, nil
}

type stubCompat struct {
	result *compat.Result
	err    error
}

func (s *stubCompat) MotherboardsForCPU(ctx context.Context, cpuID uuid.UUID) (*compat.Result, error) {
	return s.result, s.err
}

func (s *stubCompat) MemoryForMotherboard(ctx context.Context, motherboardID uuid.UUID) (*compat.Result, error) {
	return s.result, s.err
}

func (s *stubCompat) ResolveForTarget(ctx context.Context, rule compat.Rule, sourceID uuid.UUID) (*compat.Result, error) {
	return s.result, s.err
}

func catalogProduct(category enums.ComponentCategory, name string, prices ...models.RetailerPrice) *models.Product {
	min := 0
	for i, price := range prices {
		if i == 0 || price.PriceBDT < min {
			min = price.PriceBDT
		}
	}
	return &models.Product{
		ID:             uuid.New(),
		Name:           name,
		Brand:          "Test",
		Category:       category,
		Specifications: types.SpecMap{},
		MinPriceBDT:    min,
		Prices:         prices,
	}
}

func newTestService(t *testing.T, gateway *stubGateway, compatSvc compat.Service) Service {
	t.Helper()
	store, err := NewSessionStore(newFakeCache(), time.Hour)
	if err != nil {
		t.Fatalf("NewSessionStore failed: %v", err)
	}
	if compatSvc == nil {
		compatSvc = &stubCompat{}
	}
	svc, err := NewService(store, gateway, compatSvc, nil, nil)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}

func TestAddSlotSnapshotsProduct(t *testing.T) {
	cpu := catalogProduct(enums.ComponentCategoryCPU, "Ryzen 5 7600",
		models.RetailerPrice{Shop: "Star Tech", PriceBDT: 25000},
	)
	svc := newTestService(t, newStubGateway(cpu), nil)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, "my build")
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}

	build, err := svc.AddSlot(ctx, session.ID, cpu.ID)
	if err != nil {
		t.Fatalf("add slot failed: %v", err)
	}
	slot := build.SelectedSlot(enums.ComponentCategoryCPU)
	if slot == nil || slot.Product == nil {
		t.Fatal("expected a selected cpu slot with a snapshot")
	}
	if slot.Product.Name != "Ryzen 5 7600" || len(slot.Product.Prices) != 1 {
		t.Fatalf("snapshot incomplete: %+v", slot.Product)
	}
	if slot.Quantity != 1 {
		t.Fatalf("new slots start at quantity 1, got %d", slot.Quantity)
	}
}

func TestAddSlotEnforcesCategoryLimit(t *testing.T) {
	boards := []*models.Product{
		catalogProduct(enums.ComponentCategoryMotherboard, "B650M"),
		catalogProduct(enums.ComponentCategoryMotherboard, "X670E"),
	}
	svc := newTestService(t, newStubGateway(boards...), nil)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}
	if _, err := svc.AddSlot(ctx, session.ID, boards[0].ID); err != nil {
		t.Fatalf("first board failed: %v", err)
	}

	_, err = svc.AddSlot(ctx, session.ID, boards[1].ID)
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeConflict {
		t.Fatalf("second motherboard must hit the slot limit, got %v", err)
	}

	build, err := svc.GetSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("get session failed: %v", err)
	}
	if len(build.Slots) != 1 {
		t.Fatal("the rejected mutation must not be persisted")
	}
}

func TestAddSlotUnknownProduct(t *testing.T) {
	svc := newTestService(t, newStubGateway(), nil)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}

	_, err = svc.AddSlot(ctx, session.ID, uuid.New())
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSetQuantityServiceRules(t *testing.T) {
	cpu := catalogProduct(enums.ComponentCategoryCPU, "Ryzen 5 7600")
	ram := catalogProduct(enums.ComponentCategoryRAM, "DDR5 16GB")
	svc := newTestService(t, newStubGateway(cpu, ram), nil)
	ctx := context.Background()

	session, _ := svc.CreateSession(ctx, "")
	build, err := svc.AddSlot(ctx, session.ID, ram.ID)
	if err != nil {
		t.Fatalf("add ram failed: %v", err)
	}
	ramSlot := build.SelectedSlot(enums.ComponentCategoryRAM)

	if _, err := svc.SetQuantity(ctx, session.ID, ramSlot.ID, 0); pkgerrors.As(err) == nil {
		t.Fatal("quantity 0 must be rejected with a coded error")
	}
	if _, err := svc.SetQuantity(ctx, session.ID, ramSlot.ID, 2); err != nil {
		t.Fatalf("ram allows quantity, got %v", err)
	}

	build, err = svc.AddSlot(ctx, session.ID, cpu.ID)
	if err != nil {
		t.Fatalf("add cpu failed: %v", err)
	}
	cpuSlot := build.SelectedSlot(enums.ComponentCategoryCPU)
	_, err = svc.SetQuantity(ctx, session.ID, cpuSlot.ID, 2)
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("cpu slots hold one unit, got %v", err)
	}
}

func TestSummaryQuotesShop(t *testing.T) {
	cpu := catalogProduct(enums.ComponentCategoryCPU, "Ryzen 5 7600",
		models.RetailerPrice{Shop: "Star Tech", PriceBDT: 25000},
	)
	ram := catalogProduct(enums.ComponentCategoryRAM, "DDR5 16GB",
		models.RetailerPrice{Shop: "Star Tech", PriceBDT: 8500},
	)
	svc := newTestService(t, newStubGateway(cpu, ram), nil)
	ctx := context.Background()

	session, _ := svc.CreateSession(ctx, "")
	if _, err := svc.AddSlot(ctx, session.ID, cpu.ID); err != nil {
		t.Fatalf("add cpu failed: %v", err)
	}
	build, err := svc.AddSlot(ctx, session.ID, ram.ID)
	if err != nil {
		t.Fatalf("add ram failed: %v", err)
	}
	ramSlot := build.SelectedSlot(enums.ComponentCategoryRAM)
	if _, err := svc.SetQuantity(ctx, session.ID, ramSlot.ID, 2); err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}

	summary, err := svc.Summary(ctx, session.ID, "StarTech")
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.MinTotalBDT != 42000 || summary.SelectedTotalBDT != 42000 {
		t.Fatalf("expected 42000 totals, got %+v", summary)
	}
	if summary.ShopTotal == nil || summary.ShopTotal.TotalBDT != 42000 || summary.ShopTotal.MatchedSlots != 2 {
		t.Fatalf("expected a full Star Tech quote, got %+v", summary.ShopTotal)
	}
	if summary.SelectedSlots != 2 || summary.TotalSlots != 2 {
		t.Fatalf("slot counts wrong: %+v", summary)
	}
}

func TestCandidatesWithoutSourcePassThroughWithNotice(t *testing.T) {
	boards := []*models.Product{
		catalogProduct(enums.ComponentCategoryMotherboard, "B650M"),
		catalogProduct(enums.ComponentCategoryMotherboard, "H610M"),
	}
	svc := newTestService(t, newStubGateway(boards...), nil)
	ctx := context.Background()

	session, _ := svc.CreateSession(ctx, "")
	result, err := svc.Candidates(ctx, session.ID, CandidatesInput{
		Category: enums.ComponentCategoryMotherboard,
	})
	if err != nil {
		t.Fatalf("candidates failed: %v", err)
	}
	if result.Filtered {
		t.Fatal("no cpu selected, so the page must not be filtered")
	}
	if result.Notice == "" {
		t.Fatal("a pass-through page must carry a notice")
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected every board, got %d", len(result.Items))
	}
}

func TestCandidatesNarrowedByCompat(t *testing.T) {
	cpu := catalogProduct(enums.ComponentCategoryCPU, "Ryzen 5 7600")
	match := catalogProduct(enums.ComponentCategoryMotherboard, "B650M")
	mismatch := catalogProduct(enums.ComponentCategoryMotherboard, "H610M")
	unknown := catalogProduct(enums.ComponentCategoryMotherboard, "NoSpec Board")

	compatSvc := &stubCompat{result: &compat.Result{
		SpecKey:    compat.SpecSocket,
		SpecValue:  "AM5",
		Compatible: []uuid.UUID{match.ID},
		Unknown:    []uuid.UUID{unknown.ID},
	}}
	svc := newTestService(t, newStubGateway(cpu, match, mismatch, unknown), compatSvc)
	ctx := context.Background()

	session, _ := svc.CreateSession(ctx, "")
	if _, err := svc.AddSlot(ctx, session.ID, cpu.ID); err != nil {
		t.Fatalf("add cpu failed: %v", err)
	}

	strict, err := svc.Candidates(ctx, session.ID, CandidatesInput{
		Category: enums.ComponentCategoryMotherboard,
	})
	if err != nil {
		t.Fatalf("candidates failed: %v", err)
	}
	if !strict.Filtered {
		t.Fatal("expected a filtered page")
	}
	if len(strict.Items) != 1 || strict.Items[0].ID != match.ID {
		t.Fatalf("strict mode must drop unknowns and mismatches, got %d items", len(strict.Items))
	}

	if _, err := svc.SetCompatMode(ctx, session.ID, enums.CompatModeLenient); err != nil {
		t.Fatalf("set mode failed: %v", err)
	}
	lenient, err := svc.Candidates(ctx, session.ID, CandidatesInput{
		Category: enums.ComponentCategoryMotherboard,
	})
	if err != nil {
		t.Fatalf("candidates failed: %v", err)
	}
	if len(lenient.Items) != 2 {
		t.Fatalf("lenient mode must re-admit unknowns, got %d items", len(lenient.Items))
	}
	flagged := 0
	for _, item := range lenient.Items {
		if item.CompatUnknown {
			flagged++
		}
	}
	if flagged != 1 {
		t.Fatalf("exactly the unknown board must be flagged, got %d", flagged)
	}
}

func TestCandidatesCompatFailureDegradesGracefully(t *testing.T) {
	cpu := catalogProduct(enums.ComponentCategoryCPU, "Ryzen 5 7600")
	board := catalogProduct(enums.ComponentCategoryMotherboard, "B650M")
	compatSvc := &stubCompat{err: fmt.Errorf("catalog unavailable")}
	svc := newTestService(t, newStubGateway(cpu, board), compatSvc)
	ctx := context.Background()

	session, _ := svc.CreateSession(ctx, "")
	if _, err := svc.AddSlot(ctx, session.ID, cpu.ID); err != nil {
		t.Fatalf("add cpu failed: %v", err)
	}

	result, err := svc.Candidates(ctx, session.ID, CandidatesInput{
		Category: enums.ComponentCategoryMotherboard,
	})
	if err != nil {
		t.Fatalf("a compat failure must not fail the page: %v", err)
	}
	if result.Filtered || result.Notice == "" {
		t.Fatalf("expected an unfiltered page with a notice, got %+v", result)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected the full page, got %d items", len(result.Items))
	}
}

func TestClearSessionPersistsEmptyBuild(t *testing.T) {
	cpu := catalogProduct(enums.ComponentCategoryCPU, "Ryzen 5 7600")
	svc := newTestService(t, newStubGateway(cpu), nil)
	ctx := context.Background()

	session, _ := svc.CreateSession(ctx, "")
	if _, err := svc.AddSlot(ctx, session.ID, cpu.ID); err != nil {
		t.Fatalf("add cpu failed: %v", err)
	}
	if _, err := svc.ClearSession(ctx, session.ID); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	build, err := svc.GetSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("get session failed: %v", err)
	}
	if len(build.Slots) != 0 {
		t.Fatal("clear must persist the emptied build")
	}
}

func TestGetUnknownSessionIsNotFound(t *testing.T) {
	svc := newTestService(t, newStubGateway(), nil)
	_, err := svc.GetSession(context.Background(), uuid.New())
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
