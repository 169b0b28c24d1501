package builder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nayeemjohny/pcbuilder-backend/internal/catalog"
	"github.com/nayeemjohny/pcbuilder-backend/internal/compat"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/db/models"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/enums"
	pkgerrors "github.com/nayeemjohny/pcbuilder-backend/pkg/errors"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/logger"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/metrics"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/pagination"
)

// Service orchestrates builder sessions: slot mutations, pricing
// summaries, and compatibility-narrowed candidate pages. Sessions are
// saved only after a mutation succeeds, so a failed call never leaves a
// half-applied snapshot behind.
type Service interface {
	CreateSession(ctx context.Context, name string) (*Build, error)
	GetSession(ctx context.Context, id uuid.UUID) (*Build, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	AddSlot(ctx context.Context, sessionID, productID uuid.UUID) (*Build, error)
	RemoveSlot(ctx context.Context, sessionID, slotID uuid.UUID) (*Build, error)
	SelectSlot(ctx context.Context, sessionID, slotID uuid.UUID) (*Build, error)
	SetQuantity(ctx context.Context, sessionID, slotID uuid.UUID, quantity int) (*Build, error)
	SetRetailer(ctx context.Context, sessionID, slotID uuid.UUID, shop string) (*Build, error)
	SetCompatMode(ctx context.Context, sessionID uuid.UUID, mode enums.CompatMode) (*Build, error)
	ClearSession(ctx context.Context, sessionID uuid.UUID) (*Build, error)
	Summary(ctx context.Context, sessionID uuid.UUID, shop string) (*Summary, error)
	Candidates(ctx context.Context, sessionID uuid.UUID, input CandidatesInput) (*CandidatesResult, error)
}

type catalogGateway interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListByCategory(ctx context.Context, input catalog.ListProductsInput) ([]models.Product, bool, error)
}

type service struct {
	sessions *SessionStore
	products catalogGateway
	compat   compat.Service
	metrics  *metrics.BuilderMetrics
	logg     *logger.Logger
}

// NewService wires the builder service. Metrics and logger may be nil in
// tests.
func NewService(sessions *SessionStore, products catalogGateway, compatSvc compat.Service, m *metrics.BuilderMetrics, logg *logger.Logger) (Service, error) {
	if sessions == nil {
		return nil, fmt.Errorf("builder: session store is required")
	}
	if products == nil {
		return nil, fmt.Errorf("builder: catalog gateway is required")
	}
	if compatSvc == nil {
		return nil, fmt.Errorf("builder: compat service is required")
	}
	return &service{
		sessions: sessions,
		products: products,
		compat:   compatSvc,
		metrics:  m,
		logg:     logg,
	}, nil
}

func (s *service) CreateSession(ctx context.Context, name string) (*Build, error) {
	build := NewBuild(strings.TrimSpace(name))
	if err := s.sessions.Save(ctx, build); err != nil {
		return nil, err
	}
	return build, nil
}

func (s *service) GetSession(ctx context.Context, id uuid.UUID) (*Build, error) {
	return s.sessions.Load(ctx, id)
}

func (s *service) DeleteSession(ctx context.Context, id uuid.UUID) error {
	return s.sessions.Delete(ctx, id)
}

// AddSlot snapshots the product and appends a selected slot, subject to
// the category's slot limit.
func (s *service) AddSlot(ctx context.Context, sessionID, productID uuid.UUID) (*Build, error) {
	build, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	policy, ok := PolicyFor(product.Category)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown category")
	}
	if len(build.SlotsForCategory(product.Category)) >= policy.MaxSlots {
		return nil, pkgerrors.New(pkgerrors.CodeConflict,
			fmt.Sprintf("%s already holds %d slot(s)", policy.Label, policy.MaxSlots))
	}

	build.AddProduct(snapshotFromModel(product))
	return s.persist(ctx, build, "add")
}

func (s *service) RemoveSlot(ctx context.Context, sessionID, slotID uuid.UUID) (*Build, error) {
	build, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	build.RemoveSlot(slotID)
	return s.persist(ctx, build, "remove")
}

func (s *service) SelectSlot(ctx context.Context, sessionID, slotID uuid.UUID) (*Build, error) {
	build, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	build.SelectSlot(slotID)
	return s.persist(ctx, build, "select")
}

func (s *service) SetQuantity(ctx context.Context, sessionID, slotID uuid.UUID, quantity int) (*Build, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	build, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	slot := build.Slot(slotID)
	if slot != nil && quantity > 1 {
		policy, ok := PolicyFor(slot.Category)
		if ok && !policy.AllowQuantity {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("%s slots hold a single unit", policy.Label))
		}
	}

	build.SetQuantity(slotID, quantity)
	return s.persist(ctx, build, "quantity")
}

func (s *service) SetRetailer(ctx context.Context, sessionID, slotID uuid.UUID, shop string) (*Build, error) {
	build, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	build.SetRetailer(slotID, strings.TrimSpace(shop))
	return s.persist(ctx, build, "retailer")
}

func (s *service) SetCompatMode(ctx context.Context, sessionID uuid.UUID, mode enums.CompatMode) (*Build, error) {
	if !mode.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown compatibility mode")
	}
	build, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	build.CompatMode = mode
	return s.persist(ctx, build, "mode")
}

func (s *service) ClearSession(ctx context.Context, sessionID uuid.UUID) (*Build, error) {
	build, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	build.Clear()
	return s.persist(ctx, build, "clear")
}

// Summary prices the session. A shop parameter adds a single-retailer
// quote alongside the minimum and selected totals.
func (s *service) Summary(ctx context.Context, sessionID uuid.UUID, shop string) (*Summary, error) {
	build, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		SessionID:        build.ID,
		MinTotalBDT:      build.MinTotal(),
		SelectedTotalBDT: build.SelectedTotal(),
		SelectedSlots:    len(build.SelectedSlots()),
		TotalSlots:       len(build.Slots),
	}
	if shop = strings.TrimSpace(shop); shop != "" {
		total := build.RetailerTotal(shop)
		summary.ShopTotal = &total
	}
	return summary, nil
}

// Candidates pages through the catalog for a category, narrowing the
// page by the session's compatibility rule when the rule's source
// component is selected. Narrowing is advisory: a missing source or a
// failed compatibility lookup degrades to the unfiltered page with a
// notice, never an error.
func (s *service) Candidates(ctx context.Context, sessionID uuid.UUID, input CandidatesInput) (*CandidatesResult, error) {
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown category")
	}

	build, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	products, hasMore, err := s.products.ListByCategory(ctx, catalog.ListProductsInput{
		Category:   input.Category,
		Query:      input.Query,
		Grouped:    true,
		Pagination: pagination.Params{Limit: input.Limit, Cursor: input.Cursor},
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list candidates")
	}

	result := &CandidatesResult{
		Category: input.Category,
		Mode:     build.CompatMode,
		Items:    make([]Candidate, 0, len(products)),
		Pagination: catalog.ProductPagination{
			HasMore: hasMore,
			Limit:   pagination.NormalizeLimit(input.Limit),
		},
	}
	if hasMore && len(products) > 0 {
		last := products[len(products)-1]
		cursor := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		result.Pagination.NextCursor = &cursor
	}

	compatResult := s.compatForCategory(ctx, build, input.Category, result)
	var allowed map[uuid.UUID]bool
	if compatResult != nil {
		allowed = compatResult.AllowedIDs(build.CompatMode)
	}

	for i := range products {
		if compatResult != nil && !allowed[products[i].ID] {
			continue
		}
		candidate := Candidate{ProductDTO: *catalog.NewProductDTO(&products[i], true)}
		if compatResult != nil {
			candidate.CompatUnknown = compatResult.IsUnknown(products[i].ID)
		}
		result.Items = append(result.Items, candidate)
	}
	return result, nil
}

// compatForCategory resolves the compatibility set for a candidate page,
// or returns nil (with the notice set) when the page must pass through
// unfiltered.
func (s *service) compatForCategory(ctx context.Context, build *Build, category enums.ComponentCategory, result *CandidatesResult) *compat.Result {
	rule, ok := compat.RuleForTarget(category)
	if !ok {
		return nil
	}

	source := build.SelectedSlot(rule.Source)
	if source == nil || source.Product == nil {
		result.Notice = fmt.Sprintf("select a %s to narrow these results", rule.Source)
		return nil
	}

	compatResult, err := s.compat.ResolveForTarget(ctx, rule, source.Product.ID)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, fmt.Sprintf("compatibility lookup failed, serving unfiltered candidates: %v", err))
		}
		result.Notice = "compatibility data is unavailable right now"
		return nil
	}
	result.Filtered = true
	return compatResult
}

// persist stamps the mutation time, saves the snapshot, and counts the
// operation.
func (s *service) persist(ctx context.Context, build *Build, op string) (*Build, error) {
	build.UpdatedAt = nowUTC()
	if err := s.sessions.Save(ctx, build); err != nil {
		return nil, err
	}
	s.metrics.IncSlotOp(op)
	return build, nil
}
