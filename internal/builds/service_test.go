package builds

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nayeemjohny/pcbuilder-backend/internal/builder"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/db/models"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/enums"
	pkgerrors "github.com/nayeemjohny/pcbuilder-backend/pkg/errors"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/pagination"
)

type stubRepo struct {
	created []*models.Build
}

func (r *stubRepo) Create(_ context.Context, build *models.Build) (*models.Build, error) {
	build.ID = uuid.New()
	r.created = append(r.created, build)
	return build, nil
}

func (r *stubRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Build, error) {
	for _, build := range r.created {
		if build.ID == id {
			return build, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRepo) List(_ context.Context, _ pagination.Params) ([]models.Build, bool, error) {
	var out []models.Build
	for _, build := range r.created {
		out = append(out, *build)
	}
	return out, false, nil
}

type stubSessions struct {
	sessions map[uuid.UUID]*builder.Build
}

func (s *stubSessions) GetSession(_ context.Context, id uuid.UUID) (*builder.Build, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "builder session not found")
	}
	return session, nil
}

func sessionWithParts() *builder.Build {
	session := builder.NewBuild("")
	session.AddProduct(&builder.ProductSnapshot{
		ID:       uuid.New(),
		Name:     "Ryzen 5 7600",
		Category: enums.ComponentCategoryCPU,
		Prices:   []builder.PriceOption{{Shop: "Star Tech", PriceBDT: 25000}},
	})
	ram := session.AddProduct(&builder.ProductSnapshot{
		ID:       uuid.New(),
		Name:     "DDR5 16GB",
		Category: enums.ComponentCategoryRAM,
		Prices:   []builder.PriceOption{{Shop: "Star Tech", PriceBDT: 8500}},
	})
	session.SetQuantity(ram.ID, 2)
	session.SetRetailer(ram.ID, "StarTech")
	return session
}

func newTestService(t *testing.T, repo buildRepo, sessions sessionSource) Service {
	t.Helper()
	svc, err := NewService(repo, sessions, nil)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}

func TestPublishSnapshotsSelectedSlots(t *testing.T) {
	session := sessionWithParts()
	repo := &stubRepo{}
	svc := newTestService(t, repo, &stubSessions{
		sessions: map[uuid.UUID]*builder.Build{session.ID: session},
	})

	dto, err := svc.Publish(context.Background(), PublishInput{
		SessionID: session.ID,
		Title:     "  Budget Gaming  ",
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if dto.Title != "Budget Gaming" {
		t.Fatalf("title must be trimmed, got %q", dto.Title)
	}
	if dto.Author != defaultAuthor {
		t.Fatalf("missing author must default, got %q", dto.Author)
	}
	if dto.MinTotalBDT != 42000 {
		t.Fatalf("expected 25000 + 8500*2 = 42000, got %d", dto.MinTotalBDT)
	}
	if len(dto.Slots) != 2 {
		t.Fatalf("expected both selected slots, got %d", len(dto.Slots))
	}

	ramSlot := dto.Slots[1]
	if ramSlot.Quantity != 2 || ramSlot.UnitPriceBDT != 8500 {
		t.Fatalf("ram line wrong: %+v", ramSlot)
	}
	if ramSlot.Retailer == nil || *ramSlot.Retailer != "StarTech" {
		t.Fatalf("retailer pin must survive publish, got %+v", ramSlot.Retailer)
	}
}

func TestPublishRejectsEmptySession(t *testing.T) {
	session := builder.NewBuild("")
	svc := newTestService(t, &stubRepo{}, &stubSessions{
		sessions: map[uuid.UUID]*builder.Build{session.ID: session},
	})

	_, err := svc.Publish(context.Background(), PublishInput{
		SessionID: session.ID,
		Title:     "Empty",
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPublishRequiresTitle(t *testing.T) {
	svc := newTestService(t, &stubRepo{}, &stubSessions{sessions: map[uuid.UUID]*builder.Build{}})

	_, err := svc.Publish(context.Background(), PublishInput{SessionID: uuid.New()})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPublishUnknownSession(t *testing.T) {
	svc := newTestService(t, &stubRepo{}, &stubSessions{sessions: map[uuid.UUID]*builder.Build{}})

	_, err := svc.Publish(context.Background(), PublishInput{
		SessionID: uuid.New(),
		Title:     "Ghost",
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetBuildUnknownID(t *testing.T) {
	svc := newTestService(t, &stubRepo{}, &stubSessions{sessions: map[uuid.UUID]*builder.Build{}})

	_, err := svc.GetBuild(context.Background(), uuid.New())
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
