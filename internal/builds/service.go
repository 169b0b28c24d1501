package builds

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nayeemjohny/pcbuilder-backend/internal/builder"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/db/models"
	pkgerrors "github.com/nayeemjohny/pcbuilder-backend/pkg/errors"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/metrics"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/pagination"
)

const defaultAuthor = "anonymous"

// Service publishes builder sessions as durable community builds and
// serves the public feed.
type Service interface {
	Publish(ctx context.Context, input PublishInput) (*BuildDTO, error)
	GetBuild(ctx context.Context, id uuid.UUID) (*BuildDTO, error)
	Feed(ctx context.Context, params pagination.Params) (*FeedResult, error)
}

// PublishInput names the session to publish and how to credit it.
type PublishInput struct {
	SessionID uuid.UUID
	Title     string
	Author    string
}

type buildRepo interface {
	Create(ctx context.Context, build *models.Build) (*models.Build, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Build, error)
	List(ctx context.Context, params pagination.Params) ([]models.Build, bool, error)
}

type sessionSource interface {
	GetSession(ctx context.Context, id uuid.UUID) (*builder.Build, error)
}

type service struct {
	repo     buildRepo
	sessions sessionSource
	metrics  *metrics.BuilderMetrics
}

// NewService wires the builds service. Metrics may be nil in tests.
func NewService(repo buildRepo, sessions sessionSource, m *metrics.BuilderMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("builds: repository is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("builds: session source is required")
	}
	return &service{repo: repo, sessions: sessions, metrics: m}, nil
}

// Publish snapshots the session's selected slots into a durable build.
// Prices are resolved at publish time, so later catalog changes leave
// the published record untouched.
func (s *service) Publish(ctx context.Context, input PublishInput) (*BuildDTO, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	author := strings.TrimSpace(input.Author)
	if author == "" {
		author = defaultAuthor
	}

	session, err := s.sessions.GetSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	selected := session.SelectedSlots()
	if len(selected) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot publish an empty build")
	}

	record := &models.Build{
		Title:       title,
		Author:      author,
		MinTotalBDT: session.MinTotal(),
		Slots:       make([]models.BuildSlot, 0, len(selected)),
	}
	for i, slot := range selected {
		row := models.BuildSlot{
			Category:     string(slot.Category),
			ProductID:    slot.Product.ID,
			ProductName:  slot.Product.Name,
			Quantity:     slot.Quantity,
			UnitPriceBDT: slot.UnitPrice(),
			Position:     i,
		}
		if slot.Retailer != "" {
			retailer := slot.Retailer
			row.Retailer = &retailer
		}
		record.Slots = append(record.Slots, row)
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist build")
	}
	s.metrics.IncPublish()
	return NewBuildDTO(created), nil
}

// GetBuild loads one published build.
func (s *service) GetBuild(ctx context.Context, id uuid.UUID) (*BuildDTO, error) {
	build, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "build not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load build")
	}
	return NewBuildDTO(build), nil
}

// Feed returns one page of published builds, newest first.
func (s *service) Feed(ctx context.Context, params pagination.Params) (*FeedResult, error) {
	builds, hasMore, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list builds")
	}

	result := &FeedResult{
		Items: make([]BuildDTO, 0, len(builds)),
		Pagination: FeedPagination{
			HasMore: hasMore,
			Limit:   pagination.NormalizeLimit(params.Limit),
		},
	}
	for i := range builds {
		result.Items = append(result.Items, *NewBuildDTO(&builds[i]))
	}
	if hasMore && len(builds) > 0 {
		last := builds[len(builds)-1]
		cursor := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		result.Pagination.NextCursor = &cursor
	}
	return result, nil
}
