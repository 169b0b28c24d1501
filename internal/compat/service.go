package compat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nayeemjohny/pcbuilder-backend/pkg/db/models"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/enums"
	pkgerrors "github.com/nayeemjohny/pcbuilder-backend/pkg/errors"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/metrics"
)

// Service computes compatibility sets between selected components and a
// candidate category. Results are advisory; nothing here ever blocks a
// slot mutation.
type Service interface {
	MotherboardsForCPU(ctx context.Context, cpuID uuid.UUID) (*Result, error)
	MemoryForMotherboard(ctx context.Context, motherboardID uuid.UUID) (*Result, error)
	ResolveForTarget(ctx context.Context, rule Rule, sourceID uuid.UUID) (*Result, error)
}

type catalogRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListSpecsByCategory(ctx context.Context, category enums.ComponentCategory) ([]models.Product, error)
}

type service struct {
	repo    catalogRepo
	metrics *metrics.BuilderMetrics
}

// NewService wires the compatibility service. The metrics dependency may
// be nil in tests.
func NewService(repo catalogRepo, m *metrics.BuilderMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("compat: catalog repo is required")
	}
	return &service{repo: repo, metrics: m}, nil
}

func (s *service) MotherboardsForCPU(ctx context.Context, cpuID uuid.UUID) (*Result, error) {
	rule, _ := RuleForTarget(enums.ComponentCategoryMotherboard)
	return s.ResolveForTarget(ctx, rule, cpuID)
}

func (s *service) MemoryForMotherboard(ctx context.Context, motherboardID uuid.UUID) (*Result, error) {
	rule, _ := RuleForTarget(enums.ComponentCategoryRAM)
	return s.ResolveForTarget(ctx, rule, motherboardID)
}

// ResolveForTarget loads the source product, reads its constraining spec
// value, and partitions every product in the target category against it.
func (s *service) ResolveForTarget(ctx context.Context, rule Rule, sourceID uuid.UUID) (*Result, error) {
	started := time.Now()

	source, err := s.repo.FindByID(ctx, sourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "source product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load source product")
	}
	if source.Category != rule.Source {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("product is a %s, expected %s", source.Category, rule.Source))
	}

	candidates, err := s.repo.ListSpecsByCategory(ctx, rule.Target)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load candidate products")
	}

	wanted, _ := source.Specifications.Get(rule.SpecKey)
	result := partition(candidates, rule.SpecKey, wanted)

	s.metrics.ObserveCompatLookup(
		fmt.Sprintf("%s-%s", rule.Source, rule.Target),
		time.Since(started),
	)
	return result, nil
}
