package builds

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nayeemjohny/pcbuilder-backend/pkg/db/models"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/pagination"
)

// Repository persists published community builds.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a published build with its slot rows.
func (r *Repository) Create(ctx context.Context, build *models.Build) (*models.Build, error) {
	if err := r.db.WithContext(ctx).Create(build).Error; err != nil {
		return nil, err
	}
	return build, nil
}

// FindByID loads a published build with its slots in position order.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Build, error) {
	var build models.Build
	err := r.db.WithContext(ctx).
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&build, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &build, nil
}

// List returns one feed page, newest first, with a buffered extra row
// signalling whether another page exists.
func (r *Repository) List(ctx context.Context, params pagination.Params) ([]models.Build, bool, error) {
	normalizedLimit := pagination.NormalizeLimit(params.Limit)
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, false, err
	}

	query := r.db.WithContext(ctx).Model(&models.Build{})
	if cursor != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var builds []models.Build
	err = query.
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&builds).
		Error
	if err != nil {
		return nil, false, err
	}

	hasMore := len(builds) > normalizedLimit
	if hasMore {
		builds = builds[:normalizedLimit]
	}
	return builds, hasMore, nil
}
