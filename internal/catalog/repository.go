package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nayeemjohny/pcbuilder-backend/pkg/db/models"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/enums"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/pagination"
)

// Repository encapsulates catalog persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads a product with its retailer prices.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Prices").
		First(&product, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListByCategory returns one page of products for a category, newest first.
// The buffered extra row signals whether another page exists.
func (r *Repository) ListByCategory(ctx context.Context, input ListProductsInput) ([]models.Product, bool, error) {
	normalizedLimit := pagination.NormalizeLimit(input.Pagination.Limit)
	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, false, err
	}

	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("category = ?", input.Category)

	if trimmed := strings.TrimSpace(input.Query); trimmed != "" {
		pattern := "%" + strings.ToLower(trimmed) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ?", pattern, pattern)
	}

	if cursor != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	if input.Grouped {
		query = query.Preload("Prices")
	}

	var products []models.Product
	err = query.
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(input.Pagination.Limit)).
		Find(&products).
		Error
	if err != nil {
		return nil, false, err
	}

	hasMore := len(products) > normalizedLimit
	if hasMore {
		products = products[:normalizedLimit]
	}
	return products, hasMore, nil
}

// ListSpecsByCategory loads the id + specification columns for every product
// in a category. Used by compatibility set computation.
func (r *Repository) ListSpecsByCategory(ctx context.Context, category enums.ComponentCategory) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Select("id", "name", "category", "specifications").
		Where("category = ?", category).
		Order("created_at DESC, id DESC").
		Find(&products).
		Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Create persists a product and its nested retailer prices.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Update persists the mutated product row (prices are replaced separately).
func (r *Repository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	err := r.db.WithContext(ctx).
		Omit("Prices").
		Save(product).
		Error
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product; retailer prices cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.Product{}, "id = ?", id).
		Error
}

// ReplacePrices swaps the full retailer price set for a product and rewrites
// the derived min price (and base price when resetBase is set) atomically.
func (r *Repository) ReplacePrices(ctx context.Context, productID uuid.UUID, prices []models.RetailerPrice, resetBase bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&models.RetailerPrice{}).Error; err != nil {
			return err
		}

		updates := map[string]any{"min_price_bdt": 0}
		if len(prices) > 0 {
			for i := range prices {
				prices[i].ProductID = productID
			}
			if err := tx.Create(&prices).Error; err != nil {
				return err
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
			updates["min_price_bdt"] = min
			if resetBase {
				updates["base_price_bdt"] = max
			}
		}

		return tx.Model(&models.Product{}).
			Where("id = ?", productID).
			Updates(updates).
			Error
	})
}
