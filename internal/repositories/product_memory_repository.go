package repositories

import (
	"fmt"
	"strings"

	"adventureworks/internal/apperrors"
	"adventureworks/internal/models"
)

// MemoryProductRepository serves the static catalog from memory. It is
// immutable after construction, so no locking is needed.
type MemoryProductRepository struct {
	products   []models.Product
	categories []models.Category
	byID       map[string]models.Product
}

// NewMemoryProductRepository creates a repository over the given
// catalog data, preserving its ordering in listings.
func NewMemoryProductRepository(products []models.Product, categories []models.Category) *MemoryProductRepository {
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &MemoryProductRepository{
		products:   products,
		categories: categories,
		byID:       byID,
	}
}

// GetAll returns the products matching the filter.
func (r *MemoryProductRepository) GetAll(filter ProductFilter) ([]models.Product, error) {
	list := make([]models.Product, 0, len(r.products))
	q := strings.ToLower(filter.Query)
	for _, p := range r.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Tag != "" && p.Tag != filter.Tag {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Brand), q) {
			continue
		}
		list = append(list, p)
	}
	return list, nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(id string) (*models.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, apperrors.ErrNotFound)
	}
	return &p, nil
}

// Categories returns the category list.
func (r *MemoryProductRepository) Categories() ([]models.Category, error) {
	return r.categories, nil
}
