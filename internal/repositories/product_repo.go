package repositories

import "adventureworks/internal/models"

// ProductFilter narrows catalog listings. The zero value matches every
// product. Query is a case-insensitive substring match on name or brand.
type ProductFilter struct {
	Category string
	Tag      string
	Query    string
}

// ProductRepository defines read access to the catalog. The catalog is
// static, so there are no mutating operations.
type ProductRepository interface {
	GetAll(filter ProductFilter) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Categories() ([]models.Category, error)
}
