package services

import (
	"adventureworks/internal/models"
	"adventureworks/internal/repositories"
)

// ProductService handles catalog reads.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// GetProducts retrieves the products matching the filter.
func (s *ProductService) GetProducts(filter repositories.ProductFilter) ([]models.Product, error) {
	return s.repo.GetAll(filter)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// GetCategories retrieves the category list.
func (s *ProductService) GetCategories() ([]models.Category, error) {
	return s.repo.Categories()
}

// GetDeals retrieves the products carrying the deal tag.
func (s *ProductService) GetDeals() ([]models.Product, error) {
	return s.repo.GetAll(repositories.ProductFilter{Tag: models.TagDeal})
}
