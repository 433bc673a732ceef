package repositories

import "adventureworks/internal/models"

// OrderRepository defines the interface for order data access. Orders
// are created once; only the status changes afterwards.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByIDForUser(id, userID string) (*models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(id, status string) error
}
