package repositories

import "adventureworks/internal/models"

// UserRepository defines the interface for account data access.
// Email lookups are case-insensitive.
type UserRepository interface {
	GetAll() ([]models.User, error)
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Count() (int, error)
	Create(user *models.User) error
	Delete(id string) error
}
