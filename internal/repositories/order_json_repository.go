package repositories

import (
	"fmt"
	"sync"
	"time"

	"adventureworks/internal/apperrors"
	"adventureworks/internal/models"

	"github.com/google/uuid"
)

// JSONOrderRepository stores orders in a single JSON file with the same
// read-whole/write-whole contract and per-store mutex as the user store.
type JSONOrderRepository struct {
	path string
	mu   sync.Mutex
}

// NewJSONOrderRepository creates a repository backed by the file at path.
func NewJSONOrderRepository(path string) *JSONOrderRepository {
	return &JSONOrderRepository{path: path}
}

// GetAll returns all orders.
func (r *JSONOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return readCollection[models.Order](r.path)
}

// GetByID returns an order by its ID.
func (r *JSONOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := readCollection[models.Order](r.path)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}
	return nil, fmt.Errorf("order %s: %w", id, apperrors.ErrNotFound)
}

// GetByIDForUser returns an order only if it belongs to the given user.
// A wrong owner looks identical to a missing order.
func (r *JSONOrderRepository) GetByIDForUser(id, userID string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := readCollection[models.Order](r.path)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id && orders[i].UserID == userID {
			return &orders[i], nil
		}
	}
	return nil, fmt.Errorf("order %s: %w", id, apperrors.ErrNotFound)
}

// Create appends a new order to the store.
func (r *JSONOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := readCollection[models.Order](r.path)
	if err != nil {
		return err
	}
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	orders = append(orders, *order)
	return writeCollection(r.path, orders)
}

// UpdateStatus updates the status of an existing order.
func (r *JSONOrderRepository) UpdateStatus(id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := readCollection[models.Order](r.path)
	if err != nil {
		return err
	}
	for i := range orders {
		if orders[i].ID == id {
			orders[i].Status = status
			return writeCollection(r.path, orders)
		}
	}
	return fmt.Errorf("order %s: %w", id, apperrors.ErrNotFound)
}
