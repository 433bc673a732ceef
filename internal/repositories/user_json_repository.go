package repositories

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"adventureworks/internal/apperrors"
	"adventureworks/internal/models"

	"github.com/google/uuid"
)

// JSONUserRepository stores accounts in a single JSON file. Every
// mutation reads the whole collection, changes it, and rewrites the
// file. The mutex is the store's single-writer serialization point:
// overlapping mutations would otherwise lose updates.
type JSONUserRepository struct {
	path string
	mu   sync.Mutex
}

// NewJSONUserRepository creates a repository backed by the file at path.
// The file is created on first write.
func NewJSONUserRepository(path string) *JSONUserRepository {
	return &JSONUserRepository{path: path}
}

// GetAll returns all accounts.
func (r *JSONUserRepository) GetAll() ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return readCollection[models.User](r.path)
}

// GetByID returns an account by its ID.
func (r *JSONUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := readCollection[models.User](r.path)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", id, apperrors.ErrNotFound)
}

// GetByEmail returns an account by email, compared case-insensitively.
func (r *JSONUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := readCollection[models.User](r.path)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, apperrors.ErrNotFound)
}

// Count returns the number of accounts in the store.
func (r *JSONUserRepository) Count() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := readCollection[models.User](r.path)
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

// Create appends a new account to the store.
func (r *JSONUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := readCollection[models.User](r.path)
	if err != nil {
		return err
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	users = append(users, *user)
	return writeCollection(r.path, users)
}

// Delete removes an account by its ID.
func (r *JSONUserRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := readCollection[models.User](r.path)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == id {
			users = append(users[:i], users[i+1:]...)
			return writeCollection(r.path, users)
		}
	}
	return fmt.Errorf("user %s: %w", id, apperrors.ErrNotFound)
}
