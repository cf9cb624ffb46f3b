package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/leafcart/storefront/internal/domain/account"
)

type ManufacturerRepository struct {
	mu            sync.RWMutex
	manufacturers map[string]*domain.Manufacturer
}

func NewManufacturerRepository() *ManufacturerRepository {
	return &ManufacturerRepository{manufacturers: make(map[string]*domain.Manufacturer)}
}

func (r *ManufacturerRepository) Insert(ctx context.Context, manufacturer *domain.Manufacturer) error {
	_ = ctx
	if manufacturer == nil || manufacturer.ID == "" {
		return fmt.Errorf("manufacturer repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *manufacturer
	r.manufacturers[manufacturer.ID] = &clone
	return nil
}

func (r *ManufacturerRepository) FindByID(ctx context.Context, id string) (*domain.Manufacturer, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	manufacturer, ok := r.manufacturers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *manufacturer
	return &clone, nil
}

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*domain.User)}
}

func (r *UserRepository) Insert(ctx context.Context, user *domain.User) error {
	_ = ctx
	if user == nil || user.ID == "" {
		return fmt.Errorf("user repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *user
	return &clone, nil
}
