// Package memory keeps accounts in process memory. Data is lost on restart;
// it backs local development and tests.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Vishal-43/img-craft/internal/domain"
)

type UserRepo struct {
	mu         sync.RWMutex
	byID       map[string]*domain.User
	byEmail    map[string]string
	byUsername map[string]string
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		byID:       make(map[string]*domain.User),
		byEmail:    make(map[string]string),
		byUsername: make(map[string]string),
	}
}

func (r *UserRepo) Put(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[u.UserID]; ok {
		return fmt.Errorf("user %s already exists: %w", u.UserID, domain.ErrConflict)
	}
	if _, ok := r.byEmail[u.Email]; ok {
		return fmt.Errorf("email already exists: %w", domain.ErrConflict)
	}
	if _, ok := r.byUsername[u.Username]; ok {
		return fmt.Errorf("username already exists: %w", domain.ErrConflict)
	}
	cp := *u
	r.byID[u.UserID] = &cp
	r.byEmail[u.Email] = u.UserID
	r.byUsername[u.Username] = u.UserID
	return nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup(r.byEmail[email])
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup(r.byUsername[username])
}

// Update supports the password_hash and verification_status fields.
func (r *UserRepo) Update(_ context.Context, userID string, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	next := *u
	for k, v := range updates {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("field %s: expected string, got %T", k, v)
		}
		switch k {
		case "password_hash":
			next.PasswordHash = s
		case "verification_status":
			next.Status = domain.VerificationStatus(s)
		default:
			return fmt.Errorf("field %s is not updatable", k)
		}
	}
	next.UpdatedAt = time.Now().UTC()
	r.byID[userID] = &next
	return nil
}

func (r *UserRepo) lookup(userID string) (*domain.User, error) {
	u, ok := r.byID[userID]
	if !ok {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}
