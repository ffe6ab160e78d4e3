package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Vishal-43/img-craft/internal/domain"
	"github.com/Vishal-43/img-craft/internal/pkg/id"
	"golang.org/x/crypto/bcrypt"
)

// Attribute names used in partial update maps.
const (
	fieldPasswordHash       = "password_hash"
	fieldVerificationStatus = "verification_status"
)

const (
	msgEmailTaken         = "Email already exists"
	msgUsernameTaken      = "Username already exists"
	msgInvalidCredentials = "Invalid email or password"
)

type Service interface {
	CreateUser(ctx context.Context, username, email, password string) (*domain.User, error)
	CheckVerificationStatus(ctx context.Context, email string) (domain.VerificationStatus, error)
	UpdateVerificationStatus(ctx context.Context, email string, status domain.VerificationStatus) error
	GetUserForLogin(ctx context.Context, email, password string) (*domain.User, error)
	GetUser(ctx context.Context, email string) (*domain.User, error)
	UpdateUserPassword(ctx context.Context, email, password string) error
}

type userStore interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type service struct {
	repo userStore
	cost int
}

type ServiceDeps struct {
	UserRepo   userStore
	BcryptCost int // defaults to bcrypt.DefaultCost
}

func NewService(deps ServiceDeps) Service {
	cost := deps.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &service{repo: deps.UserRepo, cost: cost}
}

func (s *service) CreateUser(ctx context.Context, username, email, password string) (*domain.User, error) {
	if err := s.ensureFree(ctx, email, username); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Status:       domain.StatusUnverified,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Put(ctx, u); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Lost a race with a concurrent signup; report whichever field is now taken.
			if ferr := s.ensureFree(ctx, email, username); ferr != nil {
				return nil, ferr
			}
		}
		return nil, err
	}
	return u, nil
}

func (s *service) ensureFree(ctx context.Context, email, username string) error {
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return domain.Reject(domain.ErrConflict, msgEmailTaken)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return domain.Reject(domain.ErrConflict, msgUsernameTaken)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

func (s *service) CheckVerificationStatus(ctx context.Context, email string) (domain.VerificationStatus, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return u.Status, nil
}

func (s *service) UpdateVerificationStatus(ctx context.Context, email string, status domain.VerificationStatus) error {
	switch status {
	case domain.StatusVerified, domain.StatusUnverified:
	default:
		return fmt.Errorf("unknown verification status %q: %w", status, domain.ErrBadRequest)
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, u.UserID, map[string]interface{}{fieldVerificationStatus: string(status)})
}

// GetUserForLogin returns the user when email and password match. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *service) GetUserForLogin(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.Reject(domain.ErrUnauthorized, msgInvalidCredentials)
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, domain.Reject(domain.ErrUnauthorized, msgInvalidCredentials)
	}
	return u, nil
}

func (s *service) GetUser(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *service) UpdateUserPassword(ctx context.Context, email, password string) error {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, u.UserID, map[string]interface{}{fieldPasswordHash: string(hash)})
}
