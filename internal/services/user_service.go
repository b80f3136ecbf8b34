package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/emreacar/identity-backend/internal/dto"
	"github.com/emreacar/identity-backend/internal/models"
	"github.com/emreacar/identity-backend/internal/security"
	"github.com/emreacar/identity-backend/internal/store"
	"github.com/google/uuid"
)

// UserService covers the admin-facing account management endpoints.
type UserService struct {
	store  store.CredentialStore
	hasher *security.PasswordHasher
}

func NewUserService(st store.CredentialStore, hasher *security.PasswordHasher) *UserService {
	return &UserService{store: st, hasher: hasher}
}

func (s *UserService) List(ctx context.Context, q *dto.ListUsersQuery) ([]models.User, int64, error) {
	return s.store.List(ctx, store.ListParams{
		Skip:   q.Skip,
		Take:   q.Take,
		Search: q.Search,
		SortBy: q.SortBy,
		Order:  q.Order,
	})
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*models.User, error) {
	set := map[string]any{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.Role != nil {
		set["role"] = *req.Role
	}
	if req.Password != nil {
		hash, err := s.hasher.Hash(ctx, *req.Password)
		if err != nil {
			return nil, err
		}
		set["password_hash"] = hash
	}
	if len(set) == 0 {
		return nil, errors.New("no fields to update")
	}

	user, err := s.store.Update(ctx, id, set)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
