package store

import (
	"context"
	"errors"
	"time"

	"github.com/emreacar/identity-backend/internal/models"
	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// ListParams describes pagination, search and ordering for user listings.
type ListParams struct {
	Skip   int
	Take   int
	Search string
	SortBy string
	Order  string
}

// CredentialStore owns durability of the User entity and uniqueness of the
// email key. ConsumeToken is the only mutation the token state machine
// needs to be race-free: it clears a still-valid token and applies the
// extra field updates in one conditional statement, so of two concurrent
// callers presenting the same token exactly one gets the row back.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByValidToken(ctx context.Context, token string, now time.Time) (*models.User, error)
	ConsumeToken(ctx context.Context, token string, now time.Time, set map[string]any) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id uuid.UUID, set map[string]any) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, p ListParams) ([]models.User, int64, error)
}
