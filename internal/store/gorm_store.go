package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emreacar/identity-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Columns user listings may be sorted by.
var sortableColumns = map[string]bool{
	"name":       true,
	"email":      true,
	"role":       true,
	"created_at": true,
	"updated_at": true,
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

func (s *GormStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

func (s *GormStore) FindByValidToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("token = ? AND token_expires_at >= ?", token, now).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by token: %w", err)
	}
	return &user, nil
}

// ConsumeToken clears a still-valid token and applies the extra updates in a
// single conditional UPDATE ... RETURNING. Zero affected rows means the
// token never existed, expired, or lost the race to a concurrent consumer.
func (s *GormStore) ConsumeToken(ctx context.Context, token string, now time.Time, set map[string]any) (*models.User, error) {
	updates := map[string]any{
		"token":            nil,
		"token_expires_at": nil,
	}
	for k, v := range set {
		updates[k] = v
	}

	var consumed []models.User
	res := s.db.WithContext(ctx).
		Model(&consumed).
		Clauses(clause.Returning{}).
		Where("token = ? AND token_expires_at >= ?", token, now).
		Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("consume token: %w", res.Error)
	}
	if res.RowsAffected == 0 || len(consumed) == 0 {
		return nil, ErrNotFound
	}
	return &consumed[0], nil
}

func (s *GormStore) Insert(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *GormStore) Update(ctx context.Context, id uuid.UUID, set map[string]any) (*models.User, error) {
	var updated []models.User
	res := s.db.WithContext(ctx).
		Model(&updated).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(set)
	if res.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(res.Error, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("update user: %w", res.Error)
	}
	if res.RowsAffected == 0 || len(updated) == 0 {
		return nil, ErrNotFound
	}
	return &updated[0], nil
}

func (s *GormStore) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) List(ctx context.Context, p ListParams) ([]models.User, int64, error) {
	if p.Take <= 0 {
		p.Take = 10
	}

	query := s.db.WithContext(ctx).Model(&models.User{})
	if p.Search != "" {
		like := "%" + p.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	order := "created_at DESC"
	if sortableColumns[p.SortBy] {
		dir := "ASC"
		if p.Order == "desc" {
			dir = "DESC"
		}
		order = p.SortBy + " " + dir
	}

	var users []models.User
	if err := query.Order(order).Limit(p.Take).Offset(p.Skip).Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}
