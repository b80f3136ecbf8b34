package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
	RoleSeller   = "seller"
)

// User is the persisted account entity. Token and TokenExpiresAt form a
// single shared slot used by both the email-verification and password-reset
// flows: issuing a reset token invalidates a pending verification token and
// vice versa, only the latest token is ever valid. The two fields are both
// nil or both set.
type User struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name            string         `gorm:"size:255;not null" json:"name"`
	Email           string         `gorm:"size:255;not null;uniqueIndex:idx_users_email" json:"email"`
	PasswordHash    string         `gorm:"not null" json:"-"`
	Phone           *string        `gorm:"size:32" json:"phone,omitempty"`
	Role            string         `gorm:"size:20;default:'customer'" json:"role"`
	EmailVerifiedAt *time.Time     `json:"email_verified_at,omitempty"`
	Token           *string        `gorm:"size:64;uniqueIndex" json:"-"`
	TokenExpiresAt  *time.Time     `json:"-"`
	Profile         datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"profile,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
