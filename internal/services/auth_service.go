package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/emreacar/identity-backend/internal/dto"
	"github.com/emreacar/identity-backend/internal/mail"
	"github.com/emreacar/identity-backend/internal/models"
	"github.com/emreacar/identity-backend/internal/security"
	"github.com/emreacar/identity-backend/internal/store"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("token is invalid or expired")
	ErrEmailNotVerified   = errors.New("email address is not verified")
	ErrUserNotFound       = errors.New("user not found")
)

const defaultProfile = `{"bio":"","avatar_url":"","birthdate":null,"gender":""}`

// AuthPolicy holds the lifecycle knobs owned by the service, not by the
// token generator: how long each token kind lives, how long an email
// dispatch may take, and whether login requires a verified address.
type AuthPolicy struct {
	VerifyTokenExpiry    time.Duration
	ResetTokenExpiry     time.Duration
	MailTimeout          time.Duration
	RequireVerifiedEmail bool
}

// AuthService owns the credential lifecycle state machine: registration,
// login, email verification and the password reset cycle. It is the sole
// writer of password_hash, token, token_expires_at and email_verified_at.
type AuthService struct {
	store  store.CredentialStore
	hasher *security.PasswordHasher
	issuer *security.TokenIssuer
	mailer mail.Dispatcher
	policy AuthPolicy
}

func NewAuthService(
	st store.CredentialStore,
	hasher *security.PasswordHasher,
	issuer *security.TokenIssuer,
	mailer mail.Dispatcher,
	policy AuthPolicy,
) *AuthService {
	return &AuthService{
		store:  st,
		hasher: hasher,
		issuer: issuer,
		mailer: mailer,
		policy: policy,
	}
}

// Register creates an unverified account and returns a session token for
// immediate authenticated access. The row is persisted before the
// verification email goes out; a failed dispatch is logged but never rolls
// the registration back, the user can request a fresh link later.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (string, error) {
	email := NormalizeEmail(req.Email)

	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return "", ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("check existing email: %w", err)
	}

	hash, err := s.hasher.Hash(ctx, req.Password)
	if err != nil {
		return "", err
	}

	token, err := security.NewOpaqueToken()
	if err != nil {
		return "", err
	}
	expiresAt := time.Now().Add(s.policy.VerifyTokenExpiry)

	user := models.User{
		Name:           req.Name,
		Email:          email,
		PasswordHash:   hash,
		Phone:          req.Phone,
		Role:           models.RoleCustomer,
		Token:          &token,
		TokenExpiresAt: &expiresAt,
		Profile:        datatypes.JSON(defaultProfile),
	}

	if err := s.store.Insert(ctx, &user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	s.dispatch(ctx, "send_verification", user.Email, func(ctx context.Context) error {
		return s.mailer.SendVerification(ctx, user.Email, token)
	})

	return s.issuer.Issue(user.ID, user.Email)
}

// Login authenticates by email and password and issues a session token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (string, error) {
	user, err := s.store.FindByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.hasher.VerifyDummy(req.Password)
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("login lookup: %w", err)
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	if s.policy.RequireVerifiedEmail && user.EmailVerifiedAt == nil {
		return "", ErrEmailNotVerified
	}

	return s.issuer.Issue(user.ID, user.Email)
}

// Me returns the profile for an authenticated subject.
func (s *AuthService) Me(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// VerifyEmail consumes an outstanding verification token. The consume is a
// single conditional update, so a token is accepted at most once even under
// concurrent presentation, and never after its expiry instant.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidToken
	}

	now := time.Now()
	_, err := s.store.ConsumeToken(ctx, token, now, map[string]any{
		"email_verified_at": now,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	return nil
}

// RequestPasswordReset issues a reset token if the email is registered.
// The caller-visible result is identical whether or not the account exists;
// the existence signal is deliberately suppressed.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.store.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("reset lookup: %w", err)
	}

	token, err := security.NewOpaqueToken()
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(s.policy.ResetTokenExpiry)

	// Overwrites the shared token slot: any pending verification or reset
	// token for this user stops being valid here.
	if _, err := s.store.Update(ctx, user.ID, map[string]any{
		"token":            token,
		"token_expires_at": expiresAt,
	}); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	s.dispatch(ctx, "send_password_reset", user.Email, func(ctx context.Context) error {
		return s.mailer.SendPasswordReset(ctx, user.Email, token)
	})

	return nil
}

// ConfirmPasswordReset exchanges a valid reset token for a new password
// hash. An invalid or expired token is reported to the caller, never
// swallowed. Already-issued session tokens stay valid; they are stateless.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return ErrInvalidToken
	}

	hash, err := s.hasher.Hash(ctx, newPassword)
	if err != nil {
		return err
	}

	_, err = s.store.ConsumeToken(ctx, token, time.Now(), map[string]any{
		"password_hash": hash,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	return nil
}

// dispatch runs an email send detached from the request's cancellation and
// bounded by the mail timeout. Persistence has already committed by the
// time this runs; a delivery failure is logged and dropped.
func (s *AuthService) dispatch(ctx context.Context, action, email string, send func(context.Context) error) {
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.policy.MailTimeout)
	defer cancel()

	if err := send(sendCtx); err != nil {
		slog.Error("email dispatch failed", "action", action, "email", email, "error", err)
	}
}

// NormalizeEmail lowercases and trims an address; email is a
// case-insensitive identity key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
