package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tourista/tourista-api/internal/domain"
	"github.com/tourista/tourista-api/internal/repository/ports"
	"github.com/tourista/tourista-api/internal/util"
)

const pgUniqueViolation = "23505"

// ResetNotifier delivers credential-lifecycle mail. Implementations report
// success or failure only; the service owns the corrective state handling.
type ResetNotifier interface {
	SendPasswordReset(ctx context.Context, email, resetURL string) error
	SendPasswordChanged(ctx context.Context, email string) error
}

// AuthResult is returned by every operation that ends with a signed-in
// user: a fresh identity token plus the sanitized user it belongs to.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

type AuthService struct {
	users           ports.UserRepository
	tokens          *util.TokenManager
	notifier        ResetNotifier
	resetTTL        time.Duration
	frontendBaseURL string

	now func() time.Time
}

func NewAuthService(users ports.UserRepository, tokens *util.TokenManager, notifier ResetNotifier, resetTTL time.Duration, frontendBaseURL string) *AuthService {
	return &AuthService{
		users:           users,
		tokens:          tokens,
		notifier:        notifier,
		resetTTL:        resetTTL,
		frontendBaseURL: strings.TrimRight(frontendBaseURL, "/"),
		now:             time.Now,
	}
}

func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: a valid email is required", ErrValidation)
	}
	if err := util.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPasswordTooWeak, err)
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, name, email, hash, domain.RoleUser)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrEmailAlreadyUsed
		}
		return nil, err
	}

	return s.issueFor(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !util.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issueFor(user)
}

// Authenticate resolves a bearer credential to the user it was issued for.
// Tokens issued before the user's latest password change are rejected.
func (s *AuthService) Authenticate(ctx context.Context, bearer string) (*domain.User, error) {
	if strings.TrimSpace(bearer) == "" {
		return nil, ErrMissingCredential
	}

	claims, err := s.tokens.Verify(bearer)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, ErrTokenInvalid
		}
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnknownSubject
		}
		return nil, err
	}

	if user.PasswordChangedAfter(claims.IssuedAt.Time) {
		return nil, ErrStaleCredential
	}

	return user, nil
}

// Authorize checks the resolved identity against an allowed-role set.
func (s *AuthService) Authorize(user *domain.User, allowed domain.RoleSet) error {
	if user == nil {
		return ErrMissingCredential
	}
	if !allowed.Contains(user.Role) {
		return ErrForbidden
	}
	return nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) (*AuthResult, error) {
	if err := util.ValidatePassword(newPassword); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPasswordTooWeak, err)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnknownSubject
		}
		return nil, err
	}
	if !util.CheckPassword(currentPassword, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	changedAt := s.now()
	if err := s.users.UpdatePassword(ctx, user.ID, hash, changedAt); err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	user.PasswordChangedAt = &changedAt

	return s.issueFor(user)
}

// RequestPasswordReset issues a single-use reset token, replacing any
// pending one, and mails a link carrying the plaintext. The token row is
// persisted before the mail attempt; if the mail fails the token is
// cleared again so that a secret the user never received cannot linger.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}

	plain, err := util.NewResetToken()
	if err != nil {
		return err
	}
	expiresAt := s.now().Add(s.resetTTL)
	if err := s.users.SetResetToken(ctx, user.ID, util.HashResetToken(plain), expiresAt); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.frontendBaseURL, plain)
	if err := s.notifier.SendPasswordReset(ctx, user.Email, resetURL); err != nil {
		// Best effort: if the clear itself fails the token stays until
		// expiry, which is safe because the plaintext never left the
		// process.
		if clearErr := s.users.ClearResetToken(ctx, user.ID); clearErr != nil {
			log.Printf("clear reset token for %s after mail failure: %v", user.ID, clearErr)
		}
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}

	return nil
}

// ConfirmPasswordReset consumes a pending reset token and replaces the
// password. Unknown, already-consumed and expired tokens are rejected
// identically.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, plainToken, newPassword string) (*AuthResult, error) {
	if strings.TrimSpace(plainToken) == "" {
		return nil, ErrResetTokenInvalid
	}
	if err := util.ValidatePassword(newPassword); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPasswordTooWeak, err)
	}

	user, err := s.users.FindByResetTokenHash(ctx, util.HashResetToken(plainToken), s.now())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResetTokenInvalid
		}
		return nil, err
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	changedAt := s.now()
	if err := s.users.UpdatePassword(ctx, user.ID, hash, changedAt); err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	user.PasswordChangedAt = &changedAt
	user.ResetTokenHash = nil
	user.ResetTokenExpires = nil

	if err := s.notifier.SendPasswordChanged(ctx, user.Email); err != nil {
		log.Printf("password-changed mail for %s not sent: %v", user.ID, err)
	}

	return s.issueFor(user)
}

func (s *AuthService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return s.users.List(ctx, limit, offset)
}

func (s *AuthService) issueFor(user *domain.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
