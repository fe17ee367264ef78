package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tourista/tourista-api/internal/domain"
	"github.com/tourista/tourista-api/internal/util"
)

// memUserRepo is a stateful in-memory credential store used for flow
// tests that span several operations on the same user.
type memUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[uuid.UUID]*domain.User{}}
}

func (m *memUserRepo) Create(ctx context.Context, name, email string, passwordHash []byte, role domain.Role) (*domain.User, error) {
	user := &domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: append([]byte(nil), passwordHash...),
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.users[user.ID] = user
	clone := *user
	return &clone, nil
}

func (m *memUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (m *memUserRepo) FindByResetTokenHash(ctx context.Context, tokenHash []byte, now time.Time) (*domain.User, error) {
	for _, user := range m.users {
		if user.ResetTokenHash == nil || user.ResetTokenExpires == nil {
			continue
		}
		if bytes.Equal(user.ResetTokenHash, tokenHash) && user.ResetTokenExpires.After(now) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash []byte, changedAt time.Time) error {
	user, ok := m.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	user.PasswordHash = append([]byte(nil), passwordHash...)
	user.PasswordChangedAt = &changedAt
	user.ResetTokenHash = nil
	user.ResetTokenExpires = nil
	return nil
}

func (m *memUserRepo) SetResetToken(ctx context.Context, id uuid.UUID, tokenHash []byte, expiresAt time.Time) error {
	user, ok := m.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	user.ResetTokenHash = append([]byte(nil), tokenHash...)
	user.ResetTokenExpires = &expiresAt
	return nil
}

func (m *memUserRepo) ClearResetToken(ctx context.Context, id uuid.UUID) error {
	user, ok := m.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	user.ResetTokenHash = nil
	user.ResetTokenExpires = nil
	return nil
}

func (m *memUserRepo) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users := make([]domain.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, *user)
	}
	return users, nil
}

func mailedToken(t *testing.T, notifier *fakeNotifier) string {
	t.Helper()
	if len(notifier.resetSent) == 0 {
		t.Fatal("no reset mail was sent")
	}
	url := notifier.resetSent[len(notifier.resetSent)-1].resetURL
	return url[strings.LastIndex(url, "/")+1:]
}

func TestPasswordResetFlow(t *testing.T) {
	ctx := context.Background()
	repo := newMemUserRepo()
	notifier := &fakeNotifier{}
	tokens := util.NewTokenManager("test-secret", time.Hour)
	svc := NewAuthService(repo, tokens, notifier, 10*time.Minute, "https://app.example.com")

	signedUp, err := svc.Signup(ctx, "Flow", "flow@example.com", "OriginalPass1!")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	// Login with the signup credentials and verify the token subject.
	loggedIn, err := svc.Login(ctx, "flow@example.com", "OriginalPass1!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := tokens.Verify(loggedIn.Token)
	if err != nil {
		t.Fatalf("verify login token: %v", err)
	}
	if claims.UserID != signedUp.User.ID {
		t.Fatalf("token subject mismatch: %s vs %s", claims.UserID, signedUp.User.ID)
	}

	if err := svc.RequestPasswordReset(ctx, "flow@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	plain := mailedToken(t, notifier)

	// Tokens issued before the change must go stale afterwards, so make
	// sure the change lands in a later second than the login token's iat.
	time.Sleep(1100 * time.Millisecond)

	reset, err := svc.ConfirmPasswordReset(ctx, plain, "BrandNewPass1!")
	if err != nil {
		t.Fatalf("confirm reset: %v", err)
	}
	if reset.Token == "" {
		t.Fatal("expected fresh token from reset")
	}

	if _, err := svc.Login(ctx, "flow@example.com", "BrandNewPass1!"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, err := svc.Login(ctx, "flow@example.com", "OriginalPass1!"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected old password to be rejected, got %v", err)
	}

	// Single use: the consumed token must not work a second time.
	if _, err := svc.ConfirmPasswordReset(ctx, plain, "AnotherPass1!"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("expected ErrResetTokenInvalid on second consumption, got %v", err)
	}

	// The pre-change token no longer resolves.
	if _, err := svc.Authenticate(ctx, loggedIn.Token); !errors.Is(err, ErrStaleCredential) {
		t.Fatalf("expected ErrStaleCredential for pre-change token, got %v", err)
	}

	// The post-change token does.
	if _, err := svc.Authenticate(ctx, reset.Token); err != nil {
		t.Fatalf("expected post-change token to resolve, got %v", err)
	}
}

func TestPasswordResetFlowExpiredToken(t *testing.T) {
	ctx := context.Background()
	repo := newMemUserRepo()
	notifier := &fakeNotifier{}
	tokens := util.NewTokenManager("test-secret", time.Hour)
	svc := NewAuthService(repo, tokens, notifier, 10*time.Minute, "https://app.example.com")

	if _, err := svc.Signup(ctx, "Flow", "expired@example.com", "OriginalPass1!"); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if err := svc.RequestPasswordReset(ctx, "expired@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	plain := mailedToken(t, notifier)

	// Age the pending token past its window.
	user, err := repo.FindByEmail(ctx, "expired@example.com")
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	past := time.Now().Add(-time.Minute)
	repo.users[user.ID].ResetTokenExpires = &past

	_, err = svc.ConfirmPasswordReset(ctx, plain, "BrandNewPass1!")
	if !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("expected ErrResetTokenInvalid for expired token, got %v", err)
	}
}

func TestPasswordResetFlowMailFailure(t *testing.T) {
	ctx := context.Background()
	repo := newMemUserRepo()
	notifier := &fakeNotifier{resetErr: errors.New("smtp down")}
	tokens := util.NewTokenManager("test-secret", time.Hour)
	svc := NewAuthService(repo, tokens, notifier, 10*time.Minute, "https://app.example.com")

	if _, err := svc.Signup(ctx, "Flow", "unlucky@example.com", "OriginalPass1!"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	err := svc.RequestPasswordReset(ctx, "unlucky@example.com")
	if !errors.Is(err, ErrNotificationFailed) {
		t.Fatalf("expected ErrNotificationFailed, got %v", err)
	}

	// The generated token was cleared, so consuming it must fail.
	plain := mailedToken(t, notifier)
	if _, err := svc.ConfirmPasswordReset(ctx, plain, "BrandNewPass1!"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("expected ErrResetTokenInvalid after cleared token, got %v", err)
	}

	// A replacement request replaces the pending token: only the newest
	// plaintext works.
	notifier.resetErr = nil
	if err := svc.RequestPasswordReset(ctx, "unlucky@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	first := mailedToken(t, notifier)
	if err := svc.RequestPasswordReset(ctx, "unlucky@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	second := mailedToken(t, notifier)

	if _, err := svc.ConfirmPasswordReset(ctx, first, "BrandNewPass1!"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("expected replaced token to be rejected, got %v", err)
	}
	if _, err := svc.ConfirmPasswordReset(ctx, second, "BrandNewPass1!"); err != nil {
		t.Fatalf("expected newest token to work, got %v", err)
	}
}
