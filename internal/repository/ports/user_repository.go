package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tourista/tourista-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, name, email string, passwordHash []byte, role domain.Role) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// FindByResetTokenHash matches a pending, unexpired reset token. A
	// consumed, cleared or expired token yields sql.ErrNoRows.
	FindByResetTokenHash(ctx context.Context, tokenHash []byte, now time.Time) (*domain.User, error)
	// UpdatePassword replaces the password hash, stamps
	// password_changed_at and clears any pending reset token in one write.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash []byte, changedAt time.Time) error
	SetResetToken(ctx context.Context, id uuid.UUID, tokenHash []byte, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}
