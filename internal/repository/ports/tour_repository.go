package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/tourista/tourista-api/internal/domain"
)

type TourRepository interface {
	Create(ctx context.Context, tour *domain.Tour) (*domain.Tour, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Tour, error)
	List(ctx context.Context, filter domain.TourFilter) ([]domain.Tour, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
