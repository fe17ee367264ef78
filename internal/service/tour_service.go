package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tourista/tourista-api/internal/domain"
	"github.com/tourista/tourista-api/internal/repository/ports"
)

var ErrTourNotFound = errors.New("tour not found")

const (
	tourListDefaultLimit = 100
	tourListMaxLimit     = 200
)

type TourService struct {
	tours ports.TourRepository
}

func NewTourService(tours ports.TourRepository) *TourService {
	return &TourService{tours: tours}
}

type TourInput struct {
	Name       string
	Summary    *string
	Price      float64
	Difficulty domain.TourDifficulty
	Tags       []string
}

func (s *TourService) Create(ctx context.Context, input TourInput) (*domain.Tour, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if input.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if input.Difficulty == "" {
		input.Difficulty = domain.TourDifficultyMedium
	}

	return s.tours.Create(ctx, &domain.Tour{
		Name:       input.Name,
		Summary:    input.Summary,
		Price:      input.Price,
		Difficulty: input.Difficulty,
		Tags:       input.Tags,
	})
}

func (s *TourService) Get(ctx context.Context, id uuid.UUID) (*domain.Tour, error) {
	tour, err := s.tours.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTourNotFound
		}
		return nil, err
	}
	return tour, nil
}

func (s *TourService) List(ctx context.Context, filter domain.TourFilter) ([]domain.Tour, error) {
	if filter.Limit <= 0 {
		filter.Limit = tourListDefaultLimit
	}
	if filter.Limit > tourListMaxLimit {
		filter.Limit = tourListMaxLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.tours.List(ctx, filter)
}

func (s *TourService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.tours.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTourNotFound
		}
		return err
	}
	return nil
}
