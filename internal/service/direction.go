package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
	"github.com/rbe-dev-920/tce-serv/internal/repo"
)

// DirectionService implements business logic for directions.
// Creating a direction requires its owning line to exist.
type DirectionService struct {
	directions repo.DirectionRepo
	lines      repo.LineRepo
}

// NewDirectionService constructs a DirectionService backed by the provided repos.
func NewDirectionService(directions repo.DirectionRepo, lines repo.LineRepo) *DirectionService {
	return &DirectionService{directions: directions, lines: lines}
}

// Create validates the direction, verifies the owning line exists, then persists.
func (s *DirectionService) Create(ctx context.Context, d domain.Direction) (domain.Direction, error) {
	if err := validateDirection(d); err != nil {
		return domain.Direction{}, err
	}
	if _, err := s.lines.GetByID(ctx, d.LineID); err != nil {
		return domain.Direction{}, fmt.Errorf("service.DirectionService.Create: line: %w", err)
	}
	result, err := s.directions.Create(ctx, d)
	if err != nil {
		return domain.Direction{}, fmt.Errorf("service.DirectionService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single direction by ID.
func (s *DirectionService) GetByID(ctx context.Context, id uuid.UUID) (domain.Direction, error) {
	result, err := s.directions.GetByID(ctx, id)
	if err != nil {
		return domain.Direction{}, fmt.Errorf("service.DirectionService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns a page of directions plus a total count.
func (s *DirectionService) ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.Direction, int, error) {
	directions, total, err := s.directions.ListPaged(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("service.DirectionService.ListPaged: %w", err)
	}
	if directions == nil {
		directions = []domain.Direction{}
	}
	return directions, total, nil
}

// Update validates and overwrites an existing direction.
func (s *DirectionService) Update(ctx context.Context, d domain.Direction) (domain.Direction, error) {
	if err := validateDirection(d); err != nil {
		return domain.Direction{}, err
	}
	result, err := s.directions.Update(ctx, d)
	if err != nil {
		return domain.Direction{}, fmt.Errorf("service.DirectionService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a direction by ID.
func (s *DirectionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.directions.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.DirectionService.Delete: %w", err)
	}
	return nil
}

func validateDirection(d domain.Direction) error {
	if d.LineID == uuid.Nil {
		return fmt.Errorf("%w: lineId is required", domain.ErrValidation)
	}
	if strings.TrimSpace(d.Label) == "" {
		return fmt.Errorf("%w: label is required", domain.ErrValidation)
	}
	return nil
}
