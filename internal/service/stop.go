package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
	"github.com/rbe-dev-920/tce-serv/internal/repo"
)

// StopService implements business logic for network stops.
type StopService struct {
	stops repo.StopRepo
}

// NewStopService constructs a StopService backed by the provided repo.
func NewStopService(stops repo.StopRepo) *StopService {
	return &StopService{stops: stops}
}

// Create validates and persists a new stop.
func (s *StopService) Create(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	if err := validateStop(stop); err != nil {
		return domain.Stop{}, err
	}
	result, err := s.stops.Create(ctx, stop)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single stop by ID.
func (s *StopService) GetByID(ctx context.Context, id uuid.UUID) (domain.Stop, error) {
	result, err := s.stops.GetByID(ctx, id)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns a page of stops plus a total count.
func (s *StopService) ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.Stop, int, error) {
	stops, total, err := s.stops.ListPaged(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("service.StopService.ListPaged: %w", err)
	}
	if stops == nil {
		stops = []domain.Stop{}
	}
	return stops, total, nil
}

// Update validates and overwrites an existing stop.
func (s *StopService) Update(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	if err := validateStop(stop); err != nil {
		return domain.Stop{}, err
	}
	result, err := s.stops.Update(ctx, stop)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a stop by ID.
func (s *StopService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.stops.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.StopService.Delete: %w", err)
	}
	return nil
}

func validateStop(stop domain.Stop) error {
	if strings.TrimSpace(stop.Code) == "" {
		return fmt.Errorf("%w: code is required", domain.ErrValidation)
	}
	if strings.TrimSpace(stop.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	return nil
}
