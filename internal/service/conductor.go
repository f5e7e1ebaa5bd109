package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
	"github.com/rbe-dev-920/tce-serv/internal/repo"
)

// ConductorService implements business logic for conductors.
type ConductorService struct {
	conductors repo.ConductorRepo
}

// NewConductorService constructs a ConductorService backed by the provided repo.
func NewConductorService(conductors repo.ConductorRepo) *ConductorService {
	return &ConductorService{conductors: conductors}
}

// Create validates and persists a new conductor.
func (s *ConductorService) Create(ctx context.Context, c domain.Conductor) (domain.Conductor, error) {
	if err := validateConductor(c); err != nil {
		return domain.Conductor{}, err
	}
	result, err := s.conductors.Create(ctx, c)
	if err != nil {
		return domain.Conductor{}, fmt.Errorf("service.ConductorService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single conductor by ID.
func (s *ConductorService) GetByID(ctx context.Context, id uuid.UUID) (domain.Conductor, error) {
	result, err := s.conductors.GetByID(ctx, id)
	if err != nil {
		return domain.Conductor{}, fmt.Errorf("service.ConductorService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns a page of conductors plus a total count.
func (s *ConductorService) ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.Conductor, int, error) {
	conductors, total, err := s.conductors.ListPaged(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ConductorService.ListPaged: %w", err)
	}
	if conductors == nil {
		conductors = []domain.Conductor{}
	}
	return conductors, total, nil
}

// Update validates and overwrites an existing conductor.
func (s *ConductorService) Update(ctx context.Context, c domain.Conductor) (domain.Conductor, error) {
	if err := validateConductor(c); err != nil {
		return domain.Conductor{}, err
	}
	result, err := s.conductors.Update(ctx, c)
	if err != nil {
		return domain.Conductor{}, fmt.Errorf("service.ConductorService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a conductor by ID.
func (s *ConductorService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.conductors.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ConductorService.Delete: %w", err)
	}
	return nil
}

func validateConductor(c domain.Conductor) error {
	var missing []string
	if strings.TrimSpace(c.FirstName) == "" {
		missing = append(missing, "firstName")
	}
	if strings.TrimSpace(c.LastName) == "" {
		missing = append(missing, "lastName")
	}
	if strings.TrimSpace(c.BadgeNumber) == "" {
		missing = append(missing, "badgeNumber")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", domain.ErrValidation, strings.Join(missing, ", "))
	}
	if c.HiredOn.IsZero() {
		return fmt.Errorf("%w: hiredOn is required", domain.ErrValidation)
	}
	return nil
}
