package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
	"github.com/rbe-dev-920/tce-serv/internal/repo"
)

// VehicleService implements business logic for fleet vehicles.
// Vehicles are plain CRUD with field-presence validation only.
type VehicleService struct {
	vehicles repo.VehicleRepo
}

// NewVehicleService constructs a VehicleService backed by the provided repo.
func NewVehicleService(vehicles repo.VehicleRepo) *VehicleService {
	return &VehicleService{vehicles: vehicles}
}

// Create validates and persists a new vehicle.
func (s *VehicleService) Create(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	if err := validateVehicle(v); err != nil {
		return domain.Vehicle{}, err
	}
	result, err := s.vehicles.Create(ctx, v)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single vehicle by ID.
func (s *VehicleService) GetByID(ctx context.Context, id uuid.UUID) (domain.Vehicle, error) {
	result, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns a page of vehicles plus a total count.
func (s *VehicleService) ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.Vehicle, int, error) {
	vehicles, total, err := s.vehicles.ListPaged(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("service.VehicleService.ListPaged: %w", err)
	}
	if vehicles == nil {
		vehicles = []domain.Vehicle{}
	}
	return vehicles, total, nil
}

// Update validates and overwrites an existing vehicle.
func (s *VehicleService) Update(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	if err := validateVehicle(v); err != nil {
		return domain.Vehicle{}, err
	}
	result, err := s.vehicles.Update(ctx, v)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a vehicle by ID.
func (s *VehicleService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.vehicles.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.VehicleService.Delete: %w", err)
	}
	return nil
}

func validateVehicle(v domain.Vehicle) error {
	if strings.TrimSpace(v.FleetNumber) == "" {
		return fmt.Errorf("%w: fleetNumber is required", domain.ErrValidation)
	}
	if !v.Type.Valid() {
		return fmt.Errorf("%w: unknown vehicle type %q", domain.ErrValidation, v.Type)
	}
	if v.Capacity < 1 {
		return fmt.Errorf("%w: capacity must be at least 1", domain.ErrValidation)
	}
	return nil
}
