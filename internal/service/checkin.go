package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
	"github.com/rbe-dev-920/tce-serv/internal/repo"
)

// CheckInService implements business logic for dispatch check-ins and the
// daily aggregate statistics.
type CheckInService struct {
	checkIns repo.CheckInRepo
	trips    repo.TripRepo
}

// NewCheckInService constructs a CheckInService backed by the provided repos.
func NewCheckInService(checkIns repo.CheckInRepo, trips repo.TripRepo) *CheckInService {
	return &CheckInService{checkIns: checkIns, trips: trips}
}

// Create validates the check-in, verifies the trip exists, then persists.
// The conductor and vehicle references are enforced by foreign keys.
func (s *CheckInService) Create(ctx context.Context, c domain.CheckIn) (domain.CheckIn, error) {
	if err := validateCheckIn(c); err != nil {
		return domain.CheckIn{}, err
	}
	if _, err := s.trips.GetByID(ctx, c.TripID); err != nil {
		return domain.CheckIn{}, fmt.Errorf("service.CheckInService.Create: trip: %w", err)
	}
	if c.CheckedAt.IsZero() {
		c.CheckedAt = time.Now()
	}
	result, err := s.checkIns.Create(ctx, c)
	if err != nil {
		return domain.CheckIn{}, fmt.Errorf("service.CheckInService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single check-in by ID.
func (s *CheckInService) GetByID(ctx context.Context, id uuid.UUID) (domain.CheckIn, error) {
	result, err := s.checkIns.GetByID(ctx, id)
	if err != nil {
		return domain.CheckIn{}, fmt.Errorf("service.CheckInService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns a page of check-ins plus a total count.
func (s *CheckInService) ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.CheckIn, int, error) {
	checkIns, total, err := s.checkIns.ListPaged(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("service.CheckInService.ListPaged: %w", err)
	}
	if checkIns == nil {
		checkIns = []domain.CheckIn{}
	}
	return checkIns, total, nil
}

// Update validates and overwrites an existing check-in.
func (s *CheckInService) Update(ctx context.Context, c domain.CheckIn) (domain.CheckIn, error) {
	if err := validateCheckIn(c); err != nil {
		return domain.CheckIn{}, err
	}
	result, err := s.checkIns.Update(ctx, c)
	if err != nil {
		return domain.CheckIn{}, fmt.Errorf("service.CheckInService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a check-in by ID.
func (s *CheckInService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.checkIns.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.CheckInService.Delete: %w", err)
	}
	return nil
}

// StatsForDate returns the daily dispatch aggregates for the given date.
func (s *CheckInService) StatsForDate(ctx context.Context, date domain.Date) (domain.CheckInStats, error) {
	stats, err := s.checkIns.StatsForDate(ctx, date)
	if err != nil {
		return domain.CheckInStats{}, fmt.Errorf("service.CheckInService.StatsForDate: %w", err)
	}
	return stats, nil
}

func validateCheckIn(c domain.CheckIn) error {
	var missing []string
	if c.TripID == uuid.Nil {
		missing = append(missing, "tripId")
	}
	if c.ConductorID == uuid.Nil {
		missing = append(missing, "conductorId")
	}
	if c.VehicleID == uuid.Nil {
		missing = append(missing, "vehicleId")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", domain.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}
