// Package service contains the business logic for the transit backend.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
	"github.com/rbe-dev-920/tce-serv/internal/repo"
)

// TripPublisher emits trip lifecycle events to interested consumers (the
// NATS adapter in production). Publishing is best effort: failures are the
// publisher's problem, never the request's.
type TripPublisher interface {
	PublishTripCreated(ctx context.Context, trip domain.Trip)
}

// TripMetrics counts validator outcomes. Implemented by the prometheus
// collector; nil disables counting.
type TripMetrics interface {
	TripCreated()
	TripDuplicate()
	TripRejected()
}

// TripService implements the trip-window validator and the rest of the trip
// business logic. Creation is the only validated path: a trip must fit
// inside its line's operating window and under the single-trip duration cap,
// and identical trips must not produce duplicate rows.
type TripService struct {
	trips      repo.TripRepo
	directions repo.DirectionRepo
	lines      repo.LineRepo
	publisher  TripPublisher
	metrics    TripMetrics
}

// NewTripService constructs a TripService. publisher and metrics may be nil.
func NewTripService(trips repo.TripRepo, directions repo.DirectionRepo, lines repo.LineRepo, publisher TripPublisher, metrics TripMetrics) *TripService {
	return &TripService{trips: trips, directions: directions, lines: lines, publisher: publisher, metrics: metrics}
}

// Create validates and persists a new trip.
//
// The returned bool is true when an identical trip (same direction, date,
// start, end) already existed; in that case the existing record is returned
// and nothing is written. Validation failures return domain.ErrValidation
// before any write; an unknown direction or line returns domain.ErrNotFound.
func (s *TripService) Create(ctx context.Context, draft domain.TripDraft) (domain.Trip, bool, error) {
	var missing []string
	if draft.DirectionID == nil {
		missing = append(missing, "directionId")
	}
	if draft.StartTime == "" {
		missing = append(missing, "startTime")
	}
	if draft.EndTime == "" {
		missing = append(missing, "endTime")
	}
	if len(missing) > 0 {
		return s.reject(fmt.Errorf("%w: missing required fields: %s", domain.ErrValidation, strings.Join(missing, ", ")))
	}

	start, err := domain.ParseTimeOfDay(draft.StartTime)
	if err != nil {
		return s.reject(fmt.Errorf("%w: startTime: %v", domain.ErrValidation, err))
	}
	end, err := domain.ParseTimeOfDay(draft.EndTime)
	if err != nil {
		return s.reject(fmt.Errorf("%w: endTime: %v", domain.ErrValidation, err))
	}

	duration := start.DurationTo(end)
	if duration <= 0 {
		return s.reject(fmt.Errorf("%w: end before start", domain.ErrValidation))
	}
	if duration > domain.MaxTripDuration {
		return s.reject(fmt.Errorf("%w: duration exceeds limit: %d minutes over the %d minute cap", domain.ErrValidation, duration, domain.MaxTripDuration))
	}

	status := domain.TripStatusPlanned
	if draft.Status != "" {
		if !draft.Status.Valid() {
			return s.reject(fmt.Errorf("%w: unknown status %q", domain.ErrValidation, draft.Status))
		}
		status = draft.Status
	}

	if _, err := s.directions.GetByID(ctx, *draft.DirectionID); err != nil {
		return domain.Trip{}, false, fmt.Errorf("service.TripService.Create: direction: %w", err)
	}

	if draft.LineID != nil {
		line, err := s.lines.GetByID(ctx, *draft.LineID)
		if err != nil {
			return domain.Trip{}, false, fmt.Errorf("service.TripService.Create: line: %w", err)
		}
		// A line without a complete window accepts trips at any hour.
		if line.HasWindow() {
			if err := checkOperatingWindow(line, start, end); err != nil {
				return s.reject(err)
			}
		}
	}

	date := domain.Today()
	if draft.Date != nil {
		date = *draft.Date
	}

	// Dedup fast path: an identical trip is returned as-is, flagged, with
	// zero writes.
	existing, err := s.trips.FindBySchedule(ctx, *draft.DirectionID, date, start, end)
	if err == nil {
		if s.metrics != nil {
			s.metrics.TripDuplicate()
		}
		return existing, true, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Trip{}, false, fmt.Errorf("service.TripService.Create: %w", err)
	}

	created, err := s.trips.Create(ctx, domain.Trip{
		DirectionID: *draft.DirectionID,
		LineID:      draft.LineID,
		ConductorID: draft.ConductorID,
		ServiceDate: date,
		StartTime:   start,
		EndTime:     end,
		Status:      status,
	})
	if errors.Is(err, domain.ErrDuplicate) {
		// Lost the race against a concurrent identical request: the unique
		// index rejected our insert, so the winner's row is the answer.
		existing, ferr := s.trips.FindBySchedule(ctx, *draft.DirectionID, date, start, end)
		if ferr != nil {
			return domain.Trip{}, false, fmt.Errorf("service.TripService.Create: %w", err)
		}
		if s.metrics != nil {
			s.metrics.TripDuplicate()
		}
		return existing, true, nil
	}
	if err != nil {
		return domain.Trip{}, false, fmt.Errorf("service.TripService.Create: %w", err)
	}

	if s.metrics != nil {
		s.metrics.TripCreated()
	}
	if s.publisher != nil {
		s.publisher.PublishTripCreated(ctx, created)
	}
	return created, false, nil
}

// checkOperatingWindow decides whether a trip's start and end are legal
// relative to the line's declared window. The window wraps past midnight
// when its end is earlier in the day than its start (opens 05:00, closes
// 02:00 the next day).
func checkOperatingWindow(line domain.Line, start, end domain.TimeOfDay) error {
	open, close := *line.OperatingStart, *line.OperatingEnd

	if close >= open {
		// Plain daytime window.
		if start < open {
			return fmt.Errorf("%w: start %s before line opens at %s", domain.ErrValidation, start, open)
		}
		if end > close {
			return fmt.Errorf("%w: end %s after line closes at %s", domain.ErrValidation, end, close)
		}
		return nil
	}

	// Wrapping window: legal starts are the pre-midnight segment
	// [open, 23:59] and the post-midnight segment [00:00, close].
	if start < open && start > close {
		return fmt.Errorf("%w: start %s outside line operating window %s-%s", domain.ErrValidation, start, open, close)
	}
	// A trip that itself crosses midnight from the pre-midnight segment must
	// still end by closing time.
	if end < start && start >= open && end > close {
		return fmt.Errorf("%w: end %s after line closes at %s", domain.ErrValidation, end, close)
	}
	return nil
}

// reject counts a validation failure and returns it.
func (s *TripService) reject(err error) (domain.Trip, bool, error) {
	if s.metrics != nil {
		s.metrics.TripRejected()
	}
	return domain.Trip{}, false, err
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// GetDetail returns a trip with its line and conductor associations.
func (s *TripService) GetDetail(ctx context.Context, id uuid.UUID) (domain.TripDetail, error) {
	result, err := s.trips.GetDetail(ctx, id)
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("service.TripService.GetDetail: %w", err)
	}
	return result, nil
}

// ListPaged returns trips matching the filter plus a total for pagination.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListPaged(ctx context.Context, filter domain.TripFilter, page domain.PaginationParams) ([]domain.Trip, int, error) {
	trips, total, err := s.trips.ListPaged(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Update applies a tri-state partial update to a trip.
//
// The operating-window and duration checks of Create are deliberately not
// re-run here: dispatchers edit trips to record what actually happened, and
// reality does not always respect the planned window. Only field-level
// validity is enforced.
func (s *TripService) Update(ctx context.Context, id uuid.UUID, upd domain.TripUpdate) (domain.Trip, error) {
	if v, ok := upd.Status.Get(); ok && !v.Valid() {
		return domain.Trip{}, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, v)
	}
	for name, clear := range map[string]bool{
		"startTime": upd.StartTime.Clear(),
		"endTime":   upd.EndTime.Clear(),
		"date":      upd.Date.Clear(),
		"status":    upd.Status.Clear(),
	} {
		if clear {
			return domain.Trip{}, fmt.Errorf("%w: %s cannot be null", domain.ErrValidation, name)
		}
	}

	result, err := s.trips.Update(ctx, id, upd)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by ID.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}
