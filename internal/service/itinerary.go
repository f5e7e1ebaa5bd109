package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
	"github.com/rbe-dev-920/tce-serv/internal/repo"
)

// ItineraryService implements business logic for itineraries and their
// ordered stop sequences.
type ItineraryService struct {
	itineraries repo.ItineraryRepo
	directions  repo.DirectionRepo
	stops       repo.StopRepo
}

// NewItineraryService constructs an ItineraryService backed by the provided repos.
func NewItineraryService(itineraries repo.ItineraryRepo, directions repo.DirectionRepo, stops repo.StopRepo) *ItineraryService {
	return &ItineraryService{itineraries: itineraries, directions: directions, stops: stops}
}

// Create validates the itinerary, verifies the owning direction exists, then persists.
func (s *ItineraryService) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	if err := validateItinerary(it); err != nil {
		return domain.Itinerary{}, err
	}
	if _, err := s.directions.GetByID(ctx, it.DirectionID); err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Create: direction: %w", err)
	}
	result, err := s.itineraries.Create(ctx, it)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns an itinerary with its ordered stops.
func (s *ItineraryService) GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error) {
	result, err := s.itineraries.GetByID(ctx, id)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns a page of itineraries plus a total count.
func (s *ItineraryService) ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.Itinerary, int, error) {
	its, total, err := s.itineraries.ListPaged(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ItineraryService.ListPaged: %w", err)
	}
	if its == nil {
		its = []domain.Itinerary{}
	}
	return its, total, nil
}

// Update validates and overwrites an existing itinerary's own fields.
// The stop sequence is managed separately through ReplaceStops.
func (s *ItineraryService) Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	if err := validateItinerary(it); err != nil {
		return domain.Itinerary{}, err
	}
	result, err := s.itineraries.Update(ctx, it)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Update: %w", err)
	}
	return result, nil
}

// Delete removes an itinerary by ID.
func (s *ItineraryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.itineraries.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ItineraryService.Delete: %w", err)
	}
	return nil
}

// ReplaceStops replaces the itinerary's ordered stop list. Every stop must
// exist and appear at most once.
func (s *ItineraryService) ReplaceStops(ctx context.Context, id uuid.UUID, stopIDs []uuid.UUID) (domain.Itinerary, error) {
	seen := make(map[uuid.UUID]struct{}, len(stopIDs))
	for _, stopID := range stopIDs {
		if _, dup := seen[stopID]; dup {
			return domain.Itinerary{}, fmt.Errorf("%w: stop %s listed twice", domain.ErrValidation, stopID)
		}
		seen[stopID] = struct{}{}
		if _, err := s.stops.GetByID(ctx, stopID); err != nil {
			return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.ReplaceStops: stop %s: %w", stopID, err)
		}
	}

	result, err := s.itineraries.ReplaceStops(ctx, id, stopIDs)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.ReplaceStops: %w", err)
	}
	return result, nil
}

func validateItinerary(it domain.Itinerary) error {
	if it.DirectionID == uuid.Nil {
		return fmt.Errorf("%w: directionId is required", domain.ErrValidation)
	}
	if strings.TrimSpace(it.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	return nil
}
