package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
)

// ItineraryServicer defines the business operations the itinerary handler
// depends on.
type ItineraryServicer interface {
	Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error)
	ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.Itinerary, int, error)
	Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	ReplaceStops(ctx context.Context, id uuid.UUID, stopIDs []uuid.UUID) (domain.Itinerary, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// replaceStopsRequest is the PUT /itineraries/{id}/stops payload: the full
// ordered stop sequence, replacing whatever was there.
type replaceStopsRequest struct {
	StopIDs []uuid.UUID `json:"stopIds"`
}

// CreateItinerary handles POST /itineraries.
func (s *Server) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	var it domain.Itinerary
	if err := decodeJSON(r, &it); err != nil {
		writeRequestError(w, err.Error())
		return
	}

	created, err := s.itineraries.Create(r.Context(), it)
	if err != nil {
		writeServiceError(w, err, "direction")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// ListItineraries handles GET /itineraries.
func (s *Server) ListItineraries(w http.ResponseWriter, r *http.Request) {
	page := pageParams(r)
	itineraries, total, err := s.itineraries.ListPaged(r.Context(), page)
	if err != nil {
		writeServiceError(w, err, "itineraries")
		return
	}

	respondJSON(w, http.StatusOK, pagedResponse(itineraries, page, total))
}

// GetItinerary handles GET /itineraries/{id}, including the ordered stops.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	itinerary, err := s.itineraries.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "itinerary")
		return
	}

	respondJSON(w, http.StatusOK, itinerary)
}

// UpdateItinerary handles PUT /itineraries/{id}. Only the itinerary record
// itself; the stop sequence is replaced through /stops.
func (s *Server) UpdateItinerary(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	var it domain.Itinerary
	if err := decodeJSON(r, &it); err != nil {
		writeRequestError(w, err.Error())
		return
	}
	it.ID = id

	updated, err := s.itineraries.Update(r.Context(), it)
	if err != nil {
		writeServiceError(w, err, "itinerary")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// ReplaceItineraryStops handles PUT /itineraries/{id}/stops, swapping the
// itinerary's ordered stop sequence for the submitted one.
func (s *Server) ReplaceItineraryStops(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	var req replaceStopsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeRequestError(w, err.Error())
		return
	}

	updated, err := s.itineraries.ReplaceStops(r.Context(), id, req.StopIDs)
	if err != nil {
		writeServiceError(w, err, "itinerary")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DeleteItinerary handles DELETE /itineraries/{id}.
func (s *Server) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	if err := s.itineraries.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "itinerary")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
