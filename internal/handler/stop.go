package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
)

// StopServicer defines the business operations the stop handler depends on.
type StopServicer interface {
	Create(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Stop, error)
	ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.Stop, int, error)
	Update(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateStop handles POST /stops.
func (s *Server) CreateStop(w http.ResponseWriter, r *http.Request) {
	var stop domain.Stop
	if err := decodeJSON(r, &stop); err != nil {
		writeRequestError(w, err.Error())
		return
	}

	created, err := s.stops.Create(r.Context(), stop)
	if err != nil {
		writeServiceError(w, err, "stop")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// ListStops handles GET /stops.
func (s *Server) ListStops(w http.ResponseWriter, r *http.Request) {
	page := pageParams(r)
	stops, total, err := s.stops.ListPaged(r.Context(), page)
	if err != nil {
		writeServiceError(w, err, "stops")
		return
	}

	respondJSON(w, http.StatusOK, pagedResponse(stops, page, total))
}

// GetStop handles GET /stops/{id}.
func (s *Server) GetStop(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	stop, err := s.stops.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "stop")
		return
	}

	respondJSON(w, http.StatusOK, stop)
}

// UpdateStop handles PUT /stops/{id}.
func (s *Server) UpdateStop(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	var stop domain.Stop
	if err := decodeJSON(r, &stop); err != nil {
		writeRequestError(w, err.Error())
		return
	}
	stop.ID = id

	updated, err := s.stops.Update(r.Context(), stop)
	if err != nil {
		writeServiceError(w, err, "stop")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DeleteStop handles DELETE /stops/{id}.
func (s *Server) DeleteStop(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	if err := s.stops.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "stop")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
