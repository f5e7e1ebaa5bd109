package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
)

// DirectionServicer defines the business operations the direction handler
// depends on.
type DirectionServicer interface {
	Create(ctx context.Context, d domain.Direction) (domain.Direction, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Direction, error)
	ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.Direction, int, error)
	Update(ctx context.Context, d domain.Direction) (domain.Direction, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateDirection handles POST /directions.
func (s *Server) CreateDirection(w http.ResponseWriter, r *http.Request) {
	var d domain.Direction
	if err := decodeJSON(r, &d); err != nil {
		writeRequestError(w, err.Error())
		return
	}

	created, err := s.directions.Create(r.Context(), d)
	if err != nil {
		writeServiceError(w, err, "line")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// ListDirections handles GET /directions.
func (s *Server) ListDirections(w http.ResponseWriter, r *http.Request) {
	page := pageParams(r)
	directions, total, err := s.directions.ListPaged(r.Context(), page)
	if err != nil {
		writeServiceError(w, err, "directions")
		return
	}

	respondJSON(w, http.StatusOK, pagedResponse(directions, page, total))
}

// GetDirection handles GET /directions/{id}.
func (s *Server) GetDirection(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	direction, err := s.directions.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "direction")
		return
	}

	respondJSON(w, http.StatusOK, direction)
}

// UpdateDirection handles PUT /directions/{id}.
func (s *Server) UpdateDirection(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	var d domain.Direction
	if err := decodeJSON(r, &d); err != nil {
		writeRequestError(w, err.Error())
		return
	}
	d.ID = id

	updated, err := s.directions.Update(r.Context(), d)
	if err != nil {
		writeServiceError(w, err, "direction")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DeleteDirection handles DELETE /directions/{id}.
func (s *Server) DeleteDirection(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	if err := s.directions.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "direction")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
