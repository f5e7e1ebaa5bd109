package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
)

// ConductorServicer defines the business operations the conductor handler
// depends on.
type ConductorServicer interface {
	Create(ctx context.Context, c domain.Conductor) (domain.Conductor, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Conductor, error)
	ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.Conductor, int, error)
	Update(ctx context.Context, c domain.Conductor) (domain.Conductor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateConductor handles POST /conductors.
func (s *Server) CreateConductor(w http.ResponseWriter, r *http.Request) {
	var c domain.Conductor
	if err := decodeJSON(r, &c); err != nil {
		writeRequestError(w, err.Error())
		return
	}

	created, err := s.conductors.Create(r.Context(), c)
	if err != nil {
		writeServiceError(w, err, "conductor")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// ListConductors handles GET /conductors.
func (s *Server) ListConductors(w http.ResponseWriter, r *http.Request) {
	page := pageParams(r)
	conductors, total, err := s.conductors.ListPaged(r.Context(), page)
	if err != nil {
		writeServiceError(w, err, "conductors")
		return
	}

	respondJSON(w, http.StatusOK, pagedResponse(conductors, page, total))
}

// GetConductor handles GET /conductors/{id}.
func (s *Server) GetConductor(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	conductor, err := s.conductors.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "conductor")
		return
	}

	respondJSON(w, http.StatusOK, conductor)
}

// UpdateConductor handles PUT /conductors/{id}.
func (s *Server) UpdateConductor(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	var c domain.Conductor
	if err := decodeJSON(r, &c); err != nil {
		writeRequestError(w, err.Error())
		return
	}
	c.ID = id

	updated, err := s.conductors.Update(r.Context(), c)
	if err != nil {
		writeServiceError(w, err, "conductor")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DeleteConductor handles DELETE /conductors/{id}.
func (s *Server) DeleteConductor(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	if err := s.conductors.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "conductor")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
