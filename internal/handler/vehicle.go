package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
)

// VehicleServicer defines the business operations the vehicle handler
// depends on.
type VehicleServicer interface {
	Create(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Vehicle, error)
	ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.Vehicle, int, error)
	Update(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateVehicle handles POST /vehicles.
func (s *Server) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var v domain.Vehicle
	if err := decodeJSON(r, &v); err != nil {
		writeRequestError(w, err.Error())
		return
	}

	created, err := s.vehicles.Create(r.Context(), v)
	if err != nil {
		writeServiceError(w, err, "vehicle")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// ListVehicles handles GET /vehicles.
func (s *Server) ListVehicles(w http.ResponseWriter, r *http.Request) {
	page := pageParams(r)
	vehicles, total, err := s.vehicles.ListPaged(r.Context(), page)
	if err != nil {
		writeServiceError(w, err, "vehicles")
		return
	}

	respondJSON(w, http.StatusOK, pagedResponse(vehicles, page, total))
}

// GetVehicle handles GET /vehicles/{id}.
func (s *Server) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	vehicle, err := s.vehicles.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "vehicle")
		return
	}

	respondJSON(w, http.StatusOK, vehicle)
}

// UpdateVehicle handles PUT /vehicles/{id}. The body is the full record;
// the path ID wins over any ID in the body.
func (s *Server) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	var v domain.Vehicle
	if err := decodeJSON(r, &v); err != nil {
		writeRequestError(w, err.Error())
		return
	}
	v.ID = id

	updated, err := s.vehicles.Update(r.Context(), v)
	if err != nil {
		writeServiceError(w, err, "vehicle")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DeleteVehicle handles DELETE /vehicles/{id}.
func (s *Server) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	if err := s.vehicles.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "vehicle")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
