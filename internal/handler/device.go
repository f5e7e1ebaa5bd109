package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
)

// DeviceServicer defines the business operations the device handler
// depends on.
type DeviceServicer interface {
	Create(ctx context.Context, d domain.Device) (domain.Device, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Device, error)
	ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.Device, int, error)
	Update(ctx context.Context, d domain.Device) (domain.Device, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateDevice handles POST /devices.
func (s *Server) CreateDevice(w http.ResponseWriter, r *http.Request) {
	var d domain.Device
	if err := decodeJSON(r, &d); err != nil {
		writeRequestError(w, err.Error())
		return
	}

	created, err := s.devices.Create(r.Context(), d)
	if err != nil {
		writeServiceError(w, err, "device")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// ListDevices handles GET /devices.
func (s *Server) ListDevices(w http.ResponseWriter, r *http.Request) {
	page := pageParams(r)
	devices, total, err := s.devices.ListPaged(r.Context(), page)
	if err != nil {
		writeServiceError(w, err, "devices")
		return
	}

	respondJSON(w, http.StatusOK, pagedResponse(devices, page, total))
}

// GetDevice handles GET /devices/{id}.
func (s *Server) GetDevice(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	device, err := s.devices.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "device")
		return
	}

	respondJSON(w, http.StatusOK, device)
}

// UpdateDevice handles PUT /devices/{id}.
func (s *Server) UpdateDevice(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	var d domain.Device
	if err := decodeJSON(r, &d); err != nil {
		writeRequestError(w, err.Error())
		return
	}
	d.ID = id

	updated, err := s.devices.Update(r.Context(), d)
	if err != nil {
		writeServiceError(w, err, "device")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DeleteDevice handles DELETE /devices/{id}.
func (s *Server) DeleteDevice(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	if err := s.devices.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "device")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
