package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
)

// TripServicer defines the business operations the trip handler depends on.
type TripServicer interface {
	Create(ctx context.Context, draft domain.TripDraft) (domain.Trip, bool, error)
	GetDetail(ctx context.Context, id uuid.UUID) (domain.TripDetail, error)
	ListPaged(ctx context.Context, filter domain.TripFilter, page domain.PaginationParams) ([]domain.Trip, int, error)
	Update(ctx context.Context, id uuid.UUID, upd domain.TripUpdate) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// createTripRequest is the POST /trips payload. Times are "HH:MM" strings
// and the date is "YYYY-MM-DD"; absent date defaults to today and absent
// status defaults to planned.
type createTripRequest struct {
	DirectionID *uuid.UUID        `json:"directionId"`
	LineID      *uuid.UUID        `json:"lineId"`
	ConductorID *uuid.UUID        `json:"conductorId"`
	StartTime   string            `json:"startTime"`
	EndTime     string            `json:"endTime"`
	Date        *domain.Date      `json:"date"`
	Status      domain.TripStatus `json:"status"`
}

// tripResponse is a trip with its associations, plus the duplicate marker
// set when the creation request matched an existing identical trip.
type tripResponse struct {
	domain.TripDetail
	Duplicate bool `json:"duplicate,omitempty"`
}

// CreateTrip handles POST /trips — the validated trip creation path.
// 201 with the new record on success; 200 with duplicate=true when an
// identical trip already exists; 422 on validation failure; 404 when the
// referenced direction or line does not exist.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := decodeJSON(r, &req); err != nil {
		writeRequestError(w, err.Error())
		return
	}

	trip, duplicate, err := s.trips.Create(r.Context(), domain.TripDraft{
		DirectionID: req.DirectionID,
		LineID:      req.LineID,
		ConductorID: req.ConductorID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Date:        req.Date,
		Status:      req.Status,
	})
	if err != nil {
		writeServiceError(w, err, "direction or line")
		return
	}

	detail, err := s.trips.GetDetail(r.Context(), trip.ID)
	if err != nil {
		writeServiceError(w, err, "trip")
		return
	}

	status := http.StatusCreated
	if duplicate {
		status = http.StatusOK
	}
	respondJSON(w, status, tripResponse{TripDetail: detail, Duplicate: duplicate})
}

// ListTrips handles GET /trips.
// Supports ?date=YYYY-MM-DD and ?direction_id= filters plus ?page=/?limit=.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	var filter domain.TripFilter
	if v := r.URL.Query().Get("date"); v != "" {
		d, err := domain.ParseDate(v)
		if err != nil {
			writeRequestError(w, err.Error())
			return
		}
		filter.Date = &d
	}
	if v := r.URL.Query().Get("direction_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeRequestError(w, "invalid direction_id: must be a UUID")
			return
		}
		filter.DirectionID = &id
	}

	page := pageParams(r)
	trips, total, err := s.trips.ListPaged(r.Context(), filter, page)
	if err != nil {
		writeServiceError(w, err, "trips")
		return
	}

	respondJSON(w, http.StatusOK, pagedResponse(trips, page, total))
}

// GetTrip handles GET /trips/{id}, serialized with line and conductor.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	detail, err := s.trips.GetDetail(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "trip")
		return
	}

	respondJSON(w, http.StatusOK, tripResponse{TripDetail: detail})
}

// UpdateTrip handles PATCH /trips/{id}.
// The body is a tri-state partial update: absent fields stay unchanged,
// nulls clear the nullable references. Window validation is not re-run.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	var upd domain.TripUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeRequestError(w, err.Error())
		return
	}

	updated, err := s.trips.Update(r.Context(), id, upd)
	if err != nil {
		writeServiceError(w, err, "trip")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "trip")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
