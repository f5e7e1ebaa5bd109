package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
)

// CheckInServicer defines the business operations the check-in handler
// depends on.
type CheckInServicer interface {
	Create(ctx context.Context, c domain.CheckIn) (domain.CheckIn, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.CheckIn, error)
	ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.CheckIn, int, error)
	Update(ctx context.Context, c domain.CheckIn) (domain.CheckIn, error)
	Delete(ctx context.Context, id uuid.UUID) error
	StatsForDate(ctx context.Context, date domain.Date) (domain.CheckInStats, error)
}

// CreateCheckIn handles POST /checkins.
func (s *Server) CreateCheckIn(w http.ResponseWriter, r *http.Request) {
	var c domain.CheckIn
	if err := decodeJSON(r, &c); err != nil {
		writeRequestError(w, err.Error())
		return
	}

	created, err := s.checkIns.Create(r.Context(), c)
	if err != nil {
		writeServiceError(w, err, "trip")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// ListCheckIns handles GET /checkins.
func (s *Server) ListCheckIns(w http.ResponseWriter, r *http.Request) {
	page := pageParams(r)
	checkIns, total, err := s.checkIns.ListPaged(r.Context(), page)
	if err != nil {
		writeServiceError(w, err, "checkins")
		return
	}

	respondJSON(w, http.StatusOK, pagedResponse(checkIns, page, total))
}

// GetCheckIn handles GET /checkins/{id}.
func (s *Server) GetCheckIn(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	checkIn, err := s.checkIns.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "check-in")
		return
	}

	respondJSON(w, http.StatusOK, checkIn)
}

// UpdateCheckIn handles PUT /checkins/{id}.
func (s *Server) UpdateCheckIn(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	var c domain.CheckIn
	if err := decodeJSON(r, &c); err != nil {
		writeRequestError(w, err.Error())
		return
	}
	c.ID = id

	updated, err := s.checkIns.Update(r.Context(), c)
	if err != nil {
		writeServiceError(w, err, "check-in")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DeleteCheckIn handles DELETE /checkins/{id}.
func (s *Server) DeleteCheckIn(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	if err := s.checkIns.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "check-in")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CheckInStats handles GET /stats/checkins?date=YYYY-MM-DD, the daily
// dispatch report. The date defaults to today.
func (s *Server) CheckInStats(w http.ResponseWriter, r *http.Request) {
	date := domain.Today()
	if v := r.URL.Query().Get("date"); v != "" {
		d, err := domain.ParseDate(v)
		if err != nil {
			writeRequestError(w, err.Error())
			return
		}
		date = d
	}

	stats, err := s.checkIns.StatsForDate(r.Context(), date)
	if err != nil {
		writeServiceError(w, err, "stats")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
