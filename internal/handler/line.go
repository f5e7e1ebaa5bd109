package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
)

// LineServicer defines the business operations the line handler depends on.
type LineServicer interface {
	Create(ctx context.Context, l domain.Line) (domain.Line, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Line, error)
	ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.Line, int, error)
	Directions(ctx context.Context, lineID uuid.UUID) ([]domain.Direction, error)
	Update(ctx context.Context, l domain.Line) (domain.Line, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateLine handles POST /lines.
func (s *Server) CreateLine(w http.ResponseWriter, r *http.Request) {
	var l domain.Line
	if err := decodeJSON(r, &l); err != nil {
		writeRequestError(w, err.Error())
		return
	}

	created, err := s.lines.Create(r.Context(), l)
	if err != nil {
		writeServiceError(w, err, "line")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// ListLines handles GET /lines.
func (s *Server) ListLines(w http.ResponseWriter, r *http.Request) {
	page := pageParams(r)
	lines, total, err := s.lines.ListPaged(r.Context(), page)
	if err != nil {
		writeServiceError(w, err, "lines")
		return
	}

	respondJSON(w, http.StatusOK, pagedResponse(lines, page, total))
}

// GetLine handles GET /lines/{id}.
func (s *Server) GetLine(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	line, err := s.lines.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "line")
		return
	}

	respondJSON(w, http.StatusOK, line)
}

// ListLineDirections handles GET /lines/{id}/directions, returning the
// line's directions ordered by ordinal.
func (s *Server) ListLineDirections(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	directions, err := s.lines.Directions(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "line")
		return
	}

	respondJSON(w, http.StatusOK, directions)
}

// UpdateLine handles PUT /lines/{id}.
func (s *Server) UpdateLine(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	var l domain.Line
	if err := decodeJSON(r, &l); err != nil {
		writeRequestError(w, err.Error())
		return
	}
	l.ID = id

	updated, err := s.lines.Update(r.Context(), l)
	if err != nil {
		writeServiceError(w, err, "line")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DeleteLine handles DELETE /lines/{id}.
func (s *Server) DeleteLine(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	if err := s.lines.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "line")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
