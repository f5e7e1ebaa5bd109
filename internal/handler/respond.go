package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
)

// respondJSON writes v as a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into dst, rejecting unknown fields so
// misspelled keys fail loudly instead of being silently dropped.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %v", err)
	}
	return nil
}

// idParam extracts and parses the {id} URL parameter.
func idParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id: must be a UUID")
	}
	return id, nil
}

// pageParams builds pagination from the ?page= and ?limit= query parameters.
// Unparseable values fall back to the defaults.
func pageParams(r *http.Request) domain.PaginationParams {
	var page, limit *int
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		page = &v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		limit = &v
	}
	return domain.NewPaginationParams(page, limit)
}

// pagination echoes the applied paging back to the client alongside the
// total row count.
type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// listResponse is the envelope for every paginated listing.
type listResponse struct {
	Data       any        `json:"data"`
	Pagination pagination `json:"pagination"`
}

func pagedResponse(data any, p domain.PaginationParams, total int) listResponse {
	return listResponse{
		Data:       data,
		Pagination: pagination{Page: p.Page, Limit: p.Limit, Total: total},
	}
}
