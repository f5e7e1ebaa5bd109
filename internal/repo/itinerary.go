package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
)

// ItineraryRepo defines the persistence operations for itineraries and their
// ordered stop sequences.
type ItineraryRepo interface {
	Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	// GetByID retrieves an itinerary with its ordered stops loaded.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error)
	ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.Itinerary, int, error)
	Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// ReplaceStops replaces the itinerary's stop sequence with stopIDs in
	// the given order (positions 1..n) and returns the reloaded itinerary.
	ReplaceStops(ctx context.Context, id uuid.UUID, stopIDs []uuid.UUID) (domain.Itinerary, error)
}

type pgItineraryRepo struct {
	db db
}

// NewItineraryRepo constructs an ItineraryRepo backed by the provided db connection.
func NewItineraryRepo(db db) ItineraryRepo {
	return &pgItineraryRepo{db: db}
}

const itineraryColumns = `id, direction_id, name, created_at, updated_at`

func (r *pgItineraryRepo) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	const q = `
		INSERT INTO itineraries (direction_id, name)
		VALUES (@direction_id, @name)
		RETURNING ` + itineraryColumns

	args := pgx.NamedArgs{"direction_id": it.DirectionID, "name": it.Name}

	result, err := scanItinerary(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Create: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgItineraryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error) {
	const q = `SELECT ` + itineraryColumns + ` FROM itineraries WHERE id = @id`

	it, err := scanItinerary(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.GetByID: %w", mapErr(err))
	}

	stops, err := r.loadStops(ctx, id)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.GetByID: %w", err)
	}
	it.Stops = stops
	return it, nil
}

func (r *pgItineraryRepo) ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.Itinerary, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM itineraries`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListPaged: count: %w", err)
	}

	const q = `SELECT ` + itineraryColumns + ` FROM itineraries ORDER BY name LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": page.Limit, "offset": page.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var its []domain.Itinerary
	for rows.Next() {
		it, err := scanItinerary(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListPaged: scan: %w", err)
		}
		its = append(its, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListPaged: rows: %w", err)
	}

	return its, total, nil
}

func (r *pgItineraryRepo) Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	const q = `
		UPDATE itineraries
		SET direction_id = @direction_id,
		    name         = @name,
		    updated_at   = now()
		WHERE id = @id
		RETURNING ` + itineraryColumns

	args := pgx.NamedArgs{"id": it.ID, "direction_id": it.DirectionID, "name": it.Name}

	result, err := scanItinerary(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Update: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgItineraryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM itineraries WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// ReplaceStops uses delete-then-insert rather than diffing: stop sequences
// are short and callers always send the full ordered list.
func (r *pgItineraryRepo) ReplaceStops(ctx context.Context, id uuid.UUID, stopIDs []uuid.UUID) (domain.Itinerary, error) {
	if _, err := r.db.Exec(ctx, `DELETE FROM itinerary_stops WHERE itinerary_id = @id`, pgx.NamedArgs{"id": id}); err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.ReplaceStops: clear: %w", err)
	}

	const ins = `INSERT INTO itinerary_stops (itinerary_id, stop_id, position) VALUES (@itinerary_id, @stop_id, @position)`
	for i, stopID := range stopIDs {
		args := pgx.NamedArgs{"itinerary_id": id, "stop_id": stopID, "position": i + 1}
		if _, err := r.db.Exec(ctx, ins, args); err != nil {
			return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.ReplaceStops: insert: %w", mapErr(err))
		}
	}

	return r.GetByID(ctx, id)
}

func (r *pgItineraryRepo) loadStops(ctx context.Context, id uuid.UUID) ([]domain.ItineraryStop, error) {
	const q = `
		SELECT s.id, s.code, s.name, s.latitude, s.longitude, s.created_at, s.updated_at, ist.position
		FROM itinerary_stops ist
		JOIN stops s ON s.id = ist.stop_id
		WHERE ist.itinerary_id = @id
		ORDER BY ist.position`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, fmt.Errorf("stops: %w", err)
	}
	defer rows.Close()

	var stops []domain.ItineraryStop
	for rows.Next() {
		var (
			is domain.ItineraryStop
			id pgtype.UUID
		)
		err := rows.Scan(&id, &is.Code, &is.Name, &is.Latitude, &is.Longitude, &is.CreatedAt, &is.UpdatedAt, &is.Position)
		if err != nil {
			return nil, fmt.Errorf("stops: scan: %w", err)
		}
		is.Stop.ID = uuid.UUID(id.Bytes)
		stops = append(stops, is)
	}
	return stops, rows.Err()
}

func scanItinerary(s scanner) (domain.Itinerary, error) {
	var (
		it domain.Itinerary
		id pgtype.UUID
	)

	err := s.Scan(&id, &it.DirectionID, &it.Name, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return domain.Itinerary{}, err
	}

	it.ID = uuid.UUID(id.Bytes)
	return it, nil
}
