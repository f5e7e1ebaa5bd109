package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
)

// StopRepo defines the persistence operations for network stops.
type StopRepo interface {
	Create(ctx context.Context, s domain.Stop) (domain.Stop, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Stop, error)
	ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.Stop, int, error)
	Update(ctx context.Context, s domain.Stop) (domain.Stop, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgStopRepo struct {
	db db
}

// NewStopRepo constructs a StopRepo backed by the provided db connection.
func NewStopRepo(db db) StopRepo {
	return &pgStopRepo{db: db}
}

const stopColumns = `id, code, name, latitude, longitude, created_at, updated_at`

func (r *pgStopRepo) Create(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	const q = `
		INSERT INTO stops (code, name, latitude, longitude)
		VALUES (@code, @name, @latitude, @longitude)
		RETURNING ` + stopColumns

	args := pgx.NamedArgs{
		"code":      stop.Code,
		"name":      stop.Name,
		"latitude":  stop.Latitude,
		"longitude": stop.Longitude,
	}

	result, err := scanStop(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.Create: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgStopRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Stop, error) {
	const q = `SELECT ` + stopColumns + ` FROM stops WHERE id = @id`

	result, err := scanStop(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.GetByID: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgStopRepo) ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.Stop, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM stops`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.StopRepo.ListPaged: count: %w", err)
	}

	const q = `SELECT ` + stopColumns + ` FROM stops ORDER BY code LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": page.Limit, "offset": page.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.StopRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var stops []domain.Stop
	for rows.Next() {
		s, err := scanStop(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.StopRepo.ListPaged: scan: %w", err)
		}
		stops = append(stops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.StopRepo.ListPaged: rows: %w", err)
	}

	return stops, total, nil
}

func (r *pgStopRepo) Update(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	const q = `
		UPDATE stops
		SET code       = @code,
		    name       = @name,
		    latitude   = @latitude,
		    longitude  = @longitude,
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + stopColumns

	args := pgx.NamedArgs{
		"id":        stop.ID,
		"code":      stop.Code,
		"name":      stop.Name,
		"latitude":  stop.Latitude,
		"longitude": stop.Longitude,
	}

	result, err := scanStop(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.Update: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgStopRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM stops WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.StopRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.StopRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanStop(s scanner) (domain.Stop, error) {
	var (
		stop domain.Stop
		id   pgtype.UUID
	)

	err := s.Scan(&id, &stop.Code, &stop.Name, &stop.Latitude, &stop.Longitude, &stop.CreatedAt, &stop.UpdatedAt)
	if err != nil {
		return domain.Stop{}, err
	}

	stop.ID = uuid.UUID(id.Bytes)
	return stop, nil
}
