package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
)

// DirectionRepo defines the persistence operations for directions.
type DirectionRepo interface {
	Create(ctx context.Context, d domain.Direction) (domain.Direction, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Direction, error)
	ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.Direction, int, error)
	// ListByLineID returns all directions of a line ordered by ordinal.
	ListByLineID(ctx context.Context, lineID uuid.UUID) ([]domain.Direction, error)
	Update(ctx context.Context, d domain.Direction) (domain.Direction, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgDirectionRepo struct {
	db db
}

// NewDirectionRepo constructs a DirectionRepo backed by the provided db connection.
func NewDirectionRepo(db db) DirectionRepo {
	return &pgDirectionRepo{db: db}
}

const directionColumns = `id, line_id, label, ordinal, created_at, updated_at`

func (r *pgDirectionRepo) Create(ctx context.Context, d domain.Direction) (domain.Direction, error) {
	const q = `
		INSERT INTO directions (line_id, label, ordinal)
		VALUES (@line_id, @label, @ordinal)
		RETURNING ` + directionColumns

	args := pgx.NamedArgs{"line_id": d.LineID, "label": d.Label, "ordinal": d.Ordinal}

	result, err := scanDirection(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Direction{}, fmt.Errorf("repo.DirectionRepo.Create: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgDirectionRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Direction, error) {
	const q = `SELECT ` + directionColumns + ` FROM directions WHERE id = @id`

	result, err := scanDirection(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Direction{}, fmt.Errorf("repo.DirectionRepo.GetByID: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgDirectionRepo) ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.Direction, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM directions`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.DirectionRepo.ListPaged: count: %w", err)
	}

	const q = `SELECT ` + directionColumns + ` FROM directions ORDER BY line_id, ordinal LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": page.Limit, "offset": page.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.DirectionRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	directions, err := collectDirections(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.DirectionRepo.ListPaged: %w", err)
	}
	return directions, total, nil
}

func (r *pgDirectionRepo) ListByLineID(ctx context.Context, lineID uuid.UUID) ([]domain.Direction, error) {
	const q = `SELECT ` + directionColumns + ` FROM directions WHERE line_id = @line_id ORDER BY ordinal`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"line_id": lineID})
	if err != nil {
		return nil, fmt.Errorf("repo.DirectionRepo.ListByLineID: %w", err)
	}
	defer rows.Close()

	directions, err := collectDirections(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.DirectionRepo.ListByLineID: %w", err)
	}
	return directions, nil
}

func (r *pgDirectionRepo) Update(ctx context.Context, d domain.Direction) (domain.Direction, error) {
	const q = `
		UPDATE directions
		SET line_id    = @line_id,
		    label      = @label,
		    ordinal    = @ordinal,
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + directionColumns

	args := pgx.NamedArgs{"id": d.ID, "line_id": d.LineID, "label": d.Label, "ordinal": d.Ordinal}

	result, err := scanDirection(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Direction{}, fmt.Errorf("repo.DirectionRepo.Update: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgDirectionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM directions WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.DirectionRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DirectionRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func collectDirections(rows pgx.Rows) ([]domain.Direction, error) {
	var directions []domain.Direction
	for rows.Next() {
		d, err := scanDirection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		directions = append(directions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return directions, nil
}

func scanDirection(s scanner) (domain.Direction, error) {
	var (
		d  domain.Direction
		id pgtype.UUID
	)

	err := s.Scan(&id, &d.LineID, &d.Label, &d.Ordinal, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return domain.Direction{}, err
	}

	d.ID = uuid.UUID(id.Bytes)
	return d, nil
}
