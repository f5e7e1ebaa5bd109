package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
)

// LineRepo defines the persistence operations for lines.
// The trip validator reads the operating window through GetByID.
type LineRepo interface {
	Create(ctx context.Context, l domain.Line) (domain.Line, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Line, error)
	ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.Line, int, error)
	Update(ctx context.Context, l domain.Line) (domain.Line, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgLineRepo struct {
	db db
}

// NewLineRepo constructs a LineRepo backed by the provided db connection.
func NewLineRepo(db db) LineRepo {
	return &pgLineRepo{db: db}
}

const lineColumns = `id, code, name, operating_start, operating_end, created_at, updated_at`

func (r *pgLineRepo) Create(ctx context.Context, l domain.Line) (domain.Line, error) {
	const q = `
		INSERT INTO lines (code, name, operating_start, operating_end)
		VALUES (@code, @name, @operating_start, @operating_end)
		RETURNING ` + lineColumns

	result, err := scanLine(r.db.QueryRow(ctx, q, lineArgs(l)))
	if err != nil {
		return domain.Line{}, fmt.Errorf("repo.LineRepo.Create: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgLineRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Line, error) {
	const q = `SELECT ` + lineColumns + ` FROM lines WHERE id = @id`

	result, err := scanLine(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Line{}, fmt.Errorf("repo.LineRepo.GetByID: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgLineRepo) ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.Line, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM lines`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.LineRepo.ListPaged: count: %w", err)
	}

	const q = `SELECT ` + lineColumns + ` FROM lines ORDER BY code LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": page.Limit, "offset": page.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.LineRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var lines []domain.Line
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.LineRepo.ListPaged: scan: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.LineRepo.ListPaged: rows: %w", err)
	}

	return lines, total, nil
}

func (r *pgLineRepo) Update(ctx context.Context, l domain.Line) (domain.Line, error) {
	const q = `
		UPDATE lines
		SET code            = @code,
		    name            = @name,
		    operating_start = @operating_start,
		    operating_end   = @operating_end,
		    updated_at      = now()
		WHERE id = @id
		RETURNING ` + lineColumns

	args := lineArgs(l)
	args["id"] = l.ID

	result, err := scanLine(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Line{}, fmt.Errorf("repo.LineRepo.Update: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgLineRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM lines WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.LineRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.LineRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func lineArgs(l domain.Line) pgx.NamedArgs {
	args := pgx.NamedArgs{
		"code":            l.Code,
		"name":            l.Name,
		"operating_start": nil,
		"operating_end":   nil,
	}
	if l.OperatingStart != nil {
		args["operating_start"] = l.OperatingStart.Minutes()
	}
	if l.OperatingEnd != nil {
		args["operating_end"] = l.OperatingEnd.Minutes()
	}
	return args
}

func scanLine(s scanner) (domain.Line, error) {
	var (
		l          domain.Line
		id         pgtype.UUID
		start, end pgtype.Int2
	)

	err := s.Scan(&id, &l.Code, &l.Name, &start, &end, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return domain.Line{}, err
	}

	l.ID = uuid.UUID(id.Bytes)
	if start.Valid {
		v := domain.TimeOfDay(start.Int16)
		l.OperatingStart = &v
	}
	if end.Valid {
		v := domain.TimeOfDay(end.Int16)
		l.OperatingEnd = &v
	}
	return l, nil
}
