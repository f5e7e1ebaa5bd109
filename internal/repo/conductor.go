package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
)

// ConductorRepo defines the persistence operations for conductors.
type ConductorRepo interface {
	Create(ctx context.Context, c domain.Conductor) (domain.Conductor, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Conductor, error)
	ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.Conductor, int, error)
	Update(ctx context.Context, c domain.Conductor) (domain.Conductor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgConductorRepo struct {
	db db
}

// NewConductorRepo constructs a ConductorRepo backed by the provided db connection.
func NewConductorRepo(db db) ConductorRepo {
	return &pgConductorRepo{db: db}
}

const conductorColumns = `id, first_name, last_name, badge_number, hired_on, active, medical, created_at, updated_at`

func (r *pgConductorRepo) Create(ctx context.Context, c domain.Conductor) (domain.Conductor, error) {
	const q = `
		INSERT INTO conductors (first_name, last_name, badge_number, hired_on, active, medical)
		VALUES (@first_name, @last_name, @badge_number, @hired_on, @active, @medical)
		RETURNING ` + conductorColumns

	result, err := scanConductor(r.db.QueryRow(ctx, q, conductorArgs(c)))
	if err != nil {
		return domain.Conductor{}, fmt.Errorf("repo.ConductorRepo.Create: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgConductorRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Conductor, error) {
	const q = `SELECT ` + conductorColumns + ` FROM conductors WHERE id = @id`

	result, err := scanConductor(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Conductor{}, fmt.Errorf("repo.ConductorRepo.GetByID: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgConductorRepo) ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.Conductor, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM conductors`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.ConductorRepo.ListPaged: count: %w", err)
	}

	const q = `SELECT ` + conductorColumns + ` FROM conductors ORDER BY last_name, first_name LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": page.Limit, "offset": page.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ConductorRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var conductors []domain.Conductor
	for rows.Next() {
		c, err := scanConductor(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.ConductorRepo.ListPaged: scan: %w", err)
		}
		conductors = append(conductors, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.ConductorRepo.ListPaged: rows: %w", err)
	}

	return conductors, total, nil
}

func (r *pgConductorRepo) Update(ctx context.Context, c domain.Conductor) (domain.Conductor, error) {
	const q = `
		UPDATE conductors
		SET first_name   = @first_name,
		    last_name    = @last_name,
		    badge_number = @badge_number,
		    hired_on     = @hired_on,
		    active       = @active,
		    medical      = @medical,
		    updated_at   = now()
		WHERE id = @id
		RETURNING ` + conductorColumns

	args := conductorArgs(c)
	args["id"] = c.ID

	result, err := scanConductor(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Conductor{}, fmt.Errorf("repo.ConductorRepo.Update: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgConductorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM conductors WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ConductorRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ConductorRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func conductorArgs(c domain.Conductor) pgx.NamedArgs {
	return pgx.NamedArgs{
		"first_name":   c.FirstName,
		"last_name":    c.LastName,
		"badge_number": c.BadgeNumber,
		"hired_on":     c.HiredOn.Time,
		"active":       c.Active,
		"medical":      c.Medical,
	}
}

func scanConductor(s scanner) (domain.Conductor, error) {
	var (
		c       domain.Conductor
		id      pgtype.UUID
		hired   pgtype.Date
		medical []byte
	)

	err := s.Scan(&id, &c.FirstName, &c.LastName, &c.BadgeNumber, &hired, &c.Active, &medical, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Conductor{}, err
	}

	c.ID = uuid.UUID(id.Bytes)
	c.HiredOn = domain.Date{Time: hired.Time}
	if err := unmarshalJSONB(medical, &c.Medical); err != nil {
		return domain.Conductor{}, fmt.Errorf("medical: %w", err)
	}
	return c, nil
}
