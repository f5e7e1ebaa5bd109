package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
)

// VehicleRepo defines the persistence operations for fleet vehicles.
type VehicleRepo interface {
	Create(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Vehicle, error)
	ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.Vehicle, int, error)
	Update(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgVehicleRepo struct {
	db db
}

// NewVehicleRepo constructs a VehicleRepo backed by the provided db connection.
func NewVehicleRepo(db db) VehicleRepo {
	return &pgVehicleRepo{db: db}
}

const vehicleColumns = `id, fleet_number, registration, type, capacity, in_service, options, created_at, updated_at`

func (r *pgVehicleRepo) Create(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	const q = `
		INSERT INTO vehicles (fleet_number, registration, type, capacity, in_service, options)
		VALUES (@fleet_number, @registration, @type, @capacity, @in_service, @options)
		RETURNING ` + vehicleColumns

	args := pgx.NamedArgs{
		"fleet_number": v.FleetNumber,
		"registration": v.Registration,
		"type":         string(v.Type),
		"capacity":     v.Capacity,
		"in_service":   v.InService,
		"options":      v.Options,
	}

	result, err := scanVehicle(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.Create: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgVehicleRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Vehicle, error) {
	const q = `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = @id`

	result, err := scanVehicle(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.GetByID: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgVehicleRepo) ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.Vehicle, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM vehicles`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.VehicleRepo.ListPaged: count: %w", err)
	}

	const q = `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY fleet_number LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": page.Limit, "offset": page.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.VehicleRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.VehicleRepo.ListPaged: scan: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.VehicleRepo.ListPaged: rows: %w", err)
	}

	return vehicles, total, nil
}

func (r *pgVehicleRepo) Update(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	const q = `
		UPDATE vehicles
		SET fleet_number = @fleet_number,
		    registration = @registration,
		    type         = @type,
		    capacity     = @capacity,
		    in_service   = @in_service,
		    options      = @options,
		    updated_at   = now()
		WHERE id = @id
		RETURNING ` + vehicleColumns

	args := pgx.NamedArgs{
		"id":           v.ID,
		"fleet_number": v.FleetNumber,
		"registration": v.Registration,
		"type":         string(v.Type),
		"capacity":     v.Capacity,
		"in_service":   v.InService,
		"options":      v.Options,
	}

	result, err := scanVehicle(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.Update: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgVehicleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.VehicleRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.VehicleRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanVehicle(s scanner) (domain.Vehicle, error) {
	var (
		v       domain.Vehicle
		id      pgtype.UUID
		options []byte
	)

	err := s.Scan(&id, &v.FleetNumber, &v.Registration, &v.Type, &v.Capacity, &v.InService, &options, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return domain.Vehicle{}, err
	}

	v.ID = uuid.UUID(id.Bytes)
	if err := unmarshalJSONB(options, &v.Options); err != nil {
		return domain.Vehicle{}, fmt.Errorf("options: %w", err)
	}
	return v, nil
}
