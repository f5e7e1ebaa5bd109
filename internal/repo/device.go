package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
)

// DeviceRepo defines the persistence operations for SAEIV devices.
type DeviceRepo interface {
	Create(ctx context.Context, d domain.Device) (domain.Device, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Device, error)
	ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.Device, int, error)
	Update(ctx context.Context, d domain.Device) (domain.Device, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgDeviceRepo struct {
	db db
}

// NewDeviceRepo constructs a DeviceRepo backed by the provided db connection.
func NewDeviceRepo(db db) DeviceRepo {
	return &pgDeviceRepo{db: db}
}

const deviceColumns = `id, vehicle_id, serial, firmware, status, last_seen_at, created_at, updated_at`

func (r *pgDeviceRepo) Create(ctx context.Context, d domain.Device) (domain.Device, error) {
	const q = `
		INSERT INTO devices (vehicle_id, serial, firmware, status, last_seen_at)
		VALUES (@vehicle_id, @serial, @firmware, @status, @last_seen_at)
		RETURNING ` + deviceColumns

	result, err := scanDevice(r.db.QueryRow(ctx, q, deviceArgs(d)))
	if err != nil {
		return domain.Device{}, fmt.Errorf("repo.DeviceRepo.Create: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgDeviceRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Device, error) {
	const q = `SELECT ` + deviceColumns + ` FROM devices WHERE id = @id`

	result, err := scanDevice(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Device{}, fmt.Errorf("repo.DeviceRepo.GetByID: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgDeviceRepo) ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.Device, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM devices`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.DeviceRepo.ListPaged: count: %w", err)
	}

	const q = `SELECT ` + deviceColumns + ` FROM devices ORDER BY serial LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": page.Limit, "offset": page.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.DeviceRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var devices []domain.Device
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.DeviceRepo.ListPaged: scan: %w", err)
		}
		devices = append(devices, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.DeviceRepo.ListPaged: rows: %w", err)
	}

	return devices, total, nil
}

func (r *pgDeviceRepo) Update(ctx context.Context, d domain.Device) (domain.Device, error) {
	const q = `
		UPDATE devices
		SET vehicle_id   = @vehicle_id,
		    serial       = @serial,
		    firmware     = @firmware,
		    status       = @status,
		    last_seen_at = @last_seen_at,
		    updated_at   = now()
		WHERE id = @id
		RETURNING ` + deviceColumns

	args := deviceArgs(d)
	args["id"] = d.ID

	result, err := scanDevice(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Device{}, fmt.Errorf("repo.DeviceRepo.Update: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgDeviceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM devices WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.DeviceRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DeviceRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func deviceArgs(d domain.Device) pgx.NamedArgs {
	return pgx.NamedArgs{
		"vehicle_id":   d.VehicleID, // nil becomes NULL
		"serial":       d.Serial,
		"firmware":     d.Firmware,
		"status":       string(d.Status),
		"last_seen_at": d.LastSeenAt,
	}
}

func scanDevice(s scanner) (domain.Device, error) {
	var (
		d         domain.Device
		id        pgtype.UUID
		vehicleID pgtype.UUID
		lastSeen  pgtype.Timestamptz
	)

	err := s.Scan(&id, &vehicleID, &d.Serial, &d.Firmware, &d.Status, &lastSeen, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return domain.Device{}, err
	}

	d.ID = uuid.UUID(id.Bytes)
	if vehicleID.Valid {
		v := uuid.UUID(vehicleID.Bytes)
		d.VehicleID = &v
	}
	if lastSeen.Valid {
		t := lastSeen.Time
		d.LastSeenAt = &t
	}
	return d, nil
}
