package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
)

// CheckInRepo defines the persistence operations for dispatch check-ins,
// including the daily aggregate statistics query.
type CheckInRepo interface {
	Create(ctx context.Context, c domain.CheckIn) (domain.CheckIn, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.CheckIn, error)
	ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.CheckIn, int, error)
	Update(ctx context.Context, c domain.CheckIn) (domain.CheckIn, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// StatsForDate aggregates the check-ins of one calendar day grouped by
	// conductor, hour of day, vehicle type, and line.
	StatsForDate(ctx context.Context, date domain.Date) (domain.CheckInStats, error)
}

type pgCheckInRepo struct {
	db db
}

// NewCheckInRepo constructs a CheckInRepo backed by the provided db connection.
func NewCheckInRepo(db db) CheckInRepo {
	return &pgCheckInRepo{db: db}
}

const checkInColumns = `id, trip_id, conductor_id, vehicle_id, checked_at, equipment, remarks, created_at, updated_at`

func (r *pgCheckInRepo) Create(ctx context.Context, c domain.CheckIn) (domain.CheckIn, error) {
	const q = `
		INSERT INTO check_ins (trip_id, conductor_id, vehicle_id, checked_at, equipment, remarks)
		VALUES (@trip_id, @conductor_id, @vehicle_id, @checked_at, @equipment, @remarks)
		RETURNING ` + checkInColumns

	args := pgx.NamedArgs{
		"trip_id":      c.TripID,
		"conductor_id": c.ConductorID,
		"vehicle_id":   c.VehicleID,
		"checked_at":   c.CheckedAt,
		"equipment":    c.Equipment,
		"remarks":      c.Remarks,
	}

	result, err := scanCheckIn(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.CheckIn{}, fmt.Errorf("repo.CheckInRepo.Create: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgCheckInRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.CheckIn, error) {
	const q = `SELECT ` + checkInColumns + ` FROM check_ins WHERE id = @id`

	result, err := scanCheckIn(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.CheckIn{}, fmt.Errorf("repo.CheckInRepo.GetByID: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgCheckInRepo) ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.CheckIn, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM check_ins`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.CheckInRepo.ListPaged: count: %w", err)
	}

	const q = `SELECT ` + checkInColumns + ` FROM check_ins ORDER BY checked_at DESC LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": page.Limit, "offset": page.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.CheckInRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var checkIns []domain.CheckIn
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.CheckInRepo.ListPaged: scan: %w", err)
		}
		checkIns = append(checkIns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.CheckInRepo.ListPaged: rows: %w", err)
	}

	return checkIns, total, nil
}

func (r *pgCheckInRepo) Update(ctx context.Context, c domain.CheckIn) (domain.CheckIn, error) {
	const q = `
		UPDATE check_ins
		SET trip_id      = @trip_id,
		    conductor_id = @conductor_id,
		    vehicle_id   = @vehicle_id,
		    checked_at   = @checked_at,
		    equipment    = @equipment,
		    remarks      = @remarks,
		    updated_at   = now()
		WHERE id = @id
		RETURNING ` + checkInColumns

	args := pgx.NamedArgs{
		"id":           c.ID,
		"trip_id":      c.TripID,
		"conductor_id": c.ConductorID,
		"vehicle_id":   c.VehicleID,
		"checked_at":   c.CheckedAt,
		"equipment":    c.Equipment,
		"remarks":      c.Remarks,
	}

	result, err := scanCheckIn(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.CheckIn{}, fmt.Errorf("repo.CheckInRepo.Update: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgCheckInRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM check_ins WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.CheckInRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.CheckInRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// StatsForDate runs one grouped query per reporting dimension. The check_ins
// volume per day is small (one row per departure), so four indexed scans are
// cheaper than shipping raw rows to Go and grouping there.
func (r *pgCheckInRepo) StatsForDate(ctx context.Context, date domain.Date) (domain.CheckInStats, error) {
	stats := domain.CheckInStats{Date: date}
	args := pgx.NamedArgs{"day": date.Time}

	const dayFilter = `ci.checked_at >= @day AND ci.checked_at < @day + interval '1 day'`

	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM check_ins ci WHERE `+dayFilter, args).Scan(&stats.Total); err != nil {
		return domain.CheckInStats{}, fmt.Errorf("repo.CheckInRepo.StatsForDate: total: %w", err)
	}

	queries := []struct {
		name string
		sql  string
		dest *[]domain.StatBucket
	}{
		{
			name: "by_conductor",
			sql: `SELECT c.badge_number || ' ' || c.last_name, count(*)
				FROM check_ins ci
				JOIN conductors c ON c.id = ci.conductor_id
				WHERE ` + dayFilter + `
				GROUP BY 1 ORDER BY 2 DESC, 1`,
			dest: &stats.ByConductor,
		},
		{
			name: "by_hour",
			sql: `SELECT to_char(extract(hour FROM ci.checked_at), 'FM00'), count(*)
				FROM check_ins ci
				WHERE ` + dayFilter + `
				GROUP BY 1 ORDER BY 1`,
			dest: &stats.ByHour,
		},
		{
			name: "by_vehicle_type",
			sql: `SELECT v.type, count(*)
				FROM check_ins ci
				JOIN vehicles v ON v.id = ci.vehicle_id
				WHERE ` + dayFilter + `
				GROUP BY 1 ORDER BY 2 DESC, 1`,
			dest: &stats.ByVehicleType,
		},
		{
			name: "by_line",
			sql: `SELECT coalesce(l.code, 'unassigned'), count(*)
				FROM check_ins ci
				JOIN trips t ON t.id = ci.trip_id
				LEFT JOIN lines l ON l.id = t.line_id
				WHERE ` + dayFilter + `
				GROUP BY 1 ORDER BY 2 DESC, 1`,
			dest: &stats.ByLine,
		},
	}

	for _, q := range queries {
		buckets, err := r.statBuckets(ctx, q.sql, args)
		if err != nil {
			return domain.CheckInStats{}, fmt.Errorf("repo.CheckInRepo.StatsForDate: %s: %w", q.name, err)
		}
		*q.dest = buckets
	}

	return stats, nil
}

func (r *pgCheckInRepo) statBuckets(ctx context.Context, sql string, args pgx.NamedArgs) ([]domain.StatBucket, error) {
	rows, err := r.db.Query(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buckets := []domain.StatBucket{}
	for rows.Next() {
		var b domain.StatBucket
		if err := rows.Scan(&b.Key, &b.Count); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

func scanCheckIn(s scanner) (domain.CheckIn, error) {
	var (
		c         domain.CheckIn
		id        pgtype.UUID
		equipment []byte
	)

	err := s.Scan(&id, &c.TripID, &c.ConductorID, &c.VehicleID, &c.CheckedAt, &equipment, &c.Remarks, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.CheckIn{}, err
	}

	c.ID = uuid.UUID(id.Bytes)
	if err := unmarshalJSONB(equipment, &c.Equipment); err != nil {
		return domain.CheckIn{}, fmt.Errorf("equipment: %w", err)
	}
	return c, nil
}
