package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
)

// TripRepo defines the persistence operations for scheduled trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the validator to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record.
	// Returns domain.ErrDuplicate if another trip already holds the same
	// (direction, date, start, end) scheduling key.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// GetDetail retrieves a trip joined with its line and conductor
	// associations for display.
	GetDetail(ctx context.Context, id uuid.UUID) (domain.TripDetail, error)

	// FindBySchedule looks up the trip holding the given scheduling key.
	// Returns domain.ErrNotFound when no such trip exists.
	FindBySchedule(ctx context.Context, directionID uuid.UUID, date domain.Date, start, end domain.TimeOfDay) (domain.Trip, error)

	// ListPaged returns trips matching the filter ordered by date then start
	// time, plus the total row count for pagination.
	ListPaged(ctx context.Context, filter domain.TripFilter, page domain.PaginationParams) ([]domain.Trip, int, error)

	// Update applies a tri-state partial update and returns the updated
	// record. Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, id uuid.UUID, upd domain.TripUpdate) (domain.Trip, error)

	// Delete removes a trip by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, direction_id, line_id, conductor_id, service_date, start_time, end_time, status, created_at, updated_at`

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (direction_id, line_id, conductor_id, service_date, start_time, end_time, status)
		VALUES (@direction_id, @line_id, @conductor_id, @service_date, @start_time, @end_time, @status)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"direction_id": trip.DirectionID,
		"line_id":      trip.LineID, // nil becomes NULL
		"conductor_id": trip.ConductorID,
		"service_date": trip.ServiceDate.Time,
		"start_time":   trip.StartTime.Minutes(),
		"end_time":     trip.EndTime.Minutes(),
		"status":       string(trip.Status),
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgTripRepo) GetDetail(ctx context.Context, id uuid.UUID) (domain.TripDetail, error) {
	const q = `
		SELECT t.id, t.direction_id, t.line_id, t.conductor_id, t.service_date,
		       t.start_time, t.end_time, t.status, t.created_at, t.updated_at,
		       l.id, l.code, l.name, l.operating_start, l.operating_end, l.created_at, l.updated_at,
		       c.id, c.first_name, c.last_name, c.badge_number, c.hired_on, c.active, c.medical, c.created_at, c.updated_at
		FROM trips t
		LEFT JOIN lines l ON l.id = t.line_id
		LEFT JOIN conductors c ON c.id = t.conductor_id
		WHERE t.id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})

	var (
		detail domain.TripDetail
		tripID pgtype.UUID
		lineID, conductorID pgtype.UUID
		svcDate pgtype.Date
		start, end int16

		lID    pgtype.UUID
		lCode, lName pgtype.Text
		lStart, lEnd pgtype.Int2
		lCreated, lUpdated pgtype.Timestamptz

		cID    pgtype.UUID
		cFirst, cLast, cBadge pgtype.Text
		cHired pgtype.Date
		cActive pgtype.Bool
		cMedical []byte
		cCreated, cUpdated pgtype.Timestamptz
	)

	err := row.Scan(
		&tripID, &detail.DirectionID, &lineID, &conductorID, &svcDate,
		&start, &end, &detail.Status, &detail.CreatedAt, &detail.UpdatedAt,
		&lID, &lCode, &lName, &lStart, &lEnd, &lCreated, &lUpdated,
		&cID, &cFirst, &cLast, &cBadge, &cHired, &cActive, &cMedical, &cCreated, &cUpdated,
	)
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("repo.TripRepo.GetDetail: %w", mapErr(err))
	}

	detail.ID = uuid.UUID(tripID.Bytes)
	detail.ServiceDate = domain.Date{Time: svcDate.Time}
	detail.StartTime = domain.TimeOfDay(start)
	detail.EndTime = domain.TimeOfDay(end)
	if lineID.Valid {
		v := uuid.UUID(lineID.Bytes)
		detail.Trip.LineID = &v
	}
	if conductorID.Valid {
		v := uuid.UUID(conductorID.Bytes)
		detail.Trip.ConductorID = &v
	}

	if lID.Valid {
		line := domain.Line{
			ID:        uuid.UUID(lID.Bytes),
			Code:      lCode.String,
			Name:      lName.String,
			CreatedAt: lCreated.Time,
			UpdatedAt: lUpdated.Time,
		}
		if lStart.Valid {
			v := domain.TimeOfDay(lStart.Int16)
			line.OperatingStart = &v
		}
		if lEnd.Valid {
			v := domain.TimeOfDay(lEnd.Int16)
			line.OperatingEnd = &v
		}
		detail.Line = &line
	}

	if cID.Valid {
		cond := domain.Conductor{
			ID:          uuid.UUID(cID.Bytes),
			FirstName:   cFirst.String,
			LastName:    cLast.String,
			BadgeNumber: cBadge.String,
			HiredOn:     domain.Date{Time: cHired.Time},
			Active:      cActive.Bool,
			CreatedAt:   cCreated.Time,
			UpdatedAt:   cUpdated.Time,
		}
		if err := unmarshalJSONB(cMedical, &cond.Medical); err != nil {
			return domain.TripDetail{}, fmt.Errorf("repo.TripRepo.GetDetail: medical: %w", err)
		}
		detail.Conductor = &cond
	}

	return detail, nil
}

func (r *pgTripRepo) FindBySchedule(ctx context.Context, directionID uuid.UUID, date domain.Date, start, end domain.TimeOfDay) (domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE direction_id = @direction_id
		  AND service_date = @service_date
		  AND start_time = @start_time
		  AND end_time = @end_time`

	args := pgx.NamedArgs{
		"direction_id": directionID,
		"service_date": date.Time,
		"start_time":   start.Minutes(),
		"end_time":     end.Minutes(),
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.FindBySchedule: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgTripRepo) ListPaged(ctx context.Context, filter domain.TripFilter, page domain.PaginationParams) ([]domain.Trip, int, error) {
	where := []string{"true"}
	args := pgx.NamedArgs{"limit": page.Limit, "offset": page.Offset()}
	if filter.Date != nil {
		where = append(where, "service_date = @service_date")
		args["service_date"] = filter.Date.Time
	}
	if filter.DirectionID != nil {
		where = append(where, "direction_id = @direction_id")
		args["direction_id"] = *filter.DirectionID
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM trips WHERE `+cond, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}

	q := `SELECT ` + tripColumns + ` FROM trips WHERE ` + cond + `
		ORDER BY service_date DESC, start_time ASC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: rows: %w", err)
	}

	return trips, total, nil
}

// Update builds the SET list from only the touched fields, so an Unchanged
// patch never appears in the statement at all and a Clear becomes an
// explicit NULL assignment.
func (r *pgTripRepo) Update(ctx context.Context, id uuid.UUID, upd domain.TripUpdate) (domain.Trip, error) {
	sets := []string{"updated_at = now()"}
	args := pgx.NamedArgs{"id": id}

	if v, ok := upd.StartTime.Get(); ok {
		sets = append(sets, "start_time = @start_time")
		args["start_time"] = v.Minutes()
	}
	if v, ok := upd.EndTime.Get(); ok {
		sets = append(sets, "end_time = @end_time")
		args["end_time"] = v.Minutes()
	}
	if v, ok := upd.Date.Get(); ok {
		sets = append(sets, "service_date = @service_date")
		args["service_date"] = v.Time
	}
	if v, ok := upd.Status.Get(); ok {
		sets = append(sets, "status = @status")
		args["status"] = string(v)
	}
	switch v, ok := upd.ConductorID.Get(); {
	case ok:
		sets = append(sets, "conductor_id = @conductor_id")
		args["conductor_id"] = v
	case upd.ConductorID.Clear():
		sets = append(sets, "conductor_id = NULL")
	}
	switch v, ok := upd.LineID.Get(); {
	case ok:
		sets = append(sets, "line_id = @line_id")
		args["line_id"] = v
	case upd.LineID.Clear():
		sets = append(sets, "line_id = NULL")
	}

	q := `UPDATE trips SET ` + strings.Join(sets, ", ") + `
		WHERE id = @id
		RETURNING ` + tripColumns

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t           domain.Trip
		id          pgtype.UUID
		lineID      pgtype.UUID
		conductorID pgtype.UUID
		svcDate     pgtype.Date
		start, end  int16
	)

	err := s.Scan(&id, &t.DirectionID, &lineID, &conductorID, &svcDate, &start, &end, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.ServiceDate = domain.Date{Time: svcDate.Time}
	t.StartTime = domain.TimeOfDay(start)
	t.EndTime = domain.TimeOfDay(end)
	if lineID.Valid {
		v := uuid.UUID(lineID.Bytes)
		t.LineID = &v
	}
	if conductorID.Valid {
		v := uuid.UUID(conductorID.Bytes)
		t.ConductorID = &v
	}

	return t, nil
}
