package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
	"github.com/rbe-dev-920/tce-serv/internal/service"
)

func timeOfDay(t *testing.T, s string) domain.TimeOfDay {
	t.Helper()
	v, err := domain.ParseTimeOfDay(s)
	require.NoError(t, err)
	return v
}

func windowLine(t *testing.T, open, close string) domain.Line {
	t.Helper()
	o := timeOfDay(t, open)
	c := timeOfDay(t, close)
	return domain.Line{ID: uuid.New(), Code: "T1", Name: "Test Line", OperatingStart: &o, OperatingEnd: &c}
}

// directionExists returns a direction repo that answers GetByID for any ID.
func directionExists() *directionRepoMock {
	return &directionRepoMock{
		getByIDFn: func(_ context.Context, id uuid.UUID) (domain.Direction, error) {
			return domain.Direction{ID: id}, nil
		},
	}
}

// acceptingTripRepo answers the happy path: no existing trip, inserts succeed.
func acceptingTripRepo() *tripRepoMock {
	return &tripRepoMock{
		findByScheduleFn: func(context.Context, uuid.UUID, domain.Date, domain.TimeOfDay, domain.TimeOfDay) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
		createFn: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
			trip.ID = uuid.New()
			trip.CreatedAt = time.Now()
			trip.UpdatedAt = trip.CreatedAt
			return trip, nil
		},
	}
}

func draft(directionID uuid.UUID, start, end string) domain.TripDraft {
	return domain.TripDraft{DirectionID: &directionID, StartTime: start, EndTime: end}
}

// TestTripCreate_missingFields verifies that incomplete drafts are rejected
// with every missing field named, before any repo is touched. The mocks
// panic on any call, so reaching the database would fail the test.
func TestTripCreate_missingFields(t *testing.T) {
	svc := service.NewTripService(&tripRepoMock{}, &directionRepoMock{}, &lineRepoMock{}, nil, nil)
	directionID := uuid.New()

	tests := []struct {
		name    string
		draft   domain.TripDraft
		wantMsg string
	}{
		{name: "all missing", draft: domain.TripDraft{}, wantMsg: "directionId, startTime, endTime"},
		{name: "no direction", draft: domain.TripDraft{StartTime: "08:00", EndTime: "09:00"}, wantMsg: "directionId"},
		{name: "no start", draft: domain.TripDraft{DirectionID: &directionID, EndTime: "09:00"}, wantMsg: "startTime"},
		{name: "no end", draft: domain.TripDraft{DirectionID: &directionID, StartTime: "08:00"}, wantMsg: "endTime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Create(context.Background(), tt.draft)
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.ErrorContains(t, err, tt.wantMsg)
		})
	}
}

func TestTripCreate_badTimes(t *testing.T) {
	svc := service.NewTripService(&tripRepoMock{}, &directionRepoMock{}, &lineRepoMock{}, nil, nil)
	directionID := uuid.New()

	tests := []struct {
		name       string
		start, end string
		wantMsg    string
	}{
		{name: "unparseable start", start: "8am", end: "09:00", wantMsg: "startTime"},
		{name: "unparseable end", start: "08:00", end: "25:00", wantMsg: "endTime"},
		{name: "zero duration", start: "08:00", end: "08:00", wantMsg: "end before start"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Create(context.Background(), draft(directionID, tt.start, tt.end))
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.ErrorContains(t, err, tt.wantMsg)
		})
	}
}

// TestTripCreate_durationCap exercises the ten-hour cap across midnight:
// 22:00→05:00 is 420 minutes and passes, 22:00→09:00 is 660 and fails.
func TestTripCreate_durationCap(t *testing.T) {
	directionID := uuid.New()

	t.Run("within cap across midnight", func(t *testing.T) {
		trips := acceptingTripRepo()
		svc := service.NewTripService(trips, directionExists(), &lineRepoMock{}, nil, nil)

		trip, duplicate, err := svc.Create(context.Background(), draft(directionID, "22:00", "05:00"))
		require.NoError(t, err)
		assert.False(t, duplicate)
		assert.Equal(t, timeOfDay(t, "22:00"), trip.StartTime)
		assert.Equal(t, timeOfDay(t, "05:00"), trip.EndTime)
		assert.Equal(t, 1, trips.createCalls)
	})

	t.Run("over cap across midnight", func(t *testing.T) {
		svc := service.NewTripService(&tripRepoMock{}, &directionRepoMock{}, &lineRepoMock{}, nil, nil)

		_, _, err := svc.Create(context.Background(), draft(directionID, "22:00", "09:00"))
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.ErrorContains(t, err, "duration exceeds limit")
	})
}

func TestTripCreate_status(t *testing.T) {
	directionID := uuid.New()

	t.Run("defaults to planned", func(t *testing.T) {
		svc := service.NewTripService(acceptingTripRepo(), directionExists(), &lineRepoMock{}, nil, nil)
		trip, _, err := svc.Create(context.Background(), draft(directionID, "08:00", "09:00"))
		require.NoError(t, err)
		assert.Equal(t, domain.TripStatusPlanned, trip.Status)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		svc := service.NewTripService(&tripRepoMock{}, &directionRepoMock{}, &lineRepoMock{}, nil, nil)
		d := draft(directionID, "08:00", "09:00")
		d.Status = "boarding"
		_, _, err := svc.Create(context.Background(), d)
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.ErrorContains(t, err, "unknown status")
	})
}

func TestTripCreate_unknownDirection(t *testing.T) {
	directions := &directionRepoMock{
		getByIDFn: func(context.Context, uuid.UUID) (domain.Direction, error) {
			return domain.Direction{}, domain.ErrNotFound
		},
	}
	svc := service.NewTripService(&tripRepoMock{}, directions, &lineRepoMock{}, nil, nil)

	_, _, err := svc.Create(context.Background(), draft(uuid.New(), "08:00", "09:00"))
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// TestTripCreate_operatingWindow covers the window check for a plain
// daytime window (08:00–20:00) and a wrapping night window (05:00–02:00).
func TestTripCreate_operatingWindow(t *testing.T) {
	tests := []struct {
		name        string
		open, close string
		start, end  string
		wantMsg     string // empty means the trip is accepted
	}{
		{name: "inside daytime window", open: "08:00", close: "20:00", start: "09:00", end: "10:30"},
		{name: "exactly fills window", open: "08:00", close: "20:00", start: "08:00", end: "17:30"},
		{name: "starts before open", open: "08:00", close: "20:00", start: "07:30", end: "10:00", wantMsg: "before line opens"},
		{name: "ends after close", open: "08:00", close: "20:00", start: "19:00", end: "20:30", wantMsg: "after line closes"},
		{name: "wrapping window pre-midnight start", open: "05:00", close: "02:00", start: "23:00", end: "01:00"},
		{name: "wrapping window post-midnight start", open: "05:00", close: "02:00", start: "00:30", end: "01:45"},
		{name: "wrapping window start in dead zone", open: "05:00", close: "02:00", start: "03:00", end: "04:00", wantMsg: "outside line operating window"},
		{name: "wrapping window overruns close", open: "05:00", close: "02:00", start: "22:00", end: "03:00", wantMsg: "after line closes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := windowLine(t, tt.open, tt.close)
			lines := &lineRepoMock{
				getByIDFn: func(_ context.Context, id uuid.UUID) (domain.Line, error) {
					require.Equal(t, line.ID, id)
					return line, nil
				},
			}
			var trips *tripRepoMock
			if tt.wantMsg == "" {
				trips = acceptingTripRepo()
			} else {
				trips = &tripRepoMock{}
			}
			svc := service.NewTripService(trips, directionExists(), lines, nil, nil)

			d := draft(uuid.New(), tt.start, tt.end)
			d.LineID = &line.ID

			_, duplicate, err := svc.Create(context.Background(), d)
			if tt.wantMsg == "" {
				require.NoError(t, err)
				assert.False(t, duplicate)
				return
			}
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.ErrorContains(t, err, tt.wantMsg)
			assert.Equal(t, 0, trips.createCalls)
		})
	}
}

// TestTripCreate_noWindowSkipsCheck verifies that a line without a complete
// operating window accepts trips at any hour.
func TestTripCreate_noWindowSkipsCheck(t *testing.T) {
	line := domain.Line{ID: uuid.New(), Code: "N1", Name: "Night Shuttle"}
	lines := &lineRepoMock{
		getByIDFn: func(context.Context, uuid.UUID) (domain.Line, error) { return line, nil },
	}
	svc := service.NewTripService(acceptingTripRepo(), directionExists(), lines, nil, nil)

	d := draft(uuid.New(), "03:15", "04:30")
	d.LineID = &line.ID

	_, duplicate, err := svc.Create(context.Background(), d)
	require.NoError(t, err)
	assert.False(t, duplicate)
}

// TestTripCreate_duplicate verifies that an identical trip is answered with
// the existing record, flagged, with zero writes.
func TestTripCreate_duplicate(t *testing.T) {
	directionID := uuid.New()
	date, err := domain.ParseDate("2026-03-15")
	require.NoError(t, err)

	existing := domain.Trip{
		ID:          uuid.New(),
		DirectionID: directionID,
		ServiceDate: date,
		StartTime:   timeOfDay(t, "08:00"),
		EndTime:     timeOfDay(t, "09:00"),
		Status:      domain.TripStatusPlanned,
	}
	trips := &tripRepoMock{
		findByScheduleFn: func(_ context.Context, dirID uuid.UUID, d domain.Date, start, end domain.TimeOfDay) (domain.Trip, error) {
			assert.Equal(t, directionID, dirID)
			assert.Equal(t, date, d)
			return existing, nil
		},
	}
	metrics := &metricsRecorder{}
	publisher := &publisherRecorder{}
	svc := service.NewTripService(trips, directionExists(), &lineRepoMock{}, publisher, metrics)

	d := draft(directionID, "08:00", "09:00")
	d.Date = &date

	got, duplicate, err := svc.Create(context.Background(), d)
	require.NoError(t, err)
	assert.True(t, duplicate)
	assert.Equal(t, existing, got)
	assert.Equal(t, 0, trips.createCalls, "duplicate must not write")
	assert.Equal(t, 1, metrics.duplicate)
	assert.Equal(t, 0, metrics.created)
	assert.Empty(t, publisher.published, "duplicate must not publish")
}

// TestTripCreate_duplicateRace verifies the insert-collision path: when two
// identical requests race past the lookup, the loser's insert hits the
// unique index and is answered with the winner's row.
func TestTripCreate_duplicateRace(t *testing.T) {
	directionID := uuid.New()
	winner := domain.Trip{ID: uuid.New(), DirectionID: directionID, Status: domain.TripStatusPlanned}

	lookups := 0
	trips := &tripRepoMock{
		findByScheduleFn: func(context.Context, uuid.UUID, domain.Date, domain.TimeOfDay, domain.TimeOfDay) (domain.Trip, error) {
			lookups++
			if lookups == 1 {
				return domain.Trip{}, domain.ErrNotFound
			}
			return winner, nil
		},
		createFn: func(context.Context, domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrDuplicate
		},
	}
	metrics := &metricsRecorder{}
	svc := service.NewTripService(trips, directionExists(), &lineRepoMock{}, nil, metrics)

	got, duplicate, err := svc.Create(context.Background(), draft(directionID, "08:00", "09:00"))
	require.NoError(t, err)
	assert.True(t, duplicate)
	assert.Equal(t, winner, got)
	assert.Equal(t, 2, lookups)
	assert.Equal(t, 1, metrics.duplicate)
}

// TestTripCreate_success verifies the full happy path: defaults applied,
// metrics counted, event published.
func TestTripCreate_success(t *testing.T) {
	directionID := uuid.New()
	trips := acceptingTripRepo()
	metrics := &metricsRecorder{}
	publisher := &publisherRecorder{}
	svc := service.NewTripService(trips, directionExists(), &lineRepoMock{}, publisher, metrics)

	trip, duplicate, err := svc.Create(context.Background(), draft(directionID, "06:10", "07:55"))
	require.NoError(t, err)
	assert.False(t, duplicate)
	assert.Equal(t, directionID, trip.DirectionID)
	assert.Equal(t, domain.Today(), trip.ServiceDate, "date defaults to today")
	assert.Equal(t, domain.TripStatusPlanned, trip.Status)
	assert.Equal(t, 1, metrics.created)
	require.Len(t, publisher.published, 1)
	assert.Equal(t, trip.ID, publisher.published[0].ID)
}

func TestTripUpdate_validation(t *testing.T) {
	svc := service.NewTripService(&tripRepoMock{}, &directionRepoMock{}, &lineRepoMock{}, nil, nil)

	t.Run("unknown status", func(t *testing.T) {
		_, err := svc.Update(context.Background(), uuid.New(), domain.TripUpdate{
			Status: domain.SetTo(domain.TripStatus("boarding")),
		})
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.ErrorContains(t, err, "unknown status")
	})

	t.Run("required fields cannot be nulled", func(t *testing.T) {
		_, err := svc.Update(context.Background(), uuid.New(), domain.TripUpdate{
			StartTime: domain.Cleared[domain.TimeOfDay](),
		})
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.ErrorContains(t, err, "startTime cannot be null")
	})
}

// TestTripUpdate_noWindowRevalidation verifies that updates pass through to
// the repo without re-running the operating-window check: a trip may be
// edited to times a creation request would reject.
func TestTripUpdate_noWindowRevalidation(t *testing.T) {
	id := uuid.New()
	var gotUpd domain.TripUpdate
	trips := &tripRepoMock{
		updateFn: func(_ context.Context, gotID uuid.UUID, upd domain.TripUpdate) (domain.Trip, error) {
			assert.Equal(t, id, gotID)
			gotUpd = upd
			return domain.Trip{ID: id}, nil
		},
	}
	// Line repo is never consulted; a call would panic.
	svc := service.NewTripService(trips, &directionRepoMock{}, &lineRepoMock{}, nil, nil)

	upd := domain.TripUpdate{
		StartTime:   domain.SetTo(timeOfDay(t, "03:00")),
		EndTime:     domain.SetTo(timeOfDay(t, "04:00")),
		ConductorID: domain.Cleared[uuid.UUID](),
	}
	got, err := svc.Update(context.Background(), id, upd)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.True(t, gotUpd.ConductorID.Clear(), "conductor null clears the assignment")
}

func TestTripDelete_propagatesNotFound(t *testing.T) {
	trips := &tripRepoMock{
		deleteFn: func(context.Context, uuid.UUID) error { return domain.ErrNotFound },
	}
	svc := service.NewTripService(trips, &directionRepoMock{}, &lineRepoMock{}, nil, nil)

	err := svc.Delete(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripListPaged_nonNilSlice(t *testing.T) {
	trips := &tripRepoMock{
		listPagedFn: func(context.Context, domain.TripFilter, domain.PaginationParams) ([]domain.Trip, int, error) {
			return nil, 0, nil
		},
	}
	svc := service.NewTripService(trips, &directionRepoMock{}, &lineRepoMock{}, nil, nil)

	got, total, err := svc.ListPaged(context.Background(), domain.TripFilter{}, domain.NewPaginationParams(nil, nil))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Zero(t, total)
}
