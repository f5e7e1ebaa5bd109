package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
)

// Function-field mocks: each repo method delegates to a field the test sets.
// A call on an unset field panics, which makes unexpected repo access fail
// the test loudly — useful for asserting that validation rejects a request
// before anything touches the database.

type tripRepoMock struct {
	createFn         func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByIDFn        func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	getDetailFn      func(ctx context.Context, id uuid.UUID) (domain.TripDetail, error)
	findByScheduleFn func(ctx context.Context, directionID uuid.UUID, date domain.Date, start, end domain.TimeOfDay) (domain.Trip, error)
	listPagedFn      func(ctx context.Context, filter domain.TripFilter, page domain.PaginationParams) ([]domain.Trip, int, error)
	updateFn         func(ctx context.Context, id uuid.UUID, upd domain.TripUpdate) (domain.Trip, error)
	deleteFn         func(ctx context.Context, id uuid.UUID) error

	createCalls int
}

func (m *tripRepoMock) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if m.createFn == nil {
		panic("unexpected TripRepo.Create call")
	}
	m.createCalls++
	return m.createFn(ctx, trip)
}

func (m *tripRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	if m.getByIDFn == nil {
		panic("unexpected TripRepo.GetByID call")
	}
	return m.getByIDFn(ctx, id)
}

func (m *tripRepoMock) GetDetail(ctx context.Context, id uuid.UUID) (domain.TripDetail, error) {
	if m.getDetailFn == nil {
		panic("unexpected TripRepo.GetDetail call")
	}
	return m.getDetailFn(ctx, id)
}

func (m *tripRepoMock) FindBySchedule(ctx context.Context, directionID uuid.UUID, date domain.Date, start, end domain.TimeOfDay) (domain.Trip, error) {
	if m.findByScheduleFn == nil {
		panic("unexpected TripRepo.FindBySchedule call")
	}
	return m.findByScheduleFn(ctx, directionID, date, start, end)
}

func (m *tripRepoMock) ListPaged(ctx context.Context, filter domain.TripFilter, page domain.PaginationParams) ([]domain.Trip, int, error) {
	if m.listPagedFn == nil {
		panic("unexpected TripRepo.ListPaged call")
	}
	return m.listPagedFn(ctx, filter, page)
}

func (m *tripRepoMock) Update(ctx context.Context, id uuid.UUID, upd domain.TripUpdate) (domain.Trip, error) {
	if m.updateFn == nil {
		panic("unexpected TripRepo.Update call")
	}
	return m.updateFn(ctx, id, upd)
}

func (m *tripRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn == nil {
		panic("unexpected TripRepo.Delete call")
	}
	return m.deleteFn(ctx, id)
}

type directionRepoMock struct {
	createFn       func(ctx context.Context, d domain.Direction) (domain.Direction, error)
	getByIDFn      func(ctx context.Context, id uuid.UUID) (domain.Direction, error)
	listPagedFn    func(ctx context.Context, page domain.PaginationParams) ([]domain.Direction, int, error)
	listByLineIDFn func(ctx context.Context, lineID uuid.UUID) ([]domain.Direction, error)
	updateFn       func(ctx context.Context, d domain.Direction) (domain.Direction, error)
	deleteFn       func(ctx context.Context, id uuid.UUID) error
}

func (m *directionRepoMock) Create(ctx context.Context, d domain.Direction) (domain.Direction, error) {
	if m.createFn == nil {
		panic("unexpected DirectionRepo.Create call")
	}
	return m.createFn(ctx, d)
}

func (m *directionRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Direction, error) {
	if m.getByIDFn == nil {
		panic("unexpected DirectionRepo.GetByID call")
	}
	return m.getByIDFn(ctx, id)
}

func (m *directionRepoMock) ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.Direction, int, error) {
	if m.listPagedFn == nil {
		panic("unexpected DirectionRepo.ListPaged call")
	}
	return m.listPagedFn(ctx, page)
}

func (m *directionRepoMock) ListByLineID(ctx context.Context, lineID uuid.UUID) ([]domain.Direction, error) {
	if m.listByLineIDFn == nil {
		panic("unexpected DirectionRepo.ListByLineID call")
	}
	return m.listByLineIDFn(ctx, lineID)
}

func (m *directionRepoMock) Update(ctx context.Context, d domain.Direction) (domain.Direction, error) {
	if m.updateFn == nil {
		panic("unexpected DirectionRepo.Update call")
	}
	return m.updateFn(ctx, d)
}

func (m *directionRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn == nil {
		panic("unexpected DirectionRepo.Delete call")
	}
	return m.deleteFn(ctx, id)
}

type lineRepoMock struct {
	createFn    func(ctx context.Context, l domain.Line) (domain.Line, error)
	getByIDFn   func(ctx context.Context, id uuid.UUID) (domain.Line, error)
	listPagedFn func(ctx context.Context, page domain.PaginationParams) ([]domain.Line, int, error)
	updateFn    func(ctx context.Context, l domain.Line) (domain.Line, error)
	deleteFn    func(ctx context.Context, id uuid.UUID) error
}

func (m *lineRepoMock) Create(ctx context.Context, l domain.Line) (domain.Line, error) {
	if m.createFn == nil {
		panic("unexpected LineRepo.Create call")
	}
	return m.createFn(ctx, l)
}

func (m *lineRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Line, error) {
	if m.getByIDFn == nil {
		panic("unexpected LineRepo.GetByID call")
	}
	return m.getByIDFn(ctx, id)
}

func (m *lineRepoMock) ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.Line, int, error) {
	if m.listPagedFn == nil {
		panic("unexpected LineRepo.ListPaged call")
	}
	return m.listPagedFn(ctx, page)
}

func (m *lineRepoMock) Update(ctx context.Context, l domain.Line) (domain.Line, error) {
	if m.updateFn == nil {
		panic("unexpected LineRepo.Update call")
	}
	return m.updateFn(ctx, l)
}

func (m *lineRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn == nil {
		panic("unexpected LineRepo.Delete call")
	}
	return m.deleteFn(ctx, id)
}

// metricsRecorder counts validator outcomes for assertions.
type metricsRecorder struct {
	created, duplicate, rejected int
}

func (m *metricsRecorder) TripCreated()   { m.created++ }
func (m *metricsRecorder) TripDuplicate() { m.duplicate++ }
func (m *metricsRecorder) TripRejected()  { m.rejected++ }

// publisherRecorder captures published trips.
type publisherRecorder struct {
	published []domain.Trip
}

func (p *publisherRecorder) PublishTripCreated(_ context.Context, trip domain.Trip) {
	p.published = append(p.published, trip)
}

type checkInRepoMock struct {
	createFn       func(ctx context.Context, c domain.CheckIn) (domain.CheckIn, error)
	getByIDFn      func(ctx context.Context, id uuid.UUID) (domain.CheckIn, error)
	listPagedFn    func(ctx context.Context, page domain.PaginationParams) ([]domain.CheckIn, int, error)
	updateFn       func(ctx context.Context, c domain.CheckIn) (domain.CheckIn, error)
	deleteFn       func(ctx context.Context, id uuid.UUID) error
	statsForDateFn func(ctx context.Context, date domain.Date) (domain.CheckInStats, error)
}

func (m *checkInRepoMock) Create(ctx context.Context, c domain.CheckIn) (domain.CheckIn, error) {
	if m.createFn == nil {
		panic("unexpected CheckInRepo.Create call")
	}
	return m.createFn(ctx, c)
}

func (m *checkInRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.CheckIn, error) {
	if m.getByIDFn == nil {
		panic("unexpected CheckInRepo.GetByID call")
	}
	return m.getByIDFn(ctx, id)
}

func (m *checkInRepoMock) ListPaged(ctx context.Context, page domain.PaginationParams) ([]domain.CheckIn, int, error) {
	if m.listPagedFn == nil {
		panic("unexpected CheckInRepo.ListPaged call")
	}
	return m.listPagedFn(ctx, page)
}

func (m *checkInRepoMock) Update(ctx context.Context, c domain.CheckIn) (domain.CheckIn, error) {
	if m.updateFn == nil {
		panic("unexpected CheckInRepo.Update call")
	}
	return m.updateFn(ctx, c)
}

func (m *checkInRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn == nil {
		panic("unexpected CheckInRepo.Delete call")
	}
	return m.deleteFn(ctx, id)
}

func (m *checkInRepoMock) StatsForDate(ctx context.Context, date domain.Date) (domain.CheckInStats, error) {
	if m.statsForDateFn == nil {
		panic("unexpected CheckInRepo.StatsForDate call")
	}
	return m.statsForDateFn(ctx, date)
}
