package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
	"github.com/rbe-dev-920/tce-serv/internal/repo"
)

func TestCheckInRepo_CreateAndGet(t *testing.T) {
	tx := beginTx(t)
	ctx := context.Background()
	line, direction := seedDirection(t, tx)

	trip, err := repo.NewTripRepo(tx).Create(ctx, testTrip(direction.ID, &line.ID))
	require.NoError(t, err)

	conductor, err := repo.NewConductorRepo(tx).Create(ctx, domain.Conductor{
		FirstName: "Marie", LastName: "Leclerc", BadgeNumber: "B-1042",
		HiredOn: domain.NewDate(2020, 9, 1), Active: true,
		Medical: domain.MedicalRecord{FitForDuty: true},
	})
	require.NoError(t, err)

	vehicle, err := repo.NewVehicleRepo(tx).Create(ctx, domain.Vehicle{
		FleetNumber: "204", Registration: "AB-123-CD",
		Type: domain.VehicleTypeBus, Capacity: 90, InService: true,
		Options: domain.VehicleOptions{AirConditioning: true, WheelchairRamp: true},
	})
	require.NoError(t, err)

	checkIns := repo.NewCheckInRepo(tx)
	created, err := checkIns.Create(ctx, domain.CheckIn{
		TripID:      trip.ID,
		ConductorID: conductor.ID,
		VehicleID:   vehicle.ID,
		CheckedAt:   time.Date(2026, 3, 15, 5, 50, 0, 0, time.UTC),
		Equipment:   domain.EquipmentChecks{TicketMachine: true, Radio: true, SAEIVConsole: true},
		Remarks:     "radio crackles on channel 2",
	})
	require.NoError(t, err)

	got, err := checkIns.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, trip.ID, got.TripID)
	assert.True(t, got.Equipment.SAEIVConsole, "jsonb equipment round-trips")
	assert.False(t, got.Equipment.Defibrillator)
	assert.Equal(t, "radio crackles on channel 2", got.Remarks)
}

// TestCheckInRepo_StatsForDate seeds two check-ins on the target day and one
// the day after, then asserts the per-dimension grouping.
func TestCheckInRepo_StatsForDate(t *testing.T) {
	tx := beginTx(t)
	ctx := context.Background()
	line, direction := seedDirection(t, tx)
	trips := repo.NewTripRepo(tx)
	checkIns := repo.NewCheckInRepo(tx)

	conductor, err := repo.NewConductorRepo(tx).Create(ctx, domain.Conductor{
		FirstName: "Marie", LastName: "Leclerc", BadgeNumber: "B-1042",
		HiredOn: domain.NewDate(2020, 9, 1), Active: true,
		Medical: domain.MedicalRecord{FitForDuty: true},
	})
	require.NoError(t, err)

	vehicle, err := repo.NewVehicleRepo(tx).Create(ctx, domain.Vehicle{
		FleetNumber: "204", Registration: "AB-123-CD",
		Type: domain.VehicleTypeBus, Capacity: 90, InService: true,
	})
	require.NoError(t, err)

	seed := func(start domain.TimeOfDay, checkedAt time.Time) {
		t.Helper()
		tr := testTrip(direction.ID, &line.ID)
		tr.StartTime = start
		tr.EndTime = start + 60
		trip, err := trips.Create(ctx, tr)
		require.NoError(t, err)
		_, err = checkIns.Create(ctx, domain.CheckIn{
			TripID: trip.ID, ConductorID: conductor.ID, VehicleID: vehicle.ID,
			CheckedAt: checkedAt,
		})
		require.NoError(t, err)
	}

	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	seed(domain.TimeOfDay(6*60), day.Add(5*time.Hour+50*time.Minute))
	seed(domain.TimeOfDay(14*60), day.Add(13*time.Hour+45*time.Minute))
	seed(domain.TimeOfDay(9*60), day.AddDate(0, 0, 1).Add(8*time.Hour))

	stats, err := checkIns.StatsForDate(ctx, domain.NewDate(2026, 3, 15))
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Total, "next-day check-in excluded")

	require.Len(t, stats.ByConductor, 1)
	assert.Equal(t, "B-1042 Leclerc", stats.ByConductor[0].Key)
	assert.Equal(t, 2, stats.ByConductor[0].Count)

	require.Len(t, stats.ByHour, 2)
	assert.Equal(t, "05", stats.ByHour[0].Key)
	assert.Equal(t, "13", stats.ByHour[1].Key)

	require.Len(t, stats.ByVehicleType, 1)
	assert.Equal(t, "bus", stats.ByVehicleType[0].Key)

	require.Len(t, stats.ByLine, 1)
	assert.Equal(t, "A", stats.ByLine[0].Key)
}

// TestCheckInRepo_StatsForDate_empty verifies that a day with no activity
// yields zero totals and empty, non-nil buckets.
func TestCheckInRepo_StatsForDate_empty(t *testing.T) {
	tx := beginTx(t)

	stats, err := repo.NewCheckInRepo(tx).StatsForDate(context.Background(), domain.NewDate(2031, 1, 1))
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.NotNil(t, stats.ByConductor)
	assert.Empty(t, stats.ByConductor)
	assert.NotNil(t, stats.ByHour)
	assert.NotNil(t, stats.ByVehicleType)
	assert.NotNil(t, stats.ByLine)
}
