package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MwangiSara/ELD-Trucking-System/internal/domain"
	"github.com/MwangiSara/ELD-Trucking-System/internal/repo"
)

// createTestLog inserts a trip and a daily log over the given transaction.
// Duty events have a NOT NULL foreign key to daily logs.
func createTestLog(t *testing.T, tx pgx.Tx) domain.DailyLog {
	t.Helper()
	trip := createTestTrip(t, tx)
	log, err := repo.NewDailyLogRepo(tx).Create(context.Background(), dailyLogFixture(trip.ID))
	require.NoError(t, err)
	return log
}

// dutyEventFixture returns a closed driving event for the given log.
func dutyEventFixture(logID uuid.UUID) domain.DutyEvent {
	start := time.Date(2025, 7, 14, 8, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	return domain.DutyEvent{
		DailyLogID: logID,
		Status:     domain.StatusDriving,
		StartTime:  start,
		EndTime:    &end,
		Location:   "I-80 near Laramie, WY",
		Remarks:    "westbound",
		TruckMoved: true,
	}
}

func TestDutyEventRepo_Create(t *testing.T) {
	tx := newTestTx(t)
	log := createTestLog(t, tx)
	r := repo.NewDutyEventRepo(tx)
	ctx := context.Background()

	input := dutyEventFixture(log.ID)
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, log.ID, got.DailyLogID)
	assert.Equal(t, domain.StatusDriving, got.Status)
	assert.True(t, got.StartTime.Equal(input.StartTime), "StartTime mismatch")
	require.NotNil(t, got.EndTime)
	assert.True(t, got.EndTime.Equal(*input.EndTime), "EndTime mismatch")
	assert.Equal(t, input.Location, got.Location)
	assert.Equal(t, input.Remarks, got.Remarks)
	assert.True(t, got.TruckMoved)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestDutyEventRepo_Create_NilEndTime(t *testing.T) {
	tx := newTestTx(t)
	log := createTestLog(t, tx)
	r := repo.NewDutyEventRepo(tx)
	ctx := context.Background()

	input := dutyEventFixture(log.ID)
	input.EndTime = nil // duty period still open

	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.Nil(t, got.EndTime, "EndTime should be nil when not provided")
}

func TestDutyEventRepo_Create_EndBeforeStartRejected(t *testing.T) {
	tx := newTestTx(t)
	log := createTestLog(t, tx)
	r := repo.NewDutyEventRepo(tx)
	ctx := context.Background()

	input := dutyEventFixture(log.ID)
	before := input.StartTime.Add(-time.Hour)
	input.EndTime = &before

	// The schema enforces end_time >= start_time as a last line of defence.
	_, err := r.Create(ctx, input)
	assert.Error(t, err)
}

func TestDutyEventRepo_ListByDailyLogID(t *testing.T) {
	tx := newTestTx(t)
	log := createTestLog(t, tx)
	r := repo.NewDutyEventRepo(tx)
	ctx := context.Background()

	first := dutyEventFixture(log.ID)
	second := dutyEventFixture(log.ID)
	second.Status = domain.StatusOnDuty
	second.StartTime = first.EndTime.Add(time.Hour)
	later := second.StartTime.Add(30 * time.Minute)
	second.EndTime = &later

	_, err := r.Create(ctx, first)
	require.NoError(t, err)
	_, err = r.Create(ctx, second)
	require.NoError(t, err)

	events, err := r.ListByDailyLogID(ctx, log.ID)

	require.NoError(t, err)
	require.Len(t, events, 2)

	var statuses []domain.DutyStatus
	for _, ev := range events {
		statuses = append(statuses, ev.Status)
	}
	assert.Contains(t, statuses, domain.StatusDriving)
	assert.Contains(t, statuses, domain.StatusOnDuty)
}

func TestDutyEventRepo_ListByDailyLogID_Empty(t *testing.T) {
	tx := newTestTx(t)
	log := createTestLog(t, tx)
	r := repo.NewDutyEventRepo(tx)

	events, err := r.ListByDailyLogID(context.Background(), log.ID)

	require.NoError(t, err)
	assert.Empty(t, events)
}
