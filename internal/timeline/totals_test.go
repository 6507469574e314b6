package timeline_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MwangiSara/ELD-Trucking-System/internal/domain"
	"github.com/MwangiSara/ELD-Trucking-System/internal/timeline"
)

// ---- aggregation -----------------------------------------------------------

func TestTotals_SingleEvent(t *testing.T) {
	schedule := mustNormalize(t, event(domain.StatusDriving, at(6, 0), at(14, 0)))

	totals, err := timeline.Totals(schedule)

	require.NoError(t, err)
	assert.Equal(t, 480, totals[domain.StatusDriving])
	assert.Equal(t, 0, totals[domain.StatusOffDuty])
	assert.Equal(t, 0, totals[domain.StatusSleeperBerth])
	assert.Equal(t, 0, totals[domain.StatusOnDuty])
}

func TestTotals_OverlapCountsUnionNotSum(t *testing.T) {
	// [08:00,10:00) and [09:00,11:00) union to three hours, not four.
	schedule := mustNormalize(t,
		event(domain.StatusDriving, at(8, 0), at(10, 0)),
		event(domain.StatusDriving, at(9, 0), at(11, 0)),
	)

	totals, err := timeline.Totals(schedule)

	require.NoError(t, err)
	assert.Equal(t, 180, totals[domain.StatusDriving], "union law: 180 minutes, never the naive 240")
}

func TestTotals_AdjacentIntervalsMerge(t *testing.T) {
	schedule := mustNormalize(t,
		event(domain.StatusOnDuty, at(8, 0), at(9, 0)),
		event(domain.StatusOnDuty, at(9, 0), at(10, 0)),
	)

	totals, err := timeline.Totals(schedule)

	require.NoError(t, err)
	assert.Equal(t, 120, totals[domain.StatusOnDuty])
}

func TestTotals_DuplicateEventIsIdempotent(t *testing.T) {
	ev := event(domain.StatusSleeperBerth, at(20, 0), at(22, 0))
	schedule := mustNormalize(t, ev, ev)

	totals, err := timeline.Totals(schedule)

	require.NoError(t, err)
	assert.Equal(t, 120, totals[domain.StatusSleeperBerth])
}

func TestTotals_ClipsMidnightCrossing(t *testing.T) {
	// 23:30 → 00:30 next day contributes exactly 30 minutes to this log.
	schedule := mustNormalize(t, event(domain.StatusDriving, at(23, 30), at(24, 30)))

	totals, err := timeline.Totals(schedule)

	require.NoError(t, err)
	assert.Equal(t, 30, totals[domain.StatusDriving])
}

func TestTotals_RoundsHalfToEven(t *testing.T) {
	// 150 seconds = 2.5 minutes rounds to 2; 210 seconds = 3.5 rounds to 4.
	halfDown := event(domain.StatusDriving, at(6, 0), at(6, 0).Add(150*time.Second))
	halfUp := event(domain.StatusOnDuty, at(8, 0), at(8, 0).Add(210*time.Second))
	schedule := mustNormalize(t, halfDown, halfUp)

	totals, err := timeline.Totals(schedule)

	require.NoError(t, err)
	assert.Equal(t, 2, totals[domain.StatusDriving])
	assert.Equal(t, 4, totals[domain.StatusOnDuty])
}

func TestTotals_FullDayScenario(t *testing.T) {
	schedule := mustNormalize(t,
		event(domain.StatusOffDuty, at(0, 0), at(6, 0)),
		event(domain.StatusDriving, at(6, 0), at(14, 0)),
		event(domain.StatusOnDuty, at(14, 0), at(15, 0)),
		event(domain.StatusOffDuty, at(15, 0), at(24, 0)),
	)

	totals, err := timeline.Totals(schedule)

	require.NoError(t, err)
	assert.Equal(t, 900, totals[domain.StatusOffDuty])
	assert.Equal(t, 480, totals[domain.StatusDriving])
	assert.Equal(t, 60, totals[domain.StatusOnDuty])
	assert.Equal(t, 0, totals[domain.StatusSleeperBerth])
}

func TestTotals_ExceedingDayIsValidationError(t *testing.T) {
	// 1500 minutes of coverage across statuses cannot fit in one day.
	schedule := mustNormalize(t,
		event(domain.StatusOffDuty, at(0, 0), at(12, 0)),   // 720
		event(domain.StatusDriving, at(0, 0), at(12, 0)),   // 720
		event(domain.StatusOnDuty, at(12, 0), at(13, 0)),   // 60
	)

	_, err := timeline.Totals(schedule)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- reconciliation --------------------------------------------------------

func dailyLogFixture() domain.DailyLog {
	return domain.DailyLog{
		Date:                  logDate,
		DriverName:            "J. Smith",
		VehicleNumber:         "P1234",
		TrailerNumber:         "T5678",
		TotalOffDutyTime:      900,
		TotalSleeperBerthTime: 0,
		TotalDrivingTime:      480,
		TotalOnDutyTime:       60,
	}
}

func TestReconcile_ExactMatch(t *testing.T) {
	totals := map[domain.DutyStatus]int{
		domain.StatusOffDuty: 900,
		domain.StatusDriving: 480,
		domain.StatusOnDuty:  60,
	}

	mismatches := timeline.Reconcile(dailyLogFixture(), totals, 1)

	assert.Empty(t, mismatches)
}

func TestReconcile_FlagsDivergentStatus(t *testing.T) {
	log := dailyLogFixture()
	log.TotalDrivingTime = 500 // persisted says 500, events say 480

	totals := map[domain.DutyStatus]int{
		domain.StatusOffDuty: 900,
		domain.StatusDriving: 480,
		domain.StatusOnDuty:  60,
	}

	mismatches := timeline.Reconcile(log, totals, 1)

	require.Len(t, mismatches, 1)
	m := mismatches[0]
	assert.Equal(t, domain.StatusDriving, m.Status)
	assert.Equal(t, 500, m.PersistedMinutes)
	assert.Equal(t, 480, m.ComputedMinutes)
	assert.Equal(t, 20, m.DeltaMinutes)
}

func TestReconcile_WithinToleranceIsClean(t *testing.T) {
	log := dailyLogFixture()
	log.TotalOnDutyTime = 61 // one minute off, default tolerance allows it

	totals := map[domain.DutyStatus]int{
		domain.StatusOffDuty: 900,
		domain.StatusDriving: 480,
		domain.StatusOnDuty:  60,
	}

	mismatches := timeline.Reconcile(log, totals, 1)

	assert.Empty(t, mismatches)
}

func TestReconcile_DeltaIsAbsolute(t *testing.T) {
	log := dailyLogFixture()
	log.TotalOffDutyTime = 800 // persisted under-reports by 100

	totals := map[domain.DutyStatus]int{domain.StatusOffDuty: 900}

	mismatches := timeline.Reconcile(log, totals, 1)

	require.NotEmpty(t, mismatches)
	assert.Equal(t, 100, mismatches[0].DeltaMinutes)
}
