package timeline

import (
	"fmt"
	"math"
	"time"

	"github.com/MwangiSara/ELD-Trucking-System/internal/domain"
)

// Totals computes the exact elapsed minutes per duty status from the
// normalized schedule. Each status's intervals are unioned first (standard
// interval merge), so overlapping same-status events count their covered
// time once, never per event. The per-status sum is rounded to whole
// minutes with round-half-to-even to avoid systematic bias.
//
// Returns domain.ErrValidation when the four totals sum past 1440 minutes —
// more duty time than fits in a day is a hard error, not something to clamp.
func Totals(schedule Schedule) (map[domain.DutyStatus]int, error) {
	totals := make(map[domain.DutyStatus]int, 4)
	sum := 0
	for _, status := range domain.DutyStatuses() {
		var covered float64
		for _, iv := range mergeIntervals(schedule.statusIntervals(status)) {
			covered += (iv.end - iv.start).Seconds()
		}
		minutes := int(math.RoundToEven(covered / 60))
		totals[status] = minutes
		sum += minutes
	}
	if sum > domain.MinutesPerDay {
		return nil, fmt.Errorf("timeline.Totals: %w: duty totals sum to %d minutes, exceeding the %d-minute day",
			domain.ErrValidation, sum, domain.MinutesPerDay)
	}
	return totals, nil
}

// ClippedMinutes measures how much of a single duty event falls inside the
// given calendar day, in whole minutes, using the same clipping and rounding
// rules as Totals. Callers folding a freshly recorded event into a log's
// persisted summary use this so the fold always matches a later recompute.
func ClippedMinutes(date time.Time, event domain.DutyEvent) (int, error) {
	schedule, err := Normalize(date, []domain.DutyEvent{event})
	if err != nil {
		return 0, err
	}
	totals, err := Totals(schedule)
	if err != nil {
		return 0, err
	}
	return totals[event.Status], nil
}

// Mismatch reports one duty status whose persisted total diverges from the
// freshly computed total by more than the tolerance. It is an audit signal:
// the persisted value stays the value of record for display.
type Mismatch struct {
	Status           domain.DutyStatus `json:"duty_status"`
	PersistedMinutes int               `json:"persisted_minutes"`
	ComputedMinutes  int               `json:"computed_minutes"`
	DeltaMinutes     int               `json:"delta_minutes"` // absolute difference
}

// Reconcile compares each status's computed total against the daily log's
// persisted total. Statuses differing by more than toleranceMinutes are
// returned in log-sheet row order; an empty result means the log reconciles.
func Reconcile(log domain.DailyLog, totals map[domain.DutyStatus]int, toleranceMinutes int) []Mismatch {
	var mismatches []Mismatch
	for _, status := range domain.DutyStatuses() {
		persisted := log.PersistedTotal(status)
		computed := totals[status]
		delta := persisted - computed
		if delta < 0 {
			delta = -delta
		}
		if delta > toleranceMinutes {
			mismatches = append(mismatches, Mismatch{
				Status:           status,
				PersistedMinutes: persisted,
				ComputedMinutes:  computed,
				DeltaMinutes:     delta,
			})
		}
	}
	return mismatches
}
