package timeline

import (
	"fmt"

	"github.com/MwangiSara/ELD-Trucking-System/internal/domain"
)

// DailyLogView is the assembled per-day view: header metadata verbatim from
// the daily log, one slot grid per duty status, computed and persisted
// totals, the normalized event list for audit display, and every non-fatal
// diagnostic detected along the way.
type DailyLogView struct {
	Log        domain.DailyLog              `json:"log"`
	Resolution int                          `json:"resolution"`
	Grids      map[domain.DutyStatus][]bool `json:"grids"`
	// ComputedTotals are the exact per-status minutes derived from the
	// events. The log's persisted totals remain the display values of
	// record; divergence beyond tolerance appears in Mismatches.
	ComputedTotals map[domain.DutyStatus]int `json:"computed_totals"`
	Events         []Event                   `json:"events"`
	Overlaps       []OverlapWarning          `json:"overlaps,omitempty"`
	Mismatches     []Mismatch                `json:"mismatches,omitempty"`
}

// BuildView runs the full pipeline for one daily log: normalize, grid per
// status, aggregate, reconcile. It is deterministic and side-effect free;
// switching the displayed day is just another call with different inputs.
//
// Returns domain.ErrValidation (and no view) for malformed events, a bad
// resolution, or totals exceeding the day. Overlaps and reconciliation
// mismatches are non-fatal and attached to the returned view.
func BuildView(log domain.DailyLog, events []domain.DutyEvent, resolution, toleranceMinutes int) (DailyLogView, error) {
	if err := ValidateResolution(resolution); err != nil {
		return DailyLogView{}, err
	}

	schedule, err := Normalize(log.Date, events)
	if err != nil {
		return DailyLogView{}, fmt.Errorf("timeline.BuildView: %w", err)
	}

	totals, err := Totals(schedule)
	if err != nil {
		return DailyLogView{}, fmt.Errorf("timeline.BuildView: %w", err)
	}

	grids := make(map[domain.DutyStatus][]bool, 4)
	for _, status := range domain.DutyStatuses() {
		grid, err := Grid(schedule, status, resolution)
		if err != nil {
			return DailyLogView{}, fmt.Errorf("timeline.BuildView: %w", err)
		}
		grids[status] = grid
	}

	return DailyLogView{
		Log:            log,
		Resolution:     resolution,
		Grids:          grids,
		ComputedTotals: totals,
		Events:         schedule.Events,
		Overlaps:       schedule.Overlaps,
		Mismatches:     Reconcile(log, totals, toleranceMinutes),
	}, nil
}
