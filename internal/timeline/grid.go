package timeline

import (
	"fmt"
	"time"

	"github.com/MwangiSara/ELD-Trucking-System/internal/domain"
)

// DefaultResolution is the classic paper-log grid: 24 one-hour slots per day.
const DefaultResolution = 24

// ValidateResolution checks that a grid resolution is usable: positive and
// an exact divisor of the 1440-minute day, so every slot has the same whole
// number of minutes.
func ValidateResolution(resolution int) error {
	if resolution < 1 || domain.MinutesPerDay%resolution != 0 {
		return fmt.Errorf("timeline.ValidateResolution: %w: resolution %d must be a positive divisor of %d",
			domain.ErrValidation, resolution, domain.MinutesPerDay)
	}
	return nil
}

// Grid marks which of the day's slots a duty status touches. A slot is
// active when the union of that status's intervals intersects the slot's
// time range by any positive duration — partial coverage counts, so the
// grid is a coarse visual aid, never a duration measurement. An interval
// ending exactly on a slot boundary does not mark the boundary slot
// (half-open [start, end) semantics).
//
// The returned slice has length resolution. The computation is a pure
// function of (schedule, status, resolution); callers recompute on demand.
func Grid(schedule Schedule, status domain.DutyStatus, resolution int) ([]bool, error) {
	if err := ValidateResolution(resolution); err != nil {
		return nil, err
	}

	slotLen := time.Duration(domain.MinutesPerDay/resolution) * time.Minute
	merged := mergeIntervals(schedule.statusIntervals(status))

	slots := make([]bool, resolution)
	for _, iv := range merged {
		first := int(iv.start / slotLen)
		// Subtracting one nanosecond keeps a boundary-aligned end out of the
		// slot it touches only at its edge.
		last := int((iv.end - time.Nanosecond) / slotLen)
		if last >= resolution {
			last = resolution - 1
		}
		for i := first; i <= last; i++ {
			slots[i] = true
		}
	}
	return slots, nil
}
