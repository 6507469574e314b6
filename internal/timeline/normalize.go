// Package timeline is the duty-status timeline engine: it turns the raw,
// unordered duty events of one daily log into a canonical ordered schedule,
// a quantized per-status slot grid, exact per-status minute totals, and a
// reconciliation report against the log's persisted totals.
//
// Every function in this package is a pure computation over its inputs —
// no I/O, no caching, no shared state. Identical inputs always produce
// identical outputs, so callers may recompute freely and in parallel.
package timeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/MwangiSara/ELD-Trucking-System/internal/domain"
)

// dayLength is the clipping window for a single log sheet: [00:00, 24:00).
const dayLength = 24 * time.Hour

// defaultOpenDuration is the display length given to an event that has no
// recorded end time. It is a rendering convenience, not a statement about
// when the driver's status actually changed; Event.Open stays true so
// consumers can tell the two apart.
const defaultOpenDuration = time.Hour

// Event is a duty event after normalization: ordered, end-defaulted, and
// clipped to its log's calendar day. StartOffset/EndOffset are measured from
// the log date's midnight and always satisfy 0 <= StartOffset <= EndOffset <= 24h.
// An event that lies entirely outside the day has StartOffset == EndOffset
// and contributes nothing to grids or totals, but is kept for audit display.
type Event struct {
	ID          uuid.UUID         `json:"id"`
	Status      domain.DutyStatus `json:"duty_status"`
	StartTime   time.Time         `json:"start_time"`
	EndTime     time.Time         `json:"end_time"`
	Open        bool              `json:"open"` // true when EndTime was defaulted, not recorded
	StartOffset time.Duration     `json:"-"`
	EndOffset   time.Duration     `json:"-"`
	Location    string            `json:"location"`
	Remarks     string            `json:"remarks,omitempty"`
	TruckMoved  bool              `json:"truck_moved"`
}

// OverlapWarning reports two same-status events whose intervals intersect.
// It is a diagnostic, not an error: grid and totals computation proceed on
// the union of the intervals so the overlap is never double counted.
type OverlapWarning struct {
	Status        domain.DutyStatus `json:"duty_status"`
	FirstEventID  uuid.UUID         `json:"first_event_id"`
	SecondEventID uuid.UUID         `json:"second_event_id"`
}

// Schedule is the normalized timeline for one daily log.
type Schedule struct {
	Date     time.Time
	Events   []Event
	Overlaps []OverlapWarning
}

// Normalize validates and orders the raw duty events of one daily log.
//
// Events are sorted by start time ascending; ties keep their input order
// (stable sort, so insertion order breaks ties). A missing end time is
// defaulted to start + 1h and flagged Open. Each event's interval is clipped
// to [00:00, 24:00) of date — splitting an event that spans midnight across
// two logs is the upstream collaborator's job, this engine only keeps the
// portion that belongs to this date.
//
// Returns domain.ErrValidation when any event ends before it starts.
// Same-status overlaps are reported in Schedule.Overlaps, never merged away.
func Normalize(date time.Time, events []domain.DutyEvent) (Schedule, error) {
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	normalized := make([]Event, 0, len(events))
	for _, ev := range events {
		end := ev.StartTime.Add(defaultOpenDuration)
		open := ev.EndTime == nil
		if !open {
			end = *ev.EndTime
			if end.Before(ev.StartTime) {
				return Schedule{}, fmt.Errorf("timeline.Normalize: event %s: %w: end_time %s before start_time %s",
					ev.ID, domain.ErrValidation, end.Format(time.RFC3339), ev.StartTime.Format(time.RFC3339))
			}
		}
		normalized = append(normalized, Event{
			ID:          ev.ID,
			Status:      ev.Status,
			StartTime:   ev.StartTime,
			EndTime:     end,
			Open:        open,
			StartOffset: clampOffset(ev.StartTime.Sub(midnight)),
			EndOffset:   clampOffset(end.Sub(midnight)),
			Location:    ev.Location,
			Remarks:     ev.Remarks,
			TruckMoved:  ev.TruckMoved,
		})
	}

	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i].StartTime.Before(normalized[j].StartTime)
	})

	return Schedule{
		Date:     midnight,
		Events:   normalized,
		Overlaps: findOverlaps(normalized),
	}, nil
}

// clampOffset clips an offset from midnight into [0, 24h].
func clampOffset(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if d > dayLength {
		return dayLength
	}
	return d
}

// findOverlaps reports every pair of same-status events whose clipped
// intervals intersect by a positive duration. Events are already sorted by
// start, so for each event only the later ones need checking.
func findOverlaps(events []Event) []OverlapWarning {
	var warnings []OverlapWarning
	for i := range events {
		for j := i + 1; j < len(events); j++ {
			if events[i].Status != events[j].Status {
				continue
			}
			if events[j].StartOffset < events[i].EndOffset && events[i].StartOffset < events[j].EndOffset {
				warnings = append(warnings, OverlapWarning{
					Status:        events[i].Status,
					FirstEventID:  events[i].ID,
					SecondEventID: events[j].ID,
				})
			}
		}
	}
	return warnings
}

// statusIntervals returns the clipped, non-empty [start, end) intervals of
// one status, in schedule order.
func (s Schedule) statusIntervals(status domain.DutyStatus) []interval {
	var out []interval
	for _, ev := range s.Events {
		if ev.Status != status || ev.EndOffset <= ev.StartOffset {
			continue
		}
		out = append(out, interval{start: ev.StartOffset, end: ev.EndOffset})
	}
	return out
}

// interval is a half-open [start, end) span measured from midnight.
type interval struct {
	start, end time.Duration
}

// mergeIntervals unions a start-sorted interval list: overlapping or exactly
// adjacent intervals collapse into one. The input must be sorted by start,
// which statusIntervals guarantees because the schedule is sorted.
func mergeIntervals(in []interval) []interval {
	if len(in) == 0 {
		return nil
	}
	merged := []interval{in[0]}
	for _, iv := range in[1:] {
		last := &merged[len(merged)-1]
		if iv.start <= last.end {
			if iv.end > last.end {
				last.end = iv.end
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}
