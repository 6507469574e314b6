package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MwangiSara/ELD-Trucking-System/internal/domain"
	"github.com/MwangiSara/ELD-Trucking-System/internal/repo"
)

// cycleWindowDays is the rolling window for cycle-hour statistics: the
// 70-hour / 8-day rule's lookback.
const cycleWindowDays = 8

// DriverStats summarizes a driver's recent duty usage. Every figure is
// derived from persisted daily-log totals — nothing here is synthesized.
type DriverStats struct {
	DriverName     string  `json:"driver_name"`
	CycleUsedHours float64 `json:"cycle_used_hours"`     // driving + on-duty over the last 8 days
	AvailableHours float64 `json:"available_hours"`      // remaining under the 70-hour cycle, floored at 0
	Compliant      bool    `json:"compliant"`            // true while available hours remain
	TripCount      int64   `json:"trip_count"`
}

// StatsService computes driver statistics from daily-log summaries.
type StatsService struct {
	stats repo.DriverStatsRepo
	now   func() time.Time
}

// NewStatsService constructs a StatsService backed by the provided repo.
func NewStatsService(stats repo.DriverStatsRepo) *StatsService {
	return &StatsService{stats: stats, now: time.Now}
}

// ForDriver returns cycle statistics for one driver.
// Returns domain.ErrValidation when the driver name is blank.
func (s *StatsService) ForDriver(ctx context.Context, driverName string) (DriverStats, error) {
	if strings.TrimSpace(driverName) == "" {
		return DriverStats{}, fmt.Errorf("%w: driver name is required", domain.ErrValidation)
	}

	since := s.now().UTC().AddDate(0, 0, -cycleWindowDays)
	minutes, err := s.stats.CycleMinutesSince(ctx, driverName, since)
	if err != nil {
		return DriverStats{}, fmt.Errorf("service.StatsService.ForDriver: %w", err)
	}
	trips, err := s.stats.TripCount(ctx, driverName)
	if err != nil {
		return DriverStats{}, fmt.Errorf("service.StatsService.ForDriver: %w", err)
	}

	used := float64(minutes) / 60
	available := domain.MaxCycleHours - used
	if available < 0 {
		available = 0
	}

	return DriverStats{
		DriverName:     driverName,
		CycleUsedHours: used,
		AvailableHours: available,
		Compliant:      available > 0,
		TripCount:      trips,
	}, nil
}
