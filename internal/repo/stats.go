package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/MwangiSara/ELD-Trucking-System/internal/domain"
)

// DriverStatsRepo answers the aggregate queries behind driver statistics.
// Unlike the timeline engine these are cross-log sums, so they live in SQL.
type DriverStatsRepo interface {
	// CycleMinutesSince sums driving plus on-duty minutes over a driver's
	// daily logs dated on or after the given date.
	CycleMinutesSince(ctx context.Context, driverName string, since time.Time) (int64, error)

	// TripCount returns how many trips the driver has.
	TripCount(ctx context.Context, driverName string) (int64, error)
}

// pgDriverStatsRepo is the Postgres implementation of DriverStatsRepo.
type pgDriverStatsRepo struct {
	db db
}

// NewDriverStatsRepo constructs a DriverStatsRepo backed by the provided db connection.
func NewDriverStatsRepo(db db) DriverStatsRepo {
	return &pgDriverStatsRepo{db: db}
}

func (r *pgDriverStatsRepo) CycleMinutesSince(ctx context.Context, driverName string, since time.Time) (int64, error) {
	const q = `
		SELECT coalesce(sum(total_driving_time + total_on_duty_time), 0)
		FROM daily_logs
		WHERE driver_name = @driver_name AND date >= @since`

	var minutes int64
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"driver_name": driverName, "since": since}).Scan(&minutes)
	if err != nil {
		return 0, fmt.Errorf("repo.DriverStatsRepo.CycleMinutesSince: %w: %w", domain.ErrFetch, err)
	}
	return minutes, nil
}

func (r *pgDriverStatsRepo) TripCount(ctx context.Context, driverName string) (int64, error) {
	const q = `SELECT count(*) FROM trips WHERE driver_name = @driver_name`

	var count int64
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"driver_name": driverName}).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("repo.DriverStatsRepo.TripCount: %w: %w", domain.ErrFetch, err)
	}
	return count, nil
}
