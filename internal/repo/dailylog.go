package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/MwangiSara/ELD-Trucking-System/internal/domain"
)

// DailyLogRepo defines the persistence operations for DailyLogs.
// A daily log is mutated only through AddToTotals — the aggregation path
// that folds a newly recorded duty event into the per-status summary.
type DailyLogRepo interface {
	// Create inserts a new daily log and returns the persisted record.
	Create(ctx context.Context, log domain.DailyLog) (domain.DailyLog, error)

	// GetByID retrieves a single daily log by its UUID primary key.
	// Returns domain.ErrNotFound if no log with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.DailyLog, error)

	// ListByTripID returns all daily logs for a trip ordered by date ascending.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.DailyLog, error)

	// AddToTotals adds minutes to one status's persisted total on a log.
	// The update is conditional: it only applies while the four totals plus
	// the new minutes stay within domain.MinutesPerDay, so concurrent folds
	// cannot push the persisted sum past one day. Returns domain.ErrNotFound
	// if the log does not exist and domain.ErrValidation if the fold would
	// exceed the cap.
	AddToTotals(ctx context.Context, logID uuid.UUID, status domain.DutyStatus, minutes int) error
}

// pgDailyLogRepo is the Postgres implementation of DailyLogRepo.
type pgDailyLogRepo struct {
	db db
}

// NewDailyLogRepo constructs a DailyLogRepo backed by the provided db connection.
func NewDailyLogRepo(db db) DailyLogRepo {
	return &pgDailyLogRepo{db: db}
}

const dailyLogColumns = `id, trip_id, date, driver_name, vehicle_number, trailer_number,
       shipper_name, shipper_commodity, load_number,
       total_off_duty_time, total_sleeper_berth_time, total_driving_time, total_on_duty_time,
       total_driving_miles, created_at, updated_at`

func (r *pgDailyLogRepo) Create(ctx context.Context, log domain.DailyLog) (domain.DailyLog, error) {
	const q = `
		INSERT INTO daily_logs (trip_id, date, driver_name, vehicle_number, trailer_number,
		                        shipper_name, shipper_commodity, load_number,
		                        total_off_duty_time, total_sleeper_berth_time,
		                        total_driving_time, total_on_duty_time, total_driving_miles)
		VALUES (@trip_id, @date, @driver_name, @vehicle_number, @trailer_number,
		        @shipper_name, @shipper_commodity, @load_number,
		        @total_off_duty_time, @total_sleeper_berth_time,
		        @total_driving_time, @total_on_duty_time, @total_driving_miles)
		RETURNING ` + dailyLogColumns

	args := pgx.NamedArgs{
		"trip_id":                  log.TripID,
		"date":                     log.Date,
		"driver_name":              log.DriverName,
		"vehicle_number":           log.VehicleNumber,
		"trailer_number":           log.TrailerNumber,
		"shipper_name":             log.ShipperName,
		"shipper_commodity":        log.ShipperCommodity,
		"load_number":              log.LoadNumber,
		"total_off_duty_time":      log.TotalOffDutyTime,
		"total_sleeper_berth_time": log.TotalSleeperBerthTime,
		"total_driving_time":       log.TotalDrivingTime,
		"total_on_duty_time":       log.TotalOnDutyTime,
		"total_driving_miles":      log.TotalDrivingMiles,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanDailyLog(row)
	if err != nil {
		return domain.DailyLog{}, fmt.Errorf("repo.DailyLogRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDailyLogRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.DailyLog, error) {
	const q = `SELECT ` + dailyLogColumns + ` FROM daily_logs WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanDailyLog(row)
	if err != nil {
		return domain.DailyLog{}, fmt.Errorf("repo.DailyLogRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgDailyLogRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.DailyLog, error) {
	const q = `SELECT ` + dailyLogColumns + ` FROM daily_logs WHERE trip_id = @trip_id ORDER BY date ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.DailyLogRepo.ListByTripID: %w: %w", domain.ErrFetch, err)
	}
	defer rows.Close()

	var logs []domain.DailyLog
	for rows.Next() {
		l, err := scanDailyLog(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DailyLogRepo.ListByTripID: scan: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DailyLogRepo.ListByTripID: rows: %w: %w", domain.ErrFetch, err)
	}

	return logs, nil
}

// totalColumn maps a duty status to its summary column. The status is an
// enumerated type, never user input, so interpolating the column name is safe.
func totalColumn(status domain.DutyStatus) (string, error) {
	switch status {
	case domain.StatusOffDuty:
		return "total_off_duty_time", nil
	case domain.StatusSleeperBerth:
		return "total_sleeper_berth_time", nil
	case domain.StatusDriving:
		return "total_driving_time", nil
	case domain.StatusOnDuty:
		return "total_on_duty_time", nil
	}
	return "", fmt.Errorf("%w: unknown duty status %q", domain.ErrValidation, status)
}

func (r *pgDailyLogRepo) AddToTotals(ctx context.Context, logID uuid.UUID, status domain.DutyStatus, minutes int) error {
	column, err := totalColumn(status)
	if err != nil {
		return fmt.Errorf("repo.DailyLogRepo.AddToTotals: %w", err)
	}

	// The cap is enforced inside the UPDATE itself so two concurrent folds
	// cannot both read a low sum and together overshoot the day.
	q := fmt.Sprintf(`
		UPDATE daily_logs
		SET %[1]s = %[1]s + @minutes,
		    updated_at = now()
		WHERE id = @id
		  AND total_off_duty_time + total_sleeper_berth_time
		    + total_driving_time + total_on_duty_time + @minutes <= @cap`, column)

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"id":      logID,
		"minutes": minutes,
		"cap":     domain.MinutesPerDay,
	})
	if err != nil {
		return fmt.Errorf("repo.DailyLogRepo.AddToTotals: %w: %w", domain.ErrFetch, err)
	}
	if tag.RowsAffected() == 0 {
		// Zero rows is either a missing log or a fold past the cap.
		if _, err := r.GetByID(ctx, logID); err != nil {
			return fmt.Errorf("repo.DailyLogRepo.AddToTotals: %w", err)
		}
		return fmt.Errorf("repo.DailyLogRepo.AddToTotals: %w: totals would exceed %d minutes",
			domain.ErrValidation, domain.MinutesPerDay)
	}
	return nil
}

// scanDailyLog maps a single database row into a domain.DailyLog.
func scanDailyLog(s scanner) (domain.DailyLog, error) {
	var (
		l      domain.DailyLog
		id     pgtype.UUID
		tripID pgtype.UUID
		date   pgtype.Date
	)

	err := s.Scan(&id, &tripID, &date, &l.DriverName, &l.VehicleNumber, &l.TrailerNumber,
		&l.ShipperName, &l.ShipperCommodity, &l.LoadNumber,
		&l.TotalOffDutyTime, &l.TotalSleeperBerthTime, &l.TotalDrivingTime, &l.TotalOnDutyTime,
		&l.TotalDrivingMiles, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DailyLog{}, domain.ErrNotFound
		}
		return domain.DailyLog{}, fmt.Errorf("%w: %w", domain.ErrFetch, err)
	}

	l.ID = uuid.UUID(id.Bytes)
	l.TripID = uuid.UUID(tripID.Bytes)
	l.Date = date.Time
	return l, nil
}
