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

// DutyEventRepo defines the persistence operations for DutyEvents.
// Events are append-only: there is no update or delete.
type DutyEventRepo interface {
	// Create inserts a new duty event and returns the persisted record.
	Create(ctx context.Context, event domain.DutyEvent) (domain.DutyEvent, error)

	// ListByDailyLogID returns all duty events for a daily log. No ordering
	// is guaranteed — the timeline engine sorts during normalization.
	ListByDailyLogID(ctx context.Context, logID uuid.UUID) ([]domain.DutyEvent, error)
}

// pgDutyEventRepo is the Postgres implementation of DutyEventRepo.
type pgDutyEventRepo struct {
	db db
}

// NewDutyEventRepo constructs a DutyEventRepo backed by the provided db connection.
func NewDutyEventRepo(db db) DutyEventRepo {
	return &pgDutyEventRepo{db: db}
}

func (r *pgDutyEventRepo) Create(ctx context.Context, event domain.DutyEvent) (domain.DutyEvent, error) {
	const q = `
		INSERT INTO duty_events (daily_log_id, duty_status, start_time, end_time, location, remarks, truck_moved)
		VALUES (@daily_log_id, @duty_status, @start_time, @end_time, @location, @remarks, @truck_moved)
		RETURNING id, daily_log_id, duty_status, start_time, end_time, location, remarks, truck_moved, created_at`

	args := pgx.NamedArgs{
		"daily_log_id": event.DailyLogID,
		"duty_status":  string(event.Status),
		"start_time":   event.StartTime,
		"end_time":     event.EndTime, // nil becomes NULL
		"location":     event.Location,
		"remarks":      event.Remarks,
		"truck_moved":  event.TruckMoved,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanDutyEvent(row)
	if err != nil {
		return domain.DutyEvent{}, fmt.Errorf("repo.DutyEventRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDutyEventRepo) ListByDailyLogID(ctx context.Context, logID uuid.UUID) ([]domain.DutyEvent, error) {
	const q = `
		SELECT id, daily_log_id, duty_status, start_time, end_time, location, remarks, truck_moved, created_at
		FROM duty_events
		WHERE daily_log_id = @daily_log_id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"daily_log_id": logID})
	if err != nil {
		return nil, fmt.Errorf("repo.DutyEventRepo.ListByDailyLogID: %w: %w", domain.ErrFetch, err)
	}
	defer rows.Close()

	var events []domain.DutyEvent
	for rows.Next() {
		ev, err := scanDutyEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DutyEventRepo.ListByDailyLogID: scan: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DutyEventRepo.ListByDailyLogID: rows: %w: %w", domain.ErrFetch, err)
	}

	return events, nil
}

// scanDutyEvent maps a single database row into a domain.DutyEvent.
// It handles the UUID and nullable end_time conversions.
func scanDutyEvent(s scanner) (domain.DutyEvent, error) {
	var (
		ev      domain.DutyEvent
		id      pgtype.UUID
		logID   pgtype.UUID
		status  string
		endTime pgtype.Timestamptz
	)

	err := s.Scan(&id, &logID, &status, &ev.StartTime, &endTime,
		&ev.Location, &ev.Remarks, &ev.TruckMoved, &ev.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DutyEvent{}, domain.ErrNotFound
		}
		return domain.DutyEvent{}, fmt.Errorf("%w: %w", domain.ErrFetch, err)
	}

	ev.ID = uuid.UUID(id.Bytes)
	ev.DailyLogID = uuid.UUID(logID.Bytes)
	ev.Status = domain.DutyStatus(status)
	if endTime.Valid {
		et := endTime.Time
		ev.EndTime = &et
	}
	return ev, nil
}
