package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MwangiSara/ELD-Trucking-System/internal/domain"
	"github.com/MwangiSara/ELD-Trucking-System/internal/repo"
	"github.com/MwangiSara/ELD-Trucking-System/internal/timeline"
)

// LogService implements business logic for daily logs and their duty events.
// It holds trip, log, and event repos because creating a log requires
// verifying the parent trip exists, and submitting an event folds its
// duration back into the owning log's persisted totals.
type LogService struct {
	trips  repo.TripRepo
	logs   repo.DailyLogRepo
	events repo.DutyEventRepo

	// resolution is the default grid resolution used when the caller does
	// not request one; tolerance is the reconciliation slack in minutes.
	resolution int
	tolerance  int
}

// NewLogService constructs a LogService backed by the provided repos.
// resolution must be a positive divisor of 1440; tolerance is in minutes.
func NewLogService(trips repo.TripRepo, logs repo.DailyLogRepo, events repo.DutyEventRepo, resolution, tolerance int) *LogService {
	return &LogService{trips: trips, logs: logs, events: events, resolution: resolution, tolerance: tolerance}
}

// CreateLog validates the log, verifies the parent trip exists, then persists.
// Returns domain.ErrValidation if input violates business rules.
// Returns domain.ErrNotFound if the parent trip does not exist.
func (s *LogService) CreateLog(ctx context.Context, log domain.DailyLog) (domain.DailyLog, error) {
	if _, err := s.trips.GetByID(ctx, log.TripID); err != nil {
		return domain.DailyLog{}, fmt.Errorf("service.LogService.CreateLog: %w", err)
	}
	if err := validateDailyLog(log); err != nil {
		return domain.DailyLog{}, err
	}
	result, err := s.logs.Create(ctx, log)
	if err != nil {
		return domain.DailyLog{}, fmt.Errorf("service.LogService.CreateLog: %w", err)
	}
	return result, nil
}

// GetByID returns a single daily log by ID.
func (s *LogService) GetByID(ctx context.Context, id uuid.UUID) (domain.DailyLog, error) {
	result, err := s.logs.GetByID(ctx, id)
	if err != nil {
		return domain.DailyLog{}, fmt.Errorf("service.LogService.GetByID: %w", err)
	}
	return result, nil
}

// ListByTrip returns all daily logs for a trip ordered by date ascending.
// Returns domain.ErrNotFound if the trip does not exist.
// Always returns a non-nil slice so callers can safely range over it.
func (s *LogService) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.DailyLog, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.LogService.ListByTrip: %w", err)
	}
	logs, err := s.logs.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.LogService.ListByTrip: %w", err)
	}
	if logs == nil {
		logs = []domain.DailyLog{}
	}
	return logs, nil
}

// ListEvents returns the raw duty events of a daily log.
// Returns domain.ErrNotFound if the log does not exist.
// Always returns a non-nil slice so callers can safely range over it.
func (s *LogService) ListEvents(ctx context.Context, logID uuid.UUID) ([]domain.DutyEvent, error) {
	if _, err := s.logs.GetByID(ctx, logID); err != nil {
		return nil, fmt.Errorf("service.LogService.ListEvents: %w", err)
	}
	events, err := s.events.ListByDailyLogID(ctx, logID)
	if err != nil {
		return nil, fmt.Errorf("service.LogService.ListEvents: %w", err)
	}
	if events == nil {
		events = []domain.DutyEvent{}
	}
	return events, nil
}

// SubmitEvent validates a new duty event, persists it, and folds its clipped
// duration into the owning log's persisted total for that status. Open
// events (no end time) are stored but fold nothing — their one-hour display
// default is not a recorded duration.
//
// Returns domain.ErrValidation for a malformed event or when the fold would
// push the log's totals past the 1440-minute day.
// Returns domain.ErrNotFound if the owning log does not exist.
func (s *LogService) SubmitEvent(ctx context.Context, event domain.DutyEvent) (domain.DutyEvent, error) {
	log, err := s.logs.GetByID(ctx, event.DailyLogID)
	if err != nil {
		return domain.DutyEvent{}, fmt.Errorf("service.LogService.SubmitEvent: %w", err)
	}
	if err := validateDutyEvent(event); err != nil {
		return domain.DutyEvent{}, err
	}

	minutes := 0
	if event.EndTime != nil {
		m, err := timeline.ClippedMinutes(log.Date, event)
		if err != nil {
			return domain.DutyEvent{}, fmt.Errorf("service.LogService.SubmitEvent: %w", err)
		}
		minutes = m
		// Fast-fail on the totals we just read. The authoritative check is
		// the conditional update in AddToTotals, which holds even when two
		// submits race past this point together.
		if log.TotalsSum()+minutes > domain.MinutesPerDay {
			return domain.DutyEvent{}, fmt.Errorf("%w: event would push daily totals past %d minutes",
				domain.ErrValidation, domain.MinutesPerDay)
		}
	}

	created, err := s.events.Create(ctx, event)
	if err != nil {
		return domain.DutyEvent{}, fmt.Errorf("service.LogService.SubmitEvent: %w", err)
	}

	if minutes > 0 {
		if err := s.logs.AddToTotals(ctx, log.ID, event.Status, minutes); err != nil {
			return domain.DutyEvent{}, fmt.Errorf("service.LogService.SubmitEvent: fold totals: %w", err)
		}
	}

	return created, nil
}

// BuildView fetches a daily log and its events and assembles the full
// DailyLogView. A resolution of 0 means "use the service default".
//
// Returns domain.ErrNotFound if the log does not exist, domain.ErrValidation
// for a bad resolution or malformed event data, and domain.ErrFetch when the
// storage layer fails — in every failure case no partial view is returned.
func (s *LogService) BuildView(ctx context.Context, logID uuid.UUID, resolution int) (timeline.DailyLogView, error) {
	if resolution == 0 {
		resolution = s.resolution
	}

	log, err := s.logs.GetByID(ctx, logID)
	if err != nil {
		return timeline.DailyLogView{}, fmt.Errorf("service.LogService.BuildView: %w", err)
	}
	events, err := s.events.ListByDailyLogID(ctx, logID)
	if err != nil {
		return timeline.DailyLogView{}, fmt.Errorf("service.LogService.BuildView: %w", err)
	}

	view, err := timeline.BuildView(log, events, resolution, s.tolerance)
	if err != nil {
		return timeline.DailyLogView{}, fmt.Errorf("service.LogService.BuildView: %w", err)
	}
	return view, nil
}

// Reconcile recomputes a log's per-status totals from its events and compares
// them against the persisted totals. The returned slice is empty when the
// log reconciles within tolerance.
func (s *LogService) Reconcile(ctx context.Context, logID uuid.UUID) ([]timeline.Mismatch, error) {
	log, err := s.logs.GetByID(ctx, logID)
	if err != nil {
		return nil, fmt.Errorf("service.LogService.Reconcile: %w", err)
	}
	events, err := s.events.ListByDailyLogID(ctx, logID)
	if err != nil {
		return nil, fmt.Errorf("service.LogService.Reconcile: %w", err)
	}

	schedule, err := timeline.Normalize(log.Date, events)
	if err != nil {
		return nil, fmt.Errorf("service.LogService.Reconcile: %w", err)
	}
	totals, err := timeline.Totals(schedule)
	if err != nil {
		return nil, fmt.Errorf("service.LogService.Reconcile: %w", err)
	}

	return timeline.Reconcile(log, totals, s.tolerance), nil
}

// validateDailyLog enforces business rules for log creation.
//   - Date is required.
//   - Totals must already respect the 1440-minute day.
//   - Mileage cannot be negative.
func validateDailyLog(log domain.DailyLog) error {
	if log.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if log.TotalOffDutyTime < 0 || log.TotalSleeperBerthTime < 0 || log.TotalDrivingTime < 0 || log.TotalOnDutyTime < 0 {
		return fmt.Errorf("%w: duty totals must not be negative", domain.ErrValidation)
	}
	if sum := log.TotalsSum(); sum > domain.MinutesPerDay {
		return fmt.Errorf("%w: duty totals sum to %d minutes, exceeding the %d-minute day",
			domain.ErrValidation, sum, domain.MinutesPerDay)
	}
	if log.TotalDrivingMiles < 0 {
		return fmt.Errorf("%w: total_driving_miles must not be negative", domain.ErrValidation)
	}
	return nil
}

// validateDutyEvent enforces business rules for event submission.
//   - Status must be one of the four duty statuses.
//   - Start time is required; end time, when present, must not precede it.
//   - Location must be non-empty.
func validateDutyEvent(event domain.DutyEvent) error {
	if _, err := domain.ParseDutyStatus(string(event.Status)); err != nil {
		return err
	}
	if event.StartTime.IsZero() {
		return fmt.Errorf("%w: start_time is required", domain.ErrValidation)
	}
	if event.EndTime != nil && event.EndTime.Before(event.StartTime) {
		return fmt.Errorf("%w: end_time must not be before start_time", domain.ErrValidation)
	}
	if strings.TrimSpace(event.Location) == "" {
		return fmt.Errorf("%w: location is required", domain.ErrValidation)
	}
	return nil
}
