package domain

import (
	"time"

	"github.com/google/uuid"
)

// MinutesPerDay is the length of one log-sheet day. The four per-status
// totals of a DailyLog may never sum past this.
const MinutesPerDay = 1440

// DailyLog is one driver's duty record for one calendar date within a trip.
// The four totals are persisted summary values in whole minutes; they are the
// value of record for display. The timeline engine recomputes them from the
// raw duty events and reports (never corrects) any divergence.
type DailyLog struct {
	ID     uuid.UUID `json:"id"`
	TripID uuid.UUID `json:"trip_id"`
	Date   time.Time `json:"date"` // date only, midnight UTC

	DriverName       string `json:"driver_name"`
	VehicleNumber    string `json:"vehicle_number"`
	TrailerNumber    string `json:"trailer_number"`
	ShipperName      string `json:"shipper_name,omitempty"`
	ShipperCommodity string `json:"shipper_commodity,omitempty"`
	LoadNumber       string `json:"load_number,omitempty"`

	TotalOffDutyTime      int `json:"total_off_duty_time"`      // minutes
	TotalSleeperBerthTime int `json:"total_sleeper_berth_time"` // minutes
	TotalDrivingTime      int `json:"total_driving_time"`       // minutes
	TotalOnDutyTime       int `json:"total_on_duty_time"`       // minutes

	TotalDrivingMiles float64 `json:"total_driving_miles"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PersistedTotal returns the stored minute total for one duty status.
func (l DailyLog) PersistedTotal(status DutyStatus) int {
	switch status {
	case StatusOffDuty:
		return l.TotalOffDutyTime
	case StatusSleeperBerth:
		return l.TotalSleeperBerthTime
	case StatusDriving:
		return l.TotalDrivingTime
	case StatusOnDuty:
		return l.TotalOnDutyTime
	}
	return 0
}

// TotalsSum returns the sum of all four persisted totals in minutes.
func (l DailyLog) TotalsSum() int {
	return l.TotalOffDutyTime + l.TotalSleeperBerthTime + l.TotalDrivingTime + l.TotalOnDutyTime
}
