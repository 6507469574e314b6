package domain

import "fmt"

// DutyStatus is one of the four mutually exclusive duty categories a driver
// records on an ELD log sheet.
type DutyStatus string

const (
	StatusOffDuty      DutyStatus = "off_duty"
	StatusSleeperBerth DutyStatus = "sleeper_berth"
	StatusDriving      DutyStatus = "driving"
	StatusOnDuty       DutyStatus = "on_duty"
)

// DutyStatuses returns the four statuses in log-sheet row order.
// The order is fixed: off duty, sleeper berth, driving, on duty.
func DutyStatuses() []DutyStatus {
	return []DutyStatus{StatusOffDuty, StatusSleeperBerth, StatusDriving, StatusOnDuty}
}

// ParseDutyStatus converts a wire string into a DutyStatus.
// Returns ErrValidation for anything outside the four known values.
func ParseDutyStatus(s string) (DutyStatus, error) {
	switch DutyStatus(s) {
	case StatusOffDuty, StatusSleeperBerth, StatusDriving, StatusOnDuty:
		return DutyStatus(s), nil
	}
	return "", fmt.Errorf("%w: unknown duty status %q", ErrValidation, s)
}
