// Package domain contains the core data types for the HOS daily-log service.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (timeline, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxCycleHours is the ceiling for a driver's rolling cycle usage, in hours.
// A trip cannot be created with more cycle time already consumed than this.
const MaxCycleHours = 70

// Trip represents one trucking trip: where the driver currently is, where the
// load is picked up, and where it is dropped off. A trip is the top-level
// aggregate; daily logs belong to a trip.
//
// Trips are immutable after creation — there are no update or delete
// operations in this service.
type Trip struct {
	ID               uuid.UUID `json:"id"`
	DriverName       string    `json:"driver_name"`
	CurrentLocation  string    `json:"current_location"`
	PickupLocation   string    `json:"pickup_location"`
	DropoffLocation  string    `json:"dropoff_location"`
	CurrentCycleUsed float64   `json:"current_cycle_used"` // hours already used in the rolling cycle, 0–70
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
