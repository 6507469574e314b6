package domain

import (
	"time"

	"github.com/google/uuid"
)

// DutyEvent is a single timestamped interval of one duty status within a
// daily log. EndTime is nil while the event is still open. Events are
// immutable once created — corrections are made by recording new events,
// never by editing history.
type DutyEvent struct {
	ID         uuid.UUID  `json:"id"`
	DailyLogID uuid.UUID  `json:"daily_log_id"`
	Status     DutyStatus `json:"duty_status"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    *time.Time `json:"end_time,omitempty"` // nil when the event is still open
	Location   string     `json:"location"`
	Remarks    string     `json:"remarks,omitempty"`
	TruckMoved bool       `json:"truck_moved"`
	CreatedAt  time.Time  `json:"created_at"`
}
