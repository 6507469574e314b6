package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/MwangiSara/ELD-Trucking-System/internal/domain"
	"github.com/MwangiSara/ELD-Trucking-System/internal/timeline"
)

// CreateDailyLogRequest is the JSON body for POST /api/trips/{tripID}/logs.
// The date field is a plain calendar date ("2025-07-14").
type CreateDailyLogRequest struct {
	Date             openapi_types.Date `json:"date"`
	DriverName       string             `json:"driver_name"`
	VehicleNumber    string             `json:"vehicle_number"`
	TrailerNumber    string             `json:"trailer_number"`
	ShipperName      string             `json:"shipper_name,omitempty"`
	ShipperCommodity string             `json:"shipper_commodity,omitempty"`
	LoadNumber       string             `json:"load_number,omitempty"`

	TotalOffDutyTime      int `json:"total_off_duty_time"`
	TotalSleeperBerthTime int `json:"total_sleeper_berth_time"`
	TotalDrivingTime      int `json:"total_driving_time"`
	TotalOnDutyTime       int `json:"total_on_duty_time"`

	TotalDrivingMiles float64 `json:"total_driving_miles"`
}

// CreateDutyEventRequest is the JSON body for POST /api/logs/{logID}/events.
// EndTime is omitted while the duty period is still open.
type CreateDutyEventRequest struct {
	DutyStatus string     `json:"duty_status"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    *time.Time `json:"end_time,omitempty"`
	Location   string     `json:"location"`
	Remarks    string     `json:"remarks,omitempty"`
	TruckMoved bool       `json:"truck_moved"`
}

// ReconcileResponse is the JSON body for GET /api/logs/{logID}/reconcile.
// Details is present only when status is "mismatch".
type ReconcileResponse struct {
	Status  string              `json:"status"`
	Details []timeline.Mismatch `json:"details,omitempty"`
}

// createLog handles POST /api/trips/{tripID}/logs.
func (s *Server) createLog(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(r, "tripID")
	if !ok {
		notFound(w, "trip not found")
		return
	}

	var req CreateDailyLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body")
		return
	}

	created, err := s.logs.CreateLog(r.Context(), domain.DailyLog{
		TripID:                tripID,
		Date:                  req.Date.Time,
		DriverName:            req.DriverName,
		VehicleNumber:         req.VehicleNumber,
		TrailerNumber:         req.TrailerNumber,
		ShipperName:           req.ShipperName,
		ShipperCommodity:      req.ShipperCommodity,
		LoadNumber:            req.LoadNumber,
		TotalOffDutyTime:      req.TotalOffDutyTime,
		TotalSleeperBerthTime: req.TotalSleeperBerthTime,
		TotalDrivingTime:      req.TotalDrivingTime,
		TotalOnDutyTime:       req.TotalOnDutyTime,
		TotalDrivingMiles:     req.TotalDrivingMiles,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// listLogs handles GET /api/trips/{tripID}/logs.
func (s *Server) listLogs(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(r, "tripID")
	if !ok {
		notFound(w, "trip not found")
		return
	}

	logs, err := s.logs.ListByTrip(r.Context(), tripID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, logs)
}

// listEvents handles GET /api/logs/{logID}/events.
func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	logID, ok := pathUUID(r, "logID")
	if !ok {
		notFound(w, "daily log not found")
		return
	}

	events, err := s.logs.ListEvents(r.Context(), logID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, events)
}

// createEvent handles POST /api/logs/{logID}/events.
func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	logID, ok := pathUUID(r, "logID")
	if !ok {
		notFound(w, "daily log not found")
		return
	}

	var req CreateDutyEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body")
		return
	}

	created, err := s.logs.SubmitEvent(r.Context(), domain.DutyEvent{
		DailyLogID: logID,
		Status:     domain.DutyStatus(req.DutyStatus),
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Location:   req.Location,
		Remarks:    req.Remarks,
		TruckMoved: req.TruckMoved,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// getView handles GET /api/logs/{logID}/view.
// An optional ?resolution=N query parameter selects the slot grid resolution;
// 0 or absent means the server default.
func (s *Server) getView(w http.ResponseWriter, r *http.Request) {
	logID, ok := pathUUID(r, "logID")
	if !ok {
		notFound(w, "daily log not found")
		return
	}

	resolution := 0
	if raw := r.URL.Query().Get("resolution"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			requestError(w, "resolution must be an integer")
			return
		}
		resolution = n
	}

	view, err := s.logs.BuildView(r.Context(), logID, resolution)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// reconcileLog handles GET /api/logs/{logID}/reconcile.
func (s *Server) reconcileLog(w http.ResponseWriter, r *http.Request) {
	logID, ok := pathUUID(r, "logID")
	if !ok {
		notFound(w, "daily log not found")
		return
	}

	mismatches, err := s.logs.Reconcile(r.Context(), logID)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := ReconcileResponse{Status: "ok"}
	if len(mismatches) > 0 {
		resp = ReconcileResponse{Status: "mismatch", Details: mismatches}
	}
	writeJSON(w, http.StatusOK, resp)
}
