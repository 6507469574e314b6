// Package service contains the business logic for the HOS daily-log API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MwangiSara/ELD-Trucking-System/internal/domain"
	"github.com/MwangiSara/ELD-Trucking-System/internal/repo"
)

// TripService implements business logic for Trip operations.
// Trips are created and read, never updated or deleted.
type TripService struct {
	repo repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r}
}

// Create validates and persists a new trip.
// Returns domain.ErrValidation if input violates business rules.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID.
// Returns domain.ErrNotFound if no trip with that ID exists.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of trips plus the total count, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// validateTrip enforces business rules for trip creation.
//   - All three location strings must be non-empty.
//   - Cycle usage must be within [0, 70] hours.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.CurrentLocation) == "" {
		return fmt.Errorf("%w: current_location is required", domain.ErrValidation)
	}
	if strings.TrimSpace(trip.PickupLocation) == "" {
		return fmt.Errorf("%w: pickup_location is required", domain.ErrValidation)
	}
	if strings.TrimSpace(trip.DropoffLocation) == "" {
		return fmt.Errorf("%w: dropoff_location is required", domain.ErrValidation)
	}
	if trip.CurrentCycleUsed < 0 || trip.CurrentCycleUsed > domain.MaxCycleHours {
		return fmt.Errorf("%w: current_cycle_used must be between 0 and %d hours", domain.ErrValidation, domain.MaxCycleHours)
	}
	return nil
}
