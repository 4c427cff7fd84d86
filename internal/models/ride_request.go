package models

import (
	"time"
)

// Ride request status constants
const (
	RequestStatusPending  = "Pending"
	RequestStatusAccepted = "Accepted"
	RequestStatusRejected = "Rejected"
)

// Valid request state transitions for driver actions. Accepted and
// Rejected are terminal from the driver's point of view; the service may
// still revert an acceptance internally when the seat take fails.
var ValidRequestTransitions = map[string][]string{
	RequestStatusPending:  {RequestStatusAccepted, RequestStatusRejected},
	RequestStatusAccepted: {},
	RequestStatusRejected: {},
}

type RideRequest struct {
	ID          string `db:"id" json:"id"`
	RideID      string `db:"ride_id" json:"ride_id"`
	DriverID    string `db:"driver_id" json:"driver_id"`
	RequesterID string `db:"requester_id" json:"requester_id"`

	// Snapshot fields copied from the ride and requester at request time.
	DriverName    string `db:"driver_name" json:"driver_name"`
	RequesterName string `db:"requester_name" json:"requester_name"`
	Pickup        string `db:"pickup" json:"pickup"`
	Drop          string `db:"drop_off" json:"drop"`
	RideDate      string `db:"ride_date" json:"date"`
	RideTime      string `db:"ride_time" json:"time"`

	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type CreateRideRequestRequest struct {
	RideID string `json:"ride_id" validate:"required,uuid"`
}

// CanTransitionTo checks if a request can move to a new status.
func (rr *RideRequest) CanTransitionTo(newStatus string) bool {
	validNextStates, exists := ValidRequestTransitions[rr.Status]
	if !exists {
		return false
	}

	for _, state := range validNextStates {
		if state == newStatus {
			return true
		}
	}
	return false
}

// IsOutstanding returns true while the request still counts against the
// one-request-per-ride rule (Pending or Accepted).
func (rr *RideRequest) IsOutstanding() bool {
	return rr.Status == RequestStatusPending || rr.Status == RequestStatusAccepted
}
