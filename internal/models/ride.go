package models

import (
	"time"
)

type Location struct {
	Lat     float64 `json:"lat" validate:"required,latitude"`
	Lon     float64 `json:"lon" validate:"required,longitude"`
	Address string  `json:"address,omitempty"`
}

type Ride struct {
	ID             string   `db:"id" json:"id"`
	DriverID       string   `db:"driver_id" json:"driver_id"`
	FromName       string   `db:"from_name" json:"from_name"`
	FromLat        *float64 `db:"from_lat" json:"from_lat,omitempty"`
	FromLon        *float64 `db:"from_lon" json:"from_lon,omitempty"`
	ToName         string   `db:"to_name" json:"to_name"`
	ToLat          *float64 `db:"to_lat" json:"to_lat,omitempty"`
	ToLon          *float64 `db:"to_lon" json:"to_lon,omitempty"`
	RideDate       string   `db:"ride_date" json:"date"`
	RideTime       string   `db:"ride_time" json:"time"`
	TotalSeats     int      `db:"total_seats" json:"total_seats"`
	RemainingSeats int      `db:"remaining_seats" json:"remaining_seats"`
	PricePerSeat   float64  `db:"price_per_seat" json:"price_per_seat"`

	// Driver snapshot, copied from the profile at creation time.
	// Later profile edits do not flow back into posted rides.
	DriverName   string `db:"driver_name" json:"driver_name"`
	DriverPhone  string `db:"driver_phone" json:"driver_phone"`
	DriverAge    int    `db:"driver_age" json:"driver_age"`
	DriverGender string `db:"driver_gender" json:"driver_gender"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type CreateRideRequest struct {
	From       string   `json:"from" validate:"required,min=1"`
	To         string   `json:"to" validate:"required,min=1"`
	FromCoords Location `json:"from_coords" validate:"required"`
	ToCoords   Location `json:"to_coords" validate:"required"`
	Date       string   `json:"date" validate:"required,datetime=2006-01-02"`
	Time       string   `json:"time" validate:"required,datetime=15:04"`
	Seats      int      `json:"seats" validate:"required,gte=1,lte=8"`
}

type SearchRidesRequest struct {
	From Location `json:"from" validate:"required"`
	To   Location `json:"to" validate:"required"`
}

type SearchRidesResponse struct {
	Route          []Coord `json:"route"`
	DistanceMeters float64 `json:"distance_meters"`
	Rides          []*Ride `json:"rides"`
}

// HasCoords reports whether both endpoints carry coordinates. Rides
// posted without coordinates are never eligible for matching.
func (r *Ride) HasCoords() bool {
	return r.FromLat != nil && r.FromLon != nil && r.ToLat != nil && r.ToLon != nil
}

// IsFull returns true when no seats remain.
func (r *Ride) IsFull() bool {
	return r.RemainingSeats <= 0
}
