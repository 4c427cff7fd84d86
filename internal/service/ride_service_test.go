package service

import (
	"context"
	"testing"

	"github.com/example/carpool/internal/models"
	"github.com/example/carpool/internal/repository"
)

func newRideServiceFixture(t *testing.T) (RideService, *repository.MemoryRideRepository) {
	t.Helper()
	rideRepo := repository.NewMemoryRideRepository()
	userRepo := repository.NewMemoryUserRepository()

	driver := &models.User{
		ID:        "driver-1",
		Firstname: "Asha",
		Lastname:  "Kumar",
		Age:       30,
		Gender:    "female",
		Phone:     "9876543210",
	}
	if err := userRepo.Create(context.Background(), driver); err != nil {
		t.Fatalf("create driver: %v", err)
	}

	pricing := NewPricingService(100, 15)
	matching := NewMatchingService(rideRepo, DefaultMatchTolerance)
	svc := NewRideService(rideRepo, userRepo, nil, pricing, matching)
	return svc, rideRepo
}

func TestCreateRide(t *testing.T) {
	svc, rideRepo := newRideServiceFixture(t)
	session := &models.Session{UID: "driver-1", DisplayName: "Asha Kumar"}

	req := &models.CreateRideRequest{
		From:       "Mumbai",
		To:         "Pune",
		FromCoords: models.Location{Lat: 19.0760, Lon: 72.8777},
		ToCoords:   models.Location{Lat: 18.5204, Lon: 73.8567},
		Date:       "2026-09-01",
		Time:       "09:00",
		Seats:      3,
	}

	ride, err := svc.CreateRide(context.Background(), session, req)
	if err != nil {
		t.Fatalf("CreateRide() error = %v", err)
	}

	if ride.RemainingSeats != 3 || ride.TotalSeats != 3 {
		t.Errorf("seats = %d/%d, want 3/3", ride.RemainingSeats, ride.TotalSeats)
	}
	if ride.PricePerSeat <= 0 {
		t.Errorf("price per seat = %v, want > 0", ride.PricePerSeat)
	}
	if !ride.HasCoords() {
		t.Error("ride should carry both endpoint coordinates")
	}

	// Driver snapshot is denormalized onto the ride at creation time.
	if ride.DriverName != "Asha Kumar" || ride.DriverPhone != "9876543210" {
		t.Errorf("driver snapshot = %s/%s", ride.DriverName, ride.DriverPhone)
	}
	if ride.DriverAge != 30 || ride.DriverGender != "female" {
		t.Errorf("driver snapshot = %d/%s", ride.DriverAge, ride.DriverGender)
	}

	stored, err := rideRepo.GetByID(context.Background(), ride.ID)
	if err != nil || stored == nil {
		t.Fatalf("stored ride missing: %v", err)
	}
}

func TestCreateRideRequiresSession(t *testing.T) {
	svc, _ := newRideServiceFixture(t)

	_, err := svc.CreateRide(context.Background(), nil, &models.CreateRideRequest{})
	if code := apiErrorCode(t, err); code != "unauthenticated" {
		t.Errorf("error code = %s, want unauthenticated", code)
	}
}

func TestListMyRides(t *testing.T) {
	svc, _ := newRideServiceFixture(t)
	session := &models.Session{UID: "driver-1", DisplayName: "Asha Kumar"}

	req := &models.CreateRideRequest{
		From:       "Mumbai",
		To:         "Pune",
		FromCoords: models.Location{Lat: 19.0760, Lon: 72.8777},
		ToCoords:   models.Location{Lat: 18.5204, Lon: 73.8567},
		Date:       "2026-09-01",
		Time:       "09:00",
		Seats:      2,
	}
	if _, err := svc.CreateRide(context.Background(), session, req); err != nil {
		t.Fatalf("CreateRide() error = %v", err)
	}

	rides, err := svc.ListMyRides(context.Background(), session)
	if err != nil {
		t.Fatalf("ListMyRides() error = %v", err)
	}
	if len(rides) != 1 {
		t.Errorf("got %d rides, want 1", len(rides))
	}

	other := &models.Session{UID: "someone-else"}
	rides, err = svc.ListMyRides(context.Background(), other)
	if err != nil {
		t.Fatalf("ListMyRides() error = %v", err)
	}
	if len(rides) != 0 {
		t.Errorf("got %d rides for another driver, want 0", len(rides))
	}
}
