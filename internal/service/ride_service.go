package service

import (
	"context"
	"log"

	apperrors "github.com/example/carpool/internal/errors"
	"github.com/example/carpool/internal/models"
	"github.com/example/carpool/internal/repository"
)

type RideService interface {
	CreateRide(ctx context.Context, session *models.Session, req *models.CreateRideRequest) (*models.Ride, error)
	GetRide(ctx context.Context, id string) (*models.Ride, error)
	ListRides(ctx context.Context) ([]*models.Ride, error)
	ListMyRides(ctx context.Context, session *models.Session) ([]*models.Ride, error)
	SearchRides(ctx context.Context, req *models.SearchRidesRequest) (*models.SearchRidesResponse, error)
}

type rideService struct {
	rideRepo        repository.RideRepository
	userRepo        repository.UserRepository
	geoService      GeoService
	pricingService  PricingService
	matchingService MatchingService
}

func NewRideService(
	rideRepo repository.RideRepository,
	userRepo repository.UserRepository,
	geoService GeoService,
	pricingService PricingService,
	matchingService MatchingService,
) RideService {
	return &rideService{
		rideRepo:        rideRepo,
		userRepo:        userRepo,
		geoService:      geoService,
		pricingService:  pricingService,
		matchingService: matchingService,
	}
}

func (s *rideService) CreateRide(ctx context.Context, session *models.Session, req *models.CreateRideRequest) (*models.Ride, error) {
	if session == nil {
		return nil, apperrors.Unauthenticated()
	}

	driver, err := s.userRepo.GetByID(ctx, session.UID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, apperrors.NotFound("user profile")
	}

	// Prefer the routed distance; fall back to a haversine estimate when
	// the routing service is down so ride creation still succeeds.
	distanceKm := 0.0
	if s.geoService != nil {
		route, err := s.geoService.ComputeRoute(ctx,
			models.Coord{Lat: req.FromCoords.Lat, Lon: req.FromCoords.Lon},
			models.Coord{Lat: req.ToCoords.Lat, Lon: req.ToCoords.Lon})
		if err == nil {
			distanceKm = route.DistanceMeters / 1000
		} else {
			log.Printf("route lookup failed during ride creation, using estimate: %v", err)
		}
	}
	if distanceKm == 0 {
		distanceKm = s.pricingService.EstimateDistanceKm(
			req.FromCoords.Lat, req.FromCoords.Lon,
			req.ToCoords.Lat, req.ToCoords.Lon)
	}

	fromLat, fromLon := req.FromCoords.Lat, req.FromCoords.Lon
	toLat, toLon := req.ToCoords.Lat, req.ToCoords.Lon

	ride := &models.Ride{
		DriverID:     session.UID,
		FromName:     req.From,
		FromLat:      &fromLat,
		FromLon:      &fromLon,
		ToName:       req.To,
		ToLat:        &toLat,
		ToLon:        &toLon,
		RideDate:     req.Date,
		RideTime:     req.Time,
		TotalSeats:   req.Seats,
		PricePerSeat: s.pricingService.PricePerSeat(distanceKm, req.Seats),

		// Snapshot of the driver profile; later edits must not leak in.
		DriverName:   driver.DisplayName(),
		DriverPhone:  driver.Phone,
		DriverAge:    driver.Age,
		DriverGender: driver.Gender,
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}
	return ride, nil
}

func (s *rideService) GetRide(ctx context.Context, id string) (*models.Ride, error) {
	ride, err := s.rideRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ride == nil {
		return nil, apperrors.RideNotFound()
	}
	return ride, nil
}

func (s *rideService) ListRides(ctx context.Context) ([]*models.Ride, error) {
	return s.rideRepo.GetAll(ctx)
}

func (s *rideService) ListMyRides(ctx context.Context, session *models.Session) ([]*models.Ride, error) {
	if session == nil {
		return nil, apperrors.Unauthenticated()
	}
	return s.rideRepo.GetByDriverID(ctx, session.UID)
}

// SearchRides computes the rider's route and filters posted rides by
// origin proximity to it.
func (s *rideService) SearchRides(ctx context.Context, req *models.SearchRidesRequest) (*models.SearchRidesResponse, error) {
	route, err := s.geoService.ComputeRoute(ctx,
		models.Coord{Lat: req.From.Lat, Lon: req.From.Lon},
		models.Coord{Lat: req.To.Lat, Lon: req.To.Lon})
	if err != nil {
		return nil, err
	}

	rides, err := s.matchingService.FindMatchingRides(ctx, route.Geometry)
	if err != nil {
		return nil, err
	}

	return &models.SearchRidesResponse{
		Route:          route.Geometry,
		DistanceMeters: route.DistanceMeters,
		Rides:          rides,
	}, nil
}
