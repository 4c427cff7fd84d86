package service

import (
	"context"
	"math"

	"github.com/example/carpool/internal/models"
	"github.com/example/carpool/internal/repository"
)

// DefaultMatchTolerance is the coordinate tolerance in degrees for deciding
// whether a ride's origin lies "on" a candidate route. This is a coarse
// bounding-box check, not geodesic distance; it degrades near the antimeridian
// and at high latitudes, which is acceptable for city-scale carpooling.
const DefaultMatchTolerance = 0.05

// MatchingService filters posted rides by proximity of their origin to a
// rider's computed route.
type MatchingService interface {
	FindMatchingRides(ctx context.Context, route []models.Coord) ([]*models.Ride, error)
}

type matchingService struct {
	rideRepo  repository.RideRepository
	tolerance float64
}

func NewMatchingService(rideRepo repository.RideRepository, tolerance float64) MatchingService {
	if tolerance <= 0 {
		tolerance = DefaultMatchTolerance
	}
	return &matchingService{
		rideRepo:  rideRepo,
		tolerance: tolerance,
	}
}

// FindMatchingRides returns the rides whose origin coordinate lies within
// the tolerance of at least one point along the route. It is a pure filter
// over a store snapshot: result order is the store's enumeration order, and
// a store read failure propagates whole rather than returning a partial list.
func (s *matchingService) FindMatchingRides(ctx context.Context, route []models.Coord) ([]*models.Ride, error) {
	rides, err := s.rideRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*models.Ride, 0)
	for _, ride := range rides {
		// Rides posted without coordinates are never matched.
		if !ride.HasCoords() {
			continue
		}
		if s.routeNearOrigin(route, *ride.FromLat, *ride.FromLon) {
			matched = append(matched, ride)
		}
	}
	return matched, nil
}

func (s *matchingService) routeNearOrigin(route []models.Coord, lat, lon float64) bool {
	for _, p := range route {
		if math.Abs(p.Lat-lat) < s.tolerance && math.Abs(p.Lon-lon) < s.tolerance {
			return true
		}
	}
	return false
}
