package service

import (
	"context"
	"log"
	"unicode/utf8"

	"github.com/example/carpool/internal/cache"
	apperrors "github.com/example/carpool/internal/errors"
	"github.com/example/carpool/internal/geo"
	"github.com/example/carpool/internal/models"
)

// GeoService fronts the geocoding and routing gateways, with a Redis cache
// over suggestion lookups.
type GeoService interface {
	SearchLocations(ctx context.Context, query string) ([]models.Place, error)
	ComputeRoute(ctx context.Context, from, to models.Coord) (*models.Route, error)
}

type geoService struct {
	nominatim       *geo.NominatimClient
	osrm            *geo.OSRMClient
	suggestionCache cache.SuggestionCache
}

func NewGeoService(nominatim *geo.NominatimClient, osrm *geo.OSRMClient, suggestionCache cache.SuggestionCache) GeoService {
	return &geoService{
		nominatim:       nominatim,
		osrm:            osrm,
		suggestionCache: suggestionCache,
	}
}

func (s *geoService) SearchLocations(ctx context.Context, query string) ([]models.Place, error) {
	// Short queries never reach the gateway.
	if utf8.RuneCountInString(query) < geo.MinQueryLength {
		return []models.Place{}, nil
	}

	if s.suggestionCache != nil {
		cached, err := s.suggestionCache.Get(ctx, query)
		if err != nil {
			log.Printf("suggestion cache read failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	places, err := s.nominatim.Search(ctx, query)
	if err != nil {
		return nil, apperrors.GatewayUnavailable("location search")
	}

	if s.suggestionCache != nil {
		if err := s.suggestionCache.Set(ctx, query, places); err != nil {
			log.Printf("suggestion cache write failed: %v", err)
		}
	}

	return places, nil
}

func (s *geoService) ComputeRoute(ctx context.Context, from, to models.Coord) (*models.Route, error) {
	route, err := s.osrm.Route(ctx, from, to)
	if err == apperrors.ErrNoRoute {
		return nil, apperrors.BadRequest("no route between the given points")
	}
	if err != nil {
		return nil, apperrors.GatewayUnavailable("routing service")
	}
	return route, nil
}
