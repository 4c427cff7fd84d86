package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperrors "github.com/example/carpool/internal/errors"
	"github.com/example/carpool/internal/models"
)

// OSRMClient performs route lookups against an OSRM HTTP server.
type OSRMClient struct {
	BaseURL string
	Client  *http.Client
}

func NewOSRMClient(baseURL string, timeout time.Duration) *OSRMClient {
	return &OSRMClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

// Route queries OSRM /route between two points and returns the full
// driving polyline with total distance and duration.
// OSRM takes lon,lat in the URL and returns GeoJSON coordinates in
// lon,lat order; both are flipped to lat,lon here.
func (o *OSRMClient) Route(ctx context.Context, from, to models.Coord) (*models.Route, error) {
	u := fmt.Sprintf("%s/route/v1/driving/%.6f,%.6f;%.6f,%.6f?overview=full&geometries=geojson",
		o.BaseURL, from.Lon, from.Lat, to.Lon, to.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := o.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out struct {
		Code   string `json:"code"`
		Routes []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
			Geometry struct {
				Coordinates [][]float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"routes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	if out.Code != "Ok" || len(out.Routes) == 0 {
		return nil, apperrors.ErrNoRoute
	}

	best := out.Routes[0]
	geometry := make([]models.Coord, 0, len(best.Geometry.Coordinates))
	for _, c := range best.Geometry.Coordinates {
		if len(c) < 2 {
			continue
		}
		geometry = append(geometry, models.Coord{Lat: c[1], Lon: c[0]})
	}

	return &models.Route{
		Geometry:        geometry,
		DistanceMeters:  best.Distance,
		DurationSeconds: best.Duration,
	}, nil
}
