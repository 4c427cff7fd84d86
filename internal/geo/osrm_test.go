package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "github.com/example/carpool/internal/errors"
	"github.com/example/carpool/internal/models"
)

func TestRouteFlipsGeoJSONCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// OSRM takes lon,lat pairs in the path
		if !strings.Contains(r.URL.Path, "72.877700,19.076000;73.856700,18.520400") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{
			"code": "Ok",
			"routes": [{
				"distance": 148500.3,
				"duration": 9000.5,
				"geometry": {"coordinates": [[72.8777,19.0760],[73.1200,18.9900],[73.8567,18.5204]]}
			}]
		}`))
	}))
	defer srv.Close()

	client := NewOSRMClient(srv.URL, time.Second)

	route, err := client.Route(context.Background(),
		models.Coord{Lat: 19.0760, Lon: 72.8777},
		models.Coord{Lat: 18.5204, Lon: 73.8567})
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}

	if len(route.Geometry) != 3 {
		t.Fatalf("geometry length = %d, want 3", len(route.Geometry))
	}
	if route.Geometry[0].Lat != 19.0760 || route.Geometry[0].Lon != 72.8777 {
		t.Errorf("first point = %+v, want lat/lon flipped from GeoJSON", route.Geometry[0])
	}
	if route.DistanceMeters != 148500.3 {
		t.Errorf("distance = %v, want 148500.3", route.DistanceMeters)
	}
}

func TestRouteNoRoute(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"error code", `{"code":"NoRoute","routes":[]}`},
		{"ok but empty", `{"code":"Ok","routes":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewOSRMClient(srv.URL, time.Second)

			_, err := client.Route(context.Background(),
				models.Coord{Lat: 19, Lon: 72}, models.Coord{Lat: 18, Lon: 73})
			if err != apperrors.ErrNoRoute {
				t.Errorf("error = %v, want ErrNoRoute", err)
			}
		})
	}
}
