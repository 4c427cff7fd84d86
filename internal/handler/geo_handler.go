package handler

import (
	"net/http"
	"strconv"

	"github.com/example/carpool/internal/models"
	"github.com/example/carpool/internal/service"
	"github.com/example/carpool/pkg/utils"
	"github.com/go-chi/chi/v5"
)

type GeoHandler struct {
	geoService service.GeoService
}

func NewGeoHandler(geoService service.GeoService) *GeoHandler {
	return &GeoHandler{geoService: geoService}
}

func (h *GeoHandler) RegisterRoutes(r chi.Router) {
	r.Get("/geo/suggestions", h.GetSuggestions)
	r.Get("/geo/route", h.GetRoute)
}

// GET /v1/geo/suggestions?q=
func (h *GeoHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	places, err := h.geoService.SearchLocations(r.Context(), query)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, places)
}

// GET /v1/geo/route?from_lat=&from_lon=&to_lat=&to_lon=
func (h *GeoHandler) GetRoute(w http.ResponseWriter, r *http.Request) {
	from, ok := parseCoord(r, "from_lat", "from_lon")
	if !ok {
		utils.BadRequest(w, "from_lat and from_lon are required")
		return
	}
	to, ok := parseCoord(r, "to_lat", "to_lon")
	if !ok {
		utils.BadRequest(w, "to_lat and to_lon are required")
		return
	}

	route, err := h.geoService.ComputeRoute(r.Context(), from, to)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, route)
}

func parseCoord(r *http.Request, latKey, lonKey string) (models.Coord, bool) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get(latKey), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get(lonKey), 64)
	if latErr != nil || lonErr != nil {
		return models.Coord{}, false
	}
	return models.Coord{Lat: lat, Lon: lon}, true
}
