package handler

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/example/carpool/internal/errors"
	"github.com/example/carpool/internal/middleware"
	"github.com/example/carpool/internal/models"
	"github.com/example/carpool/internal/service"
	"github.com/example/carpool/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type RideHandler struct {
	rideService service.RideService
	validate    *validator.Validate
}

func NewRideHandler(rideService service.RideService) *RideHandler {
	return &RideHandler{
		rideService: rideService,
		validate:    validator.New(),
	}
}

func (h *RideHandler) RegisterRoutes(r chi.Router) {
	r.Post("/rides", h.CreateRide)
	r.Get("/rides", h.ListRides)
	r.Get("/rides/mine", h.ListMyRides)
	r.Get("/rides/{id}", h.GetRide)
	r.Post("/rides/search", h.SearchRides)
}

// POST /v1/rides
func (h *RideHandler) CreateRide(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	session := middleware.SessionFromContext(r.Context())
	ride, err := h.rideService.CreateRide(r.Context(), session, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Created(w, ride)
}

// GET /v1/rides
func (h *RideHandler) ListRides(w http.ResponseWriter, r *http.Request) {
	rides, err := h.rideService.ListRides(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, rides)
}

// GET /v1/rides/mine
func (h *RideHandler) ListMyRides(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	rides, err := h.rideService.ListMyRides(r.Context(), session)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, rides)
}

// GET /v1/rides/{id}
func (h *RideHandler) GetRide(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !utils.IsValidUUID(id) {
		utils.BadRequest(w, "invalid ride id")
		return
	}

	ride, err := h.rideService.GetRide(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, ride)
}

// POST /v1/rides/search
func (h *RideHandler) SearchRides(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRidesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	result, err := h.rideService.SearchRides(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, result)
}

func handleError(w http.ResponseWriter, err error) {
	if apiErr, ok := err.(*apperrors.APIError); ok {
		utils.Error(w, apiErr)
		return
	}

	// Check for specific errors
	switch err {
	case apperrors.ErrUnauthenticated:
		utils.Error(w, apperrors.Unauthenticated())
	case apperrors.ErrSelfRequest:
		utils.Error(w, apperrors.SelfRequestNotAllowed())
	case apperrors.ErrRideFull:
		utils.Error(w, apperrors.RideFull())
	case apperrors.ErrDuplicateRequest:
		utils.Error(w, apperrors.DuplicateRequest())
	default:
		utils.Error(w, apperrors.StoreUnavailable())
	}
}
