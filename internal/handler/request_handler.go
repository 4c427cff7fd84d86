package handler

import (
	"encoding/json"
	"net/http"

	"github.com/example/carpool/internal/middleware"
	"github.com/example/carpool/internal/models"
	"github.com/example/carpool/internal/service"
	"github.com/example/carpool/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type RequestHandler struct {
	requestService service.RequestService
	validate       *validator.Validate
}

func NewRequestHandler(requestService service.RequestService) *RequestHandler {
	return &RequestHandler{
		requestService: requestService,
		validate:       validator.New(),
	}
}

func (h *RequestHandler) RegisterRoutes(r chi.Router) {
	r.Post("/requests", h.CreateRequest)
	r.Get("/requests/incoming", h.ListIncoming)
	r.Get("/requests/mine", h.ListMine)
	r.Post("/requests/{id}/accept", h.AcceptRequest)
	r.Post("/requests/{id}/reject", h.RejectRequest)
}

// POST /v1/requests
func (h *RequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRideRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	session := middleware.SessionFromContext(r.Context())
	rideRequest, err := h.requestService.CreateRequest(r.Context(), session, req.RideID)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Created(w, rideRequest)
}

// GET /v1/requests/incoming
func (h *RequestHandler) ListIncoming(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	requests, err := h.requestService.ListIncoming(r.Context(), session)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, requests)
}

// GET /v1/requests/mine
func (h *RequestHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	requests, err := h.requestService.ListMine(r.Context(), session)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, requests)
}

// POST /v1/requests/{id}/accept
func (h *RequestHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !utils.IsValidUUID(id) {
		utils.BadRequest(w, "invalid request id")
		return
	}

	session := middleware.SessionFromContext(r.Context())
	rideRequest, err := h.requestService.Accept(r.Context(), session, id)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, rideRequest)
}

// POST /v1/requests/{id}/reject
func (h *RequestHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !utils.IsValidUUID(id) {
		utils.BadRequest(w, "invalid request id")
		return
	}

	session := middleware.SessionFromContext(r.Context())
	rideRequest, err := h.requestService.Reject(r.Context(), session, id)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, rideRequest)
}
