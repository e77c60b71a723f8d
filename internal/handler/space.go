package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"parkflow/internal/domain"
	"parkflow/internal/middleware"
	"parkflow/internal/service"
)

// SpaceHandler handles provider space and availability management.
type SpaceHandler struct {
	spaces *service.SpaceService
	auth   *service.AuthService
}

// NewSpaceHandler creates a new SpaceHandler.
func NewSpaceHandler(spaces *service.SpaceService, auth *service.AuthService) *SpaceHandler {
	return &SpaceHandler{spaces: spaces, auth: auth}
}

// List handles GET /v1/spaces
func (h *SpaceHandler) List(c *gin.Context) {
	spaces, err := h.spaces.MySpaces(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		respondError(c, h.auth, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"items": spaces})
}

// CreateSpaceRequest is the space form payload. Coordinates come from
// the picker, already resolved.
type CreateSpaceRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	Capacity    int      `json:"capacity"`
	HeightLimit *float64 `json:"height_limit"`
}

// Create handles POST /v1/spaces
func (h *SpaceHandler) Create(c *gin.Context) {
	var req CreateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.auth, service.ErrMissingTitle)
		return
	}

	draft := service.SpaceDraft{
		Title:       req.Title,
		Description: req.Description,
		Capacity:    req.Capacity,
		HeightLimit: req.HeightLimit,
	}
	if req.Lat != nil && req.Lng != nil {
		draft.Point = &domain.GeoPoint{Lat: *req.Lat, Lng: *req.Lng, Address: req.Address}
	}

	spaces, err := h.spaces.Create(c.Request.Context(), middleware.CurrentSession(c), draft)
	if err != nil {
		respondError(c, h.auth, err)
		return
	}

	respondJSON(c, http.StatusCreated, gin.H{"items": spaces})
}

// Availability handles GET /v1/spaces/:id/availability
func (h *SpaceHandler) Availability(c *gin.Context) {
	spaceID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, h.auth, service.ErrSpaceNotOwned)
		return
	}

	windows, err := h.spaces.Availability(c.Request.Context(), middleware.CurrentSession(c), spaceID)
	if err != nil {
		respondError(c, h.auth, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"items": windows})
}

// AddAvailabilityRequest is the availability form payload.
type AddAvailabilityRequest struct {
	StartTS          string  `json:"start_ts"`
	EndTS            string  `json:"end_ts"`
	BasePricePerHour float64 `json:"base_price_per_hour"`
	IsActive         *bool   `json:"is_active"`
}

// AddAvailability handles POST /v1/spaces/:id/availability
func (h *SpaceHandler) AddAvailability(c *gin.Context) {
	spaceID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, h.auth, service.ErrSpaceNotOwned)
		return
	}

	var req AddAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.auth, service.ErrMissingTimeWindow)
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	windows, err := h.spaces.AddAvailability(
		c.Request.Context(),
		middleware.CurrentSession(c),
		spaceID,
		req.StartTS,
		req.EndTS,
		req.BasePricePerHour,
		active,
	)
	if err != nil {
		respondError(c, h.auth, err)
		return
	}

	respondJSON(c, http.StatusCreated, gin.H{"items": windows})
}
