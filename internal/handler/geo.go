package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"parkflow/internal/backend"
	"parkflow/internal/geo"
	"parkflow/internal/service"
)

// GeoHandler serves the location-picker lookups: reverse geocoding,
// text suggestions and the backend's own geocoder.
type GeoHandler struct {
	reverse geo.ReverseGeocoder
	places  geo.PlacesSearcher
	backend *backend.Client
	auth    *service.AuthService
}

// NewGeoHandler creates a new GeoHandler.
func NewGeoHandler(reverse geo.ReverseGeocoder, places geo.PlacesSearcher, b *backend.Client, auth *service.AuthService) *GeoHandler {
	return &GeoHandler{reverse: reverse, places: places, backend: b, auth: auth}
}

// Reverse handles GET /v1/geo/reverse?lat=&lng=
func (h *GeoHandler) Reverse(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "lat and lng required"})
		return
	}

	address, err := h.reverse.Reverse(c.Request.Context(), lat, lng)
	if err != nil {
		// A failed lookup only costs the label.
		respondJSON(c, http.StatusOK, gin.H{"address": ""})
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"address": address})
}

// Suggest handles GET /v1/geo/suggest?q=
func (h *GeoHandler) Suggest(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "q required"})
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	points, err := h.places.Suggest(c.Request.Context(), query, limit)
	if err != nil {
		respondJSON(c, http.StatusOK, gin.H{"items": []any{}})
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"items": points})
}

// Geocode handles POST /v1/geo/geocode: the backend resolves the text
// itself, so search-by-address and this endpoint agree on the point.
func (h *GeoHandler) Geocode(c *gin.Context) {
	var req struct {
		Query string `json:"query"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Query == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "query required"})
		return
	}

	point, err := h.backend.Geocode(c.Request.Context(), req.Query)
	if err != nil {
		respondError(c, h.auth, err)
		return
	}
	respondJSON(c, http.StatusOK, point)
}
