package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parkflow/internal/domain"
	"parkflow/internal/live"
	"parkflow/internal/middleware"
	"parkflow/internal/service"
)

// SearchHandler handles the search workflow routes.
type SearchHandler struct {
	search *service.SearchService
	auth   *service.AuthService
	watch  *live.Watch
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(search *service.SearchService, auth *service.AuthService, watch *live.Watch) *SearchHandler {
	return &SearchHandler{search: search, auth: auth, watch: watch}
}

// SearchRequest is the search form payload. Lat/Lng are pointers so an
// absent coordinate is distinguishable from zero.
type SearchRequest struct {
	Query   string   `json:"query"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
	StartTS string   `json:"start_ts"`
	EndTS   string   `json:"end_ts"`
	RadiusM int      `json:"radius_m"`
	UseLive bool     `json:"use_live"`
}

// params passes the form through verbatim. An absent radius stays
// absent; the backend applies and echoes its own default.
func (h *SearchHandler) params(req SearchRequest) service.SearchParams {
	params := service.SearchParams{
		Query:   req.Query,
		StartTS: req.StartTS,
		EndTS:   req.EndTS,
		RadiusM: req.RadiusM,
		UseLive: req.UseLive,
	}
	if req.Lat != nil && req.Lng != nil {
		params.Point = &domain.GeoPoint{Lat: *req.Lat, Lng: *req.Lng}
	}
	return params
}

// Search handles POST /v1/search
func (h *SearchHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.auth, service.ErrMissingLocation)
		return
	}

	sid := middleware.SessionID(c)
	snap, err := h.search.Search(c.Request.Context(), sid, h.watch.Latest(sid), h.params(req))
	if err != nil {
		respondError(c, h.auth, err)
		return
	}

	respondJSON(c, http.StatusOK, snap)
}

// Nearby handles POST /v1/search/nearby
func (h *SearchHandler) Nearby(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.auth, service.ErrMissingTimeWindow)
		return
	}

	sid := middleware.SessionID(c)
	snap, err := h.search.SearchNearby(c.Request.Context(), sid, middleware.CurrentSession(c), h.params(req))
	if err != nil {
		respondError(c, h.auth, err)
		return
	}

	respondJSON(c, http.StatusOK, snap)
}

// Results handles GET /v1/search/results
func (h *SearchHandler) Results(c *gin.Context) {
	respondJSON(c, http.StatusOK, h.search.Snapshot(middleware.SessionID(c)))
}

// SaveLocationRequest is the device-location payload.
type SaveLocationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SaveLocation handles POST /v1/me/location: forwards the coordinate
// to the backend and feeds the live watch.
func (h *SearchHandler) SaveLocation(c *gin.Context) {
	var req SaveLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "lat and lng required"})
		return
	}

	sess := middleware.CurrentSession(c)
	if err := h.search.SaveLocation(c.Request.Context(), sess, req.Lat, req.Lng); err != nil {
		respondError(c, h.auth, err)
		return
	}
	_ = h.watch.Update(middleware.SessionID(c), req.Lat, req.Lng)

	respondJSON(c, http.StatusOK, gin.H{"saved": true})
}
