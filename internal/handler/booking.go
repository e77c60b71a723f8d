package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"parkflow/internal/domain"
	"parkflow/internal/middleware"
	"parkflow/internal/service"
)

// BookingHandler handles the booking workflow routes.
type BookingHandler struct {
	bookings *service.BookingService
	auth     *service.AuthService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookings *service.BookingService, auth *service.AuthService) *BookingHandler {
	return &BookingHandler{bookings: bookings, auth: auth}
}

// BookingResponse is one booking plus the actions the current role may
// take on it. Actions only gate button visibility; the backend decides.
type BookingResponse struct {
	domain.Booking
	Actions []domain.BookingAction `json:"actions"`
}

func bookingList(role domain.Role, bookings []domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingResponse{
			Booking: b,
			Actions: domain.AllowedActions(role, b.Status),
		})
	}
	return out
}

// List handles GET /v1/bookings
func (h *BookingHandler) List(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	bookings, err := h.bookings.List(c.Request.Context(), sess)
	if err != nil {
		respondError(c, h.auth, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"items": bookingList(sess.User.Role, bookings)})
}

// CreateBookingRequest is the reservation payload.
type CreateBookingRequest struct {
	SpaceID int64  `json:"space_id"`
	StartTS string `json:"start_ts"`
	EndTS   string `json:"end_ts"`
}

// Create handles POST /v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.auth, service.ErrMissingTimeWindow)
		return
	}

	sess := middleware.CurrentSession(c)
	bookings, err := h.bookings.Create(c.Request.Context(), sess, req.SpaceID, req.StartTS, req.EndTS)
	if err != nil {
		respondError(c, h.auth, err)
		return
	}

	respondJSON(c, http.StatusCreated, gin.H{"items": bookingList(sess.User.Role, bookings)})
}

// Act handles PATCH /v1/bookings/:id/:action
func (h *BookingHandler) Act(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, h.auth, service.ErrBookingNotFound)
		return
	}

	action := domain.BookingAction(c.Param("action"))
	switch action {
	case domain.ActionCancel, domain.ActionConfirm, domain.ActionCheckIn, domain.ActionCheckOut:
	default:
		respondError(c, h.auth, service.ErrActionNotAllowed)
		return
	}

	sess := middleware.CurrentSession(c)
	bookings, err := h.bookings.Act(c.Request.Context(), sess, bookingID, action)
	if err != nil {
		respondError(c, h.auth, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"items": bookingList(sess.User.Role, bookings)})
}
