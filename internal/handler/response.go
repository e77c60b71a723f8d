package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"parkflow/internal/backend"
	"parkflow/internal/domain"
	"parkflow/internal/middleware"
	"parkflow/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// respondError converts a workflow error into one user-facing line.
// Session expiry is special-cased: the session is cleared and the
// redirect hint emitted only on the call that actually cleared it, so
// parallel failures can't cause repeated redirects.
func respondError(c *gin.Context, auth *service.AuthService, err error) {
	if errors.Is(err, service.ErrSessionExpired) {
		cleared := false
		if auth != nil {
			cleared, _ = auth.Invalidate(c.Request.Context(), middleware.SessionID(c))
		}
		resp := gin.H{"error": "Session expired. Redirecting..."}
		if cleared {
			resp["redirect"] = "/"
		}
		c.JSON(http.StatusUnauthorized, resp)
		return
	}

	c.JSON(mapErrorToHTTPStatus(err), ErrorResponse{Error: friendlyMessage(err)})
}

// mapErrorToHTTPStatus maps workflow errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrPermissionDenied),
		errors.Is(err, service.ErrActionNotAllowed):
		return http.StatusForbidden

	case errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrSpaceNotOwned):
		return http.StatusNotFound

	// Domain conflicts.
	case errors.Is(err, service.ErrNoAvailability),
		errors.Is(err, service.ErrAlreadyBooked),
		errors.Is(err, service.ErrBookingNotActive):
		return http.StatusConflict

	// Validation errors - Bad Request.
	case errors.Is(err, service.ErrMissingTimeWindow),
		errors.Is(err, service.ErrInvalidTimeWindow),
		errors.Is(err, service.ErrMissingLocation),
		errors.Is(err, service.ErrNoLiveLocation),
		errors.Is(err, service.ErrMissingSpacePoint),
		errors.Is(err, service.ErrMissingTitle),
		errors.Is(err, service.ErrInvalidCapacity),
		errors.Is(err, service.ErrNegativeRate),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrMissingCredentials),
		errors.Is(err, domain.ErrLatOutOfRange),
		errors.Is(err, domain.ErrLngOutOfRange):
		return http.StatusBadRequest
	}

	// Unclassified backend responses keep their own status; transport
	// failures surface as a bad gateway.
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return http.StatusBadGateway
}

// friendlyMessage rewords domain conflicts for end users; everything
// else shows the backend-provided message as-is.
func friendlyMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrNoAvailability):
		return "No slot available for that time"
	case errors.Is(err, service.ErrAlreadyBooked):
		return "Already booked for that time"
	case errors.Is(err, service.ErrPermissionDenied):
		return "You do not have permission"
	}
	if err == nil || err.Error() == "" {
		return "Something went wrong"
	}
	return err.Error()
}
