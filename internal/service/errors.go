package service

import (
	"errors"
	"strings"

	"parkflow/internal/backend"
)

var (
	// ErrNotAuthenticated is returned when a workflow needs a session
	// and none is present.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSessionExpired is returned when the backend rejected the
	// session token. It forces a session clear and redirect.
	ErrSessionExpired = errors.New("session expired")

	// ErrPermissionDenied is returned when the backend refused the
	// action for the caller's role.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNoAvailability is returned when no availability window covers
	// the requested time.
	ErrNoAvailability = errors.New("no availability for requested window")

	// ErrAlreadyBooked is returned when the requested window overlaps
	// an existing booking.
	ErrAlreadyBooked = errors.New("window overlaps an existing booking")

	// ErrMissingTimeWindow is returned when start or end time is absent.
	ErrMissingTimeWindow = errors.New("start and end time required")

	// ErrInvalidTimeWindow is returned when start is not before end.
	ErrInvalidTimeWindow = errors.New("start time must be before end time")

	// ErrMissingLocation is returned when a search has neither a text
	// query nor coordinates.
	ErrMissingLocation = errors.New("address or coordinates required to search")

	// ErrNoLiveLocation is returned when a live-location search runs
	// without a device coordinate having been observed.
	ErrNoLiveLocation = errors.New("no device location available")

	// ErrActionNotAllowed is returned when a status transition is not
	// permitted for the role/status pair.
	ErrActionNotAllowed = errors.New("action not allowed for this booking")

	// ErrBookingNotFound is returned when a booking ID is not in the
	// caller's list.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrBookingNotActive is returned when a countdown is requested for
	// a booking that is not checked in.
	ErrBookingNotActive = errors.New("booking is not checked in")

	// ErrSpaceNotOwned is returned when a provider references a space
	// that is not theirs.
	ErrSpaceNotOwned = errors.New("space not found among your spaces")

	// ErrMissingSpacePoint is returned when space creation has no
	// resolved location.
	ErrMissingSpacePoint = errors.New("pick a location for the space")

	// ErrMissingTitle is returned when space creation has no title.
	ErrMissingTitle = errors.New("space title required")

	// ErrInvalidCapacity is returned when capacity is below one.
	ErrInvalidCapacity = errors.New("capacity must be at least 1")

	// ErrNegativeRate is returned when an hourly rate is negative.
	ErrNegativeRate = errors.New("hourly rate must not be negative")

	// ErrInvalidRole is returned on registration with an unknown role.
	ErrInvalidRole = errors.New("invalid role")

	// ErrMissingCredentials is returned when login fields are empty.
	ErrMissingCredentials = errors.New("phone and password required")
)

// classify maps a backend error onto the workflow error taxonomy.
// Domain conflicts are recognized by the backend's error code or, for
// older backend versions, by message substrings.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *backend.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	switch {
	case apiErr.AuthFailure():
		return ErrSessionExpired
	case apiErr.PermissionDenied():
		return ErrPermissionDenied
	}

	text := apiErr.Code + " " + apiErr.Message
	switch {
	case strings.Contains(text, "NO_AVAILABILITY"):
		return ErrNoAvailability
	case strings.Contains(text, "ALREADY_BOOKED"),
		strings.Contains(text, "overlaps another booking"):
		return ErrAlreadyBooked
	}

	return err
}
