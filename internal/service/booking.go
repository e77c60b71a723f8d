package service

import (
	"context"
	"log/slog"

	"parkflow/internal/domain"
	"parkflow/internal/observability"
)

// BookingBackend is the slice of the backend API the booking workflow
// needs.
type BookingBackend interface {
	CreateBooking(ctx context.Context, token string, spaceID int64, startTS, endTS string) (*domain.Booking, error)
	BookingAction(ctx context.Context, token string, bookingID int64, action domain.BookingAction) error
	MyBookings(ctx context.Context, token string) ([]domain.Booking, error)
	BookingsForMySpaces(ctx context.Context, token string) ([]domain.Booking, error)
}

// BookingService turns a selected space plus time window into a
// reservation and drives status transitions.
type BookingService struct {
	backend BookingBackend
	logger  *slog.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(b BookingBackend, logger *slog.Logger) *BookingService {
	return &BookingService{backend: b, logger: logger}
}

// Create reserves a space for the window and returns the re-fetched
// booking list. The list reload is issued only after creation resolves,
// and the created booking is never spliced in locally: price_total and
// status are backend-computed.
func (s *BookingService) Create(ctx context.Context, sess domain.Session, spaceID int64, startTS, endTS string) ([]domain.Booking, error) {
	if !sess.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	if err := validateWindow(startTS, endTS); err != nil {
		return nil, err
	}

	if _, err := s.backend.CreateBooking(ctx, sess.Token, spaceID, startTS, endTS); err != nil {
		err = classify(err)
		observability.BookingsTotal.WithLabelValues(outcomeLabel(err)).Inc()
		return nil, err
	}
	observability.BookingsTotal.WithLabelValues("ok").Inc()
	s.logger.Info("booking created", "space_id", spaceID, "user_id", sess.User.ID)

	bookings, err := s.backend.MyBookings(ctx, sess.Token)
	if err != nil {
		return nil, classify(err)
	}
	return bookings, nil
}

// List returns the caller's bookings: the user's own for drivers, the
// bookings against their spaces for providers and admins.
func (s *BookingService) List(ctx context.Context, sess domain.Session) ([]domain.Booking, error) {
	if !sess.Authenticated() {
		return nil, ErrNotAuthenticated
	}

	var (
		bookings []domain.Booking
		err      error
	)
	if sess.User.Role == domain.RoleDriver {
		bookings, err = s.backend.MyBookings(ctx, sess.Token)
	} else {
		bookings, err = s.backend.BookingsForMySpaces(ctx, sess.Token)
	}
	if err != nil {
		return nil, classify(err)
	}
	return bookings, nil
}

// Act requests a status transition and returns the re-fetched list.
// The role/status guard runs first so invalid transitions never reach
// the network; the backend still re-validates.
func (s *BookingService) Act(ctx context.Context, sess domain.Session, bookingID int64, action domain.BookingAction) ([]domain.Booking, error) {
	if !sess.Authenticated() {
		return nil, ErrNotAuthenticated
	}

	bookings, err := s.List(ctx, sess)
	if err != nil {
		return nil, err
	}

	var target *domain.Booking
	for i := range bookings {
		if bookings[i].ID == bookingID {
			target = &bookings[i]
			break
		}
	}
	if target == nil {
		return nil, ErrBookingNotFound
	}
	if !domain.ActionAllowed(sess.User.Role, target.Status, action) {
		return nil, ErrActionNotAllowed
	}

	if err := s.backend.BookingAction(ctx, sess.Token, bookingID, action); err != nil {
		return nil, classify(err)
	}
	observability.BookingActions.WithLabelValues(string(action)).Inc()
	s.logger.Info("booking action", "booking_id", bookingID, "action", action)

	return s.List(ctx, sess)
}

func outcomeLabel(err error) string {
	switch err {
	case ErrNoAvailability:
		return "no_availability"
	case ErrAlreadyBooked:
		return "conflict"
	case ErrPermissionDenied:
		return "forbidden"
	case ErrSessionExpired:
		return "unauthorized"
	default:
		return "error"
	}
}
