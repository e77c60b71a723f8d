package service_test

import (
	"context"
	"testing"

	"parkflow/internal/backend"
	"parkflow/internal/domain"
	"parkflow/internal/service"
)

func TestBookingCreate_Succeeds_AndReloadsList(t *testing.T) {
	t.Parallel()

	mock := NewMockParkingBackend()
	svc := service.NewBookingService(mock, testLogger())

	bookings, err := svc.Create(context.Background(), driverSession(), 7, "2026-09-01T10:00", "2026-09-01T12:00")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("expected 1 booking after reload, got %d", len(bookings))
	}
	if bookings[0].Status != domain.BookingStatusReserved {
		t.Errorf("expected reserved status, got %s", bookings[0].Status)
	}
	if mock.MyBookingsCalls != 1 {
		t.Errorf("expected exactly one list reload, got %d", mock.MyBookingsCalls)
	}
}

func TestBookingCreate_Unauthenticated_Fails(t *testing.T) {
	t.Parallel()

	svc := service.NewBookingService(NewMockParkingBackend(), testLogger())

	_, err := svc.Create(context.Background(), domain.Session{}, 7, "2026-09-01T10:00", "2026-09-01T12:00")
	if err != service.ErrNotAuthenticated {
		t.Fatalf("expected ErrNotAuthenticated, got: %v", err)
	}
}

func TestBookingCreate_NoAvailability_ClassifiedConflict(t *testing.T) {
	t.Parallel()

	mock := NewMockParkingBackend()
	mock.CreateBookingError = &backend.APIError{Status: 409, Code: "NO_AVAILABILITY", Message: "no window covers the range"}
	svc := service.NewBookingService(mock, testLogger())

	_, err := svc.Create(context.Background(), driverSession(), 7, "2026-09-01T10:00", "2026-09-01T12:00")
	if err != service.ErrNoAvailability {
		t.Fatalf("expected ErrNoAvailability, got: %v", err)
	}
	if mock.MyBookingsCalls != 0 {
		t.Error("expected no reload after a failed create")
	}
}

func TestBookingCreate_OverlapMessage_ClassifiedAlreadyBooked(t *testing.T) {
	t.Parallel()

	mock := NewMockParkingBackend()
	mock.CreateBookingError = &backend.APIError{Status: 409, Message: "requested range overlaps another booking"}
	svc := service.NewBookingService(mock, testLogger())

	_, err := svc.Create(context.Background(), driverSession(), 7, "2026-09-01T10:00", "2026-09-01T12:00")
	if err != service.ErrAlreadyBooked {
		t.Fatalf("expected ErrAlreadyBooked, got: %v", err)
	}
}

func TestBookingCreate_ExpiredToken_ClassifiedSessionExpired(t *testing.T) {
	t.Parallel()

	mock := NewMockParkingBackend()
	mock.CreateBookingError = &backend.APIError{Status: 401, Message: "token expired"}
	svc := service.NewBookingService(mock, testLogger())

	_, err := svc.Create(context.Background(), driverSession(), 7, "2026-09-01T10:00", "2026-09-01T12:00")
	if err != service.ErrSessionExpired {
		t.Fatalf("expected ErrSessionExpired, got: %v", err)
	}
}

func TestBookingList_RoleSelectsEndpoint(t *testing.T) {
	t.Parallel()

	mock := NewMockParkingBackend()
	svc := service.NewBookingService(mock, testLogger())

	if _, err := svc.List(context.Background(), driverSession()); err != nil {
		t.Fatalf("driver list failed: %v", err)
	}
	if mock.MyBookingsCalls != 1 || mock.ForMySpacesCalls != 0 {
		t.Error("expected driver list to hit the my-bookings endpoint")
	}

	if _, err := svc.List(context.Background(), providerSession()); err != nil {
		t.Fatalf("provider list failed: %v", err)
	}
	if mock.ForMySpacesCalls != 1 {
		t.Error("expected provider list to hit the for-my-spaces endpoint")
	}
}

func TestBookingAct_DriverCancelsReserved(t *testing.T) {
	t.Parallel()

	mock := NewMockParkingBackend()
	mock.Bookings = []domain.Booking{{ID: 1, Status: domain.BookingStatusReserved}}
	svc := service.NewBookingService(mock, testLogger())

	bookings, err := svc.Act(context.Background(), driverSession(), 1, domain.ActionCancel)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if bookings[0].Status != domain.BookingStatusCancelled {
		t.Errorf("expected cancelled after reload, got %s", bookings[0].Status)
	}
}

func TestBookingAct_DriverConfirm_Rejected(t *testing.T) {
	t.Parallel()

	mock := NewMockParkingBackend()
	mock.Bookings = []domain.Booking{{ID: 1, Status: domain.BookingStatusReserved}}
	svc := service.NewBookingService(mock, testLogger())

	_, err := svc.Act(context.Background(), driverSession(), 1, domain.ActionConfirm)
	if err != service.ErrActionNotAllowed {
		t.Fatalf("expected ErrActionNotAllowed, got: %v", err)
	}
	if mock.BookingActionCalls != 0 {
		t.Error("expected the guard to stop the call before the network")
	}
}

func TestBookingAct_TerminalStatus_Rejected(t *testing.T) {
	t.Parallel()

	mock := NewMockParkingBackend()
	mock.Bookings = []domain.Booking{{ID: 1, Status: domain.BookingStatusCancelled}}
	svc := service.NewBookingService(mock, testLogger())

	_, err := svc.Act(context.Background(), providerSession(), 1, domain.ActionConfirm)
	if err != service.ErrActionNotAllowed {
		t.Fatalf("expected ErrActionNotAllowed, got: %v", err)
	}
}

func TestBookingAct_UnknownBooking_Fails(t *testing.T) {
	t.Parallel()

	svc := service.NewBookingService(NewMockParkingBackend(), testLogger())

	_, err := svc.Act(context.Background(), driverSession(), 42, domain.ActionCancel)
	if err != service.ErrBookingNotFound {
		t.Fatalf("expected ErrBookingNotFound, got: %v", err)
	}
}

func TestBookingAct_ProviderLifecycle(t *testing.T) {
	t.Parallel()

	mock := NewMockParkingBackend()
	mock.Bookings = []domain.Booking{{ID: 1, Status: domain.BookingStatusReserved}}
	svc := service.NewBookingService(mock, testLogger())

	steps := []struct {
		action domain.BookingAction
		want   domain.BookingStatus
	}{
		{domain.ActionConfirm, domain.BookingStatusConfirmed},
		{domain.ActionCheckIn, domain.BookingStatusCheckedIn},
		{domain.ActionCheckOut, domain.BookingStatusCheckedOut},
	}
	for _, step := range steps {
		bookings, err := svc.Act(context.Background(), providerSession(), 1, step.action)
		if err != nil {
			t.Fatalf("%s failed: %v", step.action, err)
		}
		if bookings[0].Status != step.want {
			t.Fatalf("after %s expected %s, got %s", step.action, step.want, bookings[0].Status)
		}
	}
}
