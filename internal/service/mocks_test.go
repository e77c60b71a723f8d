package service_test

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"parkflow/internal/backend"
	"parkflow/internal/domain"
	"parkflow/internal/logging"
)

func testLogger() *slog.Logger {
	return logging.NewLogger("error")
}

// MockParkingBackend is a mock implementation of the backend API slices
// the services consume.
type MockParkingBackend struct {
	mu sync.RWMutex

	// Canned data.
	Auth     *backend.AuthResponse
	Bookings []domain.Booking
	Spaces   []domain.Space
	Windows  []domain.AvailabilityWindow
	Results  *backend.SearchResponse
	Report   *domain.MonthlyReport

	// SearchFunc, when set, replaces the canned search response. Used to
	// stall a search in flight.
	SearchFunc func(ctx context.Context, q backend.SearchQuery) (*backend.SearchResponse, error)

	// Error injection.
	LoginError           error
	RegisterError        error
	SearchError          error
	SearchNearbyError    error
	SaveLocationError    error
	CreateBookingError   error
	BookingActionError   error
	MyBookingsError      error
	CreateSpaceError     error
	MySpacesError        error
	AddAvailabilityError error

	// Counters for verification.
	SearchCalls          int32
	SaveLocationCalls    int32
	CreateBookingCalls   int32
	BookingActionCalls   int32
	MyBookingsCalls      int32
	ForMySpacesCalls     int32
	CreateSpaceCalls     int32
	MySpacesCalls        int32
	AddAvailabilityCalls int32
	ListAvailCalls       int32
}

// NewMockParkingBackend creates an empty mock backend.
func NewMockParkingBackend() *MockParkingBackend {
	return &MockParkingBackend{
		Auth: &backend.AuthResponse{
			AccessToken: "token-1",
			TokenType:   "bearer",
			User:        domain.User{ID: 1, Name: "Rahim", Role: domain.RoleDriver},
		},
		Results: &backend.SearchResponse{
			Items:     []domain.SearchResult{},
			Requested: backend.RequestedEcho{Lat: 23.8103, Lng: 90.4125, RadiusM: 1500},
		},
	}
}

func (m *MockParkingBackend) Login(ctx context.Context, phone, password string) (*backend.AuthResponse, error) {
	if m.LoginError != nil {
		return nil, m.LoginError
	}
	return m.Auth, nil
}

func (m *MockParkingBackend) Register(ctx context.Context, req backend.RegisterRequest) (*backend.AuthResponse, error) {
	if m.RegisterError != nil {
		return nil, m.RegisterError
	}
	auth := *m.Auth
	auth.User.Name = req.Name
	auth.User.Role = req.Role
	return &auth, nil
}

func (m *MockParkingBackend) Search(ctx context.Context, q backend.SearchQuery) (*backend.SearchResponse, error) {
	atomic.AddInt32(&m.SearchCalls, 1)
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, q)
	}
	if m.SearchError != nil {
		return nil, m.SearchError
	}
	return m.Results, nil
}

func (m *MockParkingBackend) SearchNearby(ctx context.Context, token, startTS, endTS string, radiusM int) (*backend.SearchResponse, error) {
	if m.SearchNearbyError != nil {
		return nil, m.SearchNearbyError
	}
	return m.Results, nil
}

func (m *MockParkingBackend) SaveLocation(ctx context.Context, token string, lat, lng float64) error {
	atomic.AddInt32(&m.SaveLocationCalls, 1)
	return m.SaveLocationError
}

func (m *MockParkingBackend) CreateBooking(ctx context.Context, token string, spaceID int64, startTS, endTS string) (*domain.Booking, error) {
	atomic.AddInt32(&m.CreateBookingCalls, 1)
	if m.CreateBookingError != nil {
		return nil, m.CreateBookingError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	booking := domain.Booking{
		ID:      int64(len(m.Bookings) + 1),
		SpaceID: spaceID,
		StartTS: startTS,
		EndTS:   endTS,
		Status:  domain.BookingStatusReserved,
	}
	m.Bookings = append(m.Bookings, booking)
	return &booking, nil
}

func (m *MockParkingBackend) BookingAction(ctx context.Context, token string, bookingID int64, action domain.BookingAction) error {
	atomic.AddInt32(&m.BookingActionCalls, 1)
	if m.BookingActionError != nil {
		return m.BookingActionError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Bookings {
		if m.Bookings[i].ID != bookingID {
			continue
		}
		switch action {
		case domain.ActionCancel:
			m.Bookings[i].Status = domain.BookingStatusCancelled
		case domain.ActionConfirm:
			m.Bookings[i].Status = domain.BookingStatusConfirmed
		case domain.ActionCheckIn:
			m.Bookings[i].Status = domain.BookingStatusCheckedIn
		case domain.ActionCheckOut:
			m.Bookings[i].Status = domain.BookingStatusCheckedOut
		}
	}
	return nil
}

func (m *MockParkingBackend) MyBookings(ctx context.Context, token string) ([]domain.Booking, error) {
	atomic.AddInt32(&m.MyBookingsCalls, 1)
	if m.MyBookingsError != nil {
		return nil, m.MyBookingsError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Booking(nil), m.Bookings...), nil
}

func (m *MockParkingBackend) BookingsForMySpaces(ctx context.Context, token string) ([]domain.Booking, error) {
	atomic.AddInt32(&m.ForMySpacesCalls, 1)
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Booking(nil), m.Bookings...), nil
}

func (m *MockParkingBackend) MySpaces(ctx context.Context, token string) ([]domain.Space, error) {
	atomic.AddInt32(&m.MySpacesCalls, 1)
	if m.MySpacesError != nil {
		return nil, m.MySpacesError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Space(nil), m.Spaces...), nil
}

func (m *MockParkingBackend) CreateSpace(ctx context.Context, token string, req backend.CreateSpaceRequest) (*domain.Space, error) {
	atomic.AddInt32(&m.CreateSpaceCalls, 1)
	if m.CreateSpaceError != nil {
		return nil, m.CreateSpaceError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	space := domain.Space{
		ID:       int64(len(m.Spaces) + 1),
		Title:    req.Title,
		Lat:      req.Lat,
		Lng:      req.Lng,
		Capacity: req.Capacity,
		IsActive: req.IsActive,
	}
	m.Spaces = append(m.Spaces, space)
	return &space, nil
}

func (m *MockParkingBackend) ListAvailability(ctx context.Context, token string, spaceID int64) ([]domain.AvailabilityWindow, error) {
	atomic.AddInt32(&m.ListAvailCalls, 1)
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.AvailabilityWindow(nil), m.Windows...), nil
}

func (m *MockParkingBackend) AddAvailability(ctx context.Context, token string, spaceID int64, req backend.AddAvailabilityRequest) (*domain.AvailabilityWindow, error) {
	atomic.AddInt32(&m.AddAvailabilityCalls, 1)
	if m.AddAvailabilityError != nil {
		return nil, m.AddAvailabilityError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	window := domain.AvailabilityWindow{
		ID:               int64(len(m.Windows) + 1),
		SpaceID:          spaceID,
		StartTS:          req.StartTS,
		EndTS:            req.EndTS,
		BasePricePerHour: req.BasePricePerHour,
		IsActive:         req.IsActive,
	}
	m.Windows = append(m.Windows, window)
	return &window, nil
}

func (m *MockParkingBackend) MonthlyReport(ctx context.Context, token string) (*domain.MonthlyReport, error) {
	if m.Report != nil {
		return m.Report, nil
	}
	return &domain.MonthlyReport{}, nil
}

func driverSession() domain.Session {
	return domain.Session{Token: "token-1", User: domain.User{ID: 1, Name: "Rahim", Role: domain.RoleDriver}}
}

func providerSession() domain.Session {
	return domain.Session{Token: "token-2", User: domain.User{ID: 2, Name: "Karim", Role: domain.RoleProvider}}
}
