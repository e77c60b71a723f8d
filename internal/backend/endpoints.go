package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"parkflow/internal/domain"
)

// AuthResponse is the backend's reply to login and register.
type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int64       `json:"expires_in"`
	User        domain.User `json:"user"`
}

// Login exchanges phone/password for a token. Unauthenticated.
func (c *Client) Login(ctx context.Context, phone, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.call(ctx, callOptions{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   map[string]string{"phone": phone, "password": password},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Name     string      `json:"name"`
	Phone    string      `json:"phone"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// Register creates an account and returns the same shape as Login.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.call(ctx, callOptions{
		method: http.MethodPost,
		path:   "/auth/register",
		body:   req,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Geocode resolves a free-text query to a point server-side.
func (c *Client) Geocode(ctx context.Context, query string) (*domain.GeoPoint, error) {
	var point domain.GeoPoint
	err := c.call(ctx, callOptions{
		method: http.MethodPost,
		path:   "/geocode",
		body:   map[string]string{"query": query},
	}, &point)
	if err != nil {
		return nil, err
	}
	return &point, nil
}

// SearchQuery carries the parameters for a space search. Either Query or
// the Lat/Lng pair must be set; the backend resolves Query itself.
type SearchQuery struct {
	Query   string
	Lat     *float64
	Lng     *float64
	StartTS string
	EndTS   string
	RadiusM int
}

// RequestedEcho is the backend's echo of the effective search
// parameters. Its radius is authoritative: the backend clamps, we don't.
type RequestedEcho struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	RadiusM int     `json:"radius_m"`
}

// SearchResponse is the ranked result list for one search. Ranking and
// distance come from the backend and are displayed as provided.
type SearchResponse struct {
	Items     []domain.SearchResult `json:"items"`
	Requested RequestedEcho         `json:"requested"`
}

func (q SearchQuery) values() url.Values {
	params := url.Values{}
	params.Set("start_ts", q.StartTS)
	params.Set("end_ts", q.EndTS)
	if q.RadiusM > 0 {
		params.Set("radius_m", strconv.Itoa(q.RadiusM))
	}
	if q.Query != "" {
		params.Set("query", q.Query)
	}
	if q.Lat != nil && q.Lng != nil {
		params.Set("lat", strconv.FormatFloat(*q.Lat, 'f', -1, 64))
		params.Set("lng", strconv.FormatFloat(*q.Lng, 'f', -1, 64))
	}
	return params
}

// Search runs a public space search.
func (c *Client) Search(ctx context.Context, q SearchQuery) (*SearchResponse, error) {
	var resp SearchResponse
	err := c.call(ctx, callOptions{
		method: http.MethodGet,
		path:   "/search",
		query:  q.values(),
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchNearby searches around the user's previously saved location.
func (c *Client) SearchNearby(ctx context.Context, token, startTS, endTS string, radiusM int) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("start_ts", startTS)
	params.Set("end_ts", endTS)
	if radiusM > 0 {
		params.Set("radius_m", strconv.Itoa(radiusM))
	}

	var resp SearchResponse
	err := c.call(ctx, callOptions{
		method: http.MethodGet,
		path:   "/search/nearby",
		query:  params,
		token:  token,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// SaveLocation stores the user's device location server-side.
func (c *Client) SaveLocation(ctx context.Context, token string, lat, lng float64) error {
	return c.call(ctx, callOptions{
		method: http.MethodPost,
		path:   "/me/location",
		body:   map[string]float64{"lat": lat, "lng": lng},
		token:  token,
	}, nil)
}

// MyBookings lists the caller's bookings.
func (c *Client) MyBookings(ctx context.Context, token string) ([]domain.Booking, error) {
	return callList[domain.Booking](ctx, c, callOptions{
		method: http.MethodGet,
		path:   "/bookings/my",
		token:  token,
	})
}

// BookingsForMySpaces lists bookings against the caller's spaces.
func (c *Client) BookingsForMySpaces(ctx context.Context, token string) ([]domain.Booking, error) {
	return callList[domain.Booking](ctx, c, callOptions{
		method: http.MethodGet,
		path:   "/bookings/for-my-spaces",
		token:  token,
	})
}

// CreateBooking reserves a space for a time window. The request carries
// a fresh idempotency key so it is never double-applied; it is still
// issued exactly once from here (no retries on a mutating call).
func (c *Client) CreateBooking(ctx context.Context, token string, spaceID int64, startTS, endTS string) (*domain.Booking, error) {
	var booking domain.Booking
	err := c.call(ctx, callOptions{
		method: http.MethodPost,
		path:   "/bookings",
		body: map[string]any{
			"space_id": spaceID,
			"start_ts": startTS,
			"end_ts":   endTS,
		},
		token:          token,
		idempotencyKey: uuid.New().String(),
	}, &booking)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// BookingAction requests a status transition for a booking.
func (c *Client) BookingAction(ctx context.Context, token string, bookingID int64, action domain.BookingAction) error {
	return c.call(ctx, callOptions{
		method: http.MethodPatch,
		path:   fmt.Sprintf("/bookings/%d/%s", bookingID, action),
		token:  token,
	}, nil)
}

// MySpaces lists the caller's spaces.
func (c *Client) MySpaces(ctx context.Context, token string) ([]domain.Space, error) {
	return callList[domain.Space](ctx, c, callOptions{
		method: http.MethodGet,
		path:   "/spaces/my",
		token:  token,
	})
}

// CreateSpaceRequest is the payload for space creation. Coordinates are
// passed through verbatim from the picker.
type CreateSpaceRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Address     string   `json:"address,omitempty"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Capacity    int      `json:"capacity"`
	HeightLimit *float64 `json:"height_limit,omitempty"`
	IsActive    bool     `json:"is_active"`
}

// CreateSpace registers a new parking space for the caller.
func (c *Client) CreateSpace(ctx context.Context, token string, req CreateSpaceRequest) (*domain.Space, error) {
	var space domain.Space
	err := c.call(ctx, callOptions{
		method: http.MethodPost,
		path:   "/spaces",
		body:   req,
		token:  token,
	}, &space)
	if err != nil {
		return nil, err
	}
	return &space, nil
}

// ListAvailability lists the bookable windows of a space.
func (c *Client) ListAvailability(ctx context.Context, token string, spaceID int64) ([]domain.AvailabilityWindow, error) {
	return callList[domain.AvailabilityWindow](ctx, c, callOptions{
		method: http.MethodGet,
		path:   fmt.Sprintf("/spaces/%d/availability", spaceID),
		token:  token,
	})
}

// AddAvailabilityRequest is the payload for a new bookable window.
type AddAvailabilityRequest struct {
	StartTS          string  `json:"start_ts"`
	EndTS            string  `json:"end_ts"`
	BasePricePerHour float64 `json:"base_price_per_hour"`
	IsActive         bool    `json:"is_active"`
}

// AddAvailability adds a bookable window to a space.
func (c *Client) AddAvailability(ctx context.Context, token string, spaceID int64, req AddAvailabilityRequest) (*domain.AvailabilityWindow, error) {
	var window domain.AvailabilityWindow
	err := c.call(ctx, callOptions{
		method: http.MethodPost,
		path:   fmt.Sprintf("/spaces/%d/availability", spaceID),
		body:   req,
		token:  token,
	}, &window)
	if err != nil {
		return nil, err
	}
	return &window, nil
}

// MonthlyReport fetches the provider's monthly income report.
func (c *Client) MonthlyReport(ctx context.Context, token string) (*domain.MonthlyReport, error) {
	var report domain.MonthlyReport
	err := c.call(ctx, callOptions{
		method: http.MethodGet,
		path:   "/reports/provider/monthly",
		token:  token,
	}, &report)
	if err != nil {
		return nil, err
	}
	return &report, nil
}
