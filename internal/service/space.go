package service

import (
	"context"
	"log/slog"
	"strings"

	"parkflow/internal/backend"
	"parkflow/internal/domain"
)

// SpaceBackend is the slice of the backend API the management workflow
// needs.
type SpaceBackend interface {
	MySpaces(ctx context.Context, token string) ([]domain.Space, error)
	CreateSpace(ctx context.Context, token string, req backend.CreateSpaceRequest) (*domain.Space, error)
	ListAvailability(ctx context.Context, token string, spaceID int64) ([]domain.AvailabilityWindow, error)
	AddAvailability(ctx context.Context, token string, spaceID int64, req backend.AddAvailabilityRequest) (*domain.AvailabilityWindow, error)
}

// SpaceDraft is the provider's input for a new space. Point must come
// from the picker already resolved; no geometry is computed here.
type SpaceDraft struct {
	Title       string
	Description string
	Capacity    int
	HeightLimit *float64
	Point       *domain.GeoPoint
}

// SpaceService is the provider-side management workflow for spaces and
// their bookable windows. Local copies are a cache: every mutation is
// followed by a re-fetch so server-derived fields never drift.
type SpaceService struct {
	backend SpaceBackend
	logger  *slog.Logger
}

// NewSpaceService creates a new SpaceService.
func NewSpaceService(b SpaceBackend, logger *slog.Logger) *SpaceService {
	return &SpaceService{backend: b, logger: logger}
}

// MySpaces lists the caller's spaces.
func (s *SpaceService) MySpaces(ctx context.Context, sess domain.Session) ([]domain.Space, error) {
	if !sess.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	spaces, err := s.backend.MySpaces(ctx, sess.Token)
	if err != nil {
		return nil, classify(err)
	}
	return spaces, nil
}

// Create registers a new space and returns the re-fetched space list.
func (s *SpaceService) Create(ctx context.Context, sess domain.Session, draft SpaceDraft) ([]domain.Space, error) {
	if !sess.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	if strings.TrimSpace(draft.Title) == "" {
		return nil, ErrMissingTitle
	}
	if draft.Capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	if draft.Point == nil {
		return nil, ErrMissingSpacePoint
	}
	if err := draft.Point.Validate(); err != nil {
		return nil, err
	}

	req := backend.CreateSpaceRequest{
		Title:       draft.Title,
		Description: draft.Description,
		Address:     draft.Point.Address,
		Lat:         draft.Point.Lat,
		Lng:         draft.Point.Lng,
		Capacity:    draft.Capacity,
		HeightLimit: draft.HeightLimit,
		IsActive:    true,
	}
	if _, err := s.backend.CreateSpace(ctx, sess.Token, req); err != nil {
		return nil, classify(err)
	}
	s.logger.Info("space created", "title", draft.Title, "user_id", sess.User.ID)

	spaces, err := s.backend.MySpaces(ctx, sess.Token)
	if err != nil {
		return nil, classify(err)
	}
	return spaces, nil
}

// Availability lists the bookable windows of one owned space.
func (s *SpaceService) Availability(ctx context.Context, sess domain.Session, spaceID int64) ([]domain.AvailabilityWindow, error) {
	if !sess.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	windows, err := s.backend.ListAvailability(ctx, sess.Token, spaceID)
	if err != nil {
		return nil, classify(err)
	}
	return windows, nil
}

// AddAvailability adds a bookable window to an owned space and returns
// the re-fetched window list. Overlap between windows is the backend's
// invariant to enforce, not ours.
func (s *SpaceService) AddAvailability(ctx context.Context, sess domain.Session, spaceID int64, startTS, endTS string, rate float64, active bool) ([]domain.AvailabilityWindow, error) {
	if !sess.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	if err := validateWindow(startTS, endTS); err != nil {
		return nil, err
	}
	if rate < 0 {
		return nil, ErrNegativeRate
	}

	owned, err := s.backend.MySpaces(ctx, sess.Token)
	if err != nil {
		return nil, classify(err)
	}
	found := false
	for _, space := range owned {
		if space.ID == spaceID {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrSpaceNotOwned
	}

	req := backend.AddAvailabilityRequest{
		StartTS:          startTS,
		EndTS:            endTS,
		BasePricePerHour: rate,
		IsActive:         active,
	}
	if _, err := s.backend.AddAvailability(ctx, sess.Token, spaceID, req); err != nil {
		return nil, classify(err)
	}
	s.logger.Info("availability added", "space_id", spaceID)

	windows, err := s.backend.ListAvailability(ctx, sess.Token, spaceID)
	if err != nil {
		return nil, classify(err)
	}
	return windows, nil
}
