package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"parkflow/internal/backend"
	"parkflow/internal/domain"
	"parkflow/internal/observability"
)

// SearchState is the state of a search session.
type SearchState string

const (
	SearchStateIdle      SearchState = "idle"
	SearchStateSearching SearchState = "searching"
	SearchStateResults   SearchState = "results"
	SearchStateError     SearchState = "error"
)

// SearchBackend is the slice of the backend API the search workflow
// needs.
type SearchBackend interface {
	Search(ctx context.Context, q backend.SearchQuery) (*backend.SearchResponse, error)
	SearchNearby(ctx context.Context, token, startTS, endTS string, radiusM int) (*backend.SearchResponse, error)
	SaveLocation(ctx context.Context, token string, lat, lng float64) error
}

// SearchParams are the inputs for one search: a text query or explicit
// coordinates, a mandatory time window, and an optional radius. The
// radius is never clamped here; the backend's echo is authoritative.
type SearchParams struct {
	Query   string
	Point   *domain.GeoPoint
	StartTS string
	EndTS   string
	RadiusM int

	// UseLive switches the input source to the device location. It
	// requires a previously observed coordinate.
	UseLive bool
}

// SearchSnapshot is a point-in-time view of a search session.
type SearchSnapshot struct {
	State      SearchState           `json:"state"`
	Results    []domain.SearchResult `json:"results"`
	Requested  backend.RequestedEcho `json:"requested"`
	Error      string                `json:"error,omitempty"`
	Generation uint64                `json:"generation"`
}

// searchSession holds one session's machine: idle → searching →
// {results, error}. The generation counter guards against stale
// completions: only the latest search may commit.
type searchSession struct {
	mu   sync.Mutex
	gen  uint64
	snap SearchSnapshot
}

// SearchService runs space searches per session with superseding
// semantics: a newer search wins, a stale result is discarded.
type SearchService struct {
	mu       sync.Mutex
	sessions map[string]*searchSession
	backend  SearchBackend
	logger   *slog.Logger
}

// NewSearchService creates a new SearchService.
func NewSearchService(b SearchBackend, logger *slog.Logger) *SearchService {
	return &SearchService{
		sessions: make(map[string]*searchSession),
		backend:  b,
		logger:   logger,
	}
}

func (s *SearchService) session(sid string) *searchSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sid]
	if !ok {
		sess = &searchSession{snap: SearchSnapshot{State: SearchStateIdle}}
		s.sessions[sid] = sess
	}
	return sess
}

// Snapshot returns the current state of the session's search.
func (s *SearchService) Snapshot(sid string) SearchSnapshot {
	sess := s.session(sid)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snap
}

// Drop forgets a session's search state, e.g. on logout.
func (s *SearchService) Drop(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
}

// Search runs one search for the session. Input validation failures are
// reported before any network call. If another search starts while this
// one is in flight, this one's outcome is discarded.
func (s *SearchService) Search(ctx context.Context, sid string, live *domain.GeoPoint, params SearchParams) (SearchSnapshot, error) {
	query := strings.TrimSpace(params.Query)
	point := params.Point

	if params.UseLive {
		if live == nil {
			return s.Snapshot(sid), ErrNoLiveLocation
		}
		point = live
		query = ""
	}

	if err := validateWindow(params.StartTS, params.EndTS); err != nil {
		return s.Snapshot(sid), err
	}
	if query == "" && point == nil {
		return s.Snapshot(sid), ErrMissingLocation
	}
	if point != nil {
		if err := point.Validate(); err != nil {
			return s.Snapshot(sid), err
		}
	}

	q := backend.SearchQuery{
		Query:   query,
		StartTS: params.StartTS,
		EndTS:   params.EndTS,
		RadiusM: params.RadiusM,
	}
	if point != nil {
		q.Lat = &point.Lat
		q.Lng = &point.Lng
	}

	gen := s.begin(sid)
	resp, err := s.backend.Search(ctx, q)
	return s.finish(sid, gen, resp, classify(err))
}

// SearchNearby searches around the user's saved location. Requires an
// authenticated session.
func (s *SearchService) SearchNearby(ctx context.Context, sid string, sess domain.Session, params SearchParams) (SearchSnapshot, error) {
	if !sess.Authenticated() {
		return s.Snapshot(sid), ErrNotAuthenticated
	}
	if err := validateWindow(params.StartTS, params.EndTS); err != nil {
		return s.Snapshot(sid), err
	}

	gen := s.begin(sid)
	resp, err := s.backend.SearchNearby(ctx, sess.Token, params.StartTS, params.EndTS, params.RadiusM)
	return s.finish(sid, gen, resp, classify(err))
}

// SaveLocation stores the device location server-side for later nearby
// searches. Coordinates pass through verbatim after range validation.
func (s *SearchService) SaveLocation(ctx context.Context, sess domain.Session, lat, lng float64) error {
	if !sess.Authenticated() {
		return ErrNotAuthenticated
	}
	point := domain.GeoPoint{Lat: lat, Lng: lng}
	if err := point.Validate(); err != nil {
		return err
	}
	return classify(s.backend.SaveLocation(ctx, sess.Token, lat, lng))
}

// begin transitions the session to searching and returns the new
// generation. Any search already in flight is superseded.
func (s *SearchService) begin(sid string) uint64 {
	sess := s.session(sid)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.gen++
	sess.snap = SearchSnapshot{State: SearchStateSearching, Generation: sess.gen}
	return sess.gen
}

// finish commits the outcome of the search with the given generation.
// A stale generation means a newer search took over: the outcome is
// dropped and the current snapshot returned unchanged.
func (s *SearchService) finish(sid string, gen uint64, resp *backend.SearchResponse, err error) (SearchSnapshot, error) {
	sess := s.session(sid)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if gen != sess.gen {
		observability.SearchesSuperseded.Inc()
		return sess.snap, nil
	}

	if err != nil {
		// Failure clears the previous result set: stale matches must
		// never be shown as current.
		sess.snap = SearchSnapshot{State: SearchStateError, Error: err.Error(), Generation: gen}
		observability.SearchesTotal.WithLabelValues("error").Inc()
		return sess.snap, err
	}

	results := resp.Items
	if results == nil {
		results = []domain.SearchResult{}
	}
	// Backend order is ranking order; no re-sorting here.
	sess.snap = SearchSnapshot{
		State:      SearchStateResults,
		Results:    results,
		Requested:  resp.Requested,
		Generation: gen,
	}
	observability.SearchesTotal.WithLabelValues("ok").Inc()
	return sess.snap, nil
}
