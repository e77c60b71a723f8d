package live

import (
	"sync"

	"parkflow/internal/domain"
)

// Watch tracks the latest device coordinate per session and fans it out
// to subscribers. The browser feeds it over the live socket; the search
// workflow reads the latest value for "use live location".
type Watch struct {
	mu     sync.RWMutex
	latest map[string]domain.GeoPoint
	subs   map[string]map[int]chan domain.GeoPoint
	nextID int
}

// NewWatch creates an empty Watch.
func NewWatch() *Watch {
	return &Watch{
		latest: make(map[string]domain.GeoPoint),
		subs:   make(map[string]map[int]chan domain.GeoPoint),
	}
}

// Update records a new device coordinate for the session and notifies
// subscribers. Out-of-range coordinates are dropped. The fan-out runs
// under the lock so a concurrent cancel cannot close a channel
// mid-send; sends are non-blocking, so a slow subscriber misses a tick
// rather than stalling the feed.
func (w *Watch) Update(sid string, lat, lng float64) error {
	point := domain.GeoPoint{Lat: lat, Lng: lng}
	if err := point.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.latest[sid] = point
	for _, ch := range w.subs[sid] {
		select {
		case ch <- point:
		default:
		}
	}
	return nil
}

// Latest returns the most recent coordinate for the session, or nil if
// none has been observed.
func (w *Watch) Latest(sid string) *domain.GeoPoint {
	w.mu.RLock()
	defer w.mu.RUnlock()
	point, ok := w.latest[sid]
	if !ok {
		return nil
	}
	p := point
	return &p
}

// Subscribe returns a channel of location updates for the session plus
// a cancel function. Cancel must be called when the owning view exits.
func (w *Watch) Subscribe(sid string) (<-chan domain.GeoPoint, func()) {
	ch := make(chan domain.GeoPoint, 1)

	w.mu.Lock()
	if w.subs[sid] == nil {
		w.subs[sid] = make(map[int]chan domain.GeoPoint)
	}
	id := w.nextID
	w.nextID++
	w.subs[sid][id] = ch
	w.mu.Unlock()

	cancel := func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if subs, ok := w.subs[sid]; ok {
			if _, live := subs[id]; live {
				delete(subs, id)
				close(ch)
			}
			if len(subs) == 0 {
				delete(w.subs, sid)
			}
		}
	}
	return ch, cancel
}

// Forget drops the session's latest coordinate, e.g. on logout.
func (w *Watch) Forget(sid string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.latest, sid)
}
