// Package maps isolates the concrete mapping widget behind a small
// adapter so the provider is swappable and the picker is testable
// without a real map engine.
package maps

import "parkflow/internal/domain"

// Adapter is the surface the picker needs from a map widget.
type Adapter interface {
	// SetCenter moves the viewport to the point.
	SetCenter(p domain.GeoPoint)

	// SetMarker places or moves the selection marker.
	SetMarker(p domain.GeoPoint)

	// OnUserPick registers the callback fired when the user clicks or
	// drops the marker on the map.
	OnUserPick(fn func(lat, lng float64))

	// Teardown releases the widget and its listeners.
	Teardown()
}

// Noop is an Adapter that does nothing, for views whose map widget
// failed to load. The rest of the page keeps working without it.
type Noop struct{}

func (Noop) SetCenter(domain.GeoPoint)         {}
func (Noop) SetMarker(domain.GeoPoint)         {}
func (Noop) OnUserPick(func(lat, lng float64)) {}
func (Noop) Teardown()                         {}

var _ Adapter = Noop{}
