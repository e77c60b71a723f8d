// Package picker implements the location picker: a controller over a
// map widget that lets the user settle on one geographic point with an
// optional address label.
package picker

import (
	"context"
	"sync"

	"parkflow/internal/domain"
	"parkflow/internal/geo"
	"parkflow/internal/maps"
)

// Controller coordinates map interactions, autocomplete selections and
// device-location updates into a single current GeoPoint. Every change
// of coordinates attempts a reverse-geocode for the address label, but
// coordinate delivery never waits on a failed lookup.
type Controller struct {
	mu       sync.Mutex
	adapter  maps.Adapter
	geocoder geo.ReverseGeocoder
	fallback domain.GeoPoint
	value    *domain.GeoPoint
	onChange func(domain.GeoPoint)
	degraded bool
	torn     bool
}

// NewController creates a picker over the given map adapter. A nil
// adapter means the map widget failed to load: the picker stays usable
// in a degraded state (suggestions and device location still work).
func NewController(adapter maps.Adapter, geocoder geo.ReverseGeocoder, fallback domain.GeoPoint, onChange func(domain.GeoPoint)) *Controller {
	c := &Controller{
		adapter:  adapter,
		geocoder: geocoder,
		fallback: fallback,
		onChange: onChange,
	}
	if adapter == nil {
		c.adapter = maps.Noop{}
		c.degraded = true
	}

	c.adapter.SetCenter(c.center())
	c.adapter.OnUserPick(func(lat, lng float64) {
		_ = c.Pick(context.Background(), lat, lng)
	})
	return c
}

// Degraded reports whether the map widget failed to load.
func (c *Controller) Degraded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.degraded
}

// Value returns the currently picked point, or nil when none is set.
func (c *Controller) Value() *domain.GeoPoint {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.value == nil {
		return nil
	}
	v := *c.value
	return &v
}

// Pick handles a map click or marker drag. The address is resolved via
// reverse geocoding; if that fails the point is delivered with the
// previous or empty address.
func (c *Controller) Pick(ctx context.Context, lat, lng float64) error {
	return c.update(ctx, lat, lng, "", true)
}

// Select handles an autocomplete suggestion, which already carries its
// address label.
func (c *Controller) Select(ctx context.Context, p domain.GeoPoint) error {
	return c.update(ctx, p.Lat, p.Lng, p.Address, p.Address == "")
}

// SetDeviceLocation handles an externally supplied device coordinate.
func (c *Controller) SetDeviceLocation(ctx context.Context, lat, lng float64) error {
	return c.update(ctx, lat, lng, "", true)
}

func (c *Controller) update(ctx context.Context, lat, lng float64, address string, resolve bool) error {
	point := domain.GeoPoint{Lat: lat, Lng: lng, Address: address}
	if err := point.Validate(); err != nil {
		return err
	}

	if resolve && c.geocoder != nil {
		if label, err := c.geocoder.Reverse(ctx, lat, lng); err == nil && label != "" {
			point.Address = label
		} else {
			// Lookup failed: keep the previous label rather than
			// dropping the coordinates.
			c.mu.Lock()
			if c.value != nil {
				point.Address = c.value.Address
			}
			c.mu.Unlock()
		}
	}

	c.mu.Lock()
	if c.torn {
		c.mu.Unlock()
		return nil
	}
	c.value = &point
	onChange := c.onChange
	c.mu.Unlock()

	c.adapter.SetMarker(point)
	c.adapter.SetCenter(point)
	if onChange != nil {
		onChange(point)
	}
	return nil
}

func (c *Controller) center() domain.GeoPoint {
	if c.value != nil {
		return *c.value
	}
	return c.fallback
}

// Teardown releases the map widget. Further updates are dropped.
func (c *Controller) Teardown() {
	c.mu.Lock()
	if c.torn {
		c.mu.Unlock()
		return
	}
	c.torn = true
	c.mu.Unlock()
	c.adapter.Teardown()
}
