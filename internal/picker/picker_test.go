package picker_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"parkflow/internal/domain"
	"parkflow/internal/picker"
)

// fakeAdapter records map commands for verification.
type fakeAdapter struct {
	mu       sync.Mutex
	centers  []domain.GeoPoint
	markers  []domain.GeoPoint
	pick     func(lat, lng float64)
	tornDown bool
}

func (a *fakeAdapter) SetCenter(p domain.GeoPoint) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.centers = append(a.centers, p)
}

func (a *fakeAdapter) SetMarker(p domain.GeoPoint) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.markers = append(a.markers, p)
}

func (a *fakeAdapter) OnUserPick(fn func(lat, lng float64)) { a.pick = fn }

func (a *fakeAdapter) Teardown() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tornDown = true
}

// fakeGeocoder returns a fixed label or a fixed error.
type fakeGeocoder struct {
	label string
	err   error
}

func (g *fakeGeocoder) Reverse(ctx context.Context, lat, lng float64) (string, error) {
	return g.label, g.err
}

var dhaka = domain.GeoPoint{Lat: 23.8103, Lng: 90.4125}

func TestPicker_InitialCenterIsFallback(t *testing.T) {
	t.Parallel()

	adapter := &fakeAdapter{}
	picker.NewController(adapter, &fakeGeocoder{}, dhaka, nil)

	if len(adapter.centers) != 1 || adapter.centers[0] != dhaka {
		t.Fatalf("expected initial center at fallback, got %+v", adapter.centers)
	}
}

func TestPicker_PickResolvesAddress(t *testing.T) {
	t.Parallel()

	adapter := &fakeAdapter{}
	var delivered []domain.GeoPoint
	ctrl := picker.NewController(adapter, &fakeGeocoder{label: "Banani, Dhaka"}, dhaka, func(p domain.GeoPoint) {
		delivered = append(delivered, p)
	})

	if err := ctrl.Pick(context.Background(), 23.79, 90.40); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(delivered) != 1 {
		t.Fatalf("expected one change event, got %d", len(delivered))
	}
	if delivered[0].Address != "Banani, Dhaka" {
		t.Errorf("expected resolved address, got %q", delivered[0].Address)
	}
	if len(adapter.markers) != 1 {
		t.Error("expected the marker to move")
	}
}

// A failed reverse geocode must still deliver the coordinates.
func TestPicker_GeocodeFailure_DeliversCoordinates(t *testing.T) {
	t.Parallel()

	var delivered []domain.GeoPoint
	ctrl := picker.NewController(&fakeAdapter{}, &fakeGeocoder{err: errors.New("timeout")}, dhaka, func(p domain.GeoPoint) {
		delivered = append(delivered, p)
	})

	if err := ctrl.Pick(context.Background(), 23.79, 90.40); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(delivered) != 1 {
		t.Fatal("expected the point to be delivered despite the failed lookup")
	}
	if delivered[0].Lat != 23.79 || delivered[0].Address != "" {
		t.Errorf("expected bare coordinates, got %+v", delivered[0])
	}
}

func TestPicker_Select_KeepsSuggestionAddress(t *testing.T) {
	t.Parallel()

	ctrl := picker.NewController(&fakeAdapter{}, &fakeGeocoder{label: "should not be used"}, dhaka, nil)

	suggestion := domain.GeoPoint{Lat: 23.75, Lng: 90.39, Address: "Dhanmondi 27"}
	if err := ctrl.Select(context.Background(), suggestion); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if got := ctrl.Value(); got == nil || got.Address != "Dhanmondi 27" {
		t.Errorf("expected suggestion address to win, got %+v", got)
	}
}

func TestPicker_RejectsOutOfRange(t *testing.T) {
	t.Parallel()

	ctrl := picker.NewController(&fakeAdapter{}, &fakeGeocoder{}, dhaka, nil)

	if err := ctrl.Pick(context.Background(), 99, 90.40); err != domain.ErrLatOutOfRange {
		t.Fatalf("expected ErrLatOutOfRange, got: %v", err)
	}
	if ctrl.Value() != nil {
		t.Error("expected no value after a rejected pick")
	}
}

func TestPicker_NilAdapter_DegradedButUsable(t *testing.T) {
	t.Parallel()

	ctrl := picker.NewController(nil, &fakeGeocoder{label: "Uttara"}, dhaka, nil)

	if !ctrl.Degraded() {
		t.Fatal("expected degraded mode without a map widget")
	}
	if err := ctrl.SetDeviceLocation(context.Background(), 23.87, 90.38); err != nil {
		t.Fatalf("expected device location to work in degraded mode, got: %v", err)
	}
	if got := ctrl.Value(); got == nil || got.Address != "Uttara" {
		t.Errorf("expected value in degraded mode, got %+v", got)
	}
}

func TestPicker_Teardown_DropsFurtherUpdates(t *testing.T) {
	t.Parallel()

	adapter := &fakeAdapter{}
	var delivered int
	ctrl := picker.NewController(adapter, &fakeGeocoder{}, dhaka, func(domain.GeoPoint) { delivered++ })

	ctrl.Teardown()
	if !adapter.tornDown {
		t.Fatal("expected adapter teardown")
	}

	if err := ctrl.Pick(context.Background(), 23.79, 90.40); err != nil {
		t.Fatalf("expected dropped update, not error: %v", err)
	}
	if delivered != 0 {
		t.Error("expected no change events after teardown")
	}
	if ctrl.Value() != nil {
		t.Error("expected no value after teardown")
	}

	// Second teardown is a no-op.
	ctrl.Teardown()
}
