package live_test

import (
	"testing"
	"time"

	"parkflow/internal/live"
)

func TestCountdown_TicksDownAndCloses(t *testing.T) {
	t.Parallel()

	end := time.Now().Add(25 * time.Millisecond)
	countdown := live.NewCountdown(end, 10*time.Millisecond, nil)

	var ticks []time.Duration
	for remaining := range countdown.C {
		ticks = append(ticks, remaining)
	}

	if len(ticks) == 0 {
		t.Fatal("expected at least one tick")
	}
	if ticks[len(ticks)-1] != 0 {
		t.Errorf("expected the final tick to be zero, got %v", ticks[len(ticks)-1])
	}
	for i := 1; i < len(ticks); i++ {
		if ticks[i] > ticks[i-1] {
			t.Error("expected remaining time to be non-increasing")
		}
	}
}

func TestCountdown_StopClosesChannel(t *testing.T) {
	t.Parallel()

	countdown := live.NewCountdown(time.Now().Add(time.Hour), 5*time.Millisecond, nil)

	// Drain in the background so Stop never races a pending send.
	done := make(chan struct{})
	go func() {
		for range countdown.C {
		}
		close(done)
	}()

	countdown.Stop()
	countdown.Stop() // idempotent

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected channel to close after Stop")
	}
}

func TestFormatRemaining(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		d    time.Duration
		want string
	}{
		{90*time.Minute + 5*time.Second, "1h 30m 5s"},
		{59 * time.Second, "0h 0m 59s"},
		{0, "Time over"},
		{-time.Minute, "Time over"},
	}
	for _, tc := range testCases {
		if got := live.FormatRemaining(tc.d); got != tc.want {
			t.Errorf("FormatRemaining(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
