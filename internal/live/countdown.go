// Package live holds the background subscriptions behind the "live"
// parts of the dashboard: the booking countdown and the device-location
// watch. Every subscription is tied to the lifetime of the view that
// created it and is torn down deterministically on exit.
package live

import (
	"fmt"
	"sync"
	"time"
)

// Countdown ticks the remaining time until a deadline on a fixed
// interval. The channel closes once the deadline passes or Stop is
// called, whichever comes first.
type Countdown struct {
	C <-chan time.Duration

	stop chan struct{}
	once sync.Once
}

// NewCountdown starts a countdown toward end. now is injectable for
// tests; pass nil for the wall clock.
func NewCountdown(end time.Time, interval time.Duration, now func() time.Time) *Countdown {
	if now == nil {
		now = time.Now
	}
	ch := make(chan time.Duration)
	c := &Countdown{C: ch, stop: make(chan struct{})}

	go func() {
		defer close(ch)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-c.stop:
				return
			case <-ticker.C:
				remaining := end.Sub(now())
				if remaining <= 0 {
					select {
					case ch <- 0:
					case <-c.stop:
					}
					return
				}
				select {
				case ch <- remaining:
				case <-c.stop:
					return
				}
			}
		}
	}()

	return c
}

// Stop tears the countdown down. Safe to call more than once.
func (c *Countdown) Stop() {
	c.once.Do(func() { close(c.stop) })
}

// FormatRemaining renders a remaining duration the way the dashboard
// displays it, e.g. "1h 12m 5s"; zero or negative renders "Time over".
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return "Time over"
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%dh %dm %ds", total/3600, (total%3600)/60, total%60)
}
