package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"parkflow/internal/domain"
	"parkflow/internal/geo"
	"parkflow/internal/live"
	"parkflow/internal/maps"
	"parkflow/internal/middleware"
	"parkflow/internal/picker"
	"parkflow/internal/service"
)

// countdownInterval is how often the booking countdown ticks.
const countdownInterval = time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The gateway serves its own front-end; cross-origin sockets are
	// handled by the CORS layer on the REST side.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// LiveHandler runs the per-session live socket: device-location feed,
// map picker commands and the active-booking countdown. Everything the
// socket starts is torn down when it closes.
type LiveHandler struct {
	watch    *live.Watch
	bookings *service.BookingService
	geocoder geo.ReverseGeocoder
	fallback domain.GeoPoint
	logger   *slog.Logger
}

// NewLiveHandler creates a new LiveHandler.
func NewLiveHandler(watch *live.Watch, bookings *service.BookingService, geocoder geo.ReverseGeocoder, fallback domain.GeoPoint, logger *slog.Logger) *LiveHandler {
	return &LiveHandler{
		watch:    watch,
		bookings: bookings,
		geocoder: geocoder,
		fallback: fallback,
		logger:   logger,
	}
}

// liveMessage is the inbound socket message envelope.
type liveMessage struct {
	Type      string  `json:"type"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Address   string  `json:"address"`
	BookingID int64   `json:"booking_id"`
}

// socketAdapter drives the browser's map widget over the live socket.
type socketAdapter struct {
	sock *live.Socket
	pick func(lat, lng float64)
}

func (a *socketAdapter) SetCenter(p domain.GeoPoint) {
	_ = a.sock.Send(gin.H{"type": "map_center", "lat": p.Lat, "lng": p.Lng})
}

func (a *socketAdapter) SetMarker(p domain.GeoPoint) {
	_ = a.sock.Send(gin.H{"type": "map_marker", "lat": p.Lat, "lng": p.Lng, "address": p.Address})
}

func (a *socketAdapter) OnUserPick(fn func(lat, lng float64)) { a.pick = fn }

func (a *socketAdapter) Teardown() {
	_ = a.sock.Send(gin.H{"type": "map_teardown"})
}

var _ maps.Adapter = (*socketAdapter)(nil)

// Serve handles GET /v1/live. The request must already carry an
// authenticated session.
func (h *LiveHandler) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	sid := middleware.SessionID(c)
	sess := middleware.CurrentSession(c)
	sock := live.NewSocket(conn)
	defer sock.Close()

	adapter := &socketAdapter{sock: sock}
	ctrl := picker.NewController(adapter, h.geocoder, h.fallback, func(p domain.GeoPoint) {
		_ = sock.Send(gin.H{"type": "picked", "lat": p.Lat, "lng": p.Lng, "address": p.Address})
	})
	defer ctrl.Teardown()

	updates, cancel := h.watch.Subscribe(sid)
	defer cancel()
	go func() {
		for p := range updates {
			if err := sock.Send(gin.H{"type": "location", "lat": p.Lat, "lng": p.Lng}); err != nil {
				return
			}
		}
	}()

	var countdown *live.Countdown
	stopCountdown := func() {
		if countdown != nil {
			countdown.Stop()
			countdown = nil
		}
	}
	defer stopCountdown()

	ctx := c.Request.Context()
	for {
		var msg liveMessage
		if err := sock.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "location":
			if err := h.watch.Update(sid, msg.Lat, msg.Lng); err != nil {
				_ = sock.Send(gin.H{"type": "error", "error": err.Error()})
				continue
			}
			_ = ctrl.SetDeviceLocation(ctx, msg.Lat, msg.Lng)

		case "pick":
			if adapter.pick != nil {
				adapter.pick(msg.Lat, msg.Lng)
			}

		case "select":
			if err := ctrl.Select(ctx, domain.GeoPoint{Lat: msg.Lat, Lng: msg.Lng, Address: msg.Address}); err != nil {
				_ = sock.Send(gin.H{"type": "error", "error": err.Error()})
			}

		case "countdown":
			stopCountdown()
			end, err := h.bookingEnd(ctx, sess, msg.BookingID)
			if err != nil {
				_ = sock.Send(gin.H{"type": "error", "error": friendlyMessage(err)})
				continue
			}
			countdown = live.NewCountdown(end, countdownInterval, nil)
			go h.streamCountdown(sock, msg.BookingID, countdown)

		case "stop_countdown":
			stopCountdown()
		}
	}
}

// bookingEnd resolves a booking the caller may watch into its parsed
// end time. The countdown only runs for a checked-in booking.
func (h *LiveHandler) bookingEnd(ctx context.Context, sess domain.Session, bookingID int64) (time.Time, error) {
	bookings, err := h.bookings.List(ctx, sess)
	if err != nil {
		return time.Time{}, err
	}
	for _, b := range bookings {
		if b.ID != bookingID {
			continue
		}
		if b.Status != domain.BookingStatusCheckedIn {
			return time.Time{}, service.ErrBookingNotActive
		}
		if end, ok := service.ParseTimestamp(b.EndTS); ok {
			return end, nil
		}
		return time.Time{}, service.ErrInvalidTimeWindow
	}
	return time.Time{}, service.ErrBookingNotFound
}

// streamCountdown pushes ticks until the countdown closes.
func (h *LiveHandler) streamCountdown(sock *live.Socket, bookingID int64, countdown *live.Countdown) {
	for remaining := range countdown.C {
		err := sock.Send(gin.H{
			"type":        "countdown",
			"booking_id":  bookingID,
			"remaining_s": int(remaining.Seconds()),
			"display":     live.FormatRemaining(remaining),
		})
		if err != nil {
			countdown.Stop()
			return
		}
	}
}
