package domain

// BookingStatus represents the current status of a booking.
type BookingStatus string

const (
	BookingStatusReserved   BookingStatus = "reserved"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusCheckedIn  BookingStatus = "checked_in"
	BookingStatusCheckedOut BookingStatus = "checked_out"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// Terminal reports whether the booking can take no further actions.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCheckedOut || s == BookingStatusCancelled
}

// BookingAction is a status-transition request sent to the backend.
type BookingAction string

const (
	ActionCancel   BookingAction = "cancel"
	ActionConfirm  BookingAction = "confirm"
	ActionCheckIn  BookingAction = "check-in"
	ActionCheckOut BookingAction = "check-out"
)

// Booking is a driver's reservation of a space for a concrete time
// range. PriceTotal and Status are backend-computed and never derived
// locally.
type Booking struct {
	ID         int64         `json:"id"`
	SpaceID    int64         `json:"space_id"`
	UserID     int64         `json:"user_id"`
	StartTS    string        `json:"start_ts"`
	EndTS      string        `json:"end_ts"`
	PriceTotal float64       `json:"price_total"`
	Status     BookingStatus `json:"status"`
	Space      *Space        `json:"space,omitempty"`
}

// AllowedActions returns the status transitions a role may request for a
// booking in the given status. This gates UI affordance only; the
// backend re-validates every transition.
func AllowedActions(role Role, status BookingStatus) []BookingAction {
	if status.Terminal() {
		return nil
	}

	var actions []BookingAction

	switch role {
	case RoleDriver:
		if status == BookingStatusReserved || status == BookingStatusConfirmed {
			actions = append(actions, ActionCancel)
		}
	case RoleProvider:
		if status == BookingStatusReserved {
			actions = append(actions, ActionConfirm)
		}
		if status == BookingStatusReserved || status == BookingStatusConfirmed {
			actions = append(actions, ActionCancel)
		}
		if status == BookingStatusConfirmed {
			actions = append(actions, ActionCheckIn)
		}
		if status == BookingStatusCheckedIn {
			actions = append(actions, ActionCheckOut)
		}
	}

	return actions
}

// ActionAllowed reports whether a single action is permitted for the
// role/status pair.
func ActionAllowed(role Role, status BookingStatus, action BookingAction) bool {
	for _, a := range AllowedActions(role, status) {
		if a == action {
			return true
		}
	}
	return false
}
