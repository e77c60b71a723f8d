package domain

// Space is a provider-owned, bookable parking location. The backend is
// authoritative; local copies are a cache invalidated by re-fetch.
type Space struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Address     string   `json:"address,omitempty"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Capacity    int      `json:"capacity"`
	HeightLimit *float64 `json:"height_limit,omitempty"`
	IsActive    bool     `json:"is_active"`
}

// AvailabilityWindow is a time range plus hourly rate during which a
// space accepts bookings. StartTS/EndTS are ISO-8601 strings exchanged
// verbatim with the backend.
type AvailabilityWindow struct {
	ID               int64   `json:"id"`
	SpaceID          int64   `json:"space_id"`
	StartTS          string  `json:"start_ts"`
	EndTS            string  `json:"end_ts"`
	BasePricePerHour float64 `json:"base_price_per_hour"`
	IsActive         bool    `json:"is_active"`
}

// SearchResult is a space projected with its distance from the query
// point. It is ephemeral and never persisted beyond the current query.
type SearchResult struct {
	Space
	DistanceM float64 `json:"distance_m"`
}
