package domain

// MonthlyIncome is one month's aggregated income for a provider.
type MonthlyIncome struct {
	Month  string  `json:"month"`
	Income float64 `json:"income"`
}

// MonthlyReport is the provider income report as returned by the
// backend's reporting endpoint.
type MonthlyReport struct {
	Months      []MonthlyIncome `json:"months"`
	TotalIncome float64         `json:"total_income"`
}

// AdminOverview aggregates counts for the admin dashboard.
type AdminOverview struct {
	SpaceCount   int `json:"space_count"`
	BookingCount int `json:"booking_count"`
}
