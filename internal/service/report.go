package service

import (
	"context"

	"parkflow/internal/domain"
)

// ReportBackend is the slice of the backend API the reporting workflow
// needs.
type ReportBackend interface {
	MonthlyReport(ctx context.Context, token string) (*domain.MonthlyReport, error)
	MySpaces(ctx context.Context, token string) ([]domain.Space, error)
	BookingsForMySpaces(ctx context.Context, token string) ([]domain.Booking, error)
}

// ReportService surfaces the provider income report and the admin
// overview. All numbers come from the backend; nothing is computed
// locally beyond counting list lengths.
type ReportService struct {
	backend ReportBackend
}

// NewReportService creates a new ReportService.
func NewReportService(b ReportBackend) *ReportService {
	return &ReportService{backend: b}
}

// Monthly fetches the provider's monthly income report.
func (s *ReportService) Monthly(ctx context.Context, sess domain.Session) (*domain.MonthlyReport, error) {
	if !sess.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	report, err := s.backend.MonthlyReport(ctx, sess.Token)
	if err != nil {
		return nil, classify(err)
	}
	if report.Months == nil {
		report.Months = []domain.MonthlyIncome{}
	}
	return report, nil
}

// Overview aggregates space and booking counts for the admin view.
func (s *ReportService) Overview(ctx context.Context, sess domain.Session) (*domain.AdminOverview, error) {
	if !sess.Authenticated() {
		return nil, ErrNotAuthenticated
	}

	spaces, err := s.backend.MySpaces(ctx, sess.Token)
	if err != nil {
		return nil, classify(err)
	}
	bookings, err := s.backend.BookingsForMySpaces(ctx, sess.Token)
	if err != nil {
		return nil, classify(err)
	}

	return &domain.AdminOverview{
		SpaceCount:   len(spaces),
		BookingCount: len(bookings),
	}, nil
}
