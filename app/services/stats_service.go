package services

import (
	"context"

	"github.com/mahfuzanam/bloodlink/app/models"
)

// UserCounter, DonationCounter, FundingCounter, and BlogCounter expose the
// counting surface of the repositories. The stats endpoints are the only
// consumers.
type UserCounter interface {
	Count(ctx context.Context) (int64, error)
	EstimatedCount(ctx context.Context) (int64, error)
}

type DonationCounter interface {
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.RequestStatus) (int64, error)
	EstimatedCount(ctx context.Context) (int64, error)
}

type FundingCounter interface {
	TotalAmount(ctx context.Context) (float64, error)
}

type BlogCounter interface {
	EstimatedCount(ctx context.Context) (int64, error)
}

// AdminStats is the dashboard summary returned by GET /admin-stats.
type AdminStats struct {
	TotalUsers          int64   `json:"totalUsers"`
	TotalRequests       int64   `json:"totalRequests"`
	SuccessfulDonations int64   `json:"successfulDonations"`
	PendingRequests     int64   `json:"pendingRequests"`
	TotalRevenue        float64 `json:"totalRevenue"`
	BlogCount           int64   `json:"blogCount"`
}

// FinancialStats is the lighter summary: revenue is an exact aggregation,
// the counts are fast cardinality estimates and may lag the exact numbers.
type FinancialStats struct {
	TotalRevenue     float64 `json:"totalRevenue"`
	Users            int64   `json:"users"`
	DonationRequests int64   `json:"donationRequests"`
	BlogCount        int64   `json:"blogCount"`
}

// StatsService aggregates collection counts for the admin dashboards.
type StatsService struct {
	users     UserCounter
	donations DonationCounter
	fundings  FundingCounter
	blogs     BlogCounter
}

func NewStatsService(users UserCounter, donations DonationCounter, fundings FundingCounter, blogs BlogCounter) *StatsService {
	return &StatsService{users: users, donations: donations, fundings: fundings, blogs: blogs}
}

// Admin returns the exact dashboard counts. Exact counting is deliberate
// here: the dashboard is low-traffic and admins compare these numbers
// against each other.
func (s *StatsService) Admin(ctx context.Context) (AdminStats, error) {
	var stats AdminStats
	var err error

	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return AdminStats{}, err
	}
	if stats.TotalRequests, err = s.donations.Count(ctx); err != nil {
		return AdminStats{}, err
	}
	if stats.SuccessfulDonations, err = s.donations.CountByStatus(ctx, models.RequestDone); err != nil {
		return AdminStats{}, err
	}
	if stats.PendingRequests, err = s.donations.CountByStatus(ctx, models.RequestPending); err != nil {
		return AdminStats{}, err
	}
	if stats.TotalRevenue, err = s.fundings.TotalAmount(ctx); err != nil {
		return AdminStats{}, err
	}
	if stats.BlogCount, err = s.blogs.EstimatedCount(ctx); err != nil {
		return AdminStats{}, err
	}

	return stats, nil
}

// Financial returns the funding summary. Counts here are estimates, which is
// fine for a headline figure.
func (s *StatsService) Financial(ctx context.Context) (FinancialStats, error) {
	var stats FinancialStats
	var err error

	if stats.TotalRevenue, err = s.fundings.TotalAmount(ctx); err != nil {
		return FinancialStats{}, err
	}
	if stats.Users, err = s.users.EstimatedCount(ctx); err != nil {
		return FinancialStats{}, err
	}
	if stats.DonationRequests, err = s.donations.EstimatedCount(ctx); err != nil {
		return FinancialStats{}, err
	}
	if stats.BlogCount, err = s.blogs.EstimatedCount(ctx); err != nil {
		return FinancialStats{}, err
	}

	return stats, nil
}
