package services

import (
	"context"
	"sort"
	"time"

	"github.com/qonnected/qonnected-backend/internal/models"
	"github.com/qonnected/qonnected-backend/internal/repositories"
)

var _ DashboardService = (*DashboardServiceImpl)(nil)

type DashboardServiceImpl struct {
	paymentRepo repositories.PaymentRepository
	userRepo    repositories.UserRepository
	now         func() time.Time
}

// NewDashboardService creates a new DashboardService implementation
func NewDashboardService(paymentRepo repositories.PaymentRepository, userRepo repositories.UserRepository) *DashboardServiceImpl {
	return &DashboardServiceImpl{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

// GetStats recomputes every dashboard metric from the full payment and user
// collections. There is no caching or pre-aggregation; each request is a
// fresh scan.
func (s *DashboardServiceImpl) GetStats(ctx context.Context, timeframe string) (*models.DashboardStats, error) {
	if timeframe == "" {
		timeframe = "month"
	}
	var window time.Duration
	switch timeframe {
	case "week":
		window = 7 * 24 * time.Hour
	case "month":
		window = 30 * 24 * time.Hour
	case "year":
		window = 365 * 24 * time.Hour
	default:
		return nil, ErrInvalidTimeframe
	}

	payments, err := s.paymentRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	stats := &models.DashboardStats{
		Timeframe:  timeframe,
		TotalUsers: totalUsers,
	}

	for _, p := range payments {
		stats.TotalPayments++
		switch p.Status {
		case models.PaymentStatusPending:
			stats.PendingPayments++
		case models.PaymentStatusApproved:
			stats.ApprovedPayments++
			stats.TotalRevenue += p.Amount
		case models.PaymentStatusRejected:
			stats.RejectedPayments++
		}
	}

	decided := stats.ApprovedPayments + stats.RejectedPayments
	if decided > 0 {
		stats.ApprovalRate = float64(stats.ApprovedPayments) / float64(decided) * 100
	}
	if stats.TotalPayments > 0 {
		stats.ConversionRate = float64(stats.ApprovedPayments) / float64(stats.TotalPayments) * 100
	}

	stats.DailyRevenue = dailySeries(payments, now, 30)
	stats.WeeklyComparison = weeklySeries(payments, now, 7)
	stats.MonthlyTrend = monthlySeries(payments, now, 12)

	curRev, curCount := windowTotals(payments, now.Add(-window), now)
	prevRev, prevCount := windowTotals(payments, now.Add(-2*window), now.Add(-window))
	stats.RevenueGrowth = GrowthRate(float64(curRev), float64(prevRev))
	stats.PaymentGrowth = GrowthRate(float64(curCount), float64(prevCount))

	curUsers, err := s.userRepo.CountCreatedBetween(ctx, now.Add(-window), now)
	if err != nil {
		return nil, err
	}
	prevUsers, err := s.userRepo.CountCreatedBetween(ctx, now.Add(-2*window), now.Add(-window))
	if err != nil {
		return nil, err
	}
	stats.UserGrowth = GrowthRate(float64(curUsers), float64(prevUsers))

	stats.TopSpenders = topSpenders(payments, 10)
	return stats, nil
}

// GrowthRate returns the percentage change between two adjacent windows.
// A zero previous window reports +100% when the current window is nonzero
// and 0% when both are zero. Not a statistically meaningful rate, but the
// documented convention.
func GrowthRate(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}

// windowTotals sums approved revenue and counts submissions in [start, end)
func windowTotals(payments []*models.Payment, start, end time.Time) (int64, int64) {
	var revenue, count int64
	for _, p := range payments {
		if p.CreatedAt.Before(start) || !p.CreatedAt.Before(end) {
			continue
		}
		count++
		if p.Status == models.PaymentStatusApproved {
			revenue += p.Amount
		}
	}
	return revenue, count
}

// dailySeries buckets approved revenue per day for the trailing n days,
// oldest bucket first.
func dailySeries(payments []*models.Payment, now time.Time, n int) []models.RevenuePoint {
	points := make([]models.RevenuePoint, 0, n)
	for i := n - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		end := start.AddDate(0, 0, 1)
		revenue, count := windowTotals(payments, start, end)
		points = append(points, models.RevenuePoint{
			Label:    start.Format("2006-01-02"),
			Revenue:  revenue,
			Payments: count,
		})
	}
	return points
}

// weeklySeries buckets approved revenue per 7-day window for the trailing
// n weeks, oldest bucket first. Windows are anchored on "now", not calendar
// weeks, matching the comparison view in the admin UI.
func weeklySeries(payments []*models.Payment, now time.Time, n int) []models.RevenuePoint {
	points := make([]models.RevenuePoint, 0, n)
	for i := n - 1; i >= 0; i-- {
		end := now.AddDate(0, 0, -7*i)
		start := end.AddDate(0, 0, -7)
		revenue, count := windowTotals(payments, start, end)
		points = append(points, models.RevenuePoint{
			Label:    start.Format("2006-01-02"),
			Revenue:  revenue,
			Payments: count,
		})
	}
	return points
}

// monthlySeries buckets approved revenue per calendar month for the trailing
// n months, oldest bucket first.
func monthlySeries(payments []*models.Payment, now time.Time, n int) []models.RevenuePoint {
	points := make([]models.RevenuePoint, 0, n)
	for i := n - 1; i >= 0; i-- {
		anchor := now.AddDate(0, -i, 0)
		start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		end := start.AddDate(0, 1, 0)
		revenue, count := windowTotals(payments, start, end)
		points = append(points, models.RevenuePoint{
			Label:    start.Format("2006-01"),
			Revenue:  revenue,
			Payments: count,
		})
	}
	return points
}

// topSpenders groups approved payments by user and returns the top n by
// total spend, descending.
func topSpenders(payments []*models.Payment, n int) []models.SpenderTotal {
	byUser := make(map[string]*models.SpenderTotal)
	for _, p := range payments {
		if p.Status != models.PaymentStatusApproved {
			continue
		}
		id := p.UserID.Hex()
		entry, ok := byUser[id]
		if !ok {
			entry = &models.SpenderTotal{
				UserID:    id,
				UserName:  p.UserName,
				UserEmail: p.UserEmail,
			}
			byUser[id] = entry
		}
		entry.TotalSpent += p.Amount
		entry.Payments++
	}

	ranked := make([]models.SpenderTotal, 0, len(byUser))
	for _, entry := range byUser {
		ranked = append(ranked, *entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalSpent != ranked[j].TotalSpent {
			return ranked[i].TotalSpent > ranked[j].TotalSpent
		}
		return ranked[i].UserID < ranked[j].UserID
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
