package service

import (
	"context"
	"time"

	"github.com/snc99/Pay-Wise-BE/internal/dto"
	"github.com/snc99/Pay-Wise-BE/internal/repository"

	"github.com/shopspring/decimal"
)

type DashboardService interface {
	Cards(ctx context.Context) (*dto.DashboardCards, error)
	// Comparison sums debts and payments inside an optional date window.
	Comparison(ctx context.Context, from, to *time.Time) (*dto.DashboardComparison, error)
	// DailyTrend returns per-day payment totals with zero-filled gaps so the
	// chart range is contiguous.
	DailyTrend(ctx context.Context, rng dto.TrendRange) (*dto.DailyTrend, error)
}

type dashboardService struct {
	repo repository.DashboardRepository
}

func NewDashboardService(repo repository.DashboardRepository) DashboardService {
	return &dashboardService{repo: repo}
}

func (s *dashboardService) Cards(ctx context.Context) (*dto.DashboardCards, error) {
	users, err := s.repo.CountCustomers(ctx)
	if err != nil {
		return nil, err
	}
	paidUsers, err := s.repo.CountPaidCustomers(ctx)
	if err != nil {
		return nil, err
	}
	debts, err := s.repo.SumDebts(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.SumPayments(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardCards{
		TotalUsers:     users,
		TotalDebts:     debts,
		TotalPayments:  payments,
		TotalPaidUsers: paidUsers,
	}, nil
}

func (s *dashboardService) Comparison(ctx context.Context, from, to *time.Time) (*dto.DashboardComparison, error) {
	debts, err := s.repo.SumDebts(ctx, from, to)
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.SumPayments(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardComparison{TotalDebts: debts, TotalPayments: payments}, nil
}

func (s *dashboardService) DailyTrend(ctx context.Context, rng dto.TrendRange) (*dto.DailyTrend, error) {
	from := startOfDay(rng.From)
	to := startOfDay(rng.To)
	totals, err := s.repo.DailyPaymentTotals(ctx, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]decimal.Decimal, len(totals))
	for _, t := range totals {
		byDay[t.Day] = t.Total
	}

	trend := &dto.DailyTrend{
		Labels: []string{},
		Data:   []decimal.Decimal{},
	}
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		label := day.Format(dayDateFormat)
		total, ok := byDay[label]
		if !ok {
			total = decimal.Zero
		}
		trend.Labels = append(trend.Labels, label)
		trend.Data = append(trend.Data, total)
	}
	return trend, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
