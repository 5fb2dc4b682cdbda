package repository

import (
	"context"
	"time"

	"github.com/snc99/Pay-Wise-BE/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DayTotal is one point of the daily payment trend.
type DayTotal struct {
	Day   string
	Total decimal.Decimal
}

// DashboardRepository serves read-only aggregates for the dashboard.
type DashboardRepository interface {
	CountCustomers(ctx context.Context) (int64, error)
	// CountPaidCustomers counts customers with at least one settled cycle.
	CountPaidCustomers(ctx context.Context) (int64, error)
	SumDebts(ctx context.Context, from, to *time.Time) (decimal.Decimal, error)
	SumPayments(ctx context.Context, from, to *time.Time) (decimal.Decimal, error)
	DailyPaymentTotals(ctx context.Context, from, to time.Time) ([]DayTotal, error)
}

type dashboardRepo struct{ db *gorm.DB }

func NewDashboardRepository(db *gorm.DB) DashboardRepository { return &dashboardRepo{db: db} }

func (r *dashboardRepo) CountCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Customer{}).Count(&count).Error
	return count, err
}

func (r *dashboardRepo) CountPaidCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.DebtCycle{}).
		Distinct("user_id").
		Where("is_paid = true").
		Count(&count).Error
	return count, err
}

func (r *dashboardRepo) SumDebts(ctx context.Context, from, to *time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	q := r.db.WithContext(ctx).Model(&model.Debt{}).Select("SUM(amount)")
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date <= ?", *to)
	}
	if err := q.Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func (r *dashboardRepo) SumPayments(ctx context.Context, from, to *time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	q := r.db.WithContext(ctx).Model(&model.Payment{}).
		Select("SUM(amount)").
		Where("deleted_at IS NULL")
	if from != nil {
		q = q.Where("paid_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("paid_at <= ?", *to)
	}
	if err := q.Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func (r *dashboardRepo) DailyPaymentTotals(ctx context.Context, from, to time.Time) ([]DayTotal, error) {
	var rows []DayTotal
	err := r.db.WithContext(ctx).Raw(`
		SELECT to_char(date_trunc('day', paid_at)::date, 'YYYY-MM-DD') AS day,
		       SUM(amount) AS total
		FROM payments
		WHERE deleted_at IS NULL AND paid_at >= ? AND paid_at <= ?
		GROUP BY day
		ORDER BY day ASC`, from, to).Scan(&rows).Error
	return rows, err
}
