package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type DashboardCards struct {
	TotalUsers     int64           `json:"totalUsers"`
	TotalDebts     decimal.Decimal `json:"totalDebts"`
	TotalPayments  decimal.Decimal `json:"totalPayments"`
	TotalPaidUsers int64           `json:"totalPaidUsers"`
}

type DashboardComparison struct {
	TotalDebts    decimal.Decimal `json:"totalDebts"`
	TotalPayments decimal.Decimal `json:"totalPayments"`
}

// TrendRange selects the window for the daily payment trend.
type TrendRange struct {
	From time.Time
	To   time.Time
}

// DailyTrend is chart-ready: Labels[i] is the ISO day for Data[i], with
// zero-filled gaps so the range is contiguous.
type DailyTrend struct {
	Labels []string          `json:"labels"`
	Data   []decimal.Decimal `json:"data"`
}
