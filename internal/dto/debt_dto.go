package dto

import "github.com/shopspring/decimal"

type CreateDebtRequest struct {
	UserID string          `json:"userId" validate:"required,min=1"`
	Amount decimal.Decimal `json:"amount" validate:"required,gt=0"`
	// Date accepts "2006-01-02" or RFC3339 and must not lie in the future.
	Date string  `json:"date" validate:"required,min=1"`
	Note *string `json:"note" validate:"omitempty,max=255"`
}

// CreateDebtResponse reports the cycle the line item landed in and the
// cycle's new running total.
type CreateDebtResponse struct {
	CycleID  string          `json:"cycleId"`
	UserID   string          `json:"userId"`
	UserName string          `json:"userName"`
	Amount   decimal.Decimal `json:"amount"`
	Date     string          `json:"date"`
	Total    decimal.Decimal `json:"total"`
}

type DebtCycleItem struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	UserName  string          `json:"userName"`
	Total     decimal.Decimal `json:"total"`
	IsPaid    bool            `json:"isPaid"`
	PaidAt    *string         `json:"paidAt"`
	CreatedAt string          `json:"createdAt"`
}

// OpenCycleItem feeds the payment-entry dropdown and the public listing.
type OpenCycleItem struct {
	ID       string          `json:"id"`
	UserID   string          `json:"userId"`
	UserName string          `json:"userName"`
	Total    decimal.Decimal `json:"total"`
}
