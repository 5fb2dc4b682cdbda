package dto

import "github.com/shopspring/decimal"

type CreatePaymentRequest struct {
	UserID string          `json:"userId" validate:"required,min=1"`
	Amount decimal.Decimal `json:"amount" validate:"required,gt=0"`
	// PaidAt accepts "2006-01-02" or RFC3339 and must not lie in the future.
	PaidAt string `json:"paidAt" validate:"required,min=1"`
}

type CreatePaymentResponse struct {
	ID       string          `json:"id"`
	CycleID  string          `json:"cycleId"`
	UserName string          `json:"userName"`
	Amount   decimal.Decimal `json:"amount"`
	PaidAt   string          `json:"paidAt"`
}

// PaymentListItem carries the derived balances recomputed on every read:
// RemainingCalculated is the running balance within the payment's cycle
// after this payment; TotalRemaining is the customer's outstanding balance
// across all unpaid cycles. Neither is stored.
type PaymentListItem struct {
	ID                  string          `json:"id"`
	UserName            string          `json:"userName"`
	Amount              decimal.Decimal `json:"amount"`
	PaidAt              string          `json:"paidAt"`
	RemainingCalculated decimal.Decimal `json:"remainingCalculated"`
	TotalRemaining      decimal.Decimal `json:"totalRemaining"`
}

type DeletedPaymentItem struct {
	ID        string          `json:"id"`
	UserName  string          `json:"userName"`
	Amount    decimal.Decimal `json:"amount"`
	TotalDebt decimal.Decimal `json:"totalDebt"`
	PaidAt    string          `json:"paidAt"`
	DeletedAt string          `json:"deletedAt"`
}
