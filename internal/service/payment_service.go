package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/snc99/Pay-Wise-BE/internal/apperr"
	"github.com/snc99/Pay-Wise-BE/internal/dto"
	"github.com/snc99/Pay-Wise-BE/internal/model"
	"github.com/snc99/Pay-Wise-BE/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const paymentPageSize = 7

type PaymentService interface {
	// CreatePayment settles the customer's open cycle. The amount must match
	// the cycle total exactly; partial and overpayments are rejected.
	CreatePayment(ctx context.Context, req dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error)
	// DeletePayment soft-deletes a settlement, returning the customer's name
	// for the confirmation message.
	DeletePayment(ctx context.Context, id string) (string, error)
	ListPayments(ctx context.Context, filter dto.ListFilter) ([]dto.PaymentListItem, int64, error)
	ListDeleted(ctx context.Context) ([]dto.DeletedPaymentItem, error)
}

type paymentService struct {
	repo      repository.PaymentRepository
	debts     repository.DebtRepository
	customers repository.CustomerRepository
}

func NewPaymentService(repo repository.PaymentRepository, debts repository.DebtRepository, customers repository.CustomerRepository) PaymentService {
	return &paymentService{repo: repo, debts: debts, customers: customers}
}

func (s *paymentService) CreatePayment(ctx context.Context, req dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, apperr.WithField(apperr.Validation, "Validasi gagal", "userId", "User tidak valid.")
	}
	paidAt, err := parseEventDate(req.PaidAt, "paidAt")
	if err != nil {
		return nil, err
	}
	customer, err := s.customers.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "User yang dipilih tidak ditemukan.")
		}
		return nil, err
	}

	var payment *model.Payment
	err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		cycle, err := s.debts.FindOpenCycleTx(tx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.State, "User yang dipilih tidak memiliki pencatatan.")
			}
			return err
		}
		if !req.Amount.Equal(cycle.Total) {
			return apperr.New(apperr.State, "Nominal pembayaran harus sama dengan total utang.")
		}
		p := &model.Payment{
			CycleID: cycle.ID,
			Amount:  req.Amount,
			PaidAt:  paidAt,
		}
		if err := s.repo.CreateTx(tx, p); err != nil {
			return err
		}
		rows, err := s.repo.SettleCycleTx(tx, cycle.ID, paidAt)
		if err != nil {
			return err
		}
		// Zero rows means a concurrent request settled the cycle between our
		// read and the update; roll the whole thing back.
		if rows == 0 {
			return apperr.New(apperr.State, "Utang sudah lunas.")
		}
		payment = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.CreatePaymentResponse{
		ID:       payment.ID.String(),
		CycleID:  payment.CycleID.String(),
		UserName: customer.Name,
		Amount:   payment.Amount,
		PaidAt:   paidAt.Format(dayDateFormat),
	}, nil
}

func (s *paymentService) DeletePayment(ctx context.Context, id string) (string, error) {
	paymentID, err := uuid.Parse(id)
	if err != nil {
		return "", apperr.New(apperr.NotFound, "Pembayaran tidak ditemukan.")
	}
	payment, err := s.repo.FindByID(ctx, paymentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", apperr.New(apperr.NotFound, "Pembayaran tidak ditemukan.")
		}
		return "", err
	}
	if payment.DeletedAt != nil {
		return "", apperr.New(apperr.NotFound, "Pembayaran tidak ditemukan.")
	}
	if !payment.Cycle.IsPaid {
		return "", apperr.New(apperr.State, "Pembayaran tidak bisa dihapus karena utang belum lunas.")
	}
	if err := s.repo.SoftDelete(ctx, paymentID, time.Now()); err != nil {
		return "", err
	}
	return payment.Cycle.User.Name, nil
}

func (s *paymentService) ListPayments(ctx context.Context, filter dto.ListFilter) ([]dto.PaymentListItem, int64, error) {
	payments, err := s.repo.ListActive(ctx, filter.Search)
	if err != nil {
		return nil, 0, err
	}
	outstanding, err := s.debts.OutstandingByUser(ctx)
	if err != nil {
		return nil, 0, err
	}

	// Rows arrive ordered by cycle then paid_at, so the per-cycle running
	// balance is a single pass with a reset on cycle change.
	items := make([]dto.PaymentListItem, 0, len(payments))
	var currentCycle uuid.UUID
	var remaining decimal.Decimal
	for _, p := range payments {
		if p.CycleID != currentCycle {
			currentCycle = p.CycleID
			remaining = p.Cycle.Total
		}
		remaining = remaining.Sub(p.Amount)

		totalRemaining, ok := outstanding[p.Cycle.UserID]
		if !ok {
			totalRemaining = decimal.Zero
		}
		items = append(items, dto.PaymentListItem{
			ID:                  p.ID.String(),
			UserName:            p.Cycle.User.Name,
			Amount:              p.Amount,
			PaidAt:              p.PaidAt.Format(time.RFC3339),
			RemainingCalculated: remaining,
			TotalRemaining:      totalRemaining,
		})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].PaidAt > items[j].PaidAt })

	total := int64(len(items))
	page := filter.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * paymentPageSize
	if start > len(items) {
		start = len(items)
	}
	end := start + paymentPageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], total, nil
}

func (s *paymentService) ListDeleted(ctx context.Context) ([]dto.DeletedPaymentItem, error) {
	payments, err := s.repo.ListDeleted(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DeletedPaymentItem, 0, len(payments))
	for _, p := range payments {
		item := dto.DeletedPaymentItem{
			ID:        p.ID.String(),
			UserName:  p.Cycle.User.Name,
			Amount:    p.Amount,
			TotalDebt: p.Cycle.Total,
			PaidAt:    p.PaidAt.Format(time.RFC3339),
		}
		if p.DeletedAt != nil {
			item.DeletedAt = p.DeletedAt.Format(time.RFC3339)
		}
		items = append(items, item)
	}
	return items, nil
}
