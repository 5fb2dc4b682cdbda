package service

import (
	"context"
	"errors"
	"time"

	"github.com/snc99/Pay-Wise-BE/internal/apperr"
	"github.com/snc99/Pay-Wise-BE/internal/dto"
	"github.com/snc99/Pay-Wise-BE/internal/model"
	"github.com/snc99/Pay-Wise-BE/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	debtPageSize  = 7
	openCycleMax  = 50
	dayDateFormat = "2006-01-02"
)

type DebtService interface {
	// CreateDebt appends a line item to the customer's open cycle, creating
	// the cycle when none exists.
	CreateDebt(ctx context.Context, req dto.CreateDebtRequest) (*dto.CreateDebtResponse, error)
	ListCycles(ctx context.Context, filter dto.ListFilter) ([]dto.DebtCycleItem, int64, error)
	ListOpenCycles(ctx context.Context, search string, limit int) ([]dto.OpenCycleItem, error)
	// ListPublic is the unauthenticated open-cycle listing.
	ListPublic(ctx context.Context) ([]dto.OpenCycleItem, error)
	// DeleteCycle removes a settled cycle together with its line items and
	// payments, returning the customer's name for the confirmation message.
	DeleteCycle(ctx context.Context, id string) (string, error)
}

type debtService struct {
	repo      repository.DebtRepository
	customers repository.CustomerRepository
}

func NewDebtService(repo repository.DebtRepository, customers repository.CustomerRepository) DebtService {
	return &debtService{repo: repo, customers: customers}
}

func (s *debtService) CreateDebt(ctx context.Context, req dto.CreateDebtRequest) (*dto.CreateDebtResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, apperr.WithField(apperr.Validation, "Validasi gagal", "userId", "User tidak valid.")
	}
	date, err := parseEventDate(req.Date, "date")
	if err != nil {
		return nil, err
	}
	customer, err := s.customers.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.State, "User yang dipilih tidak ditemukan.")
		}
		return nil, err
	}

	var cycle *model.DebtCycle
	// Two requests can race to open a customer's cycle; the partial unique
	// index rejects the loser and postgres aborts its transaction, so the
	// whole transaction is retried once from the top.
	for attempt := 0; ; attempt++ {
		err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
			c, err := s.repo.FindOpenCycleTx(tx, userID)
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				c = &model.DebtCycle{UserID: userID}
				if err := s.repo.CreateCycleTx(tx, c); err != nil {
					return err
				}
			}
			debt := &model.Debt{
				CycleID: c.ID,
				Amount:  req.Amount,
				Date:    date,
				Note:    req.Note,
			}
			if err := s.repo.CreateDebtTx(tx, debt); err != nil {
				return err
			}
			if err := s.repo.IncrementCycleTotalTx(tx, c.ID, req.Amount); err != nil {
				return err
			}
			// Re-read for the authoritative running total.
			c, err = s.repo.FindOpenCycleTx(tx, userID)
			if err != nil {
				return err
			}
			cycle = c
			return nil
		})
		if errors.Is(err, gorm.ErrDuplicatedKey) && attempt == 0 {
			continue
		}
		break
	}
	if err != nil {
		return nil, err
	}

	return &dto.CreateDebtResponse{
		CycleID:  cycle.ID.String(),
		UserID:   userID.String(),
		UserName: customer.Name,
		Amount:   req.Amount,
		Date:     date.Format(dayDateFormat),
		Total:    cycle.Total,
	}, nil
}

func (s *debtService) ListCycles(ctx context.Context, filter dto.ListFilter) ([]dto.DebtCycleItem, int64, error) {
	cycles, total, err := s.repo.ListCycles(ctx, filter, debtPageSize)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.DebtCycleItem, 0, len(cycles))
	for _, c := range cycles {
		item := dto.DebtCycleItem{
			ID:        c.ID.String(),
			UserID:    c.UserID.String(),
			UserName:  c.User.Name,
			Total:     c.Total,
			IsPaid:    c.IsPaid,
			CreatedAt: c.CreatedAt.Format(time.RFC3339),
		}
		if c.PaidAt != nil {
			paidAt := c.PaidAt.Format(time.RFC3339)
			item.PaidAt = &paidAt
		}
		items = append(items, item)
	}
	return items, total, nil
}

func (s *debtService) ListOpenCycles(ctx context.Context, search string, limit int) ([]dto.OpenCycleItem, error) {
	if limit <= 0 || limit > openCycleMax {
		limit = openCycleMax
	}
	cycles, err := s.repo.ListOpenCycles(ctx, search, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OpenCycleItem, 0, len(cycles))
	for _, c := range cycles {
		items = append(items, dto.OpenCycleItem{
			ID:       c.ID.String(),
			UserID:   c.UserID.String(),
			UserName: c.User.Name,
			Total:    c.Total,
		})
	}
	return items, nil
}

func (s *debtService) ListPublic(ctx context.Context) ([]dto.OpenCycleItem, error) {
	return s.ListOpenCycles(ctx, "", openCycleMax)
}

func (s *debtService) DeleteCycle(ctx context.Context, id string) (string, error) {
	cycleID, err := uuid.Parse(id)
	if err != nil {
		return "", apperr.New(apperr.NotFound, "Data utang tidak ditemukan.")
	}
	cycle, err := s.repo.FindCycleByID(ctx, cycleID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", apperr.New(apperr.NotFound, "Data utang tidak ditemukan.")
		}
		return "", err
	}
	if !cycle.IsPaid {
		return "", apperr.New(apperr.State, "Tidak bisa menghapus utang karena masih ada utang yang belum lunas.")
	}
	err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		return s.repo.DeleteCycleTx(tx, cycleID)
	})
	if err != nil {
		return "", err
	}
	return cycle.User.Name, nil
}
