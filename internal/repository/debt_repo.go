package repository

import (
	"context"

	"github.com/snc99/Pay-Wise-BE/internal/dto"
	"github.com/snc99/Pay-Wise-BE/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DebtRepository interface {
	// Tx variants run inside a caller-owned transaction — the find-or-create
	// open-cycle sequence and the cascade delete must be atomic.
	FindOpenCycleTx(tx *gorm.DB, userID uuid.UUID) (*model.DebtCycle, error)
	CreateCycleTx(tx *gorm.DB, c *model.DebtCycle) error
	CreateDebtTx(tx *gorm.DB, d *model.Debt) error
	IncrementCycleTotalTx(tx *gorm.DB, cycleID uuid.UUID, amount decimal.Decimal) error
	DeleteCycleTx(tx *gorm.DB, cycleID uuid.UUID) error

	FindOpenCycle(ctx context.Context, userID uuid.UUID) (*model.DebtCycle, error)
	FindCycleByID(ctx context.Context, id uuid.UUID) (*model.DebtCycle, error)
	ListCycles(ctx context.Context, filter dto.ListFilter, limit int) ([]model.DebtCycle, int64, error)
	ListOpenCycles(ctx context.Context, search string, limit int) ([]model.DebtCycle, error)
	// OutstandingByUser returns each customer's open-cycle balance.
	OutstandingByUser(ctx context.Context) (map[uuid.UUID]decimal.Decimal, error)

	// Transaction runs fn atomically; the passed handle feeds the Tx variants.
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type debtRepo struct{ db *gorm.DB }

func NewDebtRepository(db *gorm.DB) DebtRepository { return &debtRepo{db: db} }

func (r *debtRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *debtRepo) FindOpenCycleTx(tx *gorm.DB, userID uuid.UUID) (*model.DebtCycle, error) {
	var c model.DebtCycle
	err := tx.Where("user_id = ? AND is_paid = false", userID).First(&c).Error
	return &c, err
}

func (r *debtRepo) CreateCycleTx(tx *gorm.DB, c *model.DebtCycle) error {
	return tx.Create(c).Error
}

func (r *debtRepo) CreateDebtTx(tx *gorm.DB, d *model.Debt) error {
	return tx.Create(d).Error
}

func (r *debtRepo) IncrementCycleTotalTx(tx *gorm.DB, cycleID uuid.UUID, amount decimal.Decimal) error {
	return tx.Model(&model.DebtCycle{}).Where("id = ?", cycleID).
		Update("total", gorm.Expr("total + ?", amount)).Error
}

// DeleteCycleTx removes the cycle with its line items and payments.
func (r *debtRepo) DeleteCycleTx(tx *gorm.DB, cycleID uuid.UUID) error {
	if err := tx.Where("cycle_id = ?", cycleID).Delete(&model.Payment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("cycle_id = ?", cycleID).Delete(&model.Debt{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.DebtCycle{}, cycleID).Error
}

func (r *debtRepo) FindOpenCycle(ctx context.Context, userID uuid.UUID) (*model.DebtCycle, error) {
	return r.FindOpenCycleTx(r.db.WithContext(ctx), userID)
}

func (r *debtRepo) FindCycleByID(ctx context.Context, id uuid.UUID) (*model.DebtCycle, error) {
	var c model.DebtCycle
	err := r.db.WithContext(ctx).Preload("User").First(&c, id).Error
	return &c, err
}

func (r *debtRepo) ListCycles(ctx context.Context, filter dto.ListFilter, limit int) ([]model.DebtCycle, int64, error) {
	var cycles []model.DebtCycle
	var total int64

	q := r.db.WithContext(ctx).Model(&model.DebtCycle{})
	if filter.Search != "" {
		q = q.Joins("JOIN users ON users.id = debt_cycles.user_id").
			Where("users.name ILIKE ?", "%"+filter.Search+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * limit
	err := q.Preload("User").
		Order("debt_cycles.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&cycles).Error
	return cycles, total, err
}

func (r *debtRepo) ListOpenCycles(ctx context.Context, search string, limit int) ([]model.DebtCycle, error) {
	var cycles []model.DebtCycle
	q := r.db.WithContext(ctx).Model(&model.DebtCycle{}).Where("is_paid = false")
	if search != "" {
		q = q.Joins("JOIN users ON users.id = debt_cycles.user_id").
			Where("users.name ILIKE ?", "%"+search+"%")
	}
	err := q.Preload("User").
		Order("debt_cycles.created_at ASC").
		Limit(limit).
		Find(&cycles).Error
	return cycles, err
}

func (r *debtRepo) OutstandingByUser(ctx context.Context) (map[uuid.UUID]decimal.Decimal, error) {
	rows := []struct {
		UserID uuid.UUID
		Total  decimal.Decimal
	}{}
	err := r.db.WithContext(ctx).Model(&model.DebtCycle{}).
		Select("user_id, COALESCE(SUM(total), 0) AS total").
		Where("is_paid = false").
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]decimal.Decimal, len(rows))
	for _, row := range rows {
		out[row.UserID] = row.Total
	}
	return out, nil
}
