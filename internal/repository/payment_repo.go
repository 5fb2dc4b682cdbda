package repository

import (
	"context"
	"time"

	"github.com/snc99/Pay-Wise-BE/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	CreateTx(tx *gorm.DB, p *model.Payment) error
	// SettleCycleTx conditionally flips is_paid and reports the affected row
	// count; zero means another request settled the cycle first.
	SettleCycleTx(tx *gorm.DB, cycleID uuid.UUID, paidAt time.Time) (int64, error)

	FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error
	ListActive(ctx context.Context, search string) ([]model.Payment, error)
	ListDeleted(ctx context.Context) ([]model.Payment, error)
	// PurgeDeletedBefore hard-deletes soft-deleted rows past retention.
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// Transaction runs fn atomically; the passed handle feeds the Tx variants.
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type paymentRepo struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) PaymentRepository { return &paymentRepo{db: db} }

func (r *paymentRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *paymentRepo) CreateTx(tx *gorm.DB, p *model.Payment) error {
	return tx.Create(p).Error
}

func (r *paymentRepo) SettleCycleTx(tx *gorm.DB, cycleID uuid.UUID, paidAt time.Time) (int64, error) {
	res := tx.Model(&model.DebtCycle{}).
		Where("id = ? AND is_paid = false", cycleID).
		Updates(map[string]interface{}{"is_paid": true, "paid_at": paidAt})
	return res.RowsAffected, res.Error
}

func (r *paymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).Preload("Cycle.User").First(&p, id).Error
	return &p, err
}

func (r *paymentRepo) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", at).Error
}

func (r *paymentRepo) ListActive(ctx context.Context, search string) ([]model.Payment, error) {
	var payments []model.Payment
	q := r.db.WithContext(ctx).Model(&model.Payment{}).Where("payments.deleted_at IS NULL")
	if search != "" {
		q = q.Joins("JOIN debt_cycles ON debt_cycles.id = payments.cycle_id").
			Joins("JOIN users ON users.id = debt_cycles.user_id").
			Where("users.name ILIKE ?", "%"+search+"%")
	}
	err := q.Preload("Cycle.User").
		Order("payments.cycle_id ASC, payments.paid_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepo) ListDeleted(ctx context.Context) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NOT NULL").
		Preload("Cycle.User").
		Order("paid_at DESC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepo) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("deleted_at IS NOT NULL AND deleted_at <= ?", cutoff).
		Delete(&model.Payment{})
	return res.RowsAffected, res.Error
}
