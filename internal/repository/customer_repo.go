package repository

import (
	"context"

	"github.com/snc99/Pay-Wise-BE/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
	Search(ctx context.Context, query string, limit int) ([]model.Customer, error)
	Update(ctx context.Context, c *model.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	// HasUnpaidCycle backs the referential deletion guard.
	HasUnpaidCycle(ctx context.Context, id uuid.UUID) (bool, error)
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

func (r *customerRepo) Create(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *customerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *customerRepo) List(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) Search(ctx context.Context, query string, limit int) ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+query+"%").
		Order("name ASC").Limit(limit).
		Find(&customers).Error
	return customers, err
}

func (r *customerRepo) Update(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// Delete removes the customer together with their settled-cycle history.
// The unpaid-cycle guard lives in the service layer, so only settled cycles
// remain here; their payments and line items still reference the row and
// must go first or the user delete trips the foreign keys.
func (r *customerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cycleIDs := tx.Model(&model.DebtCycle{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("cycle_id IN (?)", cycleIDs).Delete(&model.Payment{}).Error; err != nil {
			return err
		}
		cycleIDs = tx.Model(&model.DebtCycle{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("cycle_id IN (?)", cycleIDs).Delete(&model.Debt{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.DebtCycle{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Customer{}, id).Error
	})
}

func (r *customerRepo) HasUnpaidCycle(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.DebtCycle{}).
		Where("user_id = ? AND is_paid = false", id).
		Count(&count).Error
	return count > 0, err
}
