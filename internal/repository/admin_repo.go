package repository

import (
	"context"

	"github.com/snc99/Pay-Wise-BE/internal/dto"
	"github.com/snc99/Pay-Wise-BE/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminRepository defines the data access contract for staff accounts.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
type AdminRepository interface {
	Create(ctx context.Context, a *model.Admin) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Admin, error)
	FindByUsername(ctx context.Context, username string) (*model.Admin, error)
	// UsernameTaken / EmailTaken check uniqueness excluding one row, so an
	// admin can be updated without colliding with itself.
	UsernameTaken(ctx context.Context, username string, exclude uuid.UUID) (bool, error)
	EmailTaken(ctx context.Context, email string, exclude uuid.UUID) (bool, error)
	List(ctx context.Context, filter dto.ListFilter, limit int) ([]model.Admin, int64, error)
	Update(ctx context.Context, a *model.Admin) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type adminRepo struct{ db *gorm.DB }

func NewAdminRepository(db *gorm.DB) AdminRepository { return &adminRepo{db: db} }

func (r *adminRepo) Create(ctx context.Context, a *model.Admin) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *adminRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Admin, error) {
	var a model.Admin
	err := r.db.WithContext(ctx).First(&a, id).Error
	return &a, err
}

func (r *adminRepo) FindByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var a model.Admin
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&a).Error
	return &a, err
}

func (r *adminRepo) UsernameTaken(ctx context.Context, username string, exclude uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Admin{}).
		Where("username = ? AND id <> ?", username, exclude).
		Count(&count).Error
	return count > 0, err
}

func (r *adminRepo) EmailTaken(ctx context.Context, email string, exclude uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Admin{}).
		Where("LOWER(email) = LOWER(?) AND id <> ?", email, exclude).
		Count(&count).Error
	return count > 0, err
}

func (r *adminRepo) List(ctx context.Context, filter dto.ListFilter, limit int) ([]model.Admin, int64, error) {
	var admins []model.Admin
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Admin{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("name ILIKE ? OR email ILIKE ? OR username ILIKE ?", like, like, like)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * limit
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&admins).Error
	return admins, total, err
}

func (r *adminRepo) Update(ctx context.Context, a *model.Admin) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *adminRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Admin{}, id).Error
}
