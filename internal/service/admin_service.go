package service

import (
	"context"
	"fmt"
	"time"

	"github.com/snc99/Pay-Wise-BE/internal/apperr"
	"github.com/snc99/Pay-Wise-BE/internal/dto"
	"github.com/snc99/Pay-Wise-BE/internal/model"
	"github.com/snc99/Pay-Wise-BE/internal/repository"
	"github.com/snc99/Pay-Wise-BE/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const adminPageSize = 7

type AdminService interface {
	List(ctx context.Context, filter dto.ListFilter) ([]dto.AdminListItem, int64, error)
	Create(ctx context.Context, req dto.CreateAdminRequest) (*dto.AdminResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateAdminRequest) (*dto.AdminResponse, error)
	// Delete refuses when id is the caller's own account.
	Delete(ctx context.Context, id, actorID string) error
}

type adminService struct {
	repo     repository.AdminRepository
	sessions session.Store
}

func NewAdminService(repo repository.AdminRepository, sessions session.Store) AdminService {
	return &adminService{repo: repo, sessions: sessions}
}

func (s *adminService) List(ctx context.Context, filter dto.ListFilter) ([]dto.AdminListItem, int64, error) {
	admins, total, err := s.repo.List(ctx, filter, adminPageSize)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.AdminListItem, 0, len(admins))
	for _, a := range admins {
		items = append(items, dto.AdminListItem{
			ID:        a.ID.String(),
			Username:  a.Username,
			Name:      a.Name,
			Email:     a.Email,
			Role:      string(a.Role),
			CreatedAt: a.CreatedAt.Format(time.RFC3339),
		})
	}
	return items, total, nil
}

func (s *adminService) Create(ctx context.Context, req dto.CreateAdminRequest) (*dto.AdminResponse, error) {
	if err := s.checkUniqueness(ctx, req.Username, req.Email, uuid.Nil); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &model.Admin{
		Username:     req.Username,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         model.Role(req.Role),
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return nil, err
	}
	resp := adminResponse(admin)
	return &resp, nil
}

func (s *adminService) Update(ctx context.Context, id string, req dto.UpdateAdminRequest) (*dto.AdminResponse, error) {
	adminID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.New(apperr.NotFound, "Admin tidak ditemukan")
	}
	admin, err := s.repo.FindByID(ctx, adminID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "Admin tidak ditemukan")
		}
		return nil, err
	}

	username, email := admin.Username, admin.Email
	if req.Username != nil {
		username = *req.Username
	}
	if req.Email != nil {
		email = *req.Email
	}
	if err := s.checkUniqueness(ctx, username, email, admin.ID); err != nil {
		return nil, err
	}

	admin.Username = username
	admin.Email = email
	if req.Name != nil {
		admin.Name = *req.Name
	}
	if req.Role != nil {
		admin.Role = model.Role(*req.Role)
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		admin.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, admin); err != nil {
		return nil, err
	}

	// Changing the password invalidates the admin's cached session so the
	// old token stops working on the next request.
	if req.Password != nil {
		if err := s.sessions.DeleteActiveToken(ctx, admin.ID.String()); err != nil {
			log.Warn().Err(err).Str("admin_id", admin.ID.String()).Msg("failed to clear active token")
		}
	}

	resp := adminResponse(admin)
	return &resp, nil
}

func (s *adminService) Delete(ctx context.Context, id, actorID string) error {
	adminID, err := uuid.Parse(id)
	if err != nil {
		return apperr.New(apperr.NotFound, "Admin tidak ditemukan")
	}
	if id == actorID {
		return apperr.New(apperr.State, "Anda tidak dapat menghapus akun Anda sendiri")
	}
	if _, err := s.repo.FindByID(ctx, adminID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.New(apperr.NotFound, "Admin tidak ditemukan")
		}
		return err
	}
	if err := s.repo.Delete(ctx, adminID); err != nil {
		return err
	}
	if err := s.sessions.DeleteActiveToken(ctx, id); err != nil {
		log.Warn().Err(err).Str("admin_id", id).Msg("failed to clear active token")
	}
	return nil
}

func (s *adminService) checkUniqueness(ctx context.Context, username, email string, exclude uuid.UUID) error {
	taken, err := s.repo.UsernameTaken(ctx, username, exclude)
	if err != nil {
		return err
	}
	if taken {
		msg := fmt.Sprintf("Username %s sudah digunakan", username)
		return apperr.WithField(apperr.Conflict, msg, "username", msg)
	}
	taken, err = s.repo.EmailTaken(ctx, email, exclude)
	if err != nil {
		return err
	}
	if taken {
		msg := fmt.Sprintf("Email %s sudah digunakan", email)
		return apperr.WithField(apperr.Conflict, msg, "email", msg)
	}
	return nil
}
