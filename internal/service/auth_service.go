package service

import (
	"context"
	"strings"
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

// fallback blacklist TTL for tokens whose expiry cannot be decoded
const logoutFallbackTTL = 24 * time.Hour

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResult, error)
	Profile(ctx context.Context, adminID string) (*dto.AdminResponse, error)
	// Logout is idempotent: unknown, expired and malformed tokens all succeed.
	Logout(ctx context.Context, token string)
}

type authService struct {
	admins   repository.AdminRepository
	tokens   TokenService
	sessions session.Store
}

func NewAuthService(admins repository.AdminRepository, tokens TokenService, sessions session.Store) AuthService {
	return &authService{admins: admins, tokens: tokens, sessions: sessions}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResult, error) {
	admin, err := s.admins.FindByUsername(ctx, req.Username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.Unauthorized, "Username atau password salah.")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.New(apperr.Unauthorized, "Username atau password salah.")
	}

	token, err := s.tokens.Issue(admin)
	if err != nil {
		return nil, err
	}

	// Session cache is best effort: a cache outage must not block logins.
	if err := s.sessions.SetActiveToken(ctx, admin.ID.String(), token, s.tokens.Lifetime()); err != nil {
		log.Warn().Err(err).Str("admin_id", admin.ID.String()).Msg("failed to cache active token")
	}

	return &dto.LoginResult{
		Token: token,
		User:  adminResponse(admin),
	}, nil
}

func (s *authService) Profile(ctx context.Context, adminID string) (*dto.AdminResponse, error) {
	id, err := uuid.Parse(adminID)
	if err != nil {
		return nil, apperr.New(apperr.Unauthorized, "Token tidak valid")
	}
	admin, err := s.admins.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "User tidak ditemukan")
		}
		return nil, err
	}
	resp := adminResponse(admin)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) {
	token = strings.TrimSpace(token)
	if token == "" {
		return
	}

	ttl := logoutFallbackTTL
	var adminID string
	if claims, ok := s.tokens.DecodeUnsafe(token); ok {
		adminID = claims.ID
		if claims.ExpiresAt != nil {
			if remaining := time.Until(claims.ExpiresAt.Time); remaining > time.Second {
				ttl = remaining
			} else {
				ttl = time.Second
			}
		}
	}

	if err := s.sessions.Blacklist(ctx, token, ttl); err != nil {
		log.Warn().Err(err).Msg("failed to blacklist token")
	}
	if adminID != "" {
		if err := s.sessions.DeleteActiveToken(ctx, adminID); err != nil {
			log.Warn().Err(err).Str("admin_id", adminID).Msg("failed to clear active token")
		}
	}
}

func adminResponse(a *model.Admin) dto.AdminResponse {
	return dto.AdminResponse{
		ID:       a.ID.String(),
		Username: a.Username,
		Name:     a.Name,
		Email:    a.Email,
		Role:     string(a.Role),
	}
}
