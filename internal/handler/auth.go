package handler

import (
	"net/http"
	"strings"

	"github.com/snc99/Pay-Wise-BE/internal/dto"
	"github.com/snc99/Pay-Wise-BE/internal/middleware"
	"github.com/snc99/Pay-Wise-BE/internal/response"
	"github.com/snc99/Pay-Wise-BE/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc    service.AuthService
	tokens service.TokenService
}

func NewAuthHandler(svc service.AuthService, tokens service.TokenService) *AuthHandler {
	return &AuthHandler{svc: svc, tokens: tokens}
}

// Login godoc
// @Summary Login admin
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Kredensial"
// @Success 200 {object} response.Body
// @Failure 401 {object} response.Body
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	maxAge := int(h.tokens.Lifetime().Seconds())
	c.SetCookie(middleware.TokenCookie, result.Token, maxAge, "/", "", false, true)
	response.OK(c, http.StatusOK, "Login berhasil.", result)
}

func (h *AuthHandler) Profile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	profile, err := h.svc.Profile(c.Request.Context(), claims.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Berhasil mengambil data profil.", profile)
}

// Logout revokes whatever token the request carries; it succeeds even when
// the token is already expired, revoked, or malformed.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if strings.TrimSpace(token) == "" {
		token, _ = c.Cookie(middleware.TokenCookie)
	}
	h.svc.Logout(c.Request.Context(), token)
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", false, true)
	response.OK(c, http.StatusOK, "Logout berhasil.", nil)
}
