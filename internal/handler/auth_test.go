package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/snc99/Pay-Wise-BE/internal/apperr"
	"github.com/snc99/Pay-Wise-BE/internal/config"
	"github.com/snc99/Pay-Wise-BE/internal/dto"
	"github.com/snc99/Pay-Wise-BE/internal/middleware"
	"github.com/snc99/Pay-Wise-BE/internal/response"
	"github.com/snc99/Pay-Wise-BE/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubAuthSvc struct {
	loggedOut []string
}

func (s *stubAuthSvc) Login(_ context.Context, req dto.LoginRequest) (*dto.LoginResult, error) {
	if req.Username == "admin1" && req.Password == "rahasia123" {
		return &dto.LoginResult{
			Token: "issued-token",
			User:  dto.AdminResponse{ID: "id-1", Username: "admin1", Role: "ADMIN"},
		}, nil
	}
	return nil, apperr.New(apperr.Unauthorized, "Username atau password salah.")
}

func (s *stubAuthSvc) Profile(_ context.Context, adminID string) (*dto.AdminResponse, error) {
	return &dto.AdminResponse{ID: adminID, Username: "admin1"}, nil
}

func (s *stubAuthSvc) Logout(_ context.Context, token string) {
	s.loggedOut = append(s.loggedOut, token)
}

func newAuthTestRouter(svc *stubAuthSvc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	tokens := service.NewTokenService(&config.Config{JWTSecret: "secret", JWTExpirationMinutes: 60})
	h := NewAuthHandler(svc, tokens)
	r := gin.New()
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/logout", h.Logout)
	return r
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginEndpointSetsCookie(t *testing.T) {
	r := newAuthTestRouter(&stubAuthSvc{})

	w := postJSON(r, "/api/auth/login", gin.H{"username": "admin1", "password": "rahasia123"})
	assert.Equal(t, http.StatusOK, w.Code)

	var body response.Body
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Login berhasil.", body.Message)

	cookie := w.Result().Cookies()
	assert.Len(t, cookie, 1)
	assert.Equal(t, middleware.TokenCookie, cookie[0].Name)
	assert.Equal(t, "issued-token", cookie[0].Value)
	assert.True(t, cookie[0].HttpOnly)
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	r := newAuthTestRouter(&stubAuthSvc{})

	w := postJSON(r, "/api/auth/login", gin.H{"username": "admin1", "password": "salah"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body response.Body
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Username atau password salah.", body.Message)
}

func TestLoginEndpointValidation(t *testing.T) {
	r := newAuthTestRouter(&stubAuthSvc{})

	w := postJSON(r, "/api/auth/login", gin.H{"username": "admin1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body response.Body
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Validasi gagal", body.Message)
	assert.NotEmpty(t, body.Errors["password"])
}

func TestLogoutEndpointClearsCookie(t *testing.T) {
	svc := &stubAuthSvc{}
	r := newAuthTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"some-token"}, svc.loggedOut)

	cookie := w.Result().Cookies()
	assert.Len(t, cookie, 1)
	assert.Equal(t, middleware.TokenCookie, cookie[0].Name)
	assert.Empty(t, cookie[0].Value)
}
