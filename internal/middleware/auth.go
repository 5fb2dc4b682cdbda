package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/snc99/Pay-Wise-BE/internal/model"
	"github.com/snc99/Pay-Wise-BE/internal/response"
	"github.com/snc99/Pay-Wise-BE/internal/service"
	"github.com/snc99/Pay-Wise-BE/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	ClaimsKey = "claims"
	// TokenCookie is the fallback token transport for browser clients.
	TokenCookie = "pw_token"
)

// Authenticate validates the session token on every protected route:
// presence, blacklist, signature/expiry, single-session match, known role.
// Session-cache read failures are logged and skipped so a cache outage does
// not take the whole API down; the signature check still stands.
func Authenticate(tokens service.TokenService, sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			response.AbortErr(c, http.StatusUnauthorized, "Token tidak ditemukan")
			return
		}

		blacklisted, err := sessions.IsBlacklisted(c.Request.Context(), tokenStr)
		if err != nil {
			log.Warn().Err(err).Str("request_id", c.GetString(RequestIDKey)).Msg("blacklist lookup failed")
		} else if blacklisted {
			response.AbortErr(c, http.StatusUnauthorized, "Token sudah logout")
			return
		}

		claims, err := tokens.Verify(tokenStr)
		if err != nil {
			response.AbortErr(c, http.StatusUnauthorized, "Token tidak valid")
			return
		}

		active, err := sessions.ActiveToken(c.Request.Context(), claims.ID)
		switch {
		case errors.Is(err, session.ErrNoSession):
			response.AbortErr(c, http.StatusUnauthorized, "Token tidak aktif lagi. Silakan login ulang.")
			return
		case err != nil:
			log.Warn().Err(err).Str("request_id", c.GetString(RequestIDKey)).Msg("active token lookup failed")
		case strings.TrimSpace(active) != tokenStr:
			response.AbortErr(c, http.StatusUnauthorized, "Token tidak aktif lagi. Silakan login ulang.")
			return
		}

		if !claims.Role.Valid() {
			response.AbortErr(c, http.StatusForbidden, "Role tidak valid")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireRole rejects requests whose role is not in the allowed list.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		claims, ok := c.MustGet(ClaimsKey).(*service.Claims)
		if !ok || !allowed[claims.Role] {
			response.AbortErr(c, http.StatusForbidden, "Akses ditolak")
			return
		}
		c.Next()
	}
}

// GetClaims is a helper to retrieve typed claims from the Gin context.
func GetClaims(c *gin.Context) *service.Claims {
	claims, _ := c.MustGet(ClaimsKey).(*service.Claims)
	return claims
}

// extractToken prefers the Authorization header and falls back to the cookie.
func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}
