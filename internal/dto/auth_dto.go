package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=1"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// AdminResponse is the public profile — never carries the password hash.
type AdminResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// LoginResult carries the issued token alongside the profile. The handler
// additionally sets the token as an httpOnly cookie.
type LoginResult struct {
	Token string        `json:"token"`
	User  AdminResponse `json:"user"`
}
