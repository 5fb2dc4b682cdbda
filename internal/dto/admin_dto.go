package dto

type CreateAdminRequest struct {
	Username string `json:"username" validate:"required,min=3,usernamefmt"`
	Name     string `json:"name"     validate:"required,min=3,personname"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,nospace"`
	Role     string `json:"role"     validate:"required,oneof=ADMIN SUPERADMIN"`
}

// UpdateAdminRequest is an explicit patch: a nil field means "leave as is",
// a non-nil field means the caller intends to change it.
type UpdateAdminRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,usernamefmt"`
	Name     *string `json:"name"     validate:"omitempty,min=3,personname"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6,nospace"`
	Role     *string `json:"role"     validate:"omitempty,oneof=ADMIN SUPERADMIN"`
}

type AdminListItem struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

// ListFilter is the shared search+page query for paginated listings.
type ListFilter struct {
	Search string
	Page   int
}
