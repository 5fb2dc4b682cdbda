package dto

type CreateCustomerRequest struct {
	Name    string `json:"name"    validate:"required,min=3,personname"`
	Phone   string `json:"phone"   validate:"required,idphone"`
	Address string `json:"address" validate:"required,min=3"`
}

// UpdateCustomerRequest patches only the fields the caller sent.
type UpdateCustomerRequest struct {
	Name    *string `json:"name"    validate:"omitempty,min=3,personname"`
	Phone   *string `json:"phone"   validate:"omitempty,idphone"`
	Address *string `json:"address" validate:"omitempty,min=3"`
}

type CustomerResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// CustomerOption is the compact shape for search dropdowns.
type CustomerOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
