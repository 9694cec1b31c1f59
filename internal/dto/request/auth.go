package request

type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,min=3,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type BecomePartnerRequest struct {
	BusinessName string  `json:"business_name" validate:"required,min=3,max=150"`
	BusinessType string  `json:"business_type" validate:"required,oneof=accommodation tours events restaurant vehicles products packages"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}
