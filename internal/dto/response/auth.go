package response

import (
	"time"

	"tourism-booking/internal/data/entity"
)

type AuthResponse struct {
	UserID      string          `json:"user_id"`
	AccessToken string          `json:"access_token"`
	Session     string          `json:"session"`
	ExpiresAt   time.Time       `json:"expires_at"`
	Email       string          `json:"email"`
	Name        string          `json:"name"`
	Role        entity.UserRole `json:"role"`
}

type UserResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Phone     *string         `json:"phone,omitempty"`
	Role      entity.UserRole `json:"role"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
}

type RoleSnapshotResponse struct {
	Primary    string   `json:"primary"`
	Roles      []string `json:"roles"`
	Master     bool     `json:"master"`
	IsAdmin    bool     `json:"is_admin"`
	IsPartner  bool     `json:"is_partner"`
	IsCustomer bool     `json:"is_customer"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}

func AuthToResponse(user *entity.User, session *entity.Session, accessToken string) AuthResponse {
	resp := AuthResponse{
		UserID:      user.ID.String(),
		AccessToken: accessToken,
		Email:       user.Email,
		Name:        user.Name,
		Role:        user.Role,
	}

	if session != nil {
		resp.Session = session.Token.String()
		resp.ExpiresAt = session.ExpiresAt
	}

	return resp
}
