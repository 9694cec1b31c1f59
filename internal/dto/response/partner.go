package response

import (
	"time"

	"tourism-booking/internal/data/entity"
)

type PartnerResponse struct {
	ID           string              `json:"id"`
	UserID       string              `json:"user_id"`
	BusinessName string              `json:"business_name"`
	BusinessType entity.BusinessType `json:"business_type"`
	Description  *string             `json:"description,omitempty"`
	IsVerified   bool                `json:"is_verified"`
	IsActive     bool                `json:"is_active"`
	CreatedAt    time.Time           `json:"created_at"`
}

func PartnerToResponse(p *entity.Partner) PartnerResponse {
	return PartnerResponse{
		ID:           p.ID.String(),
		UserID:       p.UserID.String(),
		BusinessName: p.BusinessName,
		BusinessType: p.BusinessType,
		Description:  p.Description,
		IsVerified:   p.IsVerified,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
	}
}
