package response

import (
	"time"

	"tourism-booking/internal/data/entity"
)

type PreferenceResponse struct {
	UserID        string          `json:"user_id"`
	PreferredType entity.ItemType `json:"preferred_type"`
	BudgetPerDay  float64         `json:"budget_per_day"`
	GroupSize     int             `json:"group_size"`
	Interests     []string        `json:"interests,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func PreferenceToResponse(p *entity.TravelPreference) PreferenceResponse {
	return PreferenceResponse{
		UserID:        p.UserID.String(),
		PreferredType: p.PreferredType,
		BudgetPerDay:  p.BudgetPerDay,
		GroupSize:     p.GroupSize,
		Interests:     p.Interests,
		UpdatedAt:     p.UpdatedAt,
	}
}
