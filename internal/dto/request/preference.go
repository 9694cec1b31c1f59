package request

type SavePreferencesRequest struct {
	PreferredType string   `json:"preferred_type" validate:"required,oneof=accommodation tour event vehicle product"`
	BudgetPerDay  float64  `json:"budget_per_day" validate:"min=0"`
	GroupSize     int      `json:"group_size" validate:"required,min=1"`
	Interests     []string `json:"interests,omitempty" validate:"omitempty,dive,min=2,max=50"`
}
