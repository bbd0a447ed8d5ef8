package domain

import "time"

// PreferenceProfile describe lo que el cliente declaro querer. Todos los
// campos son opcionales: un campo ausente significa "sin preferencia",
// nunca "preferencia cero".
type PreferenceProfile struct {
	BudgetMin    *float64            `json:"budget_min,omitempty"`
	BudgetMax    *float64            `json:"budget_max,omitempty"`
	BedroomsMin  *int                `json:"bedrooms_min,omitempty"`
	BedroomsMax  *int                `json:"bedrooms_max,omitempty"`
	BathroomsMin *int                `json:"bathrooms_min,omitempty"`
	BathroomsMax *int                `json:"bathrooms_max,omitempty"`
	SizeMinSQM   *float64            `json:"size_min_sqm,omitempty"`
	SizeMaxSQM   *float64            `json:"size_max_sqm,omitempty"`
	Types        []PropertyType      `json:"types,omitempty"`
	Intents      []TransactionIntent `json:"intents,omitempty"`
	Areas        []string            `json:"areas,omitempty"`
	Amenities    []string            `json:"amenities,omitempty"`
	// Tri-estado: nil = sin preferencia, true/false = requisito exacto.
	RequiresElevator *bool             `json:"requires_elevator,omitempty"`
	RequiresPets     *bool             `json:"requires_pets,omitempty"`
	Furnishing       *FurnishingStatus `json:"furnishing,omitempty"`
}

// Client es el registro CRM de un cliente comprador/arrendatario.
type Client struct {
	ID          string            `json:"id"`
	AgentID     string            `json:"agent_id"`
	FullName    string            `json:"full_name"`
	Email       string            `json:"email,omitempty"`
	Phone       string            `json:"phone,omitempty"`
	Preferences PreferenceProfile `json:"preferences"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
