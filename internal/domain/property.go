package domain

import "time"

// PropertyType clasifica el inmueble. El valor vacio significa "sin especificar".
type PropertyType string

const (
	PropertyTypeUnspecified PropertyType = ""
	PropertyTypeApartment   PropertyType = "apartment"
	PropertyTypeHouse       PropertyType = "house"
	PropertyTypePenthouse   PropertyType = "penthouse"
	PropertyTypeStudio      PropertyType = "studio"
	PropertyTypeCommercial  PropertyType = "commercial"
	PropertyTypeLand        PropertyType = "land"
)

// TransactionIntent indica la operacion buscada u ofrecida.
type TransactionIntent string

const (
	IntentUnspecified TransactionIntent = ""
	IntentBuy         TransactionIntent = "buy"
	IntentRent        TransactionIntent = "rent"
	IntentSell        TransactionIntent = "sell"
	IntentLease       TransactionIntent = "lease"
	IntentInvest      TransactionIntent = "invest"
)

// FurnishingStatus describe el amueblado. Vacio significa "desconocido".
type FurnishingStatus string

const (
	FurnishingUnknown     FurnishingStatus = ""
	FurnishingFurnished   FurnishingStatus = "furnished"
	FurnishingUnfurnished FurnishingStatus = "unfurnished"
	FurnishingPartial     FurnishingStatus = "partial"
)

// PropertyCondition describe el estado de conservacion.
type PropertyCondition string

const (
	ConditionUnknown      PropertyCondition = ""
	ConditionNew          PropertyCondition = "new"
	ConditionRenovated    PropertyCondition = "renovated"
	ConditionGood         PropertyCondition = "good"
	ConditionNeedsRenewal PropertyCondition = "needs_renewal"
)

// PropertyStatus controla la visibilidad del anuncio.
type PropertyStatus string

const (
	PropertyStatusDraft     PropertyStatus = "draft"
	PropertyStatusPublished PropertyStatus = "published"
	PropertyStatusArchived  PropertyStatus = "archived"
)

// ListingAttributes son los atributos comparables de un anuncio.
// Los punteros y enums con centinela vacio distinguen "desconocido" de cero:
// un atributo ausente no es lo mismo que un atributo con valor cero.
type ListingAttributes struct {
	Price       *float64          `json:"price,omitempty"`
	Type        PropertyType      `json:"type,omitempty"`
	Intent      TransactionIntent `json:"intent,omitempty"`
	Bedrooms    *int              `json:"bedrooms,omitempty"`
	Bathrooms   *int              `json:"bathrooms,omitempty"`
	SizeSQM     *float64          `json:"size_sqm,omitempty"`
	Area        *string           `json:"area,omitempty"`
	Amenities   []string          `json:"amenities,omitempty"`
	HasElevator *bool             `json:"has_elevator,omitempty"`
	PetsAllowed *bool             `json:"pets_allowed,omitempty"`
	Furnishing  FurnishingStatus  `json:"furnishing,omitempty"`
	Condition   PropertyCondition `json:"condition,omitempty"`
}

// Property es el registro CRM de un inmueble.
type Property struct {
	ID         string            `json:"id"`
	AgentID    string            `json:"agent_id"`
	Title      string            `json:"title"`
	Status     PropertyStatus    `json:"status"`
	Attributes ListingAttributes `json:"attributes"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
