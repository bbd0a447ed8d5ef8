package domain

import "time"

// CriterionID identifica un eje de compatibilidad puntuado de forma independiente.
type CriterionID string

const (
	CriterionBudget     CriterionID = "budget"
	CriterionLocation   CriterionID = "location"
	CriterionSize       CriterionID = "size"
	CriterionBedrooms   CriterionID = "bedrooms"
	CriterionBathrooms  CriterionID = "bathrooms"
	CriterionType       CriterionID = "type"
	CriterionIntent     CriterionID = "intent"
	CriterionAmenities  CriterionID = "amenities"
	CriterionElevator   CriterionID = "elevator"
	CriterionPets       CriterionID = "pets"
	CriterionFurnishing CriterionID = "furnishing"
)

// CriterionScore es el resultado de evaluar un criterio para un par ancla/candidato.
// Un criterio no aplicable (preferencia ausente) queda fuera de la agregacion
// pero se conserva en el desglose para poder explicarlo.
type CriterionScore struct {
	Criterion     CriterionID `json:"criterion"`
	RawScore      float64     `json:"raw_score"`
	Weight        float64     `json:"weight"`
	WeightedScore float64     `json:"weighted_score"`
	Applicable    bool        `json:"applicable"`
}

// MatchResult es el resultado transitorio de puntuar un candidato contra un
// ancla. El motor nunca lo persiste; el llamador puede cachearlo.
type MatchResult struct {
	AnchorID     string           `json:"anchor_id"`
	CandidateID  string           `json:"candidate_id"`
	OverallScore float64          `json:"overall_score"`
	Breakdown    []CriterionScore `json:"breakdown,omitempty"`
	EvaluatedAt  time.Time        `json:"evaluated_at"`
}

// PropertyCandidate es un anuncio candidato entregado por el proveedor de candidatos.
type PropertyCandidate struct {
	ID         string            `json:"id"`
	UpdatedAt  time.Time         `json:"updated_at"`
	Attributes ListingAttributes `json:"attributes"`
}

// ClientCandidate es un cliente candidato entregado por el proveedor de candidatos.
type ClientCandidate struct {
	ID          string            `json:"id"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Preferences PreferenceProfile `json:"preferences"`
}
