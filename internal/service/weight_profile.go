package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"estate-match/internal/domain"
)

var (
	ErrUnknownCriterion = errors.New("unknown criterion in weight profile")
	ErrNegativeWeight   = errors.New("negative weight in weight profile")
)

// WeightProfile asigna importancia relativa a cada criterio. Los pesos no
// necesitan sumar 1: la normalizacion ocurre por par, sobre los criterios
// aplicables, en el momento de agregar.
type WeightProfile struct {
	Name    string                         `json:"name"`
	Weights map[domain.CriterionID]float64 `json:"weights"`
}

// DefaultWeightProfile es el perfil base del motor. Presupuesto y zona pesan
// mas que los extras binarios; cualquier organizacion puede sobreescribirlo.
func DefaultWeightProfile() WeightProfile {
	return WeightProfile{
		Name: "default",
		Weights: map[domain.CriterionID]float64{
			domain.CriterionBudget:     1.0,
			domain.CriterionLocation:   0.9,
			domain.CriterionSize:       0.7,
			domain.CriterionBedrooms:   0.8,
			domain.CriterionBathrooms:  0.5,
			domain.CriterionType:       0.8,
			domain.CriterionIntent:     1.0,
			domain.CriterionAmenities:  0.6,
			domain.CriterionElevator:   0.4,
			domain.CriterionPets:       0.4,
			domain.CriterionFurnishing: 0.3,
		},
	}
}

// Validate rechaza perfiles con criterios desconocidos o pesos negativos.
// Se ejecuta antes de puntuar cualquier candidato.
func (p WeightProfile) Validate() error {
	for id, w := range p.Weights {
		if _, ok := evaluators[id]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownCriterion, id)
		}
		if w < 0 {
			return fmt.Errorf("%w: %q = %v", ErrNegativeWeight, id, w)
		}
	}
	return nil
}

// weightFor devuelve el peso del criterio; un criterio ausente del perfil pesa 0.
func (p WeightProfile) weightFor(id domain.CriterionID) float64 {
	return p.Weights[id]
}

// LoadWeightProfileFromFile carga un perfil desde JSON, partiendo del perfil
// por defecto para los criterios no mencionados.
func LoadWeightProfileFromFile(path string) (WeightProfile, error) {
	profile := DefaultWeightProfile()
	b, err := os.ReadFile(path)
	if err != nil {
		return profile, fmt.Errorf("read weight profile: %w", err)
	}
	var override WeightProfile
	if err := json.Unmarshal(b, &override); err != nil {
		return profile, fmt.Errorf("unmarshal weight profile: %w", err)
	}
	if override.Name != "" {
		profile.Name = override.Name
	}
	for id, w := range override.Weights {
		profile.Weights[id] = w
	}
	if err := profile.Validate(); err != nil {
		return DefaultWeightProfile(), err
	}
	return profile, nil
}
