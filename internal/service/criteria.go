package service

import (
	"math"
	"strings"

	"estate-match/internal/domain"
)

// rangeTolerance define hasta donde degrada linealmente un criterio de rango:
// a 50% mas alla del limite violado la puntuacion llega a 0.
const rangeTolerance = 0.5

// criterionEvaluator puntua un criterio para un par (preferencias, atributos).
// Devuelve la puntuacion cruda 0..100 y si el criterio aplica. Un criterio no
// aplica cuando el cliente no declaro preferencia; si la declaro y el atributo
// es desconocido, aplica con puntuacion 0 (un atributo desconocido no puede
// satisfacer una preferencia declarada).
type criterionEvaluator func(prefs domain.PreferenceProfile, attrs domain.ListingAttributes) (float64, bool)

// criterionOrder fija el orden canonico del desglose.
var criterionOrder = []domain.CriterionID{
	domain.CriterionBudget,
	domain.CriterionLocation,
	domain.CriterionSize,
	domain.CriterionBedrooms,
	domain.CriterionBathrooms,
	domain.CriterionType,
	domain.CriterionIntent,
	domain.CriterionAmenities,
	domain.CriterionElevator,
	domain.CriterionPets,
	domain.CriterionFurnishing,
}

var evaluators = map[domain.CriterionID]criterionEvaluator{
	domain.CriterionBudget:     evaluateBudget,
	domain.CriterionLocation:   evaluateLocation,
	domain.CriterionSize:       evaluateSize,
	domain.CriterionBedrooms:   evaluateBedrooms,
	domain.CriterionBathrooms:  evaluateBathrooms,
	domain.CriterionType:       evaluateType,
	domain.CriterionIntent:     evaluateIntent,
	domain.CriterionAmenities:  evaluateAmenities,
	domain.CriterionElevator:   evaluateElevator,
	domain.CriterionPets:       evaluatePets,
	domain.CriterionFurnishing: evaluateFurnishing,
}

func evaluateBudget(prefs domain.PreferenceProfile, attrs domain.ListingAttributes) (float64, bool) {
	if prefs.BudgetMin == nil && prefs.BudgetMax == nil {
		return 0, false
	}
	if attrs.Price == nil {
		return 0, true
	}
	return rangeScore(*attrs.Price, prefs.BudgetMin, prefs.BudgetMax), true
}

func evaluateSize(prefs domain.PreferenceProfile, attrs domain.ListingAttributes) (float64, bool) {
	if prefs.SizeMinSQM == nil && prefs.SizeMaxSQM == nil {
		return 0, false
	}
	if attrs.SizeSQM == nil {
		return 0, true
	}
	return rangeScore(*attrs.SizeSQM, prefs.SizeMinSQM, prefs.SizeMaxSQM), true
}

func evaluateBedrooms(prefs domain.PreferenceProfile, attrs domain.ListingAttributes) (float64, bool) {
	if prefs.BedroomsMin == nil && prefs.BedroomsMax == nil {
		return 0, false
	}
	if attrs.Bedrooms == nil {
		return 0, true
	}
	return rangeScore(float64(*attrs.Bedrooms), intPtrToFloat(prefs.BedroomsMin), intPtrToFloat(prefs.BedroomsMax)), true
}

func evaluateBathrooms(prefs domain.PreferenceProfile, attrs domain.ListingAttributes) (float64, bool) {
	if prefs.BathroomsMin == nil && prefs.BathroomsMax == nil {
		return 0, false
	}
	if attrs.Bathrooms == nil {
		return 0, true
	}
	return rangeScore(float64(*attrs.Bathrooms), intPtrToFloat(prefs.BathroomsMin), intPtrToFloat(prefs.BathroomsMax)), true
}

func evaluateType(prefs domain.PreferenceProfile, attrs domain.ListingAttributes) (float64, bool) {
	if len(prefs.Types) == 0 {
		return 0, false
	}
	if attrs.Type == domain.PropertyTypeUnspecified {
		return 0, true
	}
	for _, t := range prefs.Types {
		if t == attrs.Type {
			return 100, true
		}
	}
	return 0, true
}

func evaluateIntent(prefs domain.PreferenceProfile, attrs domain.ListingAttributes) (float64, bool) {
	if len(prefs.Intents) == 0 {
		return 0, false
	}
	if attrs.Intent == domain.IntentUnspecified {
		return 0, true
	}
	for _, in := range prefs.Intents {
		if in == attrs.Intent {
			return 100, true
		}
	}
	return 0, true
}

// evaluateLocation puntua pertenencia exacta al conjunto de zonas preferidas.
// No hay credito parcial por jerarquia de zonas: el catalogo no define una.
func evaluateLocation(prefs domain.PreferenceProfile, attrs domain.ListingAttributes) (float64, bool) {
	if len(prefs.Areas) == 0 {
		return 0, false
	}
	if attrs.Area == nil || strings.TrimSpace(*attrs.Area) == "" {
		return 0, true
	}
	area := normalizeLabel(*attrs.Area)
	for _, a := range prefs.Areas {
		if normalizeLabel(a) == area {
			return 100, true
		}
	}
	return 0, true
}

func evaluateAmenities(prefs domain.PreferenceProfile, attrs domain.ListingAttributes) (float64, bool) {
	wanted := normalizeSet(prefs.Amenities)
	if len(wanted) == 0 {
		return 0, false
	}
	available := normalizeSet(attrs.Amenities)
	matched := 0
	for a := range wanted {
		if _, ok := available[a]; ok {
			matched++
		}
	}
	return round2(100 * float64(matched) / float64(len(wanted))), true
}

func evaluateElevator(prefs domain.PreferenceProfile, attrs domain.ListingAttributes) (float64, bool) {
	return boolScore(prefs.RequiresElevator, attrs.HasElevator)
}

func evaluatePets(prefs domain.PreferenceProfile, attrs domain.ListingAttributes) (float64, bool) {
	return boolScore(prefs.RequiresPets, attrs.PetsAllowed)
}

func evaluateFurnishing(prefs domain.PreferenceProfile, attrs domain.ListingAttributes) (float64, bool) {
	if prefs.Furnishing == nil {
		return 0, false
	}
	if attrs.Furnishing == domain.FurnishingUnknown {
		return 0, true
	}
	if *prefs.Furnishing == attrs.Furnishing {
		return 100, true
	}
	return 0, true
}

// rangeScore devuelve 100 dentro de [min,max] y degrada linealmente fuera,
// tocando 0 a una distancia de rangeTolerance veces el limite violado.
// Un extremo nil deja el rango abierto por ese lado.
func rangeScore(value float64, min, max *float64) float64 {
	if min != nil && value < *min {
		return degrade(*min-value, math.Abs(*min)*rangeTolerance)
	}
	if max != nil && value > *max {
		return degrade(value-*max, math.Abs(*max)*rangeTolerance)
	}
	return 100
}

func degrade(distance, tolerance float64) float64 {
	if tolerance <= 0 {
		return 0
	}
	score := 100 * (1 - distance/tolerance)
	if score < 0 {
		return 0
	}
	return round2(score)
}

func boolScore(pref, attr *bool) (float64, bool) {
	if pref == nil {
		return 0, false
	}
	if attr == nil {
		return 0, true
	}
	if *pref == *attr {
		return 100, true
	}
	return 0, true
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		n := normalizeLabel(it)
		if n == "" {
			continue
		}
		set[n] = struct{}{}
	}
	return set
}

func intPtrToFloat(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
