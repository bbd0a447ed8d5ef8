package service

import (
	"testing"

	"estate-match/internal/domain"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }
func sptr(v string) *string   { return &v }
func bptr(v bool) *bool       { return &v }

func TestEvaluateBudget_WithinRangeScoresFull(t *testing.T) {
	prefs := domain.PreferenceProfile{BudgetMin: fptr(100000), BudgetMax: fptr(150000)}
	attrs := domain.ListingAttributes{Price: fptr(120000)}

	score, applicable := evaluateBudget(prefs, attrs)
	if !applicable {
		t.Fatalf("expected budget criterion to be applicable")
	}
	if score != 100 {
		t.Fatalf("expected score 100 for price within range, got %v", score)
	}
}

func TestEvaluateBudget_DegradesLinearlyAboveMax(t *testing.T) {
	prefs := domain.PreferenceProfile{BudgetMin: fptr(100000), BudgetMax: fptr(150000)}

	// 10000 sobre un limite de 150000: tolerancia 75000 -> 100*(1-10000/75000).
	score, applicable := evaluateBudget(prefs, domain.ListingAttributes{Price: fptr(160000)})
	if !applicable {
		t.Fatalf("expected budget criterion to be applicable")
	}
	if score != 86.67 {
		t.Fatalf("expected score 86.67 slightly above max, got %v", score)
	}

	// Al 50% mas alla del limite la puntuacion toca 0.
	score, _ = evaluateBudget(prefs, domain.ListingAttributes{Price: fptr(225000)})
	if score != 0 {
		t.Fatalf("expected score 0 at tolerance edge, got %v", score)
	}

	// Mas alla de la tolerancia sigue siendo 0, nunca negativo.
	score, _ = evaluateBudget(prefs, domain.ListingAttributes{Price: fptr(300000)})
	if score != 0 {
		t.Fatalf("expected score 0 far above max, got %v", score)
	}
}

func TestEvaluateBudget_DegradesBelowMin(t *testing.T) {
	prefs := domain.PreferenceProfile{BudgetMin: fptr(100000), BudgetMax: fptr(150000)}

	// 20000 bajo un limite de 100000: tolerancia 50000 -> 100*(1-20000/50000).
	score, applicable := evaluateBudget(prefs, domain.ListingAttributes{Price: fptr(80000)})
	if !applicable {
		t.Fatalf("expected budget criterion to be applicable")
	}
	if score != 60 {
		t.Fatalf("expected score 60 below min, got %v", score)
	}
}

func TestEvaluateBudget_MonotoneOutsideRange(t *testing.T) {
	prefs := domain.PreferenceProfile{BudgetMax: fptr(150000)}

	prev := 101.0
	for _, price := range []float64{150000, 160000, 180000, 200000, 225000} {
		score, _ := evaluateBudget(prefs, domain.ListingAttributes{Price: fptr(price)})
		if score > prev {
			t.Fatalf("score must not increase with distance: price %v scored %v after %v", price, score, prev)
		}
		prev = score
	}
}

func TestEvaluateBudget_AbsentPreferenceIsNotApplicable(t *testing.T) {
	score, applicable := evaluateBudget(domain.PreferenceProfile{}, domain.ListingAttributes{Price: fptr(120000)})
	if applicable {
		t.Fatalf("expected budget criterion to be inapplicable without preference")
	}
	if score != 0 {
		t.Fatalf("expected zero score for inapplicable criterion, got %v", score)
	}
}

func TestEvaluateBudget_UnknownAttributeScoresZeroButApplies(t *testing.T) {
	prefs := domain.PreferenceProfile{BudgetMax: fptr(150000)}

	score, applicable := evaluateBudget(prefs, domain.ListingAttributes{})
	if !applicable {
		t.Fatalf("declared preference against unknown attribute must still apply")
	}
	if score != 0 {
		t.Fatalf("expected score 0 for unknown price, got %v", score)
	}
}

func TestEvaluateBedrooms_OpenEndedRange(t *testing.T) {
	prefs := domain.PreferenceProfile{BedroomsMin: iptr(2)}

	score, applicable := evaluateBedrooms(prefs, domain.ListingAttributes{Bedrooms: iptr(4)})
	if !applicable || score != 100 {
		t.Fatalf("expected full score above an open-ended min, got %v (applicable=%v)", score, applicable)
	}

	// 1 bajo un minimo de 2: tolerancia 1 -> 0.
	score, _ = evaluateBedrooms(prefs, domain.ListingAttributes{Bedrooms: iptr(1)})
	if score != 0 {
		t.Fatalf("expected score 0 one bedroom under min, got %v", score)
	}
}

func TestEvaluateLocation_NormalizedExactMembership(t *testing.T) {
	prefs := domain.PreferenceProfile{Areas: []string{"Centro", " Chamberi "}}

	score, applicable := evaluateLocation(prefs, domain.ListingAttributes{Area: sptr("  CENTRO ")})
	if !applicable || score != 100 {
		t.Fatalf("expected area match after normalization, got %v (applicable=%v)", score, applicable)
	}

	score, _ = evaluateLocation(prefs, domain.ListingAttributes{Area: sptr("Salamanca")})
	if score != 0 {
		t.Fatalf("expected score 0 for non-preferred area, got %v", score)
	}

	score, applicable = evaluateLocation(prefs, domain.ListingAttributes{})
	if !applicable || score != 0 {
		t.Fatalf("unknown area against declared areas must apply with score 0, got %v (applicable=%v)", score, applicable)
	}
}

func TestEvaluateAmenities_PartialOverlap(t *testing.T) {
	prefs := domain.PreferenceProfile{Amenities: []string{"Balcony", "Parking", "Pool"}}
	attrs := domain.ListingAttributes{Amenities: []string{" balcony ", "PARKING", "garden"}}

	score, applicable := evaluateAmenities(prefs, attrs)
	if !applicable {
		t.Fatalf("expected amenities criterion to be applicable")
	}
	if score != 66.67 {
		t.Fatalf("expected 66.67 for 2 of 3 amenities, got %v", score)
	}
}

func TestEvaluateAmenities_NoOverlapAndEmptyListing(t *testing.T) {
	prefs := domain.PreferenceProfile{Amenities: []string{"pool"}}

	score, applicable := evaluateAmenities(prefs, domain.ListingAttributes{Amenities: []string{"garden"}})
	if !applicable || score != 0 {
		t.Fatalf("expected score 0 without overlap, got %v (applicable=%v)", score, applicable)
	}

	score, applicable = evaluateAmenities(prefs, domain.ListingAttributes{})
	if !applicable || score != 0 {
		t.Fatalf("expected score 0 for listing without amenities, got %v (applicable=%v)", score, applicable)
	}
}

func TestBoolCriteria_TriState(t *testing.T) {
	// Sin preferencia: no aplica.
	_, applicable := evaluateElevator(domain.PreferenceProfile{}, domain.ListingAttributes{HasElevator: bptr(true)})
	if applicable {
		t.Fatalf("elevator without preference must not apply")
	}

	// Preferencia declarada, atributo desconocido: aplica con 0.
	score, applicable := evaluatePets(domain.PreferenceProfile{RequiresPets: bptr(true)}, domain.ListingAttributes{})
	if !applicable || score != 0 {
		t.Fatalf("declared pets preference against unknown attribute must apply with 0, got %v (applicable=%v)", score, applicable)
	}

	// Coincidencia exacta, incluyendo el caso false/false.
	score, _ = evaluateElevator(domain.PreferenceProfile{RequiresElevator: bptr(false)}, domain.ListingAttributes{HasElevator: bptr(false)})
	if score != 100 {
		t.Fatalf("expected 100 for exact false/false match, got %v", score)
	}

	score, _ = evaluateElevator(domain.PreferenceProfile{RequiresElevator: bptr(true)}, domain.ListingAttributes{HasElevator: bptr(false)})
	if score != 0 {
		t.Fatalf("expected 0 for elevator mismatch, got %v", score)
	}
}

func TestEvaluateTypeAndIntent_ExactMembership(t *testing.T) {
	prefs := domain.PreferenceProfile{
		Types:   []domain.PropertyType{domain.PropertyTypeApartment, domain.PropertyTypeStudio},
		Intents: []domain.TransactionIntent{domain.IntentRent},
	}

	score, applicable := evaluateType(prefs, domain.ListingAttributes{Type: domain.PropertyTypeStudio})
	if !applicable || score != 100 {
		t.Fatalf("expected type membership match, got %v (applicable=%v)", score, applicable)
	}

	score, _ = evaluateType(prefs, domain.ListingAttributes{Type: domain.PropertyTypeHouse})
	if score != 0 {
		t.Fatalf("expected 0 for type outside preference, got %v", score)
	}

	score, applicable = evaluateIntent(prefs, domain.ListingAttributes{Intent: domain.IntentBuy})
	if !applicable || score != 0 {
		t.Fatalf("expected 0 for intent mismatch, got %v (applicable=%v)", score, applicable)
	}

	score, applicable = evaluateIntent(prefs, domain.ListingAttributes{})
	if !applicable || score != 0 {
		t.Fatalf("unspecified intent against declared preference must apply with 0, got %v (applicable=%v)", score, applicable)
	}
}

func TestEvaluateFurnishing(t *testing.T) {
	furnished := domain.FurnishingFurnished
	prefs := domain.PreferenceProfile{Furnishing: &furnished}

	score, applicable := evaluateFurnishing(prefs, domain.ListingAttributes{Furnishing: domain.FurnishingFurnished})
	if !applicable || score != 100 {
		t.Fatalf("expected furnishing match, got %v (applicable=%v)", score, applicable)
	}

	score, _ = evaluateFurnishing(prefs, domain.ListingAttributes{Furnishing: domain.FurnishingPartial})
	if score != 0 {
		t.Fatalf("expected 0 for furnishing mismatch, got %v", score)
	}

	_, applicable = evaluateFurnishing(domain.PreferenceProfile{}, domain.ListingAttributes{Furnishing: domain.FurnishingFurnished})
	if applicable {
		t.Fatalf("furnishing without preference must not apply")
	}
}

func TestRangeScore_ZeroBoundaryHasNoTolerance(t *testing.T) {
	// Un limite en 0 no deja margen de degradacion: cualquier violacion es 0.
	score := rangeScore(-1, fptr(0), nil)
	if score != 0 {
		t.Fatalf("expected 0 when violating a zero boundary, got %v", score)
	}
}
