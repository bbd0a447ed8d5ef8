package service

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"estate-match/internal/domain"
)

var (
	ErrInvalidMinScore = errors.New("min score must be between 0 and 100")
	ErrInvalidLimit    = errors.New("limit must be positive")
)

const (
	defaultMatchLimit = 20
	maxMatchLimit     = 100

	// parallelThreshold decide cuando el mapeo de candidatos se reparte
	// entre workers. Por debajo, el bucle secuencial es mas barato.
	parallelThreshold = 64
)

// ZeroApplicablePolicy decide que hacer con un par sin ningun criterio
// aplicable: puntuarlo 0 (por defecto) o excluirlo del ranking.
type ZeroApplicablePolicy int

const (
	ZeroApplicableScoresZero ZeroApplicablePolicy = iota
	ZeroApplicableExcludes
)

// MatchOptions parametriza una llamada al motor. WeightProfile nil usa el
// perfil por defecto del motor; Limit 0 usa defaultMatchLimit y se recorta
// a maxMatchLimit.
type MatchOptions struct {
	WeightProfile    *WeightProfile
	MinScore         float64
	Limit            int
	IncludeBreakdown bool
}

// DefaultMatchOptions devuelve las opciones con las que responden los handlers.
func DefaultMatchOptions() MatchOptions {
	return MatchOptions{
		MinScore:         0,
		Limit:            defaultMatchLimit,
		IncludeBreakdown: true,
	}
}

// MatchEngine puntua candidatos contra un ancla. Es puro y sin estado mas
// alla de su configuracion: llamadas identicas producen salidas identicas,
// incluido el orden de desempate.
type MatchEngine struct {
	defaultProfile WeightProfile
	policy         ZeroApplicablePolicy
}

func NewMatchEngine() *MatchEngine {
	return &MatchEngine{
		defaultProfile: DefaultWeightProfile(),
		policy:         ZeroApplicableScoresZero,
	}
}

func NewMatchEngineWithPolicy(policy ZeroApplicablePolicy) *MatchEngine {
	engine := NewMatchEngine()
	engine.policy = policy
	return engine
}

// MatchesForClient puntua anuncios candidatos contra las preferencias de un cliente.
func (e *MatchEngine) MatchesForClient(anchorID string, prefs domain.PreferenceProfile, candidates []domain.PropertyCandidate, opts MatchOptions) ([]domain.MatchResult, error) {
	pairs := make([]scoredPair, len(candidates))
	for i, c := range candidates {
		pairs[i] = scoredPair{id: c.ID, updatedAt: c.UpdatedAt, prefs: prefs, attrs: c.Attributes}
	}
	return e.match(anchorID, pairs, opts)
}

// MatchesForProperty puntua clientes candidatos contra los atributos de un anuncio.
func (e *MatchEngine) MatchesForProperty(anchorID string, attrs domain.ListingAttributes, candidates []domain.ClientCandidate, opts MatchOptions) ([]domain.MatchResult, error) {
	pairs := make([]scoredPair, len(candidates))
	for i, c := range candidates {
		pairs[i] = scoredPair{id: c.ID, updatedAt: c.UpdatedAt, prefs: c.Preferences, attrs: attrs}
	}
	return e.match(anchorID, pairs, opts)
}

// scoredPair reune lo necesario para puntuar y desempatar un candidato.
// La direccion de la llamada solo decide que lado es ancla: los criterios
// siempre evaluan (preferencias de cliente, atributos de anuncio).
type scoredPair struct {
	id        string
	updatedAt time.Time
	prefs     domain.PreferenceProfile
	attrs     domain.ListingAttributes

	result     domain.MatchResult
	applicable int
}

func (e *MatchEngine) match(anchorID string, pairs []scoredPair, opts MatchOptions) ([]domain.MatchResult, error) {
	profile, limit, err := e.resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	evaluatedAt := time.Now().UTC()
	e.scoreAll(anchorID, pairs, profile, evaluatedAt)

	kept := pairs[:0]
	for _, p := range pairs {
		if p.applicable == 0 && e.policy == ZeroApplicableExcludes {
			continue
		}
		if p.result.OverallScore < opts.MinScore {
			continue
		}
		kept = append(kept, p)
	}

	// Orden total: score desc, updatedAt desc, id asc. Sin esta cadena de
	// desempates el orden de empates en coma flotante no seria estable.
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].result.OverallScore != kept[j].result.OverallScore {
			return kept[i].result.OverallScore > kept[j].result.OverallScore
		}
		if !kept[i].updatedAt.Equal(kept[j].updatedAt) {
			return kept[i].updatedAt.After(kept[j].updatedAt)
		}
		return kept[i].id < kept[j].id
	})

	if len(kept) > limit {
		kept = kept[:limit]
	}

	results := make([]domain.MatchResult, len(kept))
	for i, p := range kept {
		res := p.result
		if !opts.IncludeBreakdown {
			res.Breakdown = nil
		}
		results[i] = res
	}
	return results, nil
}

func (e *MatchEngine) resolveOptions(opts MatchOptions) (WeightProfile, int, error) {
	if opts.MinScore < 0 || opts.MinScore > 100 {
		return WeightProfile{}, 0, fmt.Errorf("%w: got %v", ErrInvalidMinScore, opts.MinScore)
	}
	if opts.Limit < 0 {
		return WeightProfile{}, 0, fmt.Errorf("%w: got %d", ErrInvalidLimit, opts.Limit)
	}
	limit := opts.Limit
	if limit == 0 {
		limit = defaultMatchLimit
	}
	if limit > maxMatchLimit {
		limit = maxMatchLimit
	}
	profile := e.defaultProfile
	if opts.WeightProfile != nil {
		if err := opts.WeightProfile.Validate(); err != nil {
			return WeightProfile{}, 0, err
		}
		profile = *opts.WeightProfile
	}
	return profile, limit, nil
}

// scoreAll es el mapeo paralelo: cada candidato se puntua de forma
// independiente sobre su propio indice, sin estado mutable compartido.
func (e *MatchEngine) scoreAll(anchorID string, pairs []scoredPair, profile WeightProfile, evaluatedAt time.Time) {
	if len(pairs) < parallelThreshold {
		for i := range pairs {
			e.scorePair(anchorID, &pairs[i], profile, evaluatedAt)
		}
		return
	}

	workers := runtime.NumCPU()
	if workers > len(pairs) {
		workers = len(pairs)
	}
	var wg sync.WaitGroup
	chunk := (len(pairs) + workers - 1) / workers
	for start := 0; start < len(pairs); start += chunk {
		end := start + chunk
		if end > len(pairs) {
			end = len(pairs)
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				e.scorePair(anchorID, &pairs[i], profile, evaluatedAt)
			}
		}(start, end)
	}
	wg.Wait()
}

// scorePair evalua todos los criterios en orden canonico y agrega la media
// ponderada sobre los aplicables. Los pesos de criterios no aplicables no
// entran al denominador: no deflactan la puntuacion.
func (e *MatchEngine) scorePair(anchorID string, pair *scoredPair, profile WeightProfile, evaluatedAt time.Time) {
	breakdown := make([]domain.CriterionScore, 0, len(criterionOrder))
	var weightedSum, weightSum float64
	applicable := 0

	for _, id := range criterionOrder {
		raw, ok := evaluators[id](pair.prefs, pair.attrs)
		weight := profile.weightFor(id)
		entry := domain.CriterionScore{
			Criterion:  id,
			Weight:     weight,
			Applicable: ok,
		}
		if ok {
			entry.RawScore = raw
			entry.WeightedScore = raw * weight
			weightedSum += entry.WeightedScore
			weightSum += weight
			applicable++
		}
		breakdown = append(breakdown, entry)
	}

	overall := 0.0
	if applicable > 0 && weightSum > 0 {
		overall = round2(weightedSum / weightSum)
	}

	pair.applicable = applicable
	pair.result = domain.MatchResult{
		AnchorID:     anchorID,
		CandidateID:  pair.id,
		OverallScore: overall,
		Breakdown:    breakdown,
		EvaluatedAt:  evaluatedAt,
	}
}
