package service

import (
	"sort"

	"estate-match/internal/domain"
)

const defaultExplanationSize = 5

// TopContributions proyecta el desglose de un resultado para presentacion:
// solo criterios aplicables, ordenados por contribucion ponderada descendente
// y recortados a n (n <= 0 usa defaultExplanationSize). Es una proyeccion
// pura: no toca la puntuacion global ni el orden canonico del desglose.
func TopContributions(result domain.MatchResult, n int) []domain.CriterionScore {
	if n <= 0 {
		n = defaultExplanationSize
	}

	view := make([]domain.CriterionScore, 0, len(result.Breakdown))
	for _, cs := range result.Breakdown {
		if cs.Applicable {
			view = append(view, cs)
		}
	}

	sort.Slice(view, func(i, j int) bool {
		if view[i].WeightedScore != view[j].WeightedScore {
			return view[i].WeightedScore > view[j].WeightedScore
		}
		return view[i].Criterion < view[j].Criterion
	})

	if len(view) > n {
		view = view[:n]
	}
	return view
}
