package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// KruskalResult resume o teste de Kruskal-Wallis
type KruskalResult struct {
	H      float64 `json:"h"`
	PValue float64 `json:"p_value"`
	DF     int     `json:"df"`
}

// KruskalWallis compara dois ou mais grupos pela soma de postos, com a
// correção usual para empates. Aceita grupos com uma única observação.
func KruskalWallis(groups ...[]float64) (*KruskalResult, error) {
	k := len(groups)
	if k < 2 {
		return nil, ErrInsufficientData
	}

	n := 0
	for _, g := range groups {
		if len(g) == 0 {
			return nil, ErrInsufficientData
		}
		n += len(g)
	}
	if n < 3 {
		return nil, ErrInsufficientData
	}

	// 1. Postos médios sobre os dados agregados
	type obs struct {
		value float64
		group int
	}
	pooled := make([]obs, 0, n)
	for gi, g := range groups {
		for _, v := range g {
			pooled = append(pooled, obs{value: v, group: gi})
		}
	}
	sort.Slice(pooled, func(i, j int) bool { return pooled[i].value < pooled[j].value })

	ranks := make([]float64, n)
	var tieCorrection float64
	for i := 0; i < n; {
		j := i
		for j < n && pooled[j].value == pooled[i].value {
			j++
		}
		avgRank := float64(i+j+1) / 2
		for t := i; t < j; t++ {
			ranks[t] = avgRank
		}
		ties := float64(j - i)
		tieCorrection += ties*ties*ties - ties
		i = j
	}

	// 2. Estatística H
	rankSums := make([]float64, k)
	for i, o := range pooled {
		rankSums[o.group] += ranks[i]
	}

	fn := float64(n)
	var h float64
	for gi, g := range groups {
		h += rankSums[gi] * rankSums[gi] / float64(len(g))
	}
	h = 12/(fn*(fn+1))*h - 3*(fn+1)

	denom := 1 - tieCorrection/(fn*fn*fn-fn)
	if denom <= 0 {
		return nil, ErrZeroVariance
	}
	h /= denom

	df := k - 1
	chi := distuv.ChiSquared{K: float64(df)}
	return &KruskalResult{
		H:      h,
		PValue: 1 - chi.CDF(h),
		DF:     df,
	}, nil
}
