package stats

import (
	"fmt"
	"sort"
)

// ParetoItem é uma categoria ordenada por impacto
type ParetoItem struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Percent    float64 `json:"percent"`
	Cumulative float64 `json:"cumulative"`
	VitalFew   bool    `json:"vital_few"`
}

// ParetoResult é a análise 80/20 das categorias
type ParetoResult struct {
	Items          []ParetoItem `json:"items"`
	VitalFewCount  int          `json:"vital_few_count"`
	VitalFewImpact float64      `json:"vital_few_impact"`
}

// Pareto ordena as categorias por impacto decrescente e marca os poucos
// vitais: os itens até o primeiro cujo acumulado alcança 80%, inclusive
func Pareto(names []string, values []float64) (*ParetoResult, error) {
	if len(names) == 0 || len(names) != len(values) {
		return nil, ErrInsufficientData
	}

	var total float64
	for i, v := range values {
		if v < 0 {
			return nil, fmt.Errorf("impacto negativo na categoria %q", names[i])
		}
		total += v
	}
	if total == 0 {
		return nil, ErrZeroVariance
	}

	items := make([]ParetoItem, len(names))
	for i := range names {
		items[i] = ParetoItem{Name: names[i], Value: values[i]}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Value > items[j].Value })

	result := &ParetoResult{Items: items}
	var cumulative float64
	crossed := false
	for i := range items {
		items[i].Percent = items[i].Value / total * 100
		cumulative += items[i].Percent
		items[i].Cumulative = cumulative
		if !crossed {
			items[i].VitalFew = true
			result.VitalFewCount++
			result.VitalFewImpact = cumulative
			if cumulative >= 80 {
				crossed = true
			}
		}
	}

	return result, nil
}
