// Package stats implementa os procedimentos estatísticos dos estudos Six
// Sigma sobre métricas do GA4: capacidade de processo, Gage R&R, Pareto,
// ANOVA, testes de hipótese, regressão OLS e planejamento de experimentos.
// Todas as funções são puras e retornam erro para entradas degeneradas.
package stats

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrInsufficientData indica menos observações do que o procedimento exige
	ErrInsufficientData = errors.New("dados insuficientes para a análise")
	// ErrZeroVariance indica desvio padrão zero onde o procedimento divide por sigma
	ErrZeroVariance = errors.New("desvio padrão zero nos dados")
)

// DescriptiveStats resume uma amostra
type DescriptiveStats struct {
	N        int     `json:"n"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Q1       float64 `json:"q1"`
	Q3       float64 `json:"q3"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"` // excesso de curtose
}

// Describe calcula as estatísticas descritivas de uma amostra
func Describe(values []float64) (*DescriptiveStats, error) {
	if len(values) < 2 {
		return nil, ErrInsufficientData
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	desc := &DescriptiveStats{
		N:      len(values),
		Mean:   stat.Mean(values, nil),
		StdDev: stat.StdDev(values, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Q1:     stat.Quantile(0.25, stat.Empirical, sorted, nil),
		Q3:     stat.Quantile(0.75, stat.Empirical, sorted, nil),
	}

	if len(values) >= 3 && desc.StdDev > 0 {
		desc.Skewness = stat.Skew(values, nil)
		desc.Kurtosis = stat.ExKurtosis(values, nil)
	}

	return desc, nil
}

// Median retorna a mediana da amostra
func Median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// CleanPositive remove NaN e zeros da amostra, a limpeza aplicada antes do
// estudo de capacidade
func CleanPositive(values []float64) []float64 {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || v == 0 {
			continue
		}
		clean = append(clean, v)
	}
	return clean
}
