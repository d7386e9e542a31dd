package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// TTestResult resume o teste t de Welch para duas amostras independentes
type TTestResult struct {
	T       float64 `json:"t"`
	PValue  float64 `json:"p_value"`
	DF      float64 `json:"df"`
	CohensD float64 `json:"cohens_d"`
}

// WelchTTest compara as médias de duas amostras sem assumir variâncias
// iguais, com os graus de liberdade de Welch-Satterthwaite
func WelchTTest(a, b []float64) (*TTestResult, error) {
	n1, n2 := len(a), len(b)
	if n1 < 2 || n2 < 2 {
		return nil, ErrInsufficientData
	}

	m1 := stat.Mean(a, nil)
	m2 := stat.Mean(b, nil)
	v1 := stat.Variance(a, nil)
	v2 := stat.Variance(b, nil)

	se1 := v1 / float64(n1)
	se2 := v2 / float64(n2)
	if se1+se2 == 0 {
		return nil, ErrZeroVariance
	}

	t := (m1 - m2) / math.Sqrt(se1+se2)
	df := (se1 + se2) * (se1 + se2) /
		(se1*se1/float64(n1-1) + se2*se2/float64(n2-1))

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	pooled := math.Sqrt(((float64(n1)-1)*v1 + (float64(n2)-1)*v2) / float64(n1+n2-2))

	result := &TTestResult{
		T:      t,
		PValue: 2 * (1 - tDist.CDF(math.Abs(t))),
		DF:     df,
	}
	if pooled > 0 {
		result.CohensD = (m1 - m2) / pooled
	}
	return result, nil
}
