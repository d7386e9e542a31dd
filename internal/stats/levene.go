package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// LeveneResult é o resultado do teste de homogeneidade de variâncias
type LeveneResult struct {
	W      float64 `json:"w"`
	PValue float64 `json:"p_value"`
	DFNum  int     `json:"df_num"`
	DFDen  int     `json:"df_den"`
}

// Levene testa a homogeneidade de variâncias entre grupos usando desvios
// absolutos da mediana (variante de Brown-Forsythe)
func Levene(groups ...[]float64) (*LeveneResult, error) {
	k := len(groups)
	if k < 2 {
		return nil, ErrInsufficientData
	}

	var total int
	z := make([][]float64, k)
	for i, g := range groups {
		if len(g) < 2 {
			return nil, ErrInsufficientData
		}
		total += len(g)

		center := Median(g)
		z[i] = make([]float64, len(g))
		for j, v := range g {
			z[i][j] = math.Abs(v - center)
		}
	}

	zMeans := make([]float64, k)
	var zGrand float64
	for i := range z {
		zMeans[i] = stat.Mean(z[i], nil)
		zGrand += zMeans[i] * float64(len(z[i]))
	}
	zGrand /= float64(total)

	var ssb, ssw float64
	for i := range z {
		ssb += float64(len(z[i])) * math.Pow(zMeans[i]-zGrand, 2)
		for _, v := range z[i] {
			ssw += math.Pow(v-zMeans[i], 2)
		}
	}

	dfNum := k - 1
	dfDen := total - k
	if ssw == 0 {
		return nil, ErrZeroVariance
	}

	w := (float64(dfDen) / float64(dfNum)) * (ssb / ssw)
	f := distuv.F{D1: float64(dfNum), D2: float64(dfDen)}

	return &LeveneResult{
		W:      w,
		PValue: 1 - f.CDF(w),
		DFNum:  dfNum,
		DFDen:  dfDen,
	}, nil
}
