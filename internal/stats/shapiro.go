package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ShapiroWilkResult é o resultado do teste de normalidade de Shapiro-Wilk
type ShapiroWilkResult struct {
	W      float64 `json:"w"`
	PValue float64 `json:"p_value"`
	N      int     `json:"n"`
}

// ShapiroWilk testa a normalidade de uma amostra pela aproximação de Royston
// (AS R94), válida para 3 <= n <= 5000
func ShapiroWilk(values []float64) (*ShapiroWilkResult, error) {
	n := len(values)
	if n < 3 {
		return nil, ErrInsufficientData
	}
	if n > 5000 {
		return nil, fmt.Errorf("teste de Shapiro-Wilk suporta no máximo 5000 observações, recebido: %d", n)
	}

	x := append([]float64(nil), values...)
	sort.Float64s(x)

	if x[0] == x[n-1] {
		return nil, ErrZeroVariance
	}

	normal := distuv.Normal{Mu: 0, Sigma: 1}

	// 1. Escores normais esperados (posições de Blom)
	m := make([]float64, n)
	var ssm float64
	for i := 0; i < n; i++ {
		m[i] = normal.Quantile((float64(i+1) - 0.375) / (float64(n) + 0.25))
		ssm += m[i] * m[i]
	}

	// 2. Coeficientes a_i com os polinômios de Royston para as caudas
	a := make([]float64, n)
	if n == 3 {
		a[0] = -math.Sqrt(0.5)
		a[2] = math.Sqrt(0.5)
	} else {
		u := 1 / math.Sqrt(float64(n))
		rsn := math.Sqrt(ssm)
		cn := m[n-1] / rsn
		an := cn + 0.221157*u - 0.147981*math.Pow(u, 2) -
			2.071190*math.Pow(u, 3) + 4.434685*math.Pow(u, 4) - 2.706056*math.Pow(u, 5)

		if n > 5 {
			cn1 := m[n-2] / rsn
			an1 := cn1 + 0.042981*u - 0.293762*math.Pow(u, 2) -
				1.752461*math.Pow(u, 3) + 5.682633*math.Pow(u, 4) - 3.582633*math.Pow(u, 5)

			phi := (ssm - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) / (1 - 2*an*an - 2*an1*an1)
			for i := 2; i < n-2; i++ {
				a[i] = m[i] / math.Sqrt(phi)
			}
			a[n-1] = an
			a[n-2] = an1
			a[0] = -an
			a[1] = -an1
		} else {
			phi := (ssm - 2*m[n-1]*m[n-1]) / (1 - 2*an*an)
			for i := 1; i < n-1; i++ {
				a[i] = m[i] / math.Sqrt(phi)
			}
			a[n-1] = an
			a[0] = -an
		}
	}

	// 3. Estatística W
	mean := stat.Mean(x, nil)
	var num, den float64
	for i := 0; i < n; i++ {
		num += a[i] * x[i]
		den += (x[i] - mean) * (x[i] - mean)
	}
	w := num * num / den
	if w > 1 {
		w = 1
	}

	// 4. p-valor pela transformação normalizadora
	var p float64
	switch {
	case n == 3:
		p = (6 / math.Pi) * (math.Asin(math.Sqrt(w)) - math.Asin(math.Sqrt(0.75)))
		p = math.Max(0, math.Min(1, p))
	case n <= 11:
		fn := float64(n)
		gamma := -2.273 + 0.459*fn
		wt := -math.Log(gamma - math.Log(1-w))
		mu := 0.5440 - 0.39978*fn + 0.025054*fn*fn - 0.0006714*fn*fn*fn
		sigma := math.Exp(1.3822 - 0.77857*fn + 0.062767*fn*fn - 0.0020322*fn*fn*fn)
		p = 1 - normal.CDF((wt-mu)/sigma)
	default:
		ln := math.Log(float64(n))
		wt := math.Log(1 - w)
		mu := -1.5861 - 0.31082*ln - 0.083751*ln*ln + 0.0038915*ln*ln*ln
		sigma := math.Exp(-0.4803 - 0.082676*ln + 0.0030302*ln*ln)
		p = 1 - normal.CDF((wt-mu)/sigma)
	}

	return &ShapiroWilkResult{W: w, PValue: p, N: n}, nil
}
