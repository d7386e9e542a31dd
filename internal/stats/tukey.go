package stats

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/stat/distuv"
)

// TukeyComparison é um par de grupos do teste post-hoc de Tukey
type TukeyComparison struct {
	GroupA   string  `json:"group_a"`
	GroupB   string  `json:"group_b"`
	MeanDiff float64 `json:"mean_diff"`
	PValue   float64 `json:"p_value"`
	Lower    float64 `json:"lower"`
	Upper    float64 `json:"upper"`
	Reject   bool    `json:"reject"`
}

// TukeyResult agrega as comparações par a par
type TukeyResult struct {
	Alpha       float64           `json:"alpha"`
	QCritical   float64           `json:"q_critical"`
	Comparisons []TukeyComparison `json:"comparisons"`
}

// TukeyHSD executa o teste de diferença honestamente significativa de Tukey
// sobre os grupos, com o ajuste de Tukey-Kramer para tamanhos desiguais.
// names e groups devem estar alinhados.
func TukeyHSD(alpha float64, names []string, groups [][]float64) (*TukeyResult, error) {
	k := len(groups)
	if k < 2 || len(names) != k {
		return nil, ErrInsufficientData
	}

	// 1. Quadrado médio do erro da ANOVA de um fator
	oneWay, err := OneWayANOVA(groups...)
	if err != nil {
		return nil, err
	}
	msw := oneWay.MSWithin
	df := oneWay.DFWithin

	means := make([]float64, k)
	for i, g := range groups {
		var sum float64
		for _, v := range g {
			sum += v
		}
		means[i] = sum / float64(len(g))
	}

	qCrit := studentizedRangeQuantile(1-alpha, k, df)

	// 2. Comparações par a par
	comparisons := make([]TukeyComparison, 0, k*(k-1)/2)
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			diff := means[j] - means[i]
			se := math.Sqrt(msw / 2 * (1/float64(len(groups[i])) + 1/float64(len(groups[j]))))
			q := math.Abs(diff) / se
			p := 1 - studentizedRangeCDF(q, k, df)
			if p < 0 {
				p = 0
			}
			comparisons = append(comparisons, TukeyComparison{
				GroupA:   names[i],
				GroupB:   names[j],
				MeanDiff: diff,
				PValue:   p,
				Lower:    diff - qCrit*se,
				Upper:    diff + qCrit*se,
				Reject:   p < alpha,
			})
		}
	}

	return &TukeyResult{
		Alpha:       alpha,
		QCritical:   qCrit,
		Comparisons: comparisons,
	}, nil
}

// studentizedRangeCDF devolve P(Q <= q) para a amplitude studentizada com k
// grupos e nu graus de liberdade do erro, por quadratura de Gauss-Legendre
func studentizedRangeCDF(q float64, k, nu int) float64 {
	if q <= 0 {
		return 0
	}

	// 1. Para nu grande a escala converge a 1 e a integral externa colapsa
	if nu > 200 {
		return clampProbability(normalRangeCDF(q, k))
	}

	// 2. Integra sobre a distribuição qui da escala s = sqrt(chi2/nu)
	fnu := float64(nu)
	logConst := fnu/2*math.Log(fnu) - (fnu/2-1)*math.Ln2
	lg, _ := math.Lgamma(fnu / 2)
	logConst -= lg

	sMax := 1 + 14/math.Sqrt(2*fnu)
	if sMax < 2 {
		sMax = 2
	}

	integrand := func(s float64) float64 {
		if s <= 0 {
			return 0
		}
		logDensity := logConst + (fnu-1)*math.Log(s) - fnu*s*s/2
		return math.Exp(logDensity) * normalRangeCDF(q*s, k)
	}

	return clampProbability(quad.Fixed(integrand, 0, sMax, 192, quad.Legendre{}, 0))
}

// normalRangeCDF é P(amplitude de k normais padrão <= w)
func normalRangeCDF(w float64, k int) float64 {
	if w <= 0 {
		return 0
	}
	normal := distuv.Normal{Mu: 0, Sigma: 1}
	integrand := func(z float64) float64 {
		inner := normal.CDF(z) - normal.CDF(z-w)
		if inner <= 0 {
			return 0
		}
		return normal.Prob(z) * math.Pow(inner, float64(k-1))
	}
	return float64(k) * quad.Fixed(integrand, -8, w+8, 256, quad.Legendre{}, 0)
}

// studentizedRangeQuantile inverte a CDF por bissecção
func studentizedRangeQuantile(p float64, k, nu int) float64 {
	lo, hi := 0.0, 100.0
	for i := 0; i < 80; i++ {
		mid := (lo + hi) / 2
		if studentizedRangeCDF(mid, k, nu) < p {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo < 1e-9 {
			break
		}
	}
	return (lo + hi) / 2
}

func clampProbability(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
