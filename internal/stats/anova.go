package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// AnovaTerm é uma linha da tabela ANOVA
type AnovaTerm struct {
	Name   string  `json:"name"`
	SumSq  float64 `json:"sum_sq"`
	DF     int     `json:"df"`
	MeanSq float64 `json:"mean_sq"`
	F      float64 `json:"f"`
	PValue float64 `json:"p_value"`
}

// OneWayResult resume a ANOVA de um fator
type OneWayResult struct {
	FStat     float64 `json:"f_stat"`
	PValue    float64 `json:"p_value"`
	DFBetween int     `json:"df_between"`
	DFWithin  int     `json:"df_within"`
	SSBetween float64 `json:"ss_between"`
	SSWithin  float64 `json:"ss_within"`
	MSBetween float64 `json:"ms_between"`
	MSWithin  float64 `json:"ms_within"`
}

// TwoWayResult resume a ANOVA de dois fatores. Quando a interação não é
// estimável (células vazias ou graus de liberdade insuficientes), Terms
// carrega apenas os efeitos principais.
type TwoWayResult struct {
	Terms    []AnovaTerm `json:"terms"`
	Residual AnovaTerm   `json:"residual"`
}

// OneWayANOVA compara as médias de dois ou mais grupos independentes. Cada
// grupo precisa de ao menos duas observações.
func OneWayANOVA(groups ...[]float64) (*OneWayResult, error) {
	k := len(groups)
	if k < 2 {
		return nil, ErrInsufficientData
	}

	// 1. Médias por grupo e média global
	var grandSum float64
	n := 0
	for _, g := range groups {
		if len(g) < 2 {
			return nil, ErrInsufficientData
		}
		for _, v := range g {
			grandSum += v
		}
		n += len(g)
	}
	grandMean := grandSum / float64(n)

	// 2. Decomposição das somas de quadrados
	var ssb, ssw float64
	for _, g := range groups {
		var sum float64
		for _, v := range g {
			sum += v
		}
		mean := sum / float64(len(g))
		ssb += float64(len(g)) * (mean - grandMean) * (mean - grandMean)
		for _, v := range g {
			ssw += (v - mean) * (v - mean)
		}
	}
	if ssw == 0 {
		return nil, ErrZeroVariance
	}

	dfb := k - 1
	dfw := n - k
	msb := ssb / float64(dfb)
	msw := ssw / float64(dfw)
	f := msb / msw
	fDist := distuv.F{D1: float64(dfb), D2: float64(dfw)}

	return &OneWayResult{
		FStat:     f,
		PValue:    1 - fDist.CDF(f),
		DFBetween: dfb,
		DFWithin:  dfw,
		SSBetween: ssb,
		SSWithin:  ssw,
		MSBetween: msb,
		MSWithin:  msw,
	}, nil
}

// TwoWayANOVA ajusta y ~ A + B + A:B com somas de quadrados do tipo II,
// obtidas por comparação de modelos encaixados. factorA, factorB e y devem
// ter o mesmo tamanho.
func TwoWayANOVA(nameA, nameB string, factorA, factorB []string, y []float64) (*TwoWayResult, error) {
	n := len(y)
	if len(factorA) != n || len(factorB) != n {
		return nil, fmt.Errorf("fatores com tamanhos %d e %d, esperado %d", len(factorA), len(factorB), n)
	}

	levelsA := distinctLevels(factorA)
	levelsB := distinctLevels(factorB)
	a := len(levelsA)
	b := len(levelsB)
	if a < 2 || b < 2 {
		return nil, ErrInsufficientData
	}

	dummiesA := dummyColumns(factorA, levelsA)
	dummiesB := dummyColumns(factorB, levelsB)

	// 1. Interação só entra quando todas as células têm observações e
	// sobra grau de liberdade para o resíduo
	withInteraction := completeCells(factorA, factorB, levelsA, levelsB)
	pFull := 1 + (a - 1) + (b - 1) + (a-1)*(b-1)
	if n-pFull < 1 {
		withInteraction = false
	}
	pAdditive := 1 + (a - 1) + (b - 1)
	if n-pAdditive < 1 {
		return nil, ErrInsufficientData
	}

	// 2. RSS dos modelos encaixados
	rssA, err := dummyFit(y, dummiesA...)
	if err != nil {
		return nil, err
	}
	rssB, err := dummyFit(y, dummiesB...)
	if err != nil {
		return nil, err
	}
	rssAdditive, err := dummyFit(y, append(append([][]float64{}, dummiesA...), dummiesB...)...)
	if err != nil {
		return nil, err
	}

	rssFull := rssAdditive
	if withInteraction {
		columns := append(append([][]float64{}, dummiesA...), dummiesB...)
		for _, da := range dummiesA {
			for _, db := range dummiesB {
				prod := make([]float64, n)
				for i := range prod {
					prod[i] = da[i] * db[i]
				}
				columns = append(columns, prod)
			}
		}
		rssFull, err = dummyFit(y, columns...)
		if err != nil {
			return nil, err
		}
	}

	dfResid := n - pAdditive
	if withInteraction {
		dfResid = n - pFull
	}
	if rssFull <= 0 {
		return nil, ErrZeroVariance
	}
	msResid := rssFull / float64(dfResid)

	// 3. Somas de quadrados do tipo II
	terms := []AnovaTerm{
		newAnovaTerm(nameA, rssB-rssAdditive, a-1, msResid, dfResid),
		newAnovaTerm(nameB, rssA-rssAdditive, b-1, msResid, dfResid),
	}
	if withInteraction {
		terms = append(terms, newAnovaTerm(
			fmt.Sprintf("%s:%s", nameA, nameB),
			rssAdditive-rssFull,
			(a-1)*(b-1),
			msResid,
			dfResid,
		))
	}

	return &TwoWayResult{
		Terms: terms,
		Residual: AnovaTerm{
			Name:   "Residual",
			SumSq:  rssFull,
			DF:     dfResid,
			MeanSq: msResid,
			F:      math.NaN(),
			PValue: math.NaN(),
		},
	}, nil
}

func newAnovaTerm(name string, sumSq float64, df int, msResid float64, dfResid int) AnovaTerm {
	if sumSq < 0 {
		sumSq = 0
	}
	meanSq := sumSq / float64(df)
	f := meanSq / msResid
	fDist := distuv.F{D1: float64(df), D2: float64(dfResid)}
	return AnovaTerm{
		Name:   name,
		SumSq:  sumSq,
		DF:     df,
		MeanSq: meanSq,
		F:      f,
		PValue: 1 - fDist.CDF(f),
	}
}

// dummyFit ajusta y sobre o intercepto mais as colunas indicadoras e devolve
// a soma dos quadrados dos resíduos
func dummyFit(y []float64, columns ...[]float64) (float64, error) {
	n := len(y)
	x := mat.NewDense(n, 1+len(columns), nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
		for j, col := range columns {
			x.Set(i, j+1, col[i])
		}
	}
	_, _, rss, err := leastSquares(x, y)
	return rss, err
}

// distinctLevels preserva a ordem de primeira aparição
func distinctLevels(factor []string) []string {
	seen := make(map[string]bool, len(factor))
	levels := make([]string, 0, len(factor))
	for _, v := range factor {
		if !seen[v] {
			seen[v] = true
			levels = append(levels, v)
		}
	}
	return levels
}

// dummyColumns codifica o fator com o primeiro nível como referência
func dummyColumns(factor []string, levels []string) [][]float64 {
	columns := make([][]float64, 0, len(levels)-1)
	for _, level := range levels[1:] {
		col := make([]float64, len(factor))
		for i, v := range factor {
			if v == level {
				col[i] = 1
			}
		}
		columns = append(columns, col)
	}
	return columns
}

func completeCells(factorA, factorB []string, levelsA, levelsB []string) bool {
	counts := make(map[string]int, len(levelsA)*len(levelsB))
	for i := range factorA {
		counts[factorA[i]+"\x00"+factorB[i]]++
	}
	for _, la := range levelsA {
		for _, lb := range levelsB {
			if counts[la+"\x00"+lb] == 0 {
				return false
			}
		}
	}
	return true
}
