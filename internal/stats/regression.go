package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Coefficient é um termo estimado da regressão
type Coefficient struct {
	Name     string  `json:"name"`
	Estimate float64 `json:"estimate"`
	StdErr   float64 `json:"std_err"`
	TValue   float64 `json:"t_value"`
	PValue   float64 `json:"p_value"`
}

// OLSResult é o ajuste de mínimos quadrados ordinários com os diagnósticos
// usados nos relatórios de regressão e de DOE
type OLSResult struct {
	Dependent    string        `json:"dependent"`
	Coefficients []Coefficient `json:"coefficients"`
	Fitted       []float64     `json:"fitted"`
	Residuals    []float64     `json:"residuals"`
	R2           float64       `json:"r2"`
	AdjR2        float64       `json:"adj_r2"`
	FStat        float64       `json:"f_stat"`
	FPValue      float64       `json:"f_p_value"`
	DFModel      int           `json:"df_model"`
	DFResid      int           `json:"df_resid"`
	N            int           `json:"n"`
}

// VIFEntry é o fator de inflação de variância de uma coluna da matriz de
// desenho
type VIFEntry struct {
	Feature string  `json:"feature"`
	VIF     float64 `json:"vif"`
}

// OLS ajusta dependent ~ const + regressors por mínimos quadrados. As colunas
// de regressors devem ter o mesmo tamanho de y.
func OLS(dependent string, names []string, regressors [][]float64, y []float64) (*OLSResult, error) {
	n := len(y)
	p := len(regressors) + 1
	if len(names) != len(regressors) {
		return nil, fmt.Errorf("quantidade de nomes (%d) difere das colunas (%d)", len(names), len(regressors))
	}
	for i, col := range regressors {
		if len(col) != n {
			return nil, fmt.Errorf("coluna %q com %d valores, esperado %d", names[i], len(col), n)
		}
	}
	if n <= p {
		return nil, ErrInsufficientData
	}

	// 1. Matriz de desenho com intercepto
	x := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
		for j, col := range regressors {
			x.Set(i, j+1, col[i])
		}
	}

	// 2. Ajuste via QR
	beta, fitted, rss, err := leastSquares(x, y)
	if err != nil {
		return nil, err
	}

	residuals := make([]float64, n)
	var mean float64
	for _, v := range y {
		mean += v
	}
	mean /= float64(n)

	var tss float64
	for i, v := range y {
		residuals[i] = v - fitted[i]
		tss += (v - mean) * (v - mean)
	}
	if tss == 0 {
		return nil, ErrZeroVariance
	}

	// 3. Erros padrão via (X'X)^-1
	var xtx, xtxInv mat.Dense
	xtx.Mul(x.T(), x)
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, fmt.Errorf("matriz de desenho singular: %w", err)
	}

	dfResid := n - p
	s2 := rss / float64(dfResid)
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(dfResid)}

	coefficients := make([]Coefficient, p)
	coefNames := append([]string{"const"}, names...)
	for j := 0; j < p; j++ {
		se := math.Sqrt(s2 * xtxInv.At(j, j))
		t := beta[j] / se
		coefficients[j] = Coefficient{
			Name:     coefNames[j],
			Estimate: beta[j],
			StdErr:   se,
			TValue:   t,
			PValue:   2 * (1 - tDist.CDF(math.Abs(t))),
		}
	}

	// 4. Qualidade do ajuste
	r2 := 1 - rss/tss
	dfModel := p - 1
	result := &OLSResult{
		Dependent:    dependent,
		Coefficients: coefficients,
		Fitted:       fitted,
		Residuals:    residuals,
		R2:           r2,
		AdjR2:        1 - (1-r2)*float64(n-1)/float64(dfResid),
		DFModel:      dfModel,
		DFResid:      dfResid,
		N:            n,
	}

	if dfModel > 0 {
		result.FStat = ((tss - rss) / float64(dfModel)) / (rss / float64(dfResid))
		fDist := distuv.F{D1: float64(dfModel), D2: float64(dfResid)}
		result.FPValue = 1 - fDist.CDF(result.FStat)
	}

	return result, nil
}

// VIF replica o cálculo do fator de inflação de variância sobre a matriz de
// desenho completa (constante incluída): cada coluna é regredida sobre as
// demais, sem intercepto adicional, usando o R² não centrado
func VIF(names []string, columns [][]float64) ([]VIFEntry, error) {
	p := len(columns)
	if p < 2 {
		return nil, ErrInsufficientData
	}
	n := len(columns[0])
	for i, col := range columns {
		if len(col) != n {
			return nil, fmt.Errorf("coluna %q com %d valores, esperado %d", names[i], len(col), n)
		}
	}

	entries := make([]VIFEntry, p)
	for i := 0; i < p; i++ {
		x := mat.NewDense(n, p-1, nil)
		for r := 0; r < n; r++ {
			c := 0
			for j := 0; j < p; j++ {
				if j == i {
					continue
				}
				x.Set(r, c, columns[j][r])
				c++
			}
		}

		_, _, rss, err := leastSquares(x, columns[i])
		if err != nil {
			return nil, err
		}

		var sumSq float64
		for _, v := range columns[i] {
			sumSq += v * v
		}

		r2 := 1.0
		if sumSq > 0 {
			r2 = 1 - rss/sumSq
		}

		vif := math.Inf(1)
		if 1-r2 > 1e-12 {
			vif = 1 / (1 - r2)
		}
		entries[i] = VIFEntry{Feature: names[i], VIF: vif}
	}

	return entries, nil
}

// leastSquares resolve X*beta = y via QR e devolve os coeficientes, os
// valores ajustados e a soma dos quadrados dos resíduos
func leastSquares(x *mat.Dense, y []float64) ([]float64, []float64, float64, error) {
	n, p := x.Dims()
	if len(y) != n {
		return nil, nil, 0, fmt.Errorf("resposta com %d valores, esperado %d", len(y), n)
	}

	var qr mat.QR
	qr.Factorize(x)

	var betaM mat.Dense
	if err := qr.SolveTo(&betaM, false, mat.NewDense(n, 1, append([]float64(nil), y...))); err != nil {
		return nil, nil, 0, fmt.Errorf("erro ao resolver o sistema de mínimos quadrados: %w", err)
	}

	beta := make([]float64, p)
	for j := 0; j < p; j++ {
		beta[j] = betaM.At(j, 0)
	}

	fitted := make([]float64, n)
	var rss float64
	for i := 0; i < n; i++ {
		var f float64
		for j := 0; j < p; j++ {
			f += x.At(i, j) * beta[j]
		}
		fitted[i] = f
		rss += (y[i] - f) * (y[i] - f)
	}

	return beta, fitted, rss, nil
}
