package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestStudentizedRangeCDF(t *testing.T) {
	t.Run("Deve coincidir com a distribuição t para dois grupos", func(t *testing.T) {
		// Para k=2 vale P(Q <= q) = 2*T(q/sqrt(2)) - 1
		tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: 10}
		for _, q := range []float64{0.5, 1.0, 2.0, 3.5} {
			expected := 2*tDist.CDF(q/math.Sqrt2) - 1
			assert.InDelta(t, expected, studentizedRangeCDF(q, 2, 10), 1e-3)
		}
	})

	t.Run("Deve reproduzir o quantil tabelado de 95%", func(t *testing.T) {
		// q(0.95; k=3, nu=10) = 3.877 nas tabelas da amplitude studentizada
		assert.InDelta(t, 0.95, studentizedRangeCDF(3.877, 3, 10), 3e-3)
		assert.InDelta(t, 3.877, studentizedRangeQuantile(0.95, 3, 10), 2e-2)
	})

	t.Run("Deve ser zero para argumento não positivo", func(t *testing.T) {
		assert.Equal(t, 0.0, studentizedRangeCDF(0, 3, 10))
		assert.Equal(t, 0.0, studentizedRangeCDF(-1, 3, 10))
	})
}

func TestTukeyHSD(t *testing.T) {
	t.Run("Deve comparar todos os pares sem rejeições em grupos próximos", func(t *testing.T) {
		names := []string{"page_view", "session_start", "click"}
		groups := [][]float64{{1, 2, 3}, {2, 3, 4}, {3, 4, 5}}

		r, err := TukeyHSD(0.05, names, groups)
		assert.NoError(t, err)
		assert.Len(t, r.Comparisons, 3)

		first := r.Comparisons[0]
		assert.Equal(t, "page_view", first.GroupA)
		assert.Equal(t, "session_start", first.GroupB)
		assert.InDelta(t, 1.0, first.MeanDiff, 1e-9)

		last := r.Comparisons[2]
		assert.Equal(t, "session_start", last.GroupA)
		assert.Equal(t, "click", last.GroupB)
		assert.InDelta(t, 1.0, last.MeanDiff, 1e-9)

		extreme := r.Comparisons[1]
		assert.InDelta(t, 2.0, extreme.MeanDiff, 1e-9)
		assert.Less(t, extreme.PValue, first.PValue)

		for _, c := range r.Comparisons {
			assert.False(t, c.Reject)
			assert.Less(t, c.Lower, c.MeanDiff)
			assert.Greater(t, c.Upper, c.MeanDiff)
		}
	})

	t.Run("Deve rejeitar pares claramente separados", func(t *testing.T) {
		names := []string{"g1", "g2"}
		groups := [][]float64{{1, 2, 1, 2, 1, 2}, {9, 10, 9, 10, 9, 10}}

		r, err := TukeyHSD(0.05, names, groups)
		assert.NoError(t, err)
		assert.Len(t, r.Comparisons, 1)
		assert.True(t, r.Comparisons[0].Reject)
		assert.Less(t, r.Comparisons[0].PValue, 0.01)
	})

	t.Run("Deve propagar erro de dados insuficientes", func(t *testing.T) {
		_, err := TukeyHSD(0.05, []string{"g1"}, [][]float64{{1, 2}})
		assert.ErrorIs(t, err, ErrInsufficientData)
	})
}
