package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullFactorialDesign(t *testing.T) {
	t.Run("Deve gerar as combinações com o último fator variando mais rápido", func(t *testing.T) {
		design := FullFactorialDesign(3)
		assert.Len(t, design, 8)
		assert.Equal(t, []int{0, 0, 0}, design[0])
		assert.Equal(t, []int{0, 0, 1}, design[1])
		assert.Equal(t, []int{0, 1, 0}, design[2])
		assert.Equal(t, []int{1, 1, 1}, design[7])
	})

	t.Run("Deve gerar o desenho mínimo com um fator", func(t *testing.T) {
		design := FullFactorialDesign(1)
		assert.Equal(t, [][]int{{0}, {1}}, design)
	})
}

func TestAnalyzeFactorial(t *testing.T) {
	t.Run("Deve estimar os efeitos principais de um fatorial 2x2", func(t *testing.T) {
		factors := []string{"contentQuality", "pageLoadTime"}
		runs := [][]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
		responses := []float64{10, 8, 13, 12}

		r, err := AnalyzeFactorial(factors, runs, responses)
		assert.NoError(t, err)
		assert.Len(t, r.Effects, 2)

		first := r.Effects[0]
		assert.Equal(t, "contentQuality", first.Factor)
		assert.InDelta(t, 9.0, first.MeanLow, 1e-9)
		assert.InDelta(t, 12.5, first.MeanHigh, 1e-9)
		assert.InDelta(t, 3.5, first.Effect, 1e-9)
		assert.InDelta(t, 7.0, first.TValue, 1e-6)
		assert.InDelta(t, 0.0903, first.PValue, 1e-3)

		second := r.Effects[1]
		assert.Equal(t, "pageLoadTime", second.Factor)
		assert.InDelta(t, -1.5, second.Effect, 1e-9)
		assert.InDelta(t, -3.0, second.TValue, 1e-6)
		assert.InDelta(t, 0.2048, second.PValue, 1e-3)

		assert.NotNil(t, r.Model)
		assert.Equal(t, 1, r.Model.DFResid)
	})

	t.Run("Deve retornar erro para nível fora de 0 e 1", func(t *testing.T) {
		_, err := AnalyzeFactorial(
			[]string{"f"},
			[][]int{{0}, {2}, {1}, {0}},
			[]float64{1, 2, 3, 4},
		)
		assert.Error(t, err)
	})

	t.Run("Deve retornar erro para execução com níveis faltando", func(t *testing.T) {
		_, err := AnalyzeFactorial(
			[]string{"f1", "f2"},
			[][]int{{0, 0}, {1}, {1, 0}, {0, 1}},
			[]float64{1, 2, 3, 4},
		)
		assert.Error(t, err)
	})

	t.Run("Deve retornar erro para respostas desalinhadas", func(t *testing.T) {
		_, err := AnalyzeFactorial(
			[]string{"f"},
			[][]int{{0}, {1}},
			[]float64{1},
		)
		assert.ErrorIs(t, err, ErrInsufficientData)
	})
}
