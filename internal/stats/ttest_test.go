package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWelchTTest(t *testing.T) {
	testCases := []struct {
		name     string
		a        []float64
		b        []float64
		err      error
		validate func(t *testing.T, r *TTestResult)
	}{
		{
			name: "Deve calcular t e os graus de liberdade de Welch",
			a:    []float64{1, 2, 3, 4},
			b:    []float64{3, 4, 5, 6},
			validate: func(t *testing.T, r *TTestResult) {
				assert.InDelta(t, -2.1909, r.T, 1e-4)
				assert.InDelta(t, 6.0, r.DF, 1e-9)
				assert.InDelta(t, 0.0709, r.PValue, 1e-3)
				assert.InDelta(t, -1.549, r.CohensD, 1e-3)
			},
		},
		{
			name: "Deve obter p próximo de um para amostras iguais",
			a:    []float64{5, 6, 7},
			b:    []float64{5, 6, 7},
			validate: func(t *testing.T, r *TTestResult) {
				assert.InDelta(t, 0.0, r.T, 1e-9)
				assert.InDelta(t, 1.0, r.PValue, 1e-6)
			},
		},
		{
			name: "Deve retornar erro com amostra de uma observação",
			a:    []float64{1},
			b:    []float64{2, 3},
			err:  ErrInsufficientData,
		},
		{
			name: "Deve retornar erro com variâncias nulas",
			a:    []float64{4, 4},
			b:    []float64{9, 9},
			err:  ErrZeroVariance,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := WelchTTest(tc.a, tc.b)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			assert.NoError(t, err)
			tc.validate(t, r)
		})
	}
}
