package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShapiroWilk(t *testing.T) {
	testCases := []struct {
		name     string
		values   []float64
		err      error
		validate func(t *testing.T, r *ShapiroWilkResult)
	}{
		{
			name:   "Deve obter W igual a um para três pontos equidistantes",
			values: []float64{1, 2, 3},
			validate: func(t *testing.T, r *ShapiroWilkResult) {
				assert.InDelta(t, 1.0, r.W, 1e-9)
				assert.InDelta(t, 1.0, r.PValue, 1e-6)
			},
		},
		{
			name:   "Deve aceitar a normalidade de uma amostra simétrica",
			values: []float64{2, 4, 5, 6, 8},
			validate: func(t *testing.T, r *ShapiroWilkResult) {
				assert.Greater(t, r.W, 0.9)
				assert.Greater(t, r.PValue, 0.05)
			},
		},
		{
			name:   "Deve rejeitar a normalidade de uma amostra degenerada",
			values: []float64{1, 1, 1, 1, 10},
			validate: func(t *testing.T, r *ShapiroWilkResult) {
				assert.Less(t, r.W, 0.8)
				assert.Less(t, r.PValue, 0.05)
			},
		},
		{
			name: "Deve manter o W no intervalo válido para amostras maiores",
			values: []float64{
				4.2, 5.1, 3.8, 6.0, 5.5, 4.9, 5.2, 4.4, 5.8, 4.7,
				5.0, 5.3, 4.1, 5.6, 4.8, 5.4, 4.6, 5.9, 4.3, 5.7,
			},
			validate: func(t *testing.T, r *ShapiroWilkResult) {
				assert.Greater(t, r.W, 0.0)
				assert.LessOrEqual(t, r.W, 1.0)
				assert.GreaterOrEqual(t, r.PValue, 0.0)
				assert.LessOrEqual(t, r.PValue, 1.0)
				assert.Greater(t, r.PValue, 0.05)
			},
		},
		{
			name:   "Deve retornar erro com menos de três observações",
			values: []float64{1, 2},
			err:    ErrInsufficientData,
		},
		{
			name:   "Deve retornar erro para amostra constante",
			values: []float64{5, 5, 5, 5},
			err:    ErrZeroVariance,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := ShapiroWilk(tc.values)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			assert.NoError(t, err)
			tc.validate(t, r)
		})
	}
}
