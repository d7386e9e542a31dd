package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevene(t *testing.T) {
	testCases := []struct {
		name     string
		groups   [][]float64
		err      error
		validate func(t *testing.T, r *LeveneResult)
	}{
		{
			name:   "Deve calcular a estatística centrada na mediana",
			groups: [][]float64{{1, 2, 3, 4}, {2, 4, 6, 8}},
			validate: func(t *testing.T, r *LeveneResult) {
				assert.InDelta(t, 2.4, r.W, 1e-9)
				assert.Equal(t, 1, r.DFNum)
				assert.Equal(t, 6, r.DFDen)
				assert.InDelta(t, 0.172, r.PValue, 0.01)
			},
		},
		{
			name:   "Deve aceitar a homogeneidade de grupos idênticos em dispersão",
			groups: [][]float64{{1, 2, 3}, {11, 12, 13}, {21, 22, 23}},
			validate: func(t *testing.T, r *LeveneResult) {
				assert.InDelta(t, 0.0, r.W, 1e-9)
				assert.InDelta(t, 1.0, r.PValue, 1e-6)
			},
		},
		{
			name:   "Deve retornar erro com um único grupo",
			groups: [][]float64{{1, 2, 3}},
			err:    ErrInsufficientData,
		},
		{
			name:   "Deve retornar erro com grupo de uma observação",
			groups: [][]float64{{1, 2, 3}, {4}},
			err:    ErrInsufficientData,
		},
		{
			name:   "Deve retornar erro quando todos os desvios são zero",
			groups: [][]float64{{5, 5, 5}, {7, 7, 7}},
			err:    ErrZeroVariance,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := Levene(tc.groups...)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			assert.NoError(t, err)
			tc.validate(t, r)
		})
	}
}
