package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKruskalWallis(t *testing.T) {
	testCases := []struct {
		name     string
		groups   [][]float64
		err      error
		validate func(t *testing.T, r *KruskalResult)
	}{
		{
			name:   "Deve calcular a estatística H sem empates",
			groups: [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}},
			validate: func(t *testing.T, r *KruskalResult) {
				assert.InDelta(t, 7.2, r.H, 1e-9)
				assert.Equal(t, 2, r.DF)
				assert.InDelta(t, 0.0273, r.PValue, 1e-3)
			},
		},
		{
			name:   "Deve aplicar a correção para empates",
			groups: [][]float64{{1, 1, 2}, {2, 3, 3}},
			validate: func(t *testing.T, r *KruskalResult) {
				assert.InDelta(t, 3.3333, r.H, 1e-3)
				assert.Equal(t, 1, r.DF)
				assert.InDelta(t, 0.0679, r.PValue, 1e-3)
			},
		},
		{
			name:   "Deve aceitar grupos com uma única observação",
			groups: [][]float64{{1}, {2, 3}, {4, 5}},
			validate: func(t *testing.T, r *KruskalResult) {
				assert.Equal(t, 2, r.DF)
				assert.GreaterOrEqual(t, r.PValue, 0.0)
				assert.LessOrEqual(t, r.PValue, 1.0)
			},
		},
		{
			name:   "Deve retornar erro com um único grupo",
			groups: [][]float64{{1, 2, 3}},
			err:    ErrInsufficientData,
		},
		{
			name:   "Deve retornar erro com grupo vazio",
			groups: [][]float64{{1, 2}, {}},
			err:    ErrInsufficientData,
		},
		{
			name:   "Deve retornar erro quando todos os valores empatam",
			groups: [][]float64{{3, 3}, {3, 3}},
			err:    ErrZeroVariance,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := KruskalWallis(tc.groups...)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			assert.NoError(t, err)
			tc.validate(t, r)
		})
	}
}
