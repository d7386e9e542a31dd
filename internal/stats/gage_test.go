package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGageRnR(t *testing.T) {
	t.Run("Deve estimar os componentes de variância de um estudo 2x2x2", func(t *testing.T) {
		measurements := [][][]float64{
			{{1, 2}, {3, 4}},
			{{2, 3}, {4, 5}},
		}

		r, err := GageRnR(measurements)
		assert.NoError(t, err)

		assert.Equal(t, 2, r.Operators)
		assert.Equal(t, 2, r.Parts)
		assert.Equal(t, 2, r.Replicates)

		assert.InDelta(t, 0.5, r.Repeatability, 1e-9)
		assert.InDelta(t, 0.5, r.Reproducibility, 1e-9)
		assert.InDelta(t, 1.0, r.GageVariance, 1e-9)
		assert.InDelta(t, 2.0, r.PartVariance, 1e-9)
		assert.InDelta(t, 3.0, r.TotalVariance, 1e-9)

		assert.InDelta(t, 33.333, r.PercentContributionRR, 1e-2)
		assert.InDelta(t, 57.735, r.PercentStudyVarRR, 1e-2)
		assert.Equal(t, 1, r.NDC)

		assert.Len(t, r.ANOVA, 4)
		assert.Equal(t, GageComponentOperator, r.ANOVA[0].Name)
		assert.InDelta(t, 2.0, r.ANOVA[0].SumSq, 1e-9)
		assert.Equal(t, GageComponentPart, r.ANOVA[1].Name)
		assert.InDelta(t, 8.0, r.ANOVA[1].SumSq, 1e-9)
		assert.Equal(t, GageComponentOperatorByPart, r.ANOVA[2].Name)
		assert.InDelta(t, 0.0, r.ANOVA[2].SumSq, 1e-9)
		assert.Equal(t, GageComponentMeasurement, r.ANOVA[3].Name)
		assert.InDelta(t, 2.0, r.ANOVA[3].SumSq, 1e-9)
		assert.Equal(t, 4, r.ANOVA[3].DF)

		var contribution float64
		for _, c := range r.Components {
			contribution += c.Contribution
		}
		assert.InDelta(t, 100.0, contribution, 1e-6)
	})

	t.Run("Deve zerar componentes com estimativa negativa", func(t *testing.T) {
		measurements := [][][]float64{
			{{1, 2}, {3, 4}},
			{{2, 3}, {4, 5}},
		}

		r, err := GageRnR(measurements)
		assert.NoError(t, err)

		for _, c := range r.Components {
			if c.Name == GageComponentOperatorByPart {
				assert.Equal(t, 0.0, c.Variance)
			}
		}
	})

	testCases := []struct {
		name         string
		measurements [][][]float64
	}{
		{
			name:         "Deve retornar erro com um único operador",
			measurements: [][][]float64{{{1, 2}, {3, 4}}},
		},
		{
			name:         "Deve retornar erro com uma única peça",
			measurements: [][][]float64{{{1, 2}}, {{3, 4}}},
		},
		{
			name:         "Deve retornar erro com uma única réplica",
			measurements: [][][]float64{{{1}, {2}}, {{3}, {4}}},
		},
		{
			name: "Deve retornar erro com estrutura irregular",
			measurements: [][][]float64{
				{{1, 2}, {3, 4}},
				{{2, 3}},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := GageRnR(tc.measurements)
			assert.ErrorIs(t, err, ErrInsufficientData)
		})
	}
}
