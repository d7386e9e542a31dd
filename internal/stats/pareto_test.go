package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPareto(t *testing.T) {
	t.Run("Deve ordenar por impacto e marcar os poucos vitais", func(t *testing.T) {
		names := []string{
			"Navigation Structure",
			"Traffic Source Performance",
			"Content Engagement",
			"User Experience Issues",
			"Monetization Alignment",
			"SEO Optimization",
			"Technical Performance",
		}
		values := []float64{8, 28, 15, 22, 10, 5, 12}

		r, err := Pareto(names, values)
		assert.NoError(t, err)
		assert.Len(t, r.Items, 7)

		assert.Equal(t, "Traffic Source Performance", r.Items[0].Name)
		assert.InDelta(t, 28.0, r.Items[0].Percent, 1e-9)
		assert.InDelta(t, 28.0, r.Items[0].Cumulative, 1e-9)

		expectedCumulative := []float64{28, 50, 65, 77, 87, 95, 100}
		for i, item := range r.Items {
			assert.InDelta(t, expectedCumulative[i], item.Cumulative, 1e-9)
		}

		assert.Equal(t, 5, r.VitalFewCount)
		assert.InDelta(t, 87.0, r.VitalFewImpact, 1e-9)
		assert.True(t, r.Items[4].VitalFew)
		assert.False(t, r.Items[5].VitalFew)
	})

	t.Run("Deve manter a ordem de entrada em empates", func(t *testing.T) {
		r, err := Pareto([]string{"a", "b", "c"}, []float64{10, 10, 10})
		assert.NoError(t, err)
		assert.Equal(t, "a", r.Items[0].Name)
		assert.Equal(t, "b", r.Items[1].Name)
		assert.Equal(t, "c", r.Items[2].Name)
	})

	t.Run("Deve retornar erro para entradas vazias", func(t *testing.T) {
		_, err := Pareto(nil, nil)
		assert.ErrorIs(t, err, ErrInsufficientData)
	})

	t.Run("Deve retornar erro para impacto total zero", func(t *testing.T) {
		_, err := Pareto([]string{"a", "b"}, []float64{0, 0})
		assert.ErrorIs(t, err, ErrZeroVariance)
	})

	t.Run("Deve retornar erro para impacto negativo", func(t *testing.T) {
		_, err := Pareto([]string{"a", "b"}, []float64{5, -1})
		assert.Error(t, err)
	})
}
