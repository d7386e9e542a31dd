package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessCapability(t *testing.T) {
	testCases := []struct {
		name     string
		values   []float64
		usl      float64
		lsl      float64
		target   float64
		err      error
		validate func(t *testing.T, c *Capability)
	}{
		{
			name:   "Deve calcular os índices de um processo centrado",
			values: []float64{8, 10, 12},
			usl:    16,
			lsl:    4,
			target: 10,
			validate: func(t *testing.T, c *Capability) {
				assert.Equal(t, 3, c.N)
				assert.InDelta(t, 10.0, c.Mean, 1e-9)
				assert.InDelta(t, 2.0, c.StdDev, 1e-9)
				assert.InDelta(t, 1.0, c.Cp, 1e-9)
				assert.InDelta(t, 1.0, c.Cpu, 1e-9)
				assert.InDelta(t, 1.0, c.Cpl, 1e-9)
				assert.InDelta(t, 1.0, c.Cpk, 1e-9)
				assert.InDelta(t, 1.0, c.Cpm, 1e-9)
			},
		},
		{
			name:   "Deve penalizar o Cpk e o Cpm de um processo descentrado",
			values: []float64{10, 12, 14},
			usl:    16,
			lsl:    4,
			target: 10,
			validate: func(t *testing.T, c *Capability) {
				assert.InDelta(t, 1.0, c.Cp, 1e-9)
				assert.InDelta(t, 0.6667, c.Cpu, 1e-4)
				assert.InDelta(t, 1.3333, c.Cpl, 1e-4)
				assert.InDelta(t, 0.6667, c.Cpk, 1e-4)
				assert.InDelta(t, 0.7071, c.Cpm, 1e-4)
			},
		},
		{
			name:   "Deve retornar erro com menos de duas observações",
			values: []float64{10},
			usl:    16,
			lsl:    4,
			target: 10,
			err:    ErrInsufficientData,
		},
		{
			name:   "Deve retornar erro com desvio padrão zero",
			values: []float64{10, 10, 10},
			usl:    16,
			lsl:    4,
			target: 10,
			err:    ErrZeroVariance,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := ProcessCapability("totalUsers", tc.values, tc.usl, tc.lsl, tc.target)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			assert.NoError(t, err)
			tc.validate(t, c)
		})
	}
}

func TestCapabilityClassification(t *testing.T) {
	capable := &Capability{Cpk: 1.5}
	marginal := &Capability{Cpk: 1.1}
	incapable := &Capability{Cpk: 0.8}

	assert.Equal(t, "Capable", capable.Classification(1.33))
	assert.Equal(t, "Marginal", marginal.Classification(1.33))
	assert.Equal(t, "Incapable", incapable.Classification(1.33))
}
