package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Capability reúne os índices de capacidade do processo de uma métrica
type Capability struct {
	Metric string  `json:"metric"`
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	USL    float64 `json:"usl"`
	LSL    float64 `json:"lsl"`
	Target float64 `json:"target"`
	Cp     float64 `json:"cp"`
	Cpu    float64 `json:"cpu"`
	Cpl    float64 `json:"cpl"`
	Cpk    float64 `json:"cpk"`
	Cpm    float64 `json:"cpm"`
}

// ProcessCapability calcula Cp, Cpu, Cpl, Cpk e Cpm de uma amostra já limpa
// contra os limites de especificação informados
func ProcessCapability(metric string, values []float64, usl, lsl, target float64) (*Capability, error) {
	if len(values) < 2 {
		return nil, ErrInsufficientData
	}

	mean := stat.Mean(values, nil)
	std := stat.StdDev(values, nil)
	if std == 0 {
		return nil, ErrZeroVariance
	}

	cp := (usl - lsl) / (6 * std)
	cpu := (usl - mean) / (3 * std)
	cpl := (mean - lsl) / (3 * std)
	cpk := math.Min(cpu, cpl)
	cpm := cp / math.Sqrt(1+math.Pow((mean-target)/std, 2))

	return &Capability{
		Metric: metric,
		N:      len(values),
		Mean:   mean,
		StdDev: std,
		USL:    usl,
		LSL:    lsl,
		Target: target,
		Cp:     cp,
		Cpu:    cpu,
		Cpl:    cpl,
		Cpk:    cpk,
		Cpm:    cpm,
	}, nil
}

// Classification devolve o veredito do processo segundo o Cpk, no texto em
// inglês usado nos relatórios: capaz quando atinge a capacidade alvo,
// marginal a partir de 1.0
func (c *Capability) Classification(target float64) string {
	switch {
	case c.Cpk >= target:
		return "Capable"
	case c.Cpk >= 1.0:
		return "Marginal"
	default:
		return "Incapable"
	}
}
