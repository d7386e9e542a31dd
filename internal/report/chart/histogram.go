package chart

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Histogram desenha a distribuição dos valores em classes de largura fixa,
// com uma curva de densidade normal sobreposta quando withDensity é
// verdadeiro. As classes são calculadas aqui para manter o resultado
// determinístico.
func Histogram(path, title, xLabel, yLabel string, values []float64, bins int, withDensity bool) error {
	p := newPlot(title, xLabel, yLabel)

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if bins < 1 {
		bins = 1
	}
	if max == min {
		max = min + 1
	}
	width := (max - min) / float64(bins)

	counts := make([]float64, bins)
	centers := make([]string, bins)
	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	for i := 0; i < bins; i++ {
		center := min + (float64(i)+0.5)*width
		centers[i] = strconv.FormatFloat(center, 'g', 3, 64)
	}

	bars, err := plotter.NewBarChart(plotter.Values(counts), vg.Points(26))
	if err != nil {
		return err
	}
	bars.Color = SteelBlue
	p.Add(bars)
	p.NominalX(centers...)

	if withDensity {
		mean := stat.Mean(values, nil)
		sigma := stat.StdDev(values, nil)
		if sigma > 0 {
			// Densidade na escala de contagens: n * largura * pdf,
			// reposicionada sobre o eixo nominal das classes
			scale := float64(len(values)) * width
			curve := make(plotter.XYs, 0, 200)
			for i := 0; i <= 200; i++ {
				v := min + (max-min)*float64(i)/200
				x := (v - min) / width
				pdf := math.Exp(-((v-mean)*(v-mean))/(2*sigma*sigma)) / (sigma * math.Sqrt(2*math.Pi))
				curve = append(curve, plotter.XY{X: x - 0.5, Y: scale * pdf})
			}
			line, err := plotter.NewLine(curve)
			if err != nil {
				return err
			}
			line.LineStyle.Color = Orange
			line.LineStyle.Width = vg.Points(1.5)
			p.Add(line)
		}
	}

	return save(p, path)
}
