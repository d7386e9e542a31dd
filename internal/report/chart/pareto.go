package chart

import (
	"fmt"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ParetoChart desenha as barras de impacto com a linha acumulada na mesma
// escala 0-100 e a regra dos 80%
func ParetoChart(path, title, xLabel, yLabel string, names []string, percents, cumulative []float64) error {
	p := newPlot(title, xLabel, yLabel)

	bars, err := plotter.NewBarChart(plotter.Values(percents), vg.Points(26))
	if err != nil {
		return err
	}
	bars.Color = SteelBlue
	p.Add(bars)
	p.Legend.Add("Impact (%)", bars)

	cumXYs := make(plotter.XYs, len(cumulative))
	cumLabels := make([]string, len(cumulative))
	for i, c := range cumulative {
		cumXYs[i].X = float64(i)
		cumXYs[i].Y = c
		cumLabels[i] = fmt.Sprintf("%.1f%%", c)
	}

	line, err := plotter.NewLine(cumXYs)
	if err != nil {
		return err
	}
	line.LineStyle.Color = Orange
	line.LineStyle.Width = vg.Points(2)
	p.Add(line)
	p.Legend.Add("Cumulative (%)", line)

	markers, err := plotter.NewScatter(cumXYs)
	if err != nil {
		return err
	}
	markers.GlyphStyle.Color = Orange
	markers.GlyphStyle.Radius = vg.Points(3.5)
	markers.GlyphStyle.Shape = draw.PyramidGlyph{}
	p.Add(markers)

	if err := addValueLabels(p, cumXYs, cumLabels); err != nil {
		return err
	}

	barXYs := make(plotter.XYs, len(percents))
	barLabels := make([]string, len(percents))
	for i, v := range percents {
		barXYs[i].X = float64(i)
		barXYs[i].Y = v
		barLabels[i] = fmt.Sprintf("%.0f%%", v)
	}
	if err := addValueLabels(p, barXYs, barLabels); err != nil {
		return err
	}

	rule, err := horizontalLine(80, -0.5, float64(len(names))-0.5, Red, true)
	if err != nil {
		return err
	}
	p.Add(rule)

	p.NominalX(names...)
	p.Y.Min = 0
	p.Y.Max = 110

	return save(p, path)
}
