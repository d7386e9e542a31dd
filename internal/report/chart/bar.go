package chart

import (
	"image/color"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// BarSeries é uma série de um gráfico de barras agrupadas
type BarSeries struct {
	Name   string
	Values []float64
}

// HLine é uma linha horizontal de referência
type HLine struct {
	Y      float64
	Label  string
	Color  color.Color
	Dashed bool
}

// Bars desenha barras nomeadas, com o valor anotado sobre cada barra quando
// labels não é nulo
func Bars(path, title, xLabel, yLabel string, names []string, values []float64, labels []string, fill color.Color) error {
	p := newPlot(title, xLabel, yLabel)

	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(28))
	if err != nil {
		return err
	}
	bars.Color = fill
	p.Add(bars)
	p.NominalX(names...)

	if labels != nil {
		xys := make(plotter.XYs, len(values))
		for i, v := range values {
			xys[i].X = float64(i)
			xys[i].Y = v
		}
		if err := addValueLabels(p, xys, labels); err != nil {
			return err
		}
	}

	return save(p, path)
}

// GroupedBars desenha séries lado a lado por categoria, com legenda e uma
// linha de referência opcional
func GroupedBars(path, title, xLabel, yLabel string, names []string, series []BarSeries, reference *HLine) error {
	p := newPlot(title, xLabel, yLabel)

	width := vg.Points(14)
	for i, s := range series {
		bars, err := plotter.NewBarChart(plotter.Values(s.Values), width)
		if err != nil {
			return err
		}
		bars.Color = plotutil.Color(i)
		bars.Offset = vg.Length(float64(i)-float64(len(series)-1)/2) * width
		p.Add(bars)
		p.Legend.Add(s.Name, bars)
	}
	p.NominalX(names...)
	p.Legend.Top = true

	if reference != nil {
		line, err := horizontalLine(reference.Y, -0.5, float64(len(names))-0.5, reference.Color, reference.Dashed)
		if err != nil {
			return err
		}
		p.Add(line)
		if reference.Label != "" {
			p.Legend.Add(reference.Label, line)
		}
	}

	return save(p, path)
}
