package chart

import (
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// BoxPlots desenha um diagrama de caixa por grupo, com os grupos no eixo X
func BoxPlots(path, title, xLabel, yLabel string, names []string, groups [][]float64) error {
	p := newPlot(title, xLabel, yLabel)

	for i, g := range groups {
		box, err := plotter.NewBoxPlot(vg.Points(24), float64(i), plotter.Values(g))
		if err != nil {
			return err
		}
		p.Add(box)
	}
	p.NominalX(names...)

	return save(p, path)
}
