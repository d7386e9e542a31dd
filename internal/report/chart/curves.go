package chart

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Density descreve a curva normal de um grupo
type Density struct {
	Name   string
	Mean   float64
	StdDev float64
}

// BellCurves desenha uma curva de densidade normal por grupo sobre um
// domínio comum
func BellCurves(path, title, xLabel string, curves []Density) error {
	p := newPlot(title, xLabel, "Density")

	xMin, xMax := math.Inf(1), math.Inf(-1)
	for _, c := range curves {
		if c.Mean-4*c.StdDev < xMin {
			xMin = c.Mean - 4*c.StdDev
		}
		if c.Mean+4*c.StdDev > xMax {
			xMax = c.Mean + 4*c.StdDev
		}
	}
	p.X.Min = xMin
	p.X.Max = xMax

	for i, c := range curves {
		normal := distuv.Normal{Mu: c.Mean, Sigma: c.StdDev}
		f := plotter.NewFunction(normal.Prob)
		f.Samples = 200
		f.LineStyle.Color = plotutil.Color(i)
		f.LineStyle.Width = vg.Points(1.5)
		p.Add(f)
		p.Legend.Add(c.Name, f)
	}
	p.Legend.Top = true

	return save(p, path)
}

// QQPlot desenha os quantis dos resíduos padronizados contra os quantis
// teóricos da normal padrão, com a linha de identidade
func QQPlot(path, title string, residuals []float64) error {
	p := newPlot(title, "Theoretical Quantiles", "Sample Quantiles")

	n := len(residuals)
	mean := stat.Mean(residuals, nil)
	sigma := stat.StdDev(residuals, nil)
	if sigma == 0 {
		sigma = 1
	}

	standardized := make([]float64, n)
	for i, r := range residuals {
		standardized[i] = (r - mean) / sigma
	}
	sort.Float64s(standardized)

	normal := distuv.Normal{Mu: 0, Sigma: 1}
	points := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		q := (float64(i+1) - 0.375) / (float64(n) + 0.25)
		points[i].X = normal.Quantile(q)
		points[i].Y = standardized[i]
	}

	s, err := plotter.NewScatter(points)
	if err != nil {
		return err
	}
	s.GlyphStyle.Color = SteelBlue
	s.GlyphStyle.Radius = vg.Points(3)
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(s)

	lo := points[0].X
	hi := points[n-1].X
	identity, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return err
	}
	identity.LineStyle.Color = Red
	identity.LineStyle.Width = vg.Points(1.5)
	p.Add(identity)

	return save(p, path)
}
