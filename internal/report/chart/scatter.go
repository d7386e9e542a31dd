package chart

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Scatter desenha pontos de dispersão, com uma linha tracejada em zero
// quando zeroLine é verdadeiro (diagnósticos de resíduos)
func Scatter(path, title, xLabel, yLabel string, points []Point, zeroLine bool) error {
	p := newPlot(title, xLabel, yLabel)

	s, err := plotter.NewScatter(toXYs(points))
	if err != nil {
		return err
	}
	s.GlyphStyle.Color = SteelBlue
	s.GlyphStyle.Radius = vg.Points(3)
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(s)

	if zeroLine {
		if err := addZeroLine(p, points); err != nil {
			return err
		}
	}

	return save(p, path)
}

// ScatterSeries desenha séries nomeadas de pontos com legenda
func ScatterSeries(path, title, xLabel, yLabel string, series []PointSeries) error {
	p := newPlot(title, xLabel, yLabel)

	for i, ps := range series {
		s, err := plotter.NewScatter(toXYs(ps.Points))
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = plotutil.Color(i)
		s.GlyphStyle.Radius = vg.Points(3)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
		p.Legend.Add(ps.Name, s)
	}
	p.Legend.Top = true

	return save(p, path)
}

// ScatterNominal desenha os valores de cada grupo sobre uma categoria do
// eixo X
func ScatterNominal(path, title, xLabel, yLabel string, names []string, groups [][]float64) error {
	p := newPlot(title, xLabel, yLabel)

	xys := make(plotter.XYs, 0)
	for i, g := range groups {
		for _, v := range g {
			xys = append(xys, plotter.XY{X: float64(i), Y: v})
		}
	}

	s, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	s.GlyphStyle.Color = SteelBlue
	s.GlyphStyle.Radius = vg.Points(3)
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(s)
	p.NominalX(names...)

	return save(p, path)
}

// OrderedLine liga os valores na ordem dada, com uma linha tracejada em zero
// quando zeroLine é verdadeiro
func OrderedLine(path, title, xLabel, yLabel string, values []float64, zeroLine bool) error {
	p := newPlot(title, xLabel, yLabel)

	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = Point{X: float64(i), Y: v}
	}

	line, err := plotter.NewLine(toXYs(points))
	if err != nil {
		return err
	}
	line.LineStyle.Color = SteelBlue
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)

	if zeroLine {
		if err := addZeroLine(p, points); err != nil {
			return err
		}
	}

	return save(p, path)
}

func addZeroLine(p *plot.Plot, points []Point) error {
	if len(points) == 0 {
		return nil
	}
	xMin, xMax := points[0].X, points[0].X
	for _, pt := range points {
		if pt.X < xMin {
			xMin = pt.X
		}
		if pt.X > xMax {
			xMax = pt.X
		}
	}
	line, err := horizontalLine(0, xMin, xMax, Red, true)
	if err != nil {
		return err
	}
	p.Add(line)
	return nil
}
