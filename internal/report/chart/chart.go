// Package chart renderiza os gráficos PNG dos relatórios de análise.
package chart

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Dimensões padrão dos arquivos gerados
const (
	defaultWidth  = 8 * vg.Inch
	defaultHeight = 5 * vg.Inch
)

// Cores usadas nos relatórios
var (
	SkyBlue    = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	LightGreen = color.RGBA{R: 144, G: 238, B: 144, A: 255}
	SteelBlue  = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	Orange     = color.RGBA{R: 230, G: 126, B: 34, A: 255}
	Red        = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	Green      = color.RGBA{R: 44, G: 160, B: 44, A: 255}
)

// Point é um ponto em coordenadas de dados
type Point struct {
	X float64
	Y float64
}

// PointSeries é uma série nomeada de pontos
type PointSeries struct {
	Name   string
	Points []Point
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	return p
}

func save(p *plot.Plot, path string) error {
	return p.Save(defaultWidth, defaultHeight, path)
}

func toXYs(points []Point) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = pt.X
		xys[i].Y = pt.Y
	}
	return xys
}

// addValueLabels anota texto nas posições dadas
func addValueLabels(p *plot.Plot, xys plotter.XYs, labels []string) error {
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return err
	}
	p.Add(l)
	return nil
}

// horizontalLine cobre o intervalo [xMin, xMax] na altura y
func horizontalLine(y, xMin, xMax float64, lineColor color.Color, dashed bool) (*plotter.Line, error) {
	line, err := plotter.NewLine(plotter.XYs{{X: xMin, Y: y}, {X: xMax, Y: y}})
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = lineColor
	line.LineStyle.Width = vg.Points(1.5)
	if dashed {
		line.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	}
	return line, nil
}
