package analyzing

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	exprand "golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/vfg2006/sixsigma-analytics-api/infrastructure/snapshot"
	"github.com/vfg2006/sixsigma-analytics-api/internal/domain"
	"github.com/vfg2006/sixsigma-analytics-api/internal/report"
	"github.com/vfg2006/sixsigma-analytics-api/internal/report/chart"
	"github.com/vfg2006/sixsigma-analytics-api/internal/stats"
)

const doeReportDir = "doe_report"

// doeStudy analisa um experimento fatorial 2^k: efeitos principais por OLS,
// matriz do planejamento, respostas e o diagnóstico de resíduos. As corridas
// vêm do arquivo configurado ou da simulação embutida
func (s *Service) doeStudy(_ context.Context, _ domain.ReportParams) (string, error) {
	factors, observations, err := s.loadDOEObservations()
	if err != nil {
		return "", err
	}

	runs := make([][]int, len(observations))
	responses := make([]float64, len(observations))
	for i, observation := range observations {
		run := make([]int, len(observation.Levels))
		for f, level := range observation.Levels {
			if level > 0 {
				run[f] = 1
			}
		}
		runs[i] = run
		responses[i] = observation.Response
	}

	analysis, err := stats.AnalyzeFactorial(factors, runs, responses)
	if err != nil {
		return "", fmt.Errorf("erro ao analisar o experimento fatorial: %w", err)
	}

	dir, err := s.writer.AnalysisDir(doeReportDir)
	if err != nil {
		return "", err
	}

	if err := s.writeDOECSVs(dir, observations); err != nil {
		return dir, err
	}

	if err := s.doeCharts(dir, factors, observations, analysis); err != nil {
		return dir, err
	}

	if err := s.writer.WriteText(dir, "doe_summary.txt", doeSummary(factors, observations, analysis)); err != nil {
		return dir, err
	}

	return dir, nil
}

func (s *Service) loadDOEObservations() ([]string, []domain.DOEObservation, error) {
	if path := s.cfg.Analysis.DOEExperimentFile; path != "" {
		return snapshot.LoadDOEExperiment(path)
	}
	factors, observations := simulateExperiment(domain.DefaultDOEFactors())
	return factors, observations, nil
}

// simulateExperiment produz as corridas de demonstração: o planejamento
// fatorial completo em duas réplicas, com efeitos principais fixos e ruído
// gaussiano de semente fixa para o relatório ser reproduzível
func simulateExperiment(factors []domain.DOEFactor) ([]string, []domain.DOEObservation) {
	names := make([]string, len(factors))
	for i, factor := range factors {
		names[i] = factor.Name
	}

	const baseResponse = 120.0
	effects := []float64{24, 15, 8}

	noise := distuv.Normal{Mu: 0, Sigma: 4, Src: exprand.NewSource(42)}

	design := stats.FullFactorialDesign(len(factors))
	observations := make([]domain.DOEObservation, 0, 2*len(design))
	for replicate := 0; replicate < 2; replicate++ {
		for _, run := range design {
			levels := make([]float64, len(run))
			response := baseResponse
			for f, level := range run {
				levels[f] = float64(2*level - 1)
				if level == 1 && f < len(effects) {
					response += effects[f]
				}
			}
			response += noise.Rand()

			observations = append(observations, domain.DOEObservation{
				RunOrder: len(observations) + 1,
				Levels:   levels,
				Response: response,
			})
		}
	}

	return names, observations
}

// writeDOECSVs grava a matriz do planejamento e as respostas, ambas sem
// cabeçalho como no formato original
func (s *Service) writeDOECSVs(dir string, observations []domain.DOEObservation) error {
	designRows := make([][]string, len(observations))
	resultRows := make([][]string, len(observations))
	for i, observation := range observations {
		cells := make([]string, len(observation.Levels))
		for f, level := range observation.Levels {
			cells[f] = strconv.FormatFloat(level, 'f', -1, 64)
		}
		designRows[i] = cells
		resultRows[i] = []string{strconv.FormatFloat(observation.Response, 'f', -1, 64)}
	}

	if err := s.writer.WriteCSV(dir, "design_matrix.csv", nil, designRows); err != nil {
		return err
	}

	return s.writer.WriteCSV(dir, "experiment_results.csv", nil, resultRows)
}

func (s *Service) doeCharts(dir string, factors []string, observations []domain.DOEObservation, analysis *stats.DOEAnalysis) error {
	for f, factor := range factors {
		effect := analysis.Effects[f]
		err := chart.Bars(
			s.writer.Path(dir, fmt.Sprintf("systematic_variation_%s.png", factor)),
			fmt.Sprintf("Systematic Variation for %s", factor),
			factor,
			"Response",
			[]string{"-1", "+1"},
			[]float64{effect.MeanLow, effect.MeanHigh},
			nil,
			chart.SteelBlue,
		)
		if err != nil {
			return fmt.Errorf("erro ao gerar a variação sistemática de %s: %w", factor, err)
		}
	}

	if len(factors) >= 2 {
		err := chart.ScatterSeries(
			s.writer.Path(dir, "response_surface.png"),
			"Response Surface Methodology",
			factors[0],
			"Response",
			responseSurfaceSeries(factors, observations),
		)
		if err != nil {
			return fmt.Errorf("erro ao gerar a superfície de resposta: %w", err)
		}
	}

	residuals := analysis.Model.Residuals
	fitted := analysis.Model.Fitted

	err := chart.Histogram(
		s.writer.Path(dir, "residual_histogram.png"),
		"Residuals Histogram",
		"Residuals",
		"Frequency",
		residuals,
		histogramBins(len(residuals)),
		true,
	)
	if err != nil {
		return fmt.Errorf("erro ao gerar o histograma de resíduos: %w", err)
	}

	err = chart.QQPlot(
		s.writer.Path(dir, "normal_probability_plot.png"),
		"Normal Probability Plot of Residuals",
		residuals,
	)
	if err != nil {
		return fmt.Errorf("erro ao gerar o gráfico de probabilidade normal: %w", err)
	}

	points := make([]chart.Point, len(fitted))
	for i := range fitted {
		points[i] = chart.Point{X: fitted[i], Y: residuals[i]}
	}
	err = chart.Scatter(
		s.writer.Path(dir, "residuals_vs_fitted.png"),
		"Residuals vs Fitted Values",
		"Fitted Values",
		"Residuals",
		points,
		true,
	)
	if err != nil {
		return fmt.Errorf("erro ao gerar resíduos contra ajustados: %w", err)
	}

	err = chart.OrderedLine(
		s.writer.Path(dir, "residuals_vs_order.png"),
		"Residuals vs Order of Data",
		"Order",
		"Residuals",
		residuals,
		true,
	)
	if err != nil {
		return fmt.Errorf("erro ao gerar resíduos na ordem de coleta: %w", err)
	}

	for f, factor := range factors {
		points := make([]chart.Point, len(observations))
		for i, observation := range observations {
			points[i] = chart.Point{X: observation.Levels[f], Y: residuals[i]}
		}
		err = chart.Scatter(
			s.writer.Path(dir, fmt.Sprintf("residuals_vs_%s.png", factor)),
			fmt.Sprintf("Residuals vs %s", factor),
			factor,
			"Residuals",
			points,
			true,
		)
		if err != nil {
			return fmt.Errorf("erro ao gerar resíduos contra %s: %w", factor, err)
		}
	}

	return nil
}

// responseSurfaceSeries projeta a superfície de resposta em duas dimensões:
// o primeiro fator no eixo X, uma série por nível do segundo fator
func responseSurfaceSeries(factors []string, observations []domain.DOEObservation) []chart.PointSeries {
	series := make([]chart.PointSeries, 0, 2)
	for _, level := range []float64{-1, 1} {
		points := make([]chart.Point, 0, len(observations))
		for _, observation := range observations {
			if observation.Levels[1] != level {
				continue
			}
			points = append(points, chart.Point{X: observation.Levels[0], Y: observation.Response})
		}
		series = append(series, chart.PointSeries{
			Name:   fmt.Sprintf("%s=%+.0f", factors[1], level),
			Points: points,
		})
	}
	return series
}

func doeSummary(factors []string, observations []domain.DOEObservation, analysis *stats.DOEAnalysis) string {
	var b report.TextBuilder
	b.Header("Design of Experiments Summary")
	b.Linef("Factors: %d (%s)", len(factors), strings.Join(factors, ", "))
	b.Linef("Runs: %d", len(observations))

	effectRows := make([][]string, len(analysis.Effects))
	for i, effect := range analysis.Effects {
		effectRows[i] = []string{
			effect.Factor,
			report.FormatFloat(effect.MeanLow),
			report.FormatFloat(effect.MeanHigh),
			report.FormatFloat(effect.Effect),
			report.FormatFloat(effect.TValue),
			report.FormatFloat(effect.PValue),
		}
	}
	b.Section("Main Effects:", report.FormatTable(
		[]string{"factor", "mean(-1)", "mean(+1)", "effect", "t", "p-value"},
		effectRows,
	))

	model := analysis.Model
	b.Section("Model Fit:", report.FormatTable(
		[]string{"measure", "value"},
		[][]string{
			{"R-squared", report.FormatFloat(model.R2)},
			{"Adj. R-squared", report.FormatFloat(model.AdjR2)},
			{"F-statistic", report.FormatFloat(model.FStat)},
			{"Prob (F-statistic)", report.FormatFloat(model.FPValue)},
		},
	))

	if top := dominantEffect(analysis); top != nil {
		b.Blank()
		b.Linef("Dominant factor: %s (effect %s)", top.Factor, report.FormatFloat(top.Effect))
	}

	b.Blank()
	b.Rule()

	return b.String()
}

// dominantEffect devolve o efeito principal de maior magnitude
func dominantEffect(analysis *stats.DOEAnalysis) *stats.DOEEffect {
	var top *stats.DOEEffect
	for i := range analysis.Effects {
		effect := &analysis.Effects[i]
		if top == nil || math.Abs(effect.Effect) > math.Abs(top.Effect) {
			top = effect
		}
	}
	return top
}

// histogramBins aplica a regra da raiz quadrada com limites práticos
func histogramBins(n int) int {
	bins := int(math.Ceil(math.Sqrt(float64(n))))
	if bins < 5 {
		return 5
	}
	if bins > 20 {
		return 20
	}
	return bins
}
