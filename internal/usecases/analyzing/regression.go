package analyzing

import (
	"context"
	"fmt"

	"github.com/vfg2006/sixsigma-analytics-api/internal/domain"
	"github.com/vfg2006/sixsigma-analytics-api/internal/report"
	"github.com/vfg2006/sixsigma-analytics-api/internal/report/chart"
	"github.com/vfg2006/sixsigma-analytics-api/internal/stats"
)

const regressionReportDir = "mlt_regression_report"

// regressionDependent é a variável resposta do modelo de engajamento.
const regressionDependent = domain.MetricUserEngagementDuration

// regressionRegressors lista os regressores do modelo, na ordem em que entram
// na matriz de desenho.
func regressionRegressors() []string {
	return []string{
		domain.MetricAverageSessionDuration,
		domain.MetricBounceRate,
		domain.MetricEventCount,
	}
}

func (s *Service) regressionStudy(ctx context.Context, params domain.ReportParams) (string, error) {
	table, err := s.fetchTable(ctx, params)
	if err != nil {
		return "", err
	}

	regressors := regressionRegressors()
	metrics := append([]string{regressionDependent}, regressors...)
	columns := table.PairedColumns(metrics...)
	y := columns[0]
	x := columns[1:]

	model, err := stats.OLS(regressionDependent, regressors, x, y)
	if err != nil {
		return "", fmt.Errorf("erro ao ajustar a regressão de %s: %w", regressionDependent, err)
	}

	// O VIF é calculado sobre a matriz de desenho completa, com a constante
	ones := make([]float64, len(y))
	for i := range ones {
		ones[i] = 1
	}
	vifNames := append([]string{"const"}, regressors...)
	vifColumns := append([][]float64{ones}, x...)
	vif, err := stats.VIF(vifNames, vifColumns)
	if err != nil {
		return "", fmt.Errorf("erro ao calcular os fatores de inflação de variância: %w", err)
	}

	dir, err := s.writer.AnalysisDir(regressionReportDir)
	if err != nil {
		return "", err
	}

	if err := s.regressionCharts(dir, regressors, x, model); err != nil {
		return dir, err
	}

	if err := s.writer.WriteText(dir, "mlt_regression_summary.txt", regressionSummary(model, vif)); err != nil {
		return dir, err
	}

	return dir, nil
}

func (s *Service) regressionCharts(dir string, regressors []string, x [][]float64, model *stats.OLSResult) error {
	residuals := model.Residuals

	err := chart.Histogram(
		s.writer.Path(dir, "histogram_residuals.png"),
		"Histogram of Residuals",
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
		s.writer.Path(dir, "qqplot_residuals.png"),
		"Normal Probability Plot of Residuals",
		residuals,
	)
	if err != nil {
		return fmt.Errorf("erro ao gerar o gráfico de probabilidade normal: %w", err)
	}

	fittedPoints := make([]chart.Point, len(model.Fitted))
	for i, fitted := range model.Fitted {
		fittedPoints[i] = chart.Point{X: fitted, Y: residuals[i]}
	}
	err = chart.Scatter(
		s.writer.Path(dir, "residuals_vs_fitted.png"),
		"Residuals vs. Fitted Values",
		"Fitted Values",
		"Residuals",
		fittedPoints,
		true,
	)
	if err != nil {
		return fmt.Errorf("erro ao gerar o gráfico de resíduos contra ajustados: %w", err)
	}

	for i, regressor := range regressors {
		points := make([]chart.Point, len(residuals))
		for j := range residuals {
			points[j] = chart.Point{X: x[i][j], Y: residuals[j]}
		}
		err = chart.Scatter(
			s.writer.Path(dir, fmt.Sprintf("residuals_vs_%s.png", regressor)),
			fmt.Sprintf("Residuals vs. %s", regressor),
			regressor,
			"Residuals",
			points,
			true,
		)
		if err != nil {
			return fmt.Errorf("erro ao gerar o gráfico de resíduos contra %s: %w", regressor, err)
		}
	}

	return nil
}

func regressionSummary(model *stats.OLSResult, vif []stats.VIFEntry) string {
	var b report.TextBuilder
	b.Header("OLS Regression Results")
	b.Linef("Dep. Variable: %s", model.Dependent)
	b.Linef("No. Observations: %d", model.N)
	b.Linef("Df Model: %d", model.DFModel)
	b.Linef("Df Residuals: %d", model.DFResid)
	b.Linef("R-squared: %s", report.FormatFloat(model.R2))
	b.Linef("Adj. R-squared: %s", report.FormatFloat(model.AdjR2))
	b.Linef("F-statistic: %s", report.FormatFloat(model.FStat))
	b.Linef("Prob (F-statistic): %s", report.FormatFloat(model.FPValue))

	rows := make([][]string, len(model.Coefficients))
	for i, coefficient := range model.Coefficients {
		rows[i] = []string{
			coefficient.Name,
			report.FormatFloat(coefficient.Estimate),
			report.FormatFloat(coefficient.StdErr),
			report.FormatFloat(coefficient.TValue),
			report.FormatFloat(coefficient.PValue),
		}
	}
	b.Section("Coefficients:", report.FormatTable(
		[]string{"", "coef", "std err", "t", "P>|t|"},
		rows,
	))

	vifRows := make([][]string, len(vif))
	for i, entry := range vif {
		vifRows[i] = []string{entry.Feature, report.FormatFloat(entry.VIF)}
	}

	return b.String() + "\n\nVariance Inflation Factors:\n" + report.FormatTable(
		[]string{"feature", "VIF"},
		vifRows,
	)
}
