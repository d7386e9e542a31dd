package analyzing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	repomocks "github.com/vfg2006/sixsigma-analytics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sixsigma-analytics-api/internal/config"
	"github.com/vfg2006/sixsigma-analytics-api/internal/domain"
	"github.com/vfg2006/sixsigma-analytics-api/internal/report"
	"github.com/vfg2006/sixsigma-analytics-api/internal/usecases/analyzing/mocks"
	"go.uber.org/mock/gomock"
)

func newAnalyzerConfig() *config.Config {
	return &config.Config{
		GA4: config.GA4{
			PropertyID: "123456",
			StartDate:  "2024-01-01",
			EndDate:    "2024-01-31",
		},
		Analysis: config.Analysis{
			Alpha:            0.05,
			CapabilityTarget: 1.33,
			MaxGroups:        10,
			ParetoSource:     "categories",
		},
	}
}

// buildTable monta uma tabela determinística com perEvent linhas por evento.
// Os valores variam por linha e crescem 25% a cada evento, o que separa os
// grupos o bastante para os testes paramétricos acusarem diferença.
func buildTable(events []string, perEvent int, withDates bool) *domain.AnalyticsTable {
	metrics := domain.DefaultMetrics()
	bases := map[string]float64{
		domain.MetricTotalUsers:             500,
		domain.MetricSessions:               800,
		domain.MetricEngagedSessions:        600,
		domain.MetricEventCount:             2000,
		domain.MetricScreenPageViews:        1500,
		domain.MetricBounceRate:             35,
		domain.MetricUserEngagementDuration: 300,
		domain.MetricAverageSessionDuration: 180,
	}
	dates := []string{"2024-01-01", "2024-01-02", "2024-01-08", "2024-01-09"}

	table := &domain.AnalyticsTable{
		PropertyID: "123456",
		StartDate:  "2024-01-01",
		EndDate:    "2024-01-31",
		Metrics:    metrics,
	}
	for e, event := range events {
		for i := 0; i < perEvent; i++ {
			values := make(map[string]float64, len(metrics))
			for m, metric := range metrics {
				jitter := float64((e*31+i*17*(m+1)+m*7)%23) - 11
				values[metric] = bases[metric]*(1+0.25*float64(e)) + jitter
			}
			row := domain.MetricRow{EventName: event, Values: values}
			if withDates {
				row.Date = dates[i%len(dates)]
			}
			table.Rows = append(table.Rows, row)
		}
	}
	return table
}

// appendSingleEventRow adiciona um evento com uma única observação, o
// suficiente para disparar o caminho não paramétrico do teste de hipótese
func appendSingleEventRow(table *domain.AnalyticsTable, event string) *domain.AnalyticsTable {
	values := make(map[string]float64, len(table.Metrics))
	for i, metric := range table.Metrics {
		values[metric] = 50 + float64(7*i)
	}
	table.Rows = append(table.Rows, domain.MetricRow{EventName: event, Values: values})
	return table
}

func readReport(t *testing.T, dir, filename string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(dir, filename))
	require.NoError(t, err)
	return string(content)
}

func assertArtifacts(t *testing.T, dir string, filenames ...string) {
	t.Helper()
	for _, filename := range filenames {
		_, err := os.Stat(filepath.Join(dir, filename))
		assert.NoError(t, err, "artefato esperado: %s", filename)
	}
}

func TestService_RunCapability(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSource := mocks.NewMockSource(ctrl)
	mockRuns := repomocks.NewMockAnalysisRunRepository(ctrl)

	root := t.TempDir()
	svc := NewService(newAnalyzerConfig(), mockSource, report.NewWriter(root)).(*Service).WithRunRegistry(mockRuns)

	mockSource.EXPECT().
		FetchEventMetrics(gomock.Any(), gomock.Any()).
		Return(buildTable([]string{"page_view", "login"}, 6, false), nil)

	mockRuns.EXPECT().
		SaveRun(gomock.Any()).
		DoAndReturn(func(run *domain.AnalysisRun) error {
			assert.NotEmpty(t, run.ID)
			assert.Equal(t, domain.AnalysisCapability, run.Kind)
			assert.Equal(t, domain.RunStatusRunning, run.Status)
			return nil
		})

	mockRuns.EXPECT().
		UpdateRunStatus(gomock.Any(), domain.RunStatusCompleted, gomock.Any(), gomock.Nil()).
		Return(nil)

	run, err := svc.RunCapability(context.Background(), domain.ReportParams{})
	require.NoError(t, err)
	require.NotNil(t, run)

	// Parâmetros ausentes vêm da configuração
	assert.Equal(t, domain.RunStatusCompleted, run.Status)
	assert.Equal(t, "123456", run.PropertyID)
	assert.Equal(t, "2024-01-01", run.StartDate)
	assert.Equal(t, "2024-01-31", run.EndDate)
	assert.Equal(t, filepath.Join(root, "process_capacity_report"), run.ReportPath)
	require.NotNil(t, run.FinishedAt)
	assert.Nil(t, run.Error)

	assertArtifacts(t, run.ReportPath,
		"analytics_data.csv",
		"process_capability_analysis.png",
		"process_capability_pareto.png",
		"process_capability_report.txt",
	)

	content := readReport(t, run.ReportPath, "process_capability_report.txt")
	assert.Contains(t, content, "Process Capability Analysis Report")
	assert.Contains(t, content, "Period: 2024-01-01 to 2024-01-31")
	assert.Contains(t, content, "Specification Limits:")
	assert.Contains(t, content, "Capability Indices:")
	// Todas as métricas padrão têm especificação definida
	assert.NotContains(t, content, "Skipped Metrics:")
}

func TestService_RunCapability_SemDados(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSource := mocks.NewMockSource(ctrl)
	mockRuns := repomocks.NewMockAnalysisRunRepository(ctrl)

	svc := NewService(newAnalyzerConfig(), mockSource, report.NewWriter(t.TempDir())).(*Service).WithRunRegistry(mockRuns)

	mockSource.EXPECT().
		FetchEventMetrics(gomock.Any(), gomock.Any()).
		Return(&domain.AnalyticsTable{}, nil)

	mockRuns.EXPECT().SaveRun(gomock.Any()).Return(nil)
	mockRuns.EXPECT().
		UpdateRunStatus(gomock.Any(), domain.RunStatusFailed, gomock.Any(), gomock.Not(gomock.Nil())).
		Return(nil)

	run, err := svc.RunCapability(context.Background(), domain.ReportParams{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoAnalyticsData)

	require.NotNil(t, run)
	assert.Equal(t, domain.RunStatusFailed, run.Status)
	require.NotNil(t, run.Error)
	assert.Equal(t, err.Error(), *run.Error)
}

func TestService_RunCapability_RegistroIndisponivel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSource := mocks.NewMockSource(ctrl)
	mockRuns := repomocks.NewMockAnalysisRunRepository(ctrl)

	svc := NewService(newAnalyzerConfig(), mockSource, report.NewWriter(t.TempDir())).(*Service).WithRunRegistry(mockRuns)

	mockRuns.EXPECT().SaveRun(gomock.Any()).Return(errors.New("banco indisponível"))

	run, err := svc.RunCapability(context.Background(), domain.ReportParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "erro ao registrar a execução")
	assert.Nil(t, run)
}

func TestService_Run_AnaliseDesconhecida(t *testing.T) {
	svc := &Service{cfg: newAnalyzerConfig(), writer: report.NewWriter(t.TempDir())}

	run, err := svc.Run(context.Background(), domain.AnalysisKind("volumetria"), domain.ReportParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "análise desconhecida")
	assert.Nil(t, run)
}

func TestService_RunHypothesis(t *testing.T) {
	tests := []struct {
		name        string
		table       *domain.AnalyticsTable
		alpha       float64
		wantErr     error
		contains    []string
		notContains []string
	}{
		{
			name:  "Deve usar Kruskal-Wallis quando algum grupo tem uma única observação",
			table: appendSingleEventRow(buildTable([]string{"page_view"}, 6, false), "first_open"),
			contains: []string{
				"Hypothesis Test for eventCount:",
				"Data Summary:",
				"Using Kruskal-Wallis test due to small sample sizes",
				"H-statistic:",
			},
			notContains: []string{"Performing one-way ANOVA"},
		},
		{
			name:  "Deve executar a ANOVA com pós-teste de Tukey e o teste t de Welch com dois grupos completos",
			table: buildTable([]string{"page_view", "login"}, 6, false),
			contains: []string{
				"Performing one-way ANOVA",
				"Conclusion: Reject the null hypothesis. There is significant difference in eventCount between groups.",
				"Post-hoc Analysis:",
				"Significant pairs:",
				"page_view vs login",
				"Welch t-test:",
				"Cohen's d:",
			},
			notContains: []string{"Using Kruskal-Wallis"},
		},
		{
			name:    "Deve rejeitar um nível de significância fora do intervalo",
			alpha:   1.2,
			wantErr: ErrInvalidAlpha,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSource := mocks.NewMockSource(ctrl)
			if tt.table != nil {
				mockSource.EXPECT().
					FetchEventMetrics(gomock.Any(), gomock.Any()).
					Return(tt.table, nil)
			}

			svc := &Service{cfg: newAnalyzerConfig(), source: mockSource, writer: report.NewWriter(t.TempDir())}

			run, err := svc.RunHypothesis(context.Background(), domain.ReportParams{Alpha: tt.alpha})
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				require.NotNil(t, run)
				assert.Equal(t, domain.RunStatusFailed, run.Status)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, run)
			assert.Equal(t, domain.RunStatusCompleted, run.Status)

			content := readReport(t, run.ReportPath, "hypothesis_test_results.txt")
			for _, want := range tt.contains {
				assert.Contains(t, content, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, content, unwanted)
			}

			assertArtifacts(t, run.ReportPath,
				"eventCount_by_eventName_scatter.png",
				"eventCount_by_eventName_bell_curve.png",
			)
		})
	}
}

func TestService_RunANOVA(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSource := mocks.NewMockSource(ctrl)
	mockSource.EXPECT().
		FetchEventMetrics(gomock.Any(), gomock.Any()).
		Return(buildTable([]string{"page_view", "login"}, 12, true), nil)

	svc := &Service{cfg: newAnalyzerConfig(), source: mockSource, writer: report.NewWriter(t.TempDir())}

	run, err := svc.RunANOVA(context.Background(), domain.ReportParams{})
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusCompleted, run.Status)

	content := readReport(t, run.ReportPath, "anova_results.txt")
	assert.Contains(t, content, "Analysis for userEngagementDuration:")
	assert.Contains(t, content, "Assumption Tests:")
	assert.Contains(t, content, "Shapiro-Wilk Test:")
	assert.Contains(t, content, "Levene Test:")
	assert.Contains(t, content, "One-way ANOVA:")
	assert.Contains(t, content, "C(eventName)")
	// A tabela tem datas, então o segundo fator de semana ISO entra no modelo
	assert.Contains(t, content, "Two-way ANOVA:")
	assert.Contains(t, content, "C(isoWeek)")
	assert.Contains(t, content, "Post-hoc Analysis:")
	assert.Contains(t, content, "Multiple Comparison of Means - Tukey HSD")

	assertArtifacts(t, run.ReportPath,
		"userEngagementDuration_boxplot.png",
		"averageSessionDuration_boxplot.png",
		"bounceRate_boxplot.png",
		"eventCount_boxplot.png",
	)
}

func TestService_RunPareto(t *testing.T) {
	t.Run("Deve usar o catálogo de categorias por padrão", func(t *testing.T) {
		svc := &Service{cfg: newAnalyzerConfig(), writer: report.NewWriter(t.TempDir())}

		run, err := svc.RunPareto(context.Background(), domain.ReportParams{})
		require.NoError(t, err)
		assert.Equal(t, domain.RunStatusCompleted, run.Status)

		content := readReport(t, run.ReportPath, "pareto_analysis.txt")
		assert.Contains(t, content, "GA4 Metrics Pareto Analysis")
		assert.Contains(t, content, "Ranked Categories:")
		assert.Contains(t, content, "Traffic Source Performance")
		assert.Contains(t, content, "Vital few:")
		assert.Contains(t, content, "Detailed Metric Analysis:")
		assert.Contains(t, content, "Key Indicators: Organic/Direct/Social distribution")

		assertArtifacts(t, run.ReportPath, "pareto_analysis.png")
	})

	t.Run("Deve classificar os eventos pelo volume quando configurado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockSource := mocks.NewMockSource(ctrl)
		mockSource.EXPECT().
			FetchEventMetrics(gomock.Any(), gomock.Any()).
			Return(buildTable([]string{"page_view", "login", "purchase"}, 4, false), nil)

		cfg := newAnalyzerConfig()
		cfg.Analysis.ParetoSource = "events"
		svc := &Service{cfg: cfg, source: mockSource, writer: report.NewWriter(t.TempDir())}

		run, err := svc.RunPareto(context.Background(), domain.ReportParams{})
		require.NoError(t, err)

		content := readReport(t, run.ReportPath, "pareto_analysis.txt")
		assert.Contains(t, content, "page_view")
		assert.Contains(t, content, "purchase")
		assert.Contains(t, content, "eventCount occurrences in period")
	})
}

func TestService_RunGageRnR(t *testing.T) {
	svc := &Service{cfg: newAnalyzerConfig(), writer: report.NewWriter(t.TempDir())}

	run, err := svc.RunGageRnR(context.Background(), domain.ReportParams{})
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusCompleted, run.Status)

	assertArtifacts(t, run.ReportPath,
		"gage_rnr_summary.txt",
		"gage_rnr_report.html",
		"gage_rnr_variance_chart.png",
		"gage_rnr_std_dev_chart.png",
	)

	summary := readReport(t, run.ReportPath, "gage_rnr_summary.txt")
	assert.Contains(t, summary, "Gage R&R Study Summary")
	assert.Contains(t, summary, "Analysis of Variance:")
	assert.Contains(t, summary, "Variance Components:")
	assert.Contains(t, summary, "Gage Evaluation:")
	assert.Contains(t, summary, "Distinct Categories (ndc)")
	assert.Contains(t, summary, "Assessment:")

	// O HTML referencia os gráficos por nome relativo, para o diretório poder
	// ser movido inteiro
	html := readReport(t, run.ReportPath, "gage_rnr_report.html")
	assert.Contains(t, html, `src="gage_rnr_variance_chart.png"`)
	assert.Contains(t, html, `src="gage_rnr_std_dev_chart.png"`)
}

func TestService_RunDOE(t *testing.T) {
	svc := &Service{cfg: newAnalyzerConfig(), writer: report.NewWriter(t.TempDir())}

	run, err := svc.RunDOE(context.Background(), domain.ReportParams{})
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusCompleted, run.Status)

	assertArtifacts(t, run.ReportPath,
		"design_matrix.csv",
		"experiment_results.csv",
		"doe_summary.txt",
		"systematic_variation_contentQuality.png",
		"systematic_variation_pageLoadTime.png",
		"systematic_variation_channelMix.png",
		"response_surface.png",
		"residual_histogram.png",
		"normal_probability_plot.png",
		"residuals_vs_fitted.png",
		"residuals_vs_order.png",
		"residuals_vs_contentQuality.png",
	)

	summary := readReport(t, run.ReportPath, "doe_summary.txt")
	assert.Contains(t, summary, "Design of Experiments Summary")
	assert.Contains(t, summary, "Main Effects:")
	assert.Contains(t, summary, "Model Fit:")
	// O efeito simulado de contentQuality domina os demais
	assert.Contains(t, summary, "Dominant factor: contentQuality")

	// O experimento simulado tem 2 réplicas do plano 2^3, sem cabeçalho e com
	// níveis codificados
	design := readReport(t, run.ReportPath, "design_matrix.csv")
	lines := strings.Split(strings.TrimSpace(design), "\n")
	require.Len(t, lines, 16)
	for _, line := range lines {
		cells := strings.Split(line, ",")
		require.Len(t, cells, 3)
		for _, cell := range cells {
			assert.Contains(t, []string{"-1", "1"}, cell)
		}
	}
}

func TestService_RunRegression(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSource := mocks.NewMockSource(ctrl)
	mockSource.EXPECT().
		FetchEventMetrics(gomock.Any(), gomock.Any()).
		Return(buildTable([]string{"page_view", "login"}, 12, false), nil)

	svc := &Service{cfg: newAnalyzerConfig(), source: mockSource, writer: report.NewWriter(t.TempDir())}

	run, err := svc.RunRegression(context.Background(), domain.ReportParams{})
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusCompleted, run.Status)

	summary := readReport(t, run.ReportPath, "mlt_regression_summary.txt")
	assert.Contains(t, summary, "OLS Regression Results")
	assert.Contains(t, summary, "Dep. Variable: userEngagementDuration")
	assert.Contains(t, summary, "Coefficients:")
	assert.Contains(t, summary, "const")
	assert.Contains(t, summary, "averageSessionDuration")
	assert.Contains(t, summary, "Variance Inflation Factors:")

	assertArtifacts(t, run.ReportPath,
		"histogram_residuals.png",
		"qqplot_residuals.png",
		"residuals_vs_fitted.png",
		"residuals_vs_averageSessionDuration.png",
		"residuals_vs_bounceRate.png",
		"residuals_vs_eventCount.png",
	)
}

func TestService_RunAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSource := mocks.NewMockSource(ctrl)
	// Os quatro estudos que consultam o GA4 falham; os demais (Gage R&R,
	// Pareto do catálogo e DOE simulado) seguem normalmente
	mockSource.EXPECT().
		FetchEventMetrics(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("ga4 indisponível")).
		Times(4)

	svc := &Service{cfg: newAnalyzerConfig(), source: mockSource, writer: report.NewWriter(t.TempDir())}

	runs, err := svc.RunAll(context.Background(), domain.ReportParams{})
	require.Error(t, err)
	assert.EqualError(t, err, "4 de 7 análises falharam")
	require.Len(t, runs, len(domain.AnalysisKinds()))

	// As execuções saem na ordem fixa do despacho
	statuses := make(map[domain.AnalysisKind]domain.RunStatus, len(runs))
	for i, run := range runs {
		assert.Equal(t, domain.AnalysisKinds()[i], run.Kind)
		statuses[run.Kind] = run.Status
	}

	assert.Equal(t, domain.RunStatusFailed, statuses[domain.AnalysisCapability])
	assert.Equal(t, domain.RunStatusCompleted, statuses[domain.AnalysisGageRnR])
	assert.Equal(t, domain.RunStatusCompleted, statuses[domain.AnalysisPareto])
	assert.Equal(t, domain.RunStatusFailed, statuses[domain.AnalysisAnova])
	assert.Equal(t, domain.RunStatusFailed, statuses[domain.AnalysisHypothesis])
	assert.Equal(t, domain.RunStatusCompleted, statuses[domain.AnalysisDOE])
	assert.Equal(t, domain.RunStatusFailed, statuses[domain.AnalysisRegression])
}

func TestService_resolveParams(t *testing.T) {
	svc := &Service{cfg: newAnalyzerConfig()}

	tests := []struct {
		name     string
		params   domain.ReportParams
		expected domain.ReportParams
	}{
		{
			name:   "Deve preencher os parâmetros ausentes com a configuração",
			params: domain.ReportParams{},
			expected: domain.ReportParams{
				PropertyID: "123456",
				StartDate:  "2024-01-01",
				EndDate:    "2024-01-31",
				Alpha:      0.05,
			},
		},
		{
			name: "Deve preservar os parâmetros informados",
			params: domain.ReportParams{
				PropertyID: "654321",
				StartDate:  "2024-02-01",
				EndDate:    "2024-02-28",
				Alpha:      0.01,
			},
			expected: domain.ReportParams{
				PropertyID: "654321",
				StartDate:  "2024-02-01",
				EndDate:    "2024-02-28",
				Alpha:      0.01,
			},
		},
		{
			name:   "Deve manter o alpha fora do intervalo para o estudo rejeitar",
			params: domain.ReportParams{Alpha: 1.5},
			expected: domain.ReportParams{
				PropertyID: "123456",
				StartDate:  "2024-01-01",
				EndDate:    "2024-01-31",
				Alpha:      1.5,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, svc.resolveParams(tt.params))
		})
	}
}

func TestTopEvents(t *testing.T) {
	table := &domain.AnalyticsTable{
		Metrics: []string{domain.MetricEventCount},
		Rows: []domain.MetricRow{
			{EventName: "page_view", Values: map[string]float64{domain.MetricEventCount: 100}},
			{EventName: "login", Values: map[string]float64{domain.MetricEventCount: 400}},
			{EventName: "purchase", Values: map[string]float64{domain.MetricEventCount: 250}},
			{EventName: "page_view", Values: map[string]float64{domain.MetricEventCount: 200}},
		},
	}

	tests := []struct {
		name     string
		limit    int
		expected []string
	}{
		{
			name:     "Deve ordenar os eventos pelo total de eventCount",
			limit:    0,
			expected: []string{"login", "page_view", "purchase"},
		},
		{
			name:     "Deve truncar a lista no limite configurado",
			limit:    2,
			expected: []string{"login", "page_view"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, topEvents(table, tt.limit))
		})
	}
}

func TestEventGroups(t *testing.T) {
	table := &domain.AnalyticsTable{
		Metrics: []string{domain.MetricSessions},
		Rows: []domain.MetricRow{
			{EventName: "page_view", Values: map[string]float64{domain.MetricSessions: 10}},
			{EventName: "page_view", Values: map[string]float64{domain.MetricSessions: 12}},
			{EventName: "login", Values: map[string]float64{domain.MetricSessions: 7}},
		},
	}

	t.Run("Deve descartar os grupos menores que o tamanho mínimo", func(t *testing.T) {
		names, groups := eventGroups(table, domain.MetricSessions, []string{"page_view", "login"}, 2)
		assert.Equal(t, []string{"page_view"}, names)
		require.Len(t, groups, 1)
		assert.Equal(t, []float64{10, 12}, groups[0])
	})

	t.Run("Deve preservar a ordem dos eventos informados", func(t *testing.T) {
		names, groups := eventGroups(table, domain.MetricSessions, []string{"login", "page_view"}, 1)
		assert.Equal(t, []string{"login", "page_view"}, names)
		require.Len(t, groups, 2)
		assert.Equal(t, []float64{7}, groups[0])
	})
}
