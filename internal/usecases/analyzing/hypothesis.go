package analyzing

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sixsigma-analytics-api/internal/domain"
	"github.com/vfg2006/sixsigma-analytics-api/internal/report"
	"github.com/vfg2006/sixsigma-analytics-api/internal/report/chart"
	"github.com/vfg2006/sixsigma-analytics-api/internal/stats"
)

const hypothesisReportDir = "hypothesis_test_report"

// hypothesisMetrics lista as métricas testadas na ordem dos relatórios
func hypothesisMetrics() []string {
	return []string{
		domain.MetricEventCount,
		domain.MetricTotalUsers,
		domain.MetricSessions,
		domain.MetricScreenPageViews,
	}
}

// hypothesisStudy testa, por métrica, a diferença entre os grupos de evento:
// Kruskal-Wallis quando alguma amostra é pequena, ANOVA com pós-teste de
// Tukey caso contrário
func (s *Service) hypothesisStudy(ctx context.Context, params domain.ReportParams) (string, error) {
	if params.Alpha <= 0 || params.Alpha >= 1 {
		return "", fmt.Errorf("%w, recebido: %v", ErrInvalidAlpha, params.Alpha)
	}

	table, err := s.fetchTable(ctx, params)
	if err != nil {
		return "", err
	}

	dir, err := s.writer.AnalysisDir(hypothesisReportDir)
	if err != nil {
		return "", err
	}

	events := topEvents(table, s.cfg.Analysis.MaxGroups)

	var b report.TextBuilder
	var analyzed int
	for _, metric := range hypothesisMetrics() {
		ok, err := s.hypothesisForMetric(&b, dir, table, metric, events, params.Alpha)
		if err != nil {
			return dir, err
		}
		if ok {
			analyzed++
		}
	}

	if analyzed == 0 {
		return dir, fmt.Errorf("nenhuma métrica com grupos suficientes para o teste de hipótese")
	}

	if err := s.writer.WriteText(dir, "hypothesis_test_results.txt", b.String()); err != nil {
		return dir, err
	}

	return dir, nil
}

func (s *Service) hypothesisForMetric(b *report.TextBuilder, dir string, table *domain.AnalyticsTable, metric string, events []string, alpha float64) (bool, error) {
	// Grupos de uma observação entram: são eles que disparam o teste
	// não paramétrico
	names, groups := eventGroups(table, metric, events, 1)
	if len(names) < 2 {
		logrus.Warnf("analysis: teste de hipótese de %s ignorado: %d grupo(s) com observações", metric, len(names))
		b.Header(fmt.Sprintf("Hypothesis Test for %s:", metric))
		b.Linef("Skipped: fewer than 2 event groups with observations.")
		b.Blank()
		b.Rule()
		return false, nil
	}

	if err := s.hypothesisCharts(dir, metric, names, groups); err != nil {
		return false, err
	}

	b.Header(fmt.Sprintf("Hypothesis Test for %s:", metric))

	describe, err := stats.Describe(table.Column(metric))
	if err != nil {
		return false, fmt.Errorf("erro ao descrever %s: %w", metric, err)
	}

	var summary strings.Builder
	fmt.Fprintf(&summary, "Total observations: %d\n", len(table.Rows))
	fmt.Fprintf(&summary, "Groups in eventName: %d\n", len(table.Events()))
	fmt.Fprintf(&summary, "Metric statistics for %s:\n", metric)
	summary.WriteString(describeLines(describe))
	b.Section("Data Summary:", summary.String())

	smallGroup := false
	for _, group := range groups {
		if len(group) < 2 {
			smallGroup = true
			break
		}
	}

	if smallGroup {
		if err := kruskalSection(b, metric, groups, alpha); err != nil {
			return false, err
		}
	} else {
		if err := anovaSection(b, metric, names, groups, alpha); err != nil {
			return false, err
		}
	}

	welchSection(b, names, groups)

	b.Blank()
	b.Rule()

	return true, nil
}

func kruskalSection(b *report.TextBuilder, metric string, groups [][]float64, alpha float64) error {
	result, err := stats.KruskalWallis(groups...)
	if err != nil {
		return fmt.Errorf("erro no teste de Kruskal-Wallis de %s: %w", metric, err)
	}

	b.Blank()
	b.Linef("Using Kruskal-Wallis test due to small sample sizes")
	b.Linef("H-statistic: %s, p-value: %s (df=%d)",
		report.FormatFloat(result.H), report.FormatFloat(result.PValue), result.DF)
	b.Linef("Conclusion: %s", hypothesisConclusion(metric, result.PValue, alpha))

	return nil
}

func anovaSection(b *report.TextBuilder, metric string, names []string, groups [][]float64, alpha float64) error {
	result, err := stats.OneWayANOVA(groups...)
	if err != nil {
		return fmt.Errorf("erro na ANOVA de %s: %w", metric, err)
	}

	b.Blank()
	b.Linef("Performing one-way ANOVA")
	b.Linef("F-statistic: %s, p-value: %s",
		report.FormatFloat(result.FStat), report.FormatFloat(result.PValue))
	b.Linef("Conclusion: %s", hypothesisConclusion(metric, result.PValue, alpha))

	// Pós-teste só quando a ANOVA acusa diferença
	if result.PValue < alpha {
		tukey, err := stats.TukeyHSD(alpha, names, groups)
		if err != nil {
			return fmt.Errorf("erro no teste de Tukey de %s: %w", metric, err)
		}
		b.Section("Post-hoc Analysis:", tukeyTable(tukey))

		pairs := make([]string, 0, len(tukey.Comparisons))
		for _, comparison := range tukey.Comparisons {
			if comparison.Reject {
				pairs = append(pairs, fmt.Sprintf("%s vs %s", comparison.GroupA, comparison.GroupB))
			}
		}
		if len(pairs) > 0 {
			b.Section("Significant pairs:", strings.Join(pairs, "\n"))
		}
	}

	return nil
}

// welchSection complementa o relatório quando exatamente dois grupos têm
// amostra suficiente para o teste t
func welchSection(b *report.TextBuilder, names []string, groups [][]float64) {
	eligible := make([]int, 0, 2)
	for i, group := range groups {
		if len(group) >= 2 {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) != 2 {
		return
	}

	result, err := stats.WelchTTest(groups[eligible[0]], groups[eligible[1]])
	if err != nil {
		logrus.Warnf("analysis: teste t de Welch não calculado: %v", err)
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Groups: %s vs %s\n", names[eligible[0]], names[eligible[1]])
	fmt.Fprintf(&sb, "t-statistic: %s, df=%s, p-value: %s\n",
		report.FormatFloat(result.T), report.FormatFloat(result.DF), report.FormatFloat(result.PValue))
	fmt.Fprintf(&sb, "Cohen's d: %s\n", report.FormatFloat(result.CohensD))
	b.Section("Welch t-test:", sb.String())
}

// hypothesisConclusion devolve a frase de conclusão dos relatórios
func hypothesisConclusion(metric string, pValue, alpha float64) string {
	if pValue < alpha {
		return fmt.Sprintf("Reject the null hypothesis. There is significant difference in %s between groups.", metric)
	}
	return fmt.Sprintf("Fail to reject the null hypothesis. There is no significant difference in %s between groups.", metric)
}

func describeLines(d *stats.DescriptiveStats) string {
	return report.FormatTable(
		[]string{"stat", "value"},
		[][]string{
			{"count", strconv.Itoa(d.N)},
			{"mean", report.FormatFloat(d.Mean)},
			{"std", report.FormatFloat(d.StdDev)},
			{"min", report.FormatFloat(d.Min)},
			{"25%", report.FormatFloat(d.Q1)},
			{"50%", report.FormatFloat(d.Median)},
			{"75%", report.FormatFloat(d.Q3)},
			{"max", report.FormatFloat(d.Max)},
		},
	)
}

func (s *Service) hypothesisCharts(dir, metric string, names []string, groups [][]float64) error {
	err := chart.ScatterNominal(
		s.writer.Path(dir, fmt.Sprintf("%s_by_eventName_scatter.png", metric)),
		fmt.Sprintf("Dispersion of %s by eventName", metric),
		"eventName",
		metric,
		names,
		groups,
	)
	if err != nil {
		return fmt.Errorf("erro ao gerar a dispersão de %s: %w", metric, err)
	}

	curves := make([]chart.Density, 0, len(groups))
	for i, group := range groups {
		describe, err := stats.Describe(group)
		if err != nil || describe.StdDev == 0 {
			logrus.Warnf("analysis: grupo %q fora da curva de %s por variância zero", names[i], metric)
			continue
		}
		curves = append(curves, chart.Density{Name: names[i], Mean: describe.Mean, StdDev: describe.StdDev})
	}

	err = chart.BellCurves(
		s.writer.Path(dir, fmt.Sprintf("%s_by_eventName_bell_curve.png", metric)),
		fmt.Sprintf("Gaussian Bell Curve of %s by eventName", metric),
		metric,
		curves,
	)
	if err != nil {
		return fmt.Errorf("erro ao gerar a curva de %s: %w", metric, err)
	}

	return nil
}
