package analyzing

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sixsigma-analytics-api/internal/domain"
	"github.com/vfg2006/sixsigma-analytics-api/internal/report"
	"github.com/vfg2006/sixsigma-analytics-api/internal/report/chart"
	"github.com/vfg2006/sixsigma-analytics-api/internal/stats"
)

const anovaReportDir = "anova_report"

// anovaDependentVars lista as variáveis dependentes na ordem dos relatórios
func anovaDependentVars() []string {
	return []string{
		domain.MetricUserEngagementDuration,
		domain.MetricAverageSessionDuration,
		domain.MetricBounceRate,
		domain.MetricEventCount,
	}
}

// anovaStudy roda, por variável dependente, os testes de pressupostos, a
// ANOVA de um fator por evento, a de dois fatores (evento x semana ISO,
// quando a tabela tem datas) e o pós-teste de Tukey
func (s *Service) anovaStudy(ctx context.Context, params domain.ReportParams) (string, error) {
	table, err := s.fetchTable(ctx, params)
	if err != nil {
		return "", err
	}

	dir, err := s.writer.AnalysisDir(anovaReportDir)
	if err != nil {
		return "", err
	}

	events := topEvents(table, s.cfg.Analysis.MaxGroups)

	var b report.TextBuilder
	var analyzed int
	for _, metric := range anovaDependentVars() {
		ok, err := s.anovaForMetric(&b, dir, table, metric, events, params.Alpha)
		if err != nil {
			return dir, err
		}
		if ok {
			analyzed++
		}
	}

	if analyzed == 0 {
		return dir, fmt.Errorf("nenhuma variável dependente com grupos suficientes para a ANOVA")
	}

	if err := s.writer.WriteText(dir, "anova_results.txt", b.String()); err != nil {
		return dir, err
	}

	return dir, nil
}

func (s *Service) anovaForMetric(b *report.TextBuilder, dir string, table *domain.AnalyticsTable, metric string, events []string, alpha float64) (bool, error) {
	names, groups := eventGroups(table, metric, events, 2)
	if len(names) < 2 {
		logrus.Warnf("analysis: ANOVA de %s ignorada: %d grupo(s) com observações suficientes", metric, len(names))
		b.Header(fmt.Sprintf("Analysis for %s:", metric))
		b.Linef("Skipped: fewer than 2 event groups with at least 2 observations.")
		b.Blank()
		b.Rule()
		return false, nil
	}

	// O gráfico vem antes do texto para uma falha de IO não deixar um
	// bloco escrito pela metade
	err := chart.BoxPlots(
		s.writer.Path(dir, fmt.Sprintf("%s_boxplot.png", metric)),
		fmt.Sprintf("Boxplot of %s by Event Name", metric),
		"eventName",
		metric,
		names,
		groups,
	)
	if err != nil {
		return false, fmt.Errorf("erro ao gerar o boxplot de %s: %w", metric, err)
	}

	b.Header(fmt.Sprintf("Analysis for %s:", metric))

	b.Section("Assumption Tests:", assumptionLines(table.Column(metric), groups))

	oneWay, err := stats.OneWayANOVA(groups...)
	if err != nil {
		return false, fmt.Errorf("erro na ANOVA de um fator de %s: %w", metric, err)
	}
	b.Section("One-way ANOVA:", oneWayTable(oneWay))

	b.Section("Two-way ANOVA:", twoWaySection(table, metric, names))

	tukey, err := stats.TukeyHSD(alpha, names, groups)
	if err != nil {
		return false, fmt.Errorf("erro no teste de Tukey de %s: %w", metric, err)
	}
	b.Section("Post-hoc Analysis:", tukeyTable(tukey))

	b.Blank()
	b.Rule()

	return true, nil
}

// assumptionLines testa a normalidade da métrica inteira e a homogeneidade
// de variâncias entre os grupos
func assumptionLines(column []float64, groups [][]float64) string {
	var sb strings.Builder

	if shapiro, err := stats.ShapiroWilk(column); err != nil {
		logrus.Warnf("analysis: Shapiro-Wilk não calculado: %v", err)
		sb.WriteString("Shapiro-Wilk Test: not computed\n")
	} else {
		fmt.Fprintf(&sb, "Shapiro-Wilk Test: W=%s, p-value=%s\n",
			report.FormatFloat(shapiro.W), report.FormatFloat(shapiro.PValue))
	}

	if levene, err := stats.Levene(groups...); err != nil {
		logrus.Warnf("analysis: teste de Levene não calculado: %v", err)
		sb.WriteString("Levene Test: not computed\n")
	} else {
		fmt.Fprintf(&sb, "Levene Test: W=%s, p-value=%s\n",
			report.FormatFloat(levene.W), report.FormatFloat(levene.PValue))
	}

	return sb.String()
}

func oneWayTable(result *stats.OneWayResult) string {
	return report.FormatTable(
		[]string{"source", "sum_sq", "df", "F", "PR(>F)"},
		[][]string{
			{
				"C(eventName)",
				report.FormatFloat(result.SSBetween),
				strconv.Itoa(result.DFBetween),
				report.FormatFloat(result.FStat),
				report.FormatFloat(result.PValue),
			},
			{
				"Residual",
				report.FormatFloat(result.SSWithin),
				strconv.Itoa(result.DFWithin),
				"NaN",
				"NaN",
			},
		},
	)
}

// twoWaySection ajusta evento x semana ISO quando a tabela tem a dimensão de
// data. Falhas aqui não derrubam o estudo: a seção registra o motivo
func twoWaySection(table *domain.AnalyticsTable, metric string, names []string) string {
	if !table.HasDates() {
		return "Not performed: the table has no date dimension for a second factor.\n"
	}

	keep := make(map[string]bool, len(names))
	for _, name := range names {
		keep[name] = true
	}

	eventFactor := make([]string, 0, len(table.Rows))
	weekFactor := make([]string, 0, len(table.Rows))
	values := make([]float64, 0, len(table.Rows))
	for _, row := range table.Rows {
		if !keep[row.EventName] {
			continue
		}
		v, ok := row.Values[metric]
		if !ok || math.IsNaN(v) {
			continue
		}
		week, ok := isoWeek(row.Date)
		if !ok {
			continue
		}
		eventFactor = append(eventFactor, row.EventName)
		weekFactor = append(weekFactor, week)
		values = append(values, v)
	}

	result, err := stats.TwoWayANOVA("C(eventName)", "C(isoWeek)", eventFactor, weekFactor, values)
	if err != nil {
		logrus.Warnf("analysis: ANOVA de dois fatores de %s não calculada: %v", metric, err)
		return "Not performed: insufficient factor levels for a two-way model.\n"
	}

	rows := make([][]string, 0, len(result.Terms)+1)
	for _, term := range result.Terms {
		rows = append(rows, anovaTermRow(term))
	}
	rows = append(rows, anovaTermRow(result.Residual))

	return report.FormatTable([]string{"source", "sum_sq", "df", "F", "PR(>F)"}, rows)
}

func anovaTermRow(term stats.AnovaTerm) []string {
	return []string{
		term.Name,
		report.FormatFloat(term.SumSq),
		strconv.Itoa(term.DF),
		report.FormatFloat(term.F),
		report.FormatFloat(term.PValue),
	}
}

func tukeyTable(result *stats.TukeyResult) string {
	rows := make([][]string, len(result.Comparisons))
	for i, comparison := range result.Comparisons {
		rows[i] = []string{
			comparison.GroupA,
			comparison.GroupB,
			report.FormatFloat(comparison.MeanDiff),
			report.FormatFloat(comparison.PValue),
			report.FormatFloat(comparison.Lower),
			report.FormatFloat(comparison.Upper),
			strconv.FormatBool(comparison.Reject),
		}
	}

	return fmt.Sprintf("Multiple Comparison of Means - Tukey HSD, FWER=%.2f\n", result.Alpha) +
		report.FormatTable(
			[]string{"group1", "group2", "meandiff", "p-adj", "lower", "upper", "reject"},
			rows,
		)
}

// isoWeek devolve o rótulo ano-semana ISO de uma data YYYY-MM-DD
func isoWeek(date string) (string, bool) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", false
	}
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week), true
}
