package analyzing

import (
	"context"
	"fmt"
	"math"

	"github.com/vfg2006/sixsigma-analytics-api/internal/domain"
	"github.com/vfg2006/sixsigma-analytics-api/internal/report"
	"github.com/vfg2006/sixsigma-analytics-api/internal/report/chart"
	"github.com/vfg2006/sixsigma-analytics-api/internal/stats"
)

const paretoReportDir = "pareto_report"

// paretoStudy classifica as categorias de impacto e aponta as poucas vitais.
// A origem é configurável: o catálogo embutido de categorias ou a contagem de
// eventos do GA4 no período
func (s *Service) paretoStudy(ctx context.Context, params domain.ReportParams) (string, error) {
	categories, err := s.paretoCategories(ctx, params)
	if err != nil {
		return "", err
	}

	names := make([]string, len(categories))
	impacts := make([]float64, len(categories))
	indicators := make(map[string]string, len(categories))
	for i, category := range categories {
		names[i] = category.Name
		impacts[i] = category.Impact
		indicators[category.Name] = category.KeyIndicators
	}

	result, err := stats.Pareto(names, impacts)
	if err != nil {
		return "", fmt.Errorf("erro ao montar a análise de Pareto: %w", err)
	}

	dir, err := s.writer.AnalysisDir(paretoReportDir)
	if err != nil {
		return "", err
	}

	sortedNames := make([]string, len(result.Items))
	percents := make([]float64, len(result.Items))
	cumulative := make([]float64, len(result.Items))
	for i, item := range result.Items {
		sortedNames[i] = item.Name
		percents[i] = item.Percent
		cumulative[i] = item.Cumulative
	}

	err = chart.ParetoChart(
		s.writer.Path(dir, "pareto_analysis.png"),
		"GA4 Metrics Pareto Analysis",
		"GA4 Metric Categories",
		"Impact (%)",
		sortedNames,
		percents,
		cumulative,
	)
	if err != nil {
		return dir, fmt.Errorf("erro ao gerar o gráfico de Pareto: %w", err)
	}

	if err := s.writer.WriteText(dir, "pareto_analysis.txt", paretoReport(result, indicators)); err != nil {
		return dir, err
	}

	return dir, nil
}

// paretoCategories resolve a origem configurada: o catálogo embutido ou as
// contagens de evento do período
func (s *Service) paretoCategories(ctx context.Context, params domain.ReportParams) ([]domain.ParetoCategory, error) {
	if s.cfg.Analysis.ParetoSource == "events" {
		return s.eventCategories(ctx, params)
	}
	return domain.DefaultParetoCategories(), nil
}

func (s *Service) eventCategories(ctx context.Context, params domain.ReportParams) ([]domain.ParetoCategory, error) {
	table, err := s.fetchTable(ctx, params)
	if err != nil {
		return nil, err
	}

	events := topEvents(table, s.cfg.Analysis.MaxGroups)
	if len(events) == 0 {
		return nil, ErrNoAnalyticsData
	}

	byEvent := table.GroupByEvent(domain.MetricEventCount)
	categories := make([]domain.ParetoCategory, 0, len(events))
	for _, event := range events {
		var total float64
		for _, v := range byEvent[event] {
			if math.IsNaN(v) {
				continue
			}
			total += v
		}
		if total <= 0 {
			continue
		}
		categories = append(categories, domain.ParetoCategory{
			Name:          event,
			Impact:        total,
			KeyIndicators: fmt.Sprintf("%.0f eventCount occurrences in period", total),
		})
	}

	if len(categories) == 0 {
		return nil, ErrNoAnalyticsData
	}

	return categories, nil
}

func paretoReport(result *stats.ParetoResult, indicators map[string]string) string {
	var b report.TextBuilder
	b.Header("GA4 Metrics Pareto Analysis")

	rows := make([][]string, len(result.Items))
	for i, item := range result.Items {
		vital := ""
		if item.VitalFew {
			vital = "yes"
		}
		rows[i] = []string{
			item.Name,
			report.FormatFloat(item.Value),
			report.FormatFloat(item.Percent),
			report.FormatFloat(item.Cumulative),
			vital,
		}
	}
	b.Section("Ranked Categories:", report.FormatTable(
		[]string{"category", "value", "impact %", "cumulative %", "vital few"},
		rows,
	))

	b.Blank()
	b.Linef("Vital few: %d categories account for %s%% of the total impact", result.VitalFewCount, report.FormatFloat(result.VitalFewImpact))

	b.Blank()
	b.Linef("Detailed Metric Analysis:")
	for _, item := range result.Items {
		b.Blank()
		b.Linef("%s (%.0f%%):", item.Name, item.Percent)
		b.Linef("Key Indicators: %s", indicators[item.Name])
	}

	return b.String()
}
