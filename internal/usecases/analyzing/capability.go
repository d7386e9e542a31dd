package analyzing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sixsigma-analytics-api/internal/domain"
	"github.com/vfg2006/sixsigma-analytics-api/internal/report"
	"github.com/vfg2006/sixsigma-analytics-api/internal/report/chart"
	"github.com/vfg2006/sixsigma-analytics-api/internal/stats"
)

const capabilityReportDir = "process_capacity_report"

// capabilityStudy calcula os índices de capacidade de cada métrica com
// especificação definida e grava a tabela bruta, os gráficos e o relatório
func (s *Service) capabilityStudy(ctx context.Context, params domain.ReportParams) (string, error) {
	table, err := s.fetchTable(ctx, params)
	if err != nil {
		return "", err
	}

	dir, err := s.writer.AnalysisDir(capabilityReportDir)
	if err != nil {
		return "", err
	}

	if err := s.writeAnalyticsCSV(dir, table); err != nil {
		return dir, err
	}

	specs := domain.MetricSpecifications()
	capabilities := make([]*stats.Capability, 0, len(table.Metrics))
	skipped := make([]string, 0)

	for _, metric := range table.Metrics {
		spec, ok := specs[metric]
		if !ok {
			logrus.Warnf("analysis: métrica %s sem especificação definida", metric)
			skipped = append(skipped, fmt.Sprintf("No specifications defined for %s", metric))
			continue
		}

		// Zeros e NaN saem antes do cálculo, como nas demais limpezas
		values := stats.CleanPositive(table.Column(metric))

		capability, err := stats.ProcessCapability(metric, values, spec.USL, spec.LSL, spec.Target)
		switch {
		case errors.Is(err, stats.ErrInsufficientData):
			logrus.Warnf("analysis: capacidade de %s não calculada: %v", metric, err)
			skipped = append(skipped, fmt.Sprintf("Insufficient valid data points for %s", metric))
			continue
		case errors.Is(err, stats.ErrZeroVariance):
			logrus.Warnf("analysis: capacidade de %s não calculada: %v", metric, err)
			skipped = append(skipped, fmt.Sprintf("Zero standard deviation found for %s", metric))
			continue
		case err != nil:
			return dir, fmt.Errorf("erro ao calcular a capacidade de %s: %w", metric, err)
		}

		capabilities = append(capabilities, capability)
	}

	if len(capabilities) == 0 {
		return dir, fmt.Errorf("nenhuma métrica com capacidade calculável no período")
	}

	if err := s.capabilityCharts(dir, capabilities); err != nil {
		return dir, err
	}

	content := capabilityReport(capabilities, skipped, params, s.cfg.Analysis.CapabilityTarget)
	if err := s.writer.WriteText(dir, "process_capability_report.txt", content); err != nil {
		return dir, err
	}

	return dir, nil
}

// writeAnalyticsCSV persiste a tabela consultada ao lado dos artefatos da
// análise
func (s *Service) writeAnalyticsCSV(dir string, table *domain.AnalyticsTable) error {
	withDates := table.HasDates()

	header := []string{domain.DimensionEventName}
	if withDates {
		header = append(header, domain.DimensionDate)
	}
	header = append(header, table.Metrics...)

	rows := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		cells := []string{row.EventName}
		if withDates {
			cells = append(cells, row.Date)
		}
		for _, metric := range table.Metrics {
			cells = append(cells, strconv.FormatFloat(row.Values[metric], 'f', -1, 64))
		}
		rows = append(rows, cells)
	}

	return s.writer.WriteCSV(dir, "analytics_data.csv", header, rows)
}

func (s *Service) capabilityCharts(dir string, capabilities []*stats.Capability) error {
	names := make([]string, len(capabilities))
	cp := make([]float64, len(capabilities))
	cpk := make([]float64, len(capabilities))
	cpm := make([]float64, len(capabilities))
	for i, c := range capabilities {
		names[i] = c.Metric
		cp[i] = c.Cp
		cpk[i] = c.Cpk
		cpm[i] = c.Cpm
	}

	target := s.cfg.Analysis.CapabilityTarget
	reference := &chart.HLine{
		Y:      target,
		Label:  fmt.Sprintf("Target Capability (%.2f)", target),
		Color:  chart.Green,
		Dashed: true,
	}

	err := chart.GroupedBars(
		s.writer.Path(dir, "process_capability_analysis.png"),
		"Process Capability Indices by Metric",
		"Metrics",
		"Capability Index Value",
		names,
		[]chart.BarSeries{
			{Name: "Cp", Values: cp},
			{Name: "Cpk", Values: cpk},
			{Name: "Cpm", Values: cpm},
		},
		reference,
	)
	if err != nil {
		return fmt.Errorf("erro ao gerar o gráfico de índices: %w", err)
	}

	pareto, err := stats.Pareto(names, cp)
	if err != nil {
		return fmt.Errorf("erro ao montar o Pareto de capacidade: %w", err)
	}

	paretoNames := make([]string, len(pareto.Items))
	percents := make([]float64, len(pareto.Items))
	cumulative := make([]float64, len(pareto.Items))
	for i, item := range pareto.Items {
		paretoNames[i] = item.Name
		percents[i] = item.Percent
		cumulative[i] = item.Cumulative
	}

	err = chart.ParetoChart(
		s.writer.Path(dir, "process_capability_pareto.png"),
		"Pareto Chart of Process Capability",
		"Metrics",
		"Cp (% of total)",
		paretoNames,
		percents,
		cumulative,
	)
	if err != nil {
		return fmt.Errorf("erro ao gerar o Pareto de capacidade: %w", err)
	}

	return nil
}

func capabilityReport(capabilities []*stats.Capability, skipped []string, params domain.ReportParams, target float64) string {
	var b report.TextBuilder
	b.Header("Process Capability Analysis Report")
	b.Linef("Property: %s", params.PropertyID)
	b.Linef("Period: %s to %s", params.StartDate, params.EndDate)
	b.Linef("Metrics analyzed: %d", len(capabilities))

	specRows := make([][]string, len(capabilities))
	indexRows := make([][]string, len(capabilities))
	for i, c := range capabilities {
		specRows[i] = []string{
			c.Metric,
			report.FormatFloat(c.LSL),
			report.FormatFloat(c.Target),
			report.FormatFloat(c.USL),
		}
		indexRows[i] = []string{
			c.Metric,
			strconv.Itoa(c.N),
			report.FormatFloat(c.Mean),
			report.FormatFloat(c.StdDev),
			report.FormatFloat(c.Cp),
			report.FormatFloat(c.Cpu),
			report.FormatFloat(c.Cpl),
			report.FormatFloat(c.Cpk),
			report.FormatFloat(c.Cpm),
			c.Classification(target),
		}
	}

	b.Section("Specification Limits:", report.FormatTable(
		[]string{"metric", "LSL", "target", "USL"},
		specRows,
	))

	b.Section("Capability Indices:", report.FormatTable(
		[]string{"metric", "n", "mean", "std", "Cp", "Cpu", "Cpl", "Cpk", "Cpm", "classification"},
		indexRows,
	))

	if len(skipped) > 0 {
		b.Section("Skipped Metrics:", strings.Join(skipped, "\n"))
	}

	b.Blank()
	b.Rule()

	return b.String()
}
