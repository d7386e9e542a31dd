package analyzing

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vfg2006/sixsigma-analytics-api/infrastructure/snapshot"
	"github.com/vfg2006/sixsigma-analytics-api/internal/domain"
	"github.com/vfg2006/sixsigma-analytics-api/internal/report"
	"github.com/vfg2006/sixsigma-analytics-api/internal/report/chart"
	"github.com/vfg2006/sixsigma-analytics-api/internal/stats"
)

const gageReportDir = "gage_rnr_report"

// gageStudy roda o estudo cruzado de repetitividade e reprodutibilidade sobre
// as medições configuradas. O estudo não depende do GA4: as medições vêm do
// arquivo configurado ou do exemplo embutido
func (s *Service) gageStudy(_ context.Context, _ domain.ReportParams) (string, error) {
	study, err := s.loadGageStudy()
	if err != nil {
		return "", err
	}

	result, err := stats.GageRnR(study.Measurements)
	if err != nil {
		return "", fmt.Errorf("erro ao calcular o Gage R&R: %w", err)
	}

	dir, err := s.writer.AnalysisDir(gageReportDir)
	if err != nil {
		return "", err
	}

	if err := s.gageCharts(dir, result); err != nil {
		return dir, err
	}

	summary := gageSummary(result)
	if err := s.writer.WriteText(dir, "gage_rnr_summary.txt", summary); err != nil {
		return dir, err
	}

	// O HTML referencia os PNGs pelo nome para o diretório poder ser movido
	data := report.GageHTMLData{
		Summary:       summary,
		VarianceChart: "gage_rnr_variance_chart.png",
		StdDevChart:   "gage_rnr_std_dev_chart.png",
	}
	if err := s.writer.WriteHTML(dir, "gage_rnr_report.html", report.GageHTMLTemplate, data); err != nil {
		return dir, err
	}

	return dir, nil
}

func (s *Service) loadGageStudy() (*domain.GageStudy, error) {
	if path := s.cfg.Analysis.GageStudyFile; path != "" {
		return snapshot.LoadGageStudy(path)
	}
	return domain.DefaultGageStudy(), nil
}

func (s *Service) gageCharts(dir string, result *stats.GageResult) error {
	names := make([]string, len(result.Components))
	variances := make([]float64, len(result.Components))
	varianceLabels := make([]string, len(result.Components))
	stdDevs := make([]float64, len(result.Components))
	stdDevLabels := make([]string, len(result.Components))
	for i, component := range result.Components {
		names[i] = component.Name
		variances[i] = component.Variance
		varianceLabels[i] = strconv.FormatFloat(component.Variance, 'f', 3, 64)
		stdDevs[i] = component.StdDev
		stdDevLabels[i] = strconv.FormatFloat(component.StdDev, 'f', 3, 64)
	}

	err := chart.Bars(
		s.writer.Path(dir, "gage_rnr_variance_chart.png"),
		"Gage R&R Variance Analysis",
		"Sources of Variance",
		"Variance (σ²)",
		names, variances, varianceLabels, chart.SkyBlue,
	)
	if err != nil {
		return fmt.Errorf("erro ao gerar o gráfico de variâncias: %w", err)
	}

	err = chart.Bars(
		s.writer.Path(dir, "gage_rnr_std_dev_chart.png"),
		"Gage R&R Standard Deviation Analysis",
		"Sources of Variance",
		"Standard Deviation (σ)",
		names, stdDevs, stdDevLabels, chart.LightGreen,
	)
	if err != nil {
		return fmt.Errorf("erro ao gerar o gráfico de desvios: %w", err)
	}

	return nil
}

func gageSummary(result *stats.GageResult) string {
	var b report.TextBuilder
	b.Header("Gage R&R Study Summary")
	b.Linef("Operators: %d", result.Operators)
	b.Linef("Parts: %d", result.Parts)
	b.Linef("Replicates: %d", result.Replicates)
	b.Linef("Total measurements: %d", result.Operators*result.Parts*result.Replicates)

	anovaRows := make([][]string, len(result.ANOVA))
	for i, term := range result.ANOVA {
		anovaRows[i] = []string{
			term.Name,
			strconv.Itoa(term.DF),
			report.FormatFloat(term.SumSq),
			report.FormatFloat(term.MeanSq),
			report.FormatFloat(term.F),
			report.FormatFloat(term.PValue),
		}
	}
	b.Section("Analysis of Variance:", report.FormatTable(
		[]string{"source", "DF", "SS", "MS", "F", "p-value"},
		anovaRows,
	))

	componentRows := make([][]string, len(result.Components))
	for i, component := range result.Components {
		componentRows[i] = []string{
			component.Name,
			report.FormatFloat(component.Variance),
			report.FormatFloat(component.StdDev),
			report.FormatFloat(component.Contribution),
			report.FormatFloat(component.StudyVar),
		}
	}
	b.Section("Variance Components:", report.FormatTable(
		[]string{"source", "variance", "std dev", "% contribution", "% study var"},
		componentRows,
	))

	b.Section("Gage Evaluation:", report.FormatTable(
		[]string{"measure", "value"},
		[][]string{
			{"Repeatability (EV)", report.FormatFloat(result.Repeatability)},
			{"Reproducibility (AV)", report.FormatFloat(result.Reproducibility)},
			{"Total Gage R&R", report.FormatFloat(result.GageVariance)},
			{"Part-to-Part", report.FormatFloat(result.PartVariance)},
			{"Total Variation", report.FormatFloat(result.TotalVariance)},
			{"% Contribution (R&R)", report.FormatFloat(result.PercentContributionRR)},
			{"% Study Variation (R&R)", report.FormatFloat(result.PercentStudyVarRR)},
			{"Distinct Categories (ndc)", strconv.Itoa(result.NDC)},
		},
	))

	b.Blank()
	b.Linef("Assessment: %s (%%Study Variation = %s%%)", gageVerdict(result.PercentStudyVarRR), report.FormatFloat(result.PercentStudyVarRR))
	b.Rule()

	return b.String()
}

// gageVerdict aplica os limites usuais do AIAG sobre o percentual de variação
// do estudo atribuído ao sistema de medição
func gageVerdict(percentStudyVar float64) string {
	switch {
	case percentStudyVar < 10:
		return "Measurement system is acceptable"
	case percentStudyVar < 30:
		return "Measurement system is conditionally acceptable"
	default:
		return "Measurement system is unacceptable"
	}
}
